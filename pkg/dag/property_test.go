package dag

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// bruteLongest enumerates every path from src and returns the longest
// distance to each vertex, or Unreachable.
func bruteLongest(g *Graph, src int) []int {
	best := make([]int, g.Order())
	for i := range best {
		best[i] = Unreachable
	}
	var walk func(v, d int)
	walk = func(v, d int) {
		if d > best[v] {
			best[v] = d
		}
		for _, next := range g.Successors(v) {
			w, _ := g.Weight(v, next)
			walk(next, d+w)
		}
	}
	walk(src, 0)
	return best
}

// randomDAG builds an acyclic graph by only adding edges that go forward in
// a random permutation of the vertices.
func randomDAG(r *rand.Rand, n int) *Graph {
	g := New(n)
	perm := r.Perm(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if r.Float64() < 0.4 {
				g.AddEdge(perm[i], perm[j], r.IntN(6))
			}
		}
	}
	return g
}

func TestLongestPathMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))

	for trial := 0; trial < 300; trial++ {
		n := 1 + r.IntN(8)
		g := randomDAG(r, n)
		src := r.IntN(n)

		want := bruteLongest(g, src)
		got := g.LongestPath(src)
		require.Equal(t, want, got, "trial %d (n=%d, src=%d)", trial, n, src)

		for v, d := range got {
			if d == Unreachable {
				require.Nil(t, g.PathTo(v))
				continue
			}
			path := g.PathTo(v)
			require.NotEmpty(t, path)
			require.Equal(t, src, path[0])
			require.Equal(t, v, path[len(path)-1])

			sum := 0
			for i := 1; i < len(path); i++ {
				w, ok := g.Weight(path[i-1], path[i])
				require.True(t, ok)
				sum += w
			}
			require.Equal(t, d, sum, "path %v must realise distance", path)
		}
	}
}
