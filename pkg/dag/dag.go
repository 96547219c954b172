package dag

import (
	"fmt"
	"math"
	"slices"
)

const (
	// Unreachable is the distance of a vertex that no path from the source
	// reaches. It is smaller than any real distance.
	Unreachable = math.MinInt

	// NoVertex is the predecessor of the source and of unreachable vertices.
	NoVertex = -1
)

// Graph is a weighted directed graph over the vertices 0..Order()-1.
//
// The zero value is not usable - use New to create a graph. A Graph carries
// the state of its last LongestPath run (distances, predecessors), so it is
// normally built for one computation and then discarded.
type Graph struct {
	n       int
	weights [][]int  // weights[src][dst]; meaningful only where present
	present [][]bool // present[src][dst] distinguishes 0-weight edges from no edge
	succ    [][]int  // successor lists in insertion order
	edges   int

	visited []bool
	dist    []int
	pred    []int
	order   *Stack
}

// New creates a graph with v vertices and no edges. All distances start as
// Unreachable and all predecessors as NoVertex.
//
// New panics if v is negative.
func New(v int) *Graph {
	if v < 0 {
		panic(fmt.Sprintf("dag: negative vertex count %d", v))
	}
	g := &Graph{
		n:       v,
		weights: make([][]int, v),
		present: make([][]bool, v),
		succ:    make([][]int, v),
	}
	for i := range v {
		g.weights[i] = make([]int, v)
		g.present[i] = make([]bool, v)
	}
	g.reset()
	return g
}

// Order returns the number of vertices.
func (g *Graph) Order() int { return g.n }

// EdgeCount returns the number of distinct ordered pairs with an edge.
func (g *Graph) EdgeCount() int { return g.edges }

// AddEdge sets the weight of the edge src→dst. Adding an edge that already
// exists overwrites its weight. Self-loops are not supported.
//
// AddEdge panics if either endpoint is out of range.
func (g *Graph) AddEdge(src, dst, weight int) {
	g.check(src)
	g.check(dst)
	if !g.present[src][dst] {
		g.present[src][dst] = true
		g.succ[src] = append(g.succ[src], dst)
		g.edges++
	}
	g.weights[src][dst] = weight
}

// Weight returns the weight of src→dst and whether that edge exists.
func (g *Graph) Weight(src, dst int) (int, bool) {
	g.check(src)
	g.check(dst)
	if !g.present[src][dst] {
		return 0, false
	}
	return g.weights[src][dst], true
}

// Successors returns the heads of all edges leaving v, in insertion order.
// The returned slice is a copy.
func (g *Graph) Successors(v int) []int {
	g.check(v)
	return slices.Clone(g.succ[v])
}

// LongestPath returns the longest-path distance from src to every vertex.
// Vertices without a path from src are Unreachable. The returned slice is a
// copy and may be modified by the caller.
//
// The graph must be acyclic; see the package documentation.
func (g *Graph) LongestPath(src int) []int {
	g.check(src)
	g.reset()

	for v := range g.n {
		if !g.visited[v] {
			g.visit(v)
		}
	}

	g.dist[src] = 0
	for !g.order.IsEmpty() {
		from := g.order.Pop()
		if g.dist[from] == Unreachable {
			continue
		}
		for _, to := range g.succ[from] {
			if d := g.dist[from] + g.weights[from][to]; d > g.dist[to] {
				g.dist[to] = d
				g.pred[to] = from
			}
		}
	}
	return slices.Clone(g.dist)
}

// Predecessors returns, for every vertex, its predecessor on the longest
// path found by the last LongestPath call, or NoVertex.
func (g *Graph) Predecessors() []int { return slices.Clone(g.pred) }

// PathTo returns the vertices of the longest path from the last source to v,
// source first. It returns nil if v was unreachable or LongestPath has not
// been called.
func (g *Graph) PathTo(v int) []int {
	g.check(v)
	if g.dist[v] == Unreachable {
		return nil
	}
	var path []int
	for cur := v; cur != NoVertex; cur = g.pred[cur] {
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}

// visit pushes v after every vertex reachable from it (DFS postorder).
func (g *Graph) visit(v int) {
	g.visited[v] = true
	for _, next := range g.succ[v] {
		if !g.visited[next] {
			g.visit(next)
		}
	}
	g.order.Push(v)
}

func (g *Graph) reset() {
	g.visited = make([]bool, g.n)
	g.dist = make([]int, g.n)
	g.pred = make([]int, g.n)
	for i := range g.n {
		g.dist[i] = Unreachable
		g.pred[i] = NoVertex
	}
	g.order = NewStack(g.n)
}

func (g *Graph) check(v int) {
	if v < 0 || v >= g.n {
		panic(fmt.Sprintf("dag: vertex %d out of range [0, %d)", v, g.n))
	}
}
