package bounds

import (
	"github.com/matzehuels/curricula/pkg/curriculum"
	"github.com/matzehuels/curricula/pkg/dag"
)

const root = 0

// prereqMatrix is the N×N prerequisite relation: m[a][b] is true when course
// a+1 requires course b+1.
type prereqMatrix [][]bool

func newPrereqMatrix(inst *curriculum.Instance) prereqMatrix {
	n := inst.CourseCount()
	m := make(prereqMatrix, n)
	for i := range m {
		m[i] = make([]bool, n)
	}
	for _, p := range inst.Prerequisites {
		if p.Course >= 1 && p.Course <= n && p.Requires >= 1 && p.Requires <= n {
			m[p.Course-1][p.Requires-1] = true
		}
	}
	return m
}

func (m prereqMatrix) size() int { return len(m) }

// hasPrereq reports whether course (1-based) requires anything.
func (m prereqMatrix) hasPrereq(course int) bool {
	for _, r := range m[course-1] {
		if r {
			return true
		}
	}
	return false
}

// graph returns a graph over the root, the N courses and extra further
// vertices, holding one weight-1 edge per prerequisite pair.
func (m prereqMatrix) graph(extra int) *dag.Graph {
	n := m.size()
	g := dag.New(n + 1 + extra)
	for a := range n {
		for b := range n {
			if m[a][b] {
				g.AddEdge(b+1, a+1, 1)
			}
		}
	}
	return g
}

// lowerGraph is the prerequisite graph with root edges; rootWeight gives
// the weight of root→course or false to omit the edge.
func (m prereqMatrix) lowerGraph(rootWeight func(course int) (int, bool)) *dag.Graph {
	g := m.graph(0)
	for c := 1; c <= m.size(); c++ {
		if w, ok := rootWeight(c); ok {
			g.AddEdge(root, c, w)
		}
	}
	return g
}

// maxReachable returns the largest reachable distance in dist.
func maxReachable(dist []int) int {
	best := 0
	for _, d := range dist {
		if d != dag.Unreachable && d > best {
			best = d
		}
	}
	return best
}
