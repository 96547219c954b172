package bounds

import (
	"fmt"

	"github.com/matzehuels/curricula/pkg/curriculum"
	"github.com/matzehuels/curricula/pkg/dag"
)

// Bound is the feasible period range of one course.
type Bound struct {
	Course int `json:"course"`
	Lower  int `json:"lower"`
	Upper  int `json:"upper"`
}

// Feasible reports whether at least one period fits the bound.
func (b Bound) Feasible() bool { return b.Lower <= b.Upper }

// Slack returns the number of periods the course can move, or a negative
// value for an infeasible bound.
func (b Bound) Slack() int { return b.Upper - b.Lower }

func (b Bound) String() string { return fmt.Sprintf("[%d,%d]", b.Lower, b.Upper) }

// Infeasible returns the bounds whose lower bound exceeds their upper bound.
func Infeasible(bs []Bound) []Bound {
	var out []Bound
	for _, b := range bs {
		if !b.Feasible() {
			out = append(out, b)
		}
	}
	return out
}

// Preprocessor computes static period bounds for every course of an
// instance. The instance is expected to be acyclic; see
// [curriculum.Instance.Validate].
type Preprocessor struct {
	periods int
	matrix  prereqMatrix
}

// NewPreprocessor snapshots the prerequisite relation of inst.
func NewPreprocessor(inst *curriculum.Instance) *Preprocessor {
	return &Preprocessor{periods: inst.Periods, matrix: newPrereqMatrix(inst)}
}

// LowerBounds returns the earliest period of every course, indexed by
// course ID - 1.
func (p *Preprocessor) LowerBounds() []int {
	return lowerFrom(p.matrix.lowerGraph(p.rootEdge).LongestPath(root), p.matrix.size())
}

// UpperBounds returns the latest period of every course, indexed by course
// ID - 1. A course without dependents gets Periods-1.
func (p *Preprocessor) UpperBounds() []int {
	ub := make([]int, p.matrix.size())
	for i := range ub {
		g := p.matrix.lowerGraph(p.rootEdge)
		ub[i] = p.periods - 1 - maxReachable(g.LongestPath(i+1))
	}
	return ub
}

// rootEdge joins the root to every course without prerequisites.
func (p *Preprocessor) rootEdge(c int) (int, bool) { return 1, !p.matrix.hasPrereq(c) }

// Compute returns one bound per course in course order.
func (p *Preprocessor) Compute() []Bound {
	lb, ub := p.LowerBounds(), p.UpperBounds()
	out := make([]Bound, len(lb))
	for i := range out {
		out[i] = Bound{Course: i + 1, Lower: lb[i], Upper: ub[i]}
	}
	return out
}

// Explanation names the chains that force a course's bounds.
type Explanation struct {
	Bound Bound `json:"bound"`

	// Before is the longest prerequisite chain ending at the course, as
	// course IDs, earliest first. Its length minus one is the lower bound.
	Before []int `json:"before"`

	// After is the longest chain of dependents starting at the course. Its
	// length minus one is the number of periods that must follow it.
	After []int `json:"after"`
}

// Explain returns the critical chains of a course. It panics if course is
// out of range.
func (p *Preprocessor) Explain(course int) Explanation {
	if course < 1 || course > p.matrix.size() {
		panic(fmt.Sprintf("bounds: course %d out of range [1, %d]", course, p.matrix.size()))
	}
	g := p.matrix.lowerGraph(p.rootEdge)
	lower := g.LongestPath(root)
	before := g.PathTo(course)
	if len(before) > 0 && before[0] == root {
		before = before[1:]
	}

	g = p.matrix.lowerGraph(p.rootEdge)
	dist := g.LongestPath(course)
	far := course
	for v, d := range dist {
		if d != dag.Unreachable && d > dist[far] {
			far = v
		}
	}
	after := g.PathTo(far)

	lb := 0
	if lower[course] != dag.Unreachable {
		lb = lower[course] - 1
	}
	return Explanation{
		Bound:  Bound{Course: course, Lower: lb, Upper: p.periods - 1 - dist[far]},
		Before: before,
		After:  after,
	}
}
