package bounds

import (
	"fmt"

	"github.com/matzehuels/curricula/pkg/curriculum"
	"github.com/matzehuels/curricula/pkg/dag"
	"github.com/matzehuels/curricula/pkg/solver"
)

// Mode selects how much of the search state the propagator uses.
type Mode int

const (
	// ModeStatic tightens every course to its preprocessing bounds.
	ModeStatic Mode = iota

	// ModeCurrentBounds weights the graph with the variables' current
	// bounds: a course cannot start before its earliest prerequisite chain
	// allows given where those prerequisites may still go, and cannot end
	// later than its dependents' latest periods allow.
	ModeCurrentBounds
)

func (m Mode) String() string {
	switch m {
	case ModeStatic:
		return "static"
	case ModeCurrentBounds:
		return "current"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "static" and "current".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "static", "":
		return ModeStatic, nil
	case "current", "current-bounds":
		return ModeCurrentBounds, nil
	default:
		return 0, fmt.Errorf("unknown propagation mode %q", s)
	}
}

// Propagator tightens course-period variables to their precedence bounds.
// vars[i] is the period of course i+1.
type Propagator struct {
	periods int
	matrix  prereqMatrix
	vars    []solver.Var
	mode    Mode
}

var _ solver.Propagator = (*Propagator)(nil)

// NewPropagator creates a propagator over one variable per course. It panics
// if len(vars) differs from the course count.
func NewPropagator(inst *curriculum.Instance, vars []solver.Var, mode Mode) *Propagator {
	if len(vars) != inst.CourseCount() {
		panic(fmt.Sprintf("bounds: %d variables for %d courses", len(vars), inst.CourseCount()))
	}
	return &Propagator{
		periods: inst.Periods,
		matrix:  newPrereqMatrix(inst),
		vars:    vars,
		mode:    mode,
	}
}

// Vars returns the course variables.
func (p *Propagator) Vars() []solver.Var { return p.vars }

// Events wakes the propagator on bound changes and instantiation only.
func (p *Propagator) Events() solver.EventMask {
	return solver.Mask(solver.EventBound, solver.EventInstantiate)
}

// Mode returns the propagation mode.
func (p *Propagator) Mode() Mode { return p.mode }

// PropagateVar recomputes all bounds; a single change can move any course.
func (p *Propagator) PropagateVar(int, solver.Event) error { return p.Propagate() }

// Propagate recomputes the bounds and tightens every variable. It returns a
// *solver.WipeoutError when a domain empties.
func (p *Propagator) Propagate() error {
	if p.mode == ModeStatic {
		_, err := p.apply(p.lowerStatic(), p.upperStatic())
		return err
	}
	// Tightening into a hole can move a bound past the computed value, which
	// feeds back into the graph; iterate until nothing moves.
	for {
		changed, err := p.apply(p.lowerCurrent(), p.upperCurrent())
		if err != nil || !changed {
			return err
		}
	}
}

func (p *Propagator) apply(lb, ub []int) (bool, error) {
	changed := false
	for i, v := range p.vars {
		lo, hi := v.Min(), v.Max()
		if err := v.TightenMin(lb[i]); err != nil {
			return changed, err
		}
		if err := v.TightenMax(ub[i]); err != nil {
			return changed, err
		}
		changed = changed || v.Min() != lo || v.Max() != hi
	}
	return changed, nil
}

func (p *Propagator) lowerStatic() []int {
	g := p.matrix.lowerGraph(func(c int) (int, bool) { return 1, !p.matrix.hasPrereq(c) })
	return lowerFrom(g.LongestPath(root), p.matrix.size())
}

// upperStatic weights root edges with the current lower bound. The root is
// unreachable from any course, so the result equals the static bound.
func (p *Propagator) upperStatic() []int {
	ub := make([]int, p.matrix.size())
	for i := range ub {
		g := p.matrix.lowerGraph(func(c int) (int, bool) {
			return p.vars[c-1].Min() + 1, !p.matrix.hasPrereq(c)
		})
		ub[i] = p.periods - 1 - maxReachable(g.LongestPath(i+1))
	}
	return ub
}

// lowerCurrent joins the root to every course with weight min+1, so the
// distance to a course is one more than the latest of its own minimum and
// every prerequisite chain's end.
func (p *Propagator) lowerCurrent() []int {
	g := p.matrix.lowerGraph(func(c int) (int, bool) { return p.vars[c-1].Min() + 1, true })
	return lowerFrom(g.LongestPath(root), p.matrix.size())
}

// upperCurrent adds a sink after the courses. Edge i→sink weighs
// Periods-1-max(i), so Periods-1 minus the longest path from a course to the
// sink is the smallest max(j) - distance(course, j) over all dependents j,
// the course itself included. Maxima beyond the last period count as the
// last period.
func (p *Propagator) upperCurrent() []int {
	n := p.matrix.size()
	sink := n + 1
	ub := make([]int, n)
	for i := range ub {
		g := p.matrix.graph(1)
		for c := 1; c <= n; c++ {
			g.AddEdge(c, sink, p.periods-1-min(p.vars[c-1].Max(), p.periods-1))
		}
		ub[i] = p.periods - 1 - g.LongestPath(i + 1)[sink]
	}
	return ub
}

func lowerFrom(dist []int, n int) []int {
	lb := make([]int, n)
	for i := range lb {
		if d := dist[i+1]; d != dag.Unreachable {
			lb[i] = d - 1
		}
	}
	return lb
}
