package bounds

import (
	"fmt"

	"github.com/matzehuels/curricula/pkg/curriculum"
	"github.com/matzehuels/curricula/pkg/solver"
)

// Precedence keeps every course strictly after each of its prerequisites:
// for course c requiring r it raises min(c) above min(r) and lowers max(r)
// below max(c). Unlike [Propagator] it reacts to the search state in every
// mode, so a static-mode model still only accepts valid schedules.
type Precedence struct {
	arcs []curriculum.Prerequisite
	vars []solver.Var
}

var _ solver.Propagator = (*Precedence)(nil)

// NewPrecedence creates the pairwise prerequisite constraint over one
// variable per course. It panics if len(vars) differs from the course count.
func NewPrecedence(inst *curriculum.Instance, vars []solver.Var) *Precedence {
	if len(vars) != inst.CourseCount() {
		panic(fmt.Sprintf("bounds: %d variables for %d courses", len(vars), inst.CourseCount()))
	}
	return &Precedence{arcs: inst.Prerequisites, vars: vars}
}

func (p *Precedence) Vars() []solver.Var { return p.vars }

func (p *Precedence) Events() solver.EventMask {
	return solver.Mask(solver.EventBound, solver.EventInstantiate)
}

func (p *Precedence) PropagateVar(int, solver.Event) error { return p.Propagate() }

// Propagate filters every prerequisite pair until no bound moves.
func (p *Precedence) Propagate() error {
	for changed := true; changed; {
		changed = false
		for _, a := range p.arcs {
			before, after := p.vars[a.Requires-1], p.vars[a.Course-1]
			if lo := before.Min() + 1; after.Min() < lo {
				if err := after.TightenMin(lo); err != nil {
					return err
				}
				changed = true
			}
			if hi := after.Max() - 1; before.Max() > hi {
				if err := before.TightenMax(hi); err != nil {
					return err
				}
				changed = true
			}
		}
	}
	return nil
}
