package schedule

import (
	"github.com/matzehuels/curricula/pkg/bounds"
	"github.com/matzehuels/curricula/pkg/curriculum"
	"github.com/matzehuels/curricula/pkg/load"
	"github.com/matzehuels/curricula/pkg/solver"
)

// model is one solver loaded with the curriculum constraints: a period
// variable per course seeded with its preprocessing bounds, the pairwise
// precedence constraint, the bound propagator and the load propagator.
type model struct {
	s    *solver.Solver
	vars []*solver.IntVar
}

// newModel builds a model whose per-period credit cap is maxLoad, or the
// instance's own cap when maxLoad is zero. A course whose preprocessing
// bounds cross gets an empty domain, so the model fails on its first
// propagation.
func newModel(inst *curriculum.Instance, mode bounds.Mode, maxLoad int, opts solver.Options) *model {
	s := solver.New(opts)
	seed := bounds.NewPreprocessor(inst).Compute()
	vars := make([]*solver.IntVar, inst.CourseCount())
	watched := make([]solver.Var, len(vars))
	for i, c := range inst.Courses {
		vars[i] = s.NewVar(c.Label(), seed[i].Lower, seed[i].Upper)
		watched[i] = vars[i]
	}
	s.Post(bounds.NewPrecedence(inst, watched))
	s.Post(bounds.NewPropagator(inst, watched, mode))
	s.Post(load.NewPropagator(inst, watched, maxLoad))
	return &model{s: s, vars: vars}
}

// rootBounds propagates the model without searching and reports the
// remaining period range of every course.
func (m *model) rootBounds() ([]bounds.Bound, error) {
	if err := m.s.Propagate(); err != nil {
		return nil, err
	}
	out := make([]bounds.Bound, len(m.vars))
	for i, x := range m.vars {
		out[i] = bounds.Bound{Course: i + 1, Lower: x.Min(), Upper: x.Max()}
	}
	return out, nil
}
