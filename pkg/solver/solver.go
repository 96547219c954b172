package solver

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// Propagator filters variable domains. Implementations must never widen a
// domain and must return wipeout errors from the variables unchanged.
type Propagator interface {
	// Vars returns the watched variables. Indices into this slice are the idx
	// values passed to PropagateVar.
	Vars() []Var

	// Events selects the changes that wake the propagator.
	Events() EventMask

	// Propagate filters all watched variables. It runs once when search
	// starts and whenever several watched variables changed.
	Propagate() error

	// PropagateVar reacts to a change of Vars()[idx].
	PropagateVar(idx int, ev Event) error
}

// VarOrder selects the next variable to branch on.
type VarOrder int

const (
	// FirstFail branches on the unfixed variable with the smallest domain,
	// breaking ties by creation order.
	FirstFail VarOrder = iota

	// InputOrder branches on the first unfixed variable in creation order.
	InputOrder
)

func (o VarOrder) String() string {
	switch o {
	case FirstFail:
		return "first-fail"
	case InputOrder:
		return "input"
	default:
		return fmt.Sprintf("VarOrder(%d)", int(o))
	}
}

// ParseVarOrder accepts "first-fail" (or "ff") and "input".
func ParseVarOrder(s string) (VarOrder, error) {
	switch s {
	case "first-fail", "ff", "":
		return FirstFail, nil
	case "input":
		return InputOrder, nil
	default:
		return 0, fmt.Errorf("unknown variable order %q", s)
	}
}

// Options configures a Solver. The zero value is usable.
type Options struct {
	VarOrder  VarOrder
	NodeLimit int           // 0 means unlimited
	Timeout   time.Duration // 0 means unlimited
	Logger    *log.Logger   // nil discards
}

// Stats describes the last search.
type Stats struct {
	Nodes        int           `json:"nodes"`
	Failures     int           `json:"failures"`
	Propagations int           `json:"propagations"`
	Solutions    int           `json:"solutions"`
	MaxDepth     int           `json:"max_depth"`
	Duration     time.Duration `json:"duration"`
}

// Solution holds one value per variable, indexed by variable ID.
type Solution struct {
	Values []int `json:"values"`
}

// Value returns the value assigned to v.
func (s Solution) Value(v Var) int { return s.Values[v.ID()] }

// multi marks a propagator woken by more than one variable.
const multi = -1

type watch struct {
	prop int
	idx  int
}

// Solver owns variables, propagators and the search state.
type Solver struct {
	opts   Options
	logger *log.Logger

	vars    []*IntVar
	doms    []Domain
	watches [][]watch

	props   []Propagator
	masks   []EventMask
	queue   []int
	queued  []bool
	pendIdx []int
	pendEv  []Event

	trail    [][]Domain
	stats    Stats
	deadline time.Time
}

// New creates an empty solver.
func New(opts Options) *Solver {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Solver{opts: opts, logger: logger}
}

// NewVar creates a variable with domain [lo, hi]. The domain is empty when
// hi < lo, and the model then fails on its first propagation.
func (s *Solver) NewVar(name string, lo, hi int) *IntVar {
	x := &IntVar{s: s, id: len(s.vars), name: name}
	s.vars = append(s.vars, x)
	s.doms = append(s.doms, NewDomain(lo, hi))
	s.watches = append(s.watches, nil)
	return x
}

// Vars returns the solver's variables in creation order.
func (s *Solver) Vars() []*IntVar { return slices.Clone(s.vars) }

// Post registers a propagator. It panics if p watches a variable that does
// not belong to s.
func (s *Solver) Post(p Propagator) {
	id := len(s.props)
	for idx, v := range p.Vars() {
		x, ok := v.(*IntVar)
		if !ok || x.s != s {
			panic(fmt.Sprintf("solver: propagator watches foreign variable %s", v.Name()))
		}
		s.watches[x.id] = append(s.watches[x.id], watch{prop: id, idx: idx})
	}
	s.props = append(s.props, p)
	s.masks = append(s.masks, p.Events())
	s.queued = append(s.queued, false)
	s.pendIdx = append(s.pendIdx, multi)
	s.pendEv = append(s.pendEv, 0)
}

// Stats returns the statistics of the last search.
func (s *Solver) Stats() Stats { return s.stats }

// Propagate runs every propagator to a common fixed point without searching.
// Domain changes persist; a wipeout leaves the domains partially filtered.
// A variable created with crossed bounds fails before any propagator runs.
func (s *Solver) Propagate() error {
	for id, d := range s.doms {
		if d.Empty() {
			return &WipeoutError{Var: s.vars[id].name}
		}
	}
	for p := range s.props {
		s.enqueue(p, multi, 0)
	}
	return s.propagate()
}

// update installs d as the domain of variable id and wakes watchers.
func (s *Solver) update(id int, d Domain) error {
	if d.Empty() {
		return &WipeoutError{Var: s.vars[id].name}
	}
	old := s.doms[id]
	if d.Size() == old.Size() {
		return nil
	}
	s.doms[id] = d

	var ev Event
	if d.Min() != old.Min() || d.Max() != old.Max() {
		ev |= EventBound
	} else {
		ev |= EventRemove
	}
	if d.IsFixed() {
		ev |= EventInstantiate
	}
	for _, w := range s.watches[id] {
		if s.masks[w.prop].Has(ev) {
			s.enqueue(w.prop, w.idx, ev)
		}
	}
	return nil
}

func (s *Solver) enqueue(p, idx int, ev Event) {
	if !s.queued[p] {
		s.queued[p] = true
		s.pendIdx[p] = idx
		s.pendEv[p] = ev
		s.queue = append(s.queue, p)
		return
	}
	if s.pendIdx[p] != idx {
		s.pendIdx[p] = multi
	}
	s.pendEv[p] |= ev
}

// propagate drains the queue. On error the queue is cleared.
func (s *Solver) propagate() error {
	for len(s.queue) > 0 {
		p := s.queue[0]
		s.queue = s.queue[1:]
		s.queued[p] = false
		s.stats.Propagations++

		var err error
		if idx := s.pendIdx[p]; idx == multi {
			err = s.props[p].Propagate()
		} else {
			err = s.props[p].PropagateVar(idx, s.pendEv[p])
		}
		if err != nil {
			for _, q := range s.queue {
				s.queued[q] = false
			}
			s.queue = s.queue[:0]
			return err
		}
	}
	return nil
}

func (s *Solver) push() { s.trail = append(s.trail, slices.Clone(s.doms)) }

func (s *Solver) pop() {
	last := len(s.trail) - 1
	s.doms = s.trail[last]
	s.trail = s.trail[:last]
}
