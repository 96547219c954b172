package solver

// Var is the view of a decision variable that propagators work with.
// Tightening operations never widen a domain; they return a [*WipeoutError]
// when the domain would become empty, leaving it unchanged.
type Var interface {
	ID() int
	Name() string
	Min() int
	Max() int
	Size() int
	Contains(v int) bool
	IsFixed() bool
	// Value returns the assigned value. It is only meaningful when IsFixed.
	Value() int
	TightenMin(v int) error
	TightenMax(v int) error
	Remove(v int) error
}

// IntVar is an integer variable owned by a [Solver].
type IntVar struct {
	s    *Solver
	id   int
	name string
}

var _ Var = (*IntVar)(nil)

func (x *IntVar) ID() int                { return x.id }
func (x *IntVar) Name() string           { return x.name }
func (x *IntVar) Domain() Domain         { return x.s.doms[x.id] }
func (x *IntVar) Min() int               { return x.s.doms[x.id].Min() }
func (x *IntVar) Max() int               { return x.s.doms[x.id].Max() }
func (x *IntVar) Size() int              { return x.s.doms[x.id].Size() }
func (x *IntVar) Contains(v int) bool    { return x.s.doms[x.id].Contains(v) }
func (x *IntVar) IsFixed() bool          { return x.s.doms[x.id].IsFixed() }
func (x *IntVar) Value() int             { return x.s.doms[x.id].Min() }
func (x *IntVar) String() string         { return x.name + " " + x.s.doms[x.id].String() }
func (x *IntVar) TightenMin(v int) error { return x.s.update(x.id, x.s.doms[x.id].RemoveBelow(v)) }
func (x *IntVar) TightenMax(v int) error { return x.s.update(x.id, x.s.doms[x.id].RemoveAbove(v)) }
func (x *IntVar) Remove(v int) error     { return x.s.update(x.id, x.s.doms[x.id].Remove(v)) }

// Fix restricts the variable to v.
func (x *IntVar) Fix(v int) error { return x.s.update(x.id, x.s.doms[x.id].Fix(v)) }
