// Package bounds derives period bounds for courses from the prerequisite
// relation and keeps them tight during search.
//
// # Period Bounds
//
// Periods are zero based. A course's lower bound is the length of the longest
// prerequisite chain ending at it: a course whose chain has two courses
// before it cannot be taken before period 2. Its upper bound mirrors that:
// with P periods, a course that still has a chain of k dependents after it
// must be taken by period P-1-k.
//
// Both values come from longest paths in the prerequisite graph (see
// [github.com/matzehuels/curricula/pkg/dag]). Vertex 0 is a root joined to
// every course without prerequisites; vertex i is course i; an edge j→i of
// weight 1 means course i requires course j.
//
//	pre := bounds.NewPreprocessor(inst)
//	for _, b := range pre.Compute() {
//	    fmt.Println(b.Course, b.Lower, b.Upper)
//	}
//
// A bound with Lower > Upper means the chain through that course is longer
// than the number of periods; [Infeasible] lists those courses.
//
// # Propagation
//
// [Propagator] runs the same computation inside a [solver.Solver] and
// tightens each course variable to its bounds, returning a
// [*solver.WipeoutError] when a domain empties. [ModeStatic] reproduces the
// preprocessing bounds. [ModeCurrentBounds] also feeds the variables' current
// bounds back into the graph, so fixing a course early in search pushes its
// dependents later and capping a course pulls its prerequisites earlier.
//
// Every call builds fresh graphs; no state is kept between calls.
//
// [Precedence] orders each prerequisite pair on the variables' bounds. The
// bound propagator only narrows windows, so a model posts both.
package bounds
