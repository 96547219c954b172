// Package solver is a small finite-domain constraint solver: integer
// variables with bitset domains, event-driven propagation to a fixed point,
// and depth-first backtracking search.
//
// # Variables and Propagators
//
// Variables are created with [Solver.NewVar] and only ever shrink. A
// [Propagator] declares the variables it watches and the events it cares
// about ([EventRemove], [EventBound], [EventInstantiate]). The solver calls
// [Propagator.Propagate] once when search starts and [Propagator.PropagateVar]
// whenever one watched variable changes; when several watched variables
// changed since the last call, Propagate is called instead.
//
// Propagators tighten domains through [Var.TightenMin], [Var.TightenMax] and
// [Var.Remove]. Emptying a domain returns a [*WipeoutError]; propagators
// return it unchanged and the solver answers by backtracking. Wipeout is a
// normal control signal, not a failure of the solve.
//
// # Search
//
// [Solver.Solve] and [Solver.SolveAll] branch on one unfixed variable at a
// time (first-fail or input order), trying x = min first and x ≠ min on
// backtrack. Domains are restored from a trail of copy-on-write snapshots, so
// a [Domain] value is never modified after it is created.
//
// Searches stop on context cancellation, [Options.Timeout] or
// [Options.NodeLimit].
//
// # Concurrency
//
// A Solver and its variables belong to one goroutine. Independent solvers may
// run in parallel.
package solver
