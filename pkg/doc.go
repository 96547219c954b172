// Package pkg provides the core libraries for curricula, a precedence
// bound-tightening and scheduling toolkit for course curricula.
//
// # Overview
//
// A curriculum assigns courses to a fixed number of academic periods so that
// every course is taken strictly after its prerequisites and no period carries
// more credits than allowed. The pkg directory is organized into three areas:
//
//  1. Domain logic: [dag], [bounds], [solver], [load]
//  2. Instances and orchestration: [curriculum], [schedule], [render]
//  3. Infrastructure: [cache], [store], [observability], [errors], [buildinfo]
//
// # Architecture
//
// The typical data flow through curricula:
//
//	TOML or JSON instance
//	         ↓
//	    [curriculum] package (parse, validate, build the precedence DAG)
//	         ↓
//	    [bounds] package (earliest and latest feasible period per course)
//	         ↓
//	    [solver] package (branch and propagate over period domains)
//	         ↓
//	    [render] package (DOT, SVG or JSON views)
//
// [schedule] ties these steps together behind a cache and an optional
// result store.
//
// # Quick Start
//
// Compute bounds for an instance and solve it:
//
//	inst, err := curriculum.Load("cs.toml")
//	if err != nil {
//	    return err
//	}
//	runner := schedule.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Solve(ctx, schedule.Options{Instance: inst, Balance: true})
//
// [dag]: https://pkg.go.dev/github.com/matzehuels/curricula/pkg/dag
// [bounds]: https://pkg.go.dev/github.com/matzehuels/curricula/pkg/bounds
// [solver]: https://pkg.go.dev/github.com/matzehuels/curricula/pkg/solver
// [load]: https://pkg.go.dev/github.com/matzehuels/curricula/pkg/load
// [curriculum]: https://pkg.go.dev/github.com/matzehuels/curricula/pkg/curriculum
// [schedule]: https://pkg.go.dev/github.com/matzehuels/curricula/pkg/schedule
// [render]: https://pkg.go.dev/github.com/matzehuels/curricula/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/curricula/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/curricula/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/curricula/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/curricula/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/curricula/pkg/buildinfo
package pkg
