// Package render draws curricula as prerequisite graphs.
//
// # Overview
//
// Every course becomes a box and every prerequisite an arrow from the
// required course to the course that requires it. Courses are grouped into
// one cluster per period: their assigned period when a schedule is known,
// otherwise their earliest feasible period.
//
//	dot := render.ToDOT(inst, render.Options{Bounds: bs, Assignment: periods})
//	svg, err := render.RenderSVG(dot)
//
// # Formats
//
// [Render] produces several formats at once, keyed by name:
//
//   - dot: Graphviz source from [ToDOT]
//   - svg: the DOT source laid out by Graphviz ([RenderSVG])
//   - json: a period-by-period [View] of the schedule
//
// Graphviz runs as WebAssembly through go-graphviz, so no system
// installation is needed.
package render
