// Package dag provides a small weighted directed graph with a longest-path
// solver, used to derive period bounds from a prerequisite relation.
//
// # Overview
//
// A curriculum is a directed acyclic graph: course j points to course i when
// i requires j. The earliest period a course can take is the length of the
// longest prerequisite chain ending at it; the latest is bounded by the
// longest chain of courses that still have to follow it. Both are longest
// path problems on a DAG, which this package solves in a single
// topological-order sweep.
//
// # Basic Usage
//
// Create a graph with [New], add weighted edges with [Graph.AddEdge], then
// ask for distances from a source with [Graph.LongestPath]:
//
//	g := dag.New(4)
//	g.AddEdge(0, 1, 1)
//	g.AddEdge(1, 2, 1)
//	g.AddEdge(0, 3, 1)
//	dist := g.LongestPath(0)
//	// dist = [0 1 2 1]
//
// Vertices that no path from the source reaches keep the [Unreachable]
// sentinel, so they are always distinguishable from distance-0 vertices.
//
// # Representation
//
// Edges live in a V×V weight matrix; only one edge per ordered pair is
// representable and adding an edge again overwrites its weight. A weight of
// zero is a legal edge. Successor lists are kept next to the matrix so the
// relaxation sweep touches each edge once.
//
// # Algorithm
//
// [Graph.LongestPath] runs a depth-first search over every vertex, pushing
// each one onto a fixed-capacity [Stack] after all of its successors. Popping
// the stack yields a topological order; relaxing outgoing edges in that order
// finalises every vertex only after all of its predecessors, which makes the
// single pass exact for non-negative weights. Time is O(V + E).
//
// # Cycles
//
// The graph must be acyclic. The search still terminates on a cyclic graph
// (each vertex is visited once), but the distances it returns are
// meaningless. Callers guarantee acyclicity; see the curriculum package for
// the validation done at load time.
//
// # Concurrency
//
// A Graph is not safe for concurrent use. Graphs are cheap to build and are
// meant to be created per computation and discarded.
package dag
