package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/curricula/pkg/bounds"
	"github.com/matzehuels/curricula/pkg/curriculum"
)

// Options configures graph rendering. Both fields are optional and indexed
// by course ID - 1.
type Options struct {
	// Bounds adds "[lb,ub]" to every label and marks infeasible courses.
	Bounds []bounds.Bound

	// Assignment places every course in its scheduled period. Without it
	// courses are grouped by lower bound, or all in the first period when no
	// bounds are given either.
	Assignment []int
}

// period returns the cluster course i (0-based) is drawn in.
func (o Options) period(i int) int {
	switch {
	case i < len(o.Assignment):
		return o.Assignment[i]
	case i < len(o.Bounds):
		return max(o.Bounds[i].Lower, 0)
	default:
		return 0
	}
}

// ToDOT converts an instance to Graphviz DOT source. Periods are laid out
// left to right, one cluster each.
func ToDOT(inst *curriculum.Instance, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  newrank=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.3;\n")

	members := make([][]int, inst.Periods)
	for i := range inst.Courses {
		p := min(opts.period(i), inst.Periods-1)
		members[p] = append(members[p], i)
	}

	for p, courses := range members {
		if len(courses) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", p)
		fmt.Fprintf(&buf, "    label=%q;\n", fmt.Sprintf("Period %d", p+1))
		buf.WriteString("    style=\"rounded,dashed\";\n")
		buf.WriteString("    rank=same;\n")
		for _, i := range courses {
			c := inst.Courses[i]
			fmt.Fprintf(&buf, "    %q [%s];\n", nodeID(c.ID), strings.Join(fmtAttrs(c, i, opts), ", "))
		}
		buf.WriteString("  }\n")
	}

	if len(inst.Prerequisites) > 0 {
		buf.WriteString("\n")
	}
	for _, pr := range inst.Prerequisites {
		fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(pr.Requires), nodeID(pr.Course))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(course int) string { return fmt.Sprintf("c%d", course) }

func fmtLabel(c curriculum.Course, i int, opts Options) string {
	label := fmt.Sprintf("%s (%d)", c.Label(), c.Credits)
	if i < len(opts.Bounds) {
		label += " " + opts.Bounds[i].String()
	}
	return label
}

func fmtAttrs(c curriculum.Course, i int, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(c, i, opts))}
	if i < len(opts.Bounds) && !opts.Bounds[i].Feasible() {
		attrs = append(attrs, "fillcolor=mistyrose", "color=firebrick")
	}
	return attrs
}
