package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/curricula/pkg/bounds"
	"github.com/matzehuels/curricula/pkg/schedule"
)

// boundsCommand creates the bounds command.
func (c *CLI) boundsCommand() *cobra.Command {
	var (
		mode    string
		noCache bool
		refresh bool
		asJSON  bool
		explain int
	)

	cmd := &cobra.Command{
		Use:   "bounds [instance]",
		Short: "Compute the earliest and latest period of every course",
		Long: `Compute the earliest and latest period of every course.

In static mode (the default) the bounds follow from the prerequisite chains
alone: a course cannot start before all of its prerequisites are done, and
must leave room for everything that depends on it. Courses whose bounds
cross cannot be scheduled at all and are highlighted.

In current mode the load and course-count limits of the instance are applied
too, and the bounds are tightened until nothing changes. An instance that
cannot be scheduled is reported as an error.

With --explain the prerequisite and dependent chains that force one course's
static bounds are printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if explain != 0 {
				return c.runExplain(args[0], explain, asJSON)
			}
			return c.runBounds(cmd.Context(), args[0], schedule.Options{
				Mode:    mode,
				Refresh: refresh,
			}, noCache, asJSON)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "static", "propagation mode: static, current")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print bounds as JSON")
	cmd.Flags().IntVar(&explain, "explain", 0, "show the chains that bound this course ID")

	return cmd
}

func (c *CLI) runBounds(ctx context.Context, input string, opts schedule.Options, noCache, asJSON bool) error {
	inst, err := loadInstance(input)
	if err != nil {
		return err
	}
	opts.Instance = inst

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	bs, cacheHit, err := runner.BoundsWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("compute bounds: %w", err)
	}
	prog.done(fmt.Sprintf("Computed bounds for %d courses", len(bs)))

	if asJSON {
		return writeJSON(c.Out, bs)
	}

	fmt.Fprintln(c.Out, boundsTable(inst, bs))
	printStats(inst, cacheHit)
	if bad := bounds.Infeasible(bs); len(bad) > 0 {
		printWarning("%d of %d courses fit no period within %d periods", len(bad), len(bs), inst.Periods)
		return nil
	}
	printNewline()
	printNextStep("Schedule", appName+" solve "+input)
	return nil
}

func (c *CLI) runExplain(input string, course int, asJSON bool) error {
	inst, err := loadInstance(input)
	if err != nil {
		return err
	}
	if _, ok := inst.Course(course); !ok {
		return fmt.Errorf("course %d not in %s (courses are 1..%d)", course, inst.Name, inst.CourseCount())
	}

	ex := bounds.NewPreprocessor(inst).Explain(course)
	if asJSON {
		return writeJSON(c.Out, ex)
	}

	label := func(ids []int) string {
		if len(ids) == 0 {
			return "-"
		}
		names := make([]string, len(ids))
		for i, id := range ids {
			cr, _ := inst.Course(id)
			names[i] = cr.Label()
		}
		return strings.Join(names, " → ")
	}
	cr, _ := inst.Course(course)
	fmt.Fprintln(c.Out, StyleTitle.Render(cr.Label()))
	fmt.Fprintf(c.Out, "  Earliest  %s  %s\n", StyleValue.Render(periodLabel(ex.Bound.Lower)), StyleDim.Render(label(ex.Before)))
	fmt.Fprintf(c.Out, "  Latest    %s  %s\n", StyleValue.Render(periodLabel(ex.Bound.Upper)), StyleDim.Render(label(ex.After)))
	if !ex.Bound.Feasible() {
		printWarning("the chain through %s is longer than %d periods", cr.Label(), inst.Periods)
	}
	return nil
}
