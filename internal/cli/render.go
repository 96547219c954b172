package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/curricula/pkg/render"
	"github.com/matzehuels/curricula/pkg/schedule"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		solve      bool
		noCache    bool
	)
	opts := schedule.Options{Mode: "static"}

	cmd := &cobra.Command{
		Use:   "render [instance]",
		Short: "Render the prerequisite graph of an instance",
		Long: `Render the prerequisite graph of an instance as Graphviz DOT, SVG, or a
JSON view grouped by period.

Without --solve, courses are placed in their earliest period and labelled
with their period bounds; courses that fit no period are drawn in red. With
--solve, the instance is scheduled first and courses are placed in their
assigned period.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := render.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if solve {
				return c.runRenderSchedule(cmd.Context(), args[0], opts, output, noCache)
			}
			return c.runRenderBounds(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.Mode, "mode", opts.Mode, "propagation mode for the bounds: static (default), current")
	cmd.Flags().BoolVar(&solve, "solve", false, "place courses in a solved schedule")
	cmd.Flags().BoolVar(&opts.ShowBounds, "show-bounds", false, "label courses with their bounds (with --solve)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRenderBounds renders the instance with every course in its earliest period.
func (c *CLI) runRenderBounds(ctx context.Context, input string, opts schedule.Options, output string, noCache bool) error {
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

	bs, cacheHit, err := runner.BoundsWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("compute bounds: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, "Rendering prerequisite graph...")
	spinner.Start()
	artifacts, err := render.Render(ctx, inst, render.Options{Bounds: bs}, opts.Formats)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  cacheHit,
	})
}

// runRenderSchedule solves the instance and renders the schedule.
func (c *CLI) runRenderSchedule(ctx context.Context, input string, opts schedule.Options, output string, noCache bool) error {
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

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Scheduling %d courses...", inst.CourseCount()))
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("No schedule")
		return fmt.Errorf("solve: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.RenderHit,
	})
}
