package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/curricula/pkg/schedule"
)

// solveFlags holds the flags of the solve command that do not map onto
// schedule.Options.
type solveFlags struct {
	formats     string
	output      string
	noCache     bool
	save        bool
	interactive bool
	asJSON      bool
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var flags solveFlags
	opts := schedule.Options{
		Mode:      schedule.DefaultMode,
		VarOrder:  schedule.DefaultVarOrder,
		NodeLimit: schedule.DefaultNodeLimit,
		Timeout:   schedule.DefaultTimeout,
	}

	cmd := &cobra.Command{
		Use:   "solve [instance]",
		Short: "Assign every course to a period",
		Long: `Assign every course to a period so that prerequisites come first and the
load and course-count limits of the instance hold.

With --balance the peak credit load is minimised: after each schedule the
search is repeated with a tighter load cap until no better schedule exists,
the load cannot go lower, or a limit is hit. The best schedule found is
printed either way.

Results are cached locally for faster subsequent runs. With --store the
schedule is also saved and can be listed with 'schedules list'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.formats != "" {
				opts.Formats = parseFormats(flags.formats)
			}
			return c.runSolve(cmd.Context(), args[0], opts, flags)
		},
	}

	// Search flags
	cmd.Flags().StringVar(&opts.Mode, "mode", opts.Mode, "propagation mode: current (default), static")
	cmd.Flags().StringVar(&opts.VarOrder, "order", opts.VarOrder, "variable order: first-fail (default), input")
	cmd.Flags().BoolVar(&opts.Balance, "balance", false, "minimise the peak credit load")
	cmd.Flags().IntVar(&opts.NodeLimit, "node-limit", opts.NodeLimit, "maximum search nodes")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout, "maximum search time")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	// Output flags
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "also render: dot, svg, json (comma-separated)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.ShowBounds, "show-bounds", false, "label rendered courses with their bounds")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "browse the schedule period by period")
	cmd.Flags().BoolVar(&flags.save, "store", false, "save the schedule")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runSolve loads the instance, solves it and presents the schedule.
func (c *CLI) runSolve(ctx context.Context, input string, opts schedule.Options, flags solveFlags) error {
	inst, err := loadInstance(input)
	if err != nil {
		return err
	}
	opts.Instance = inst

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	msg := fmt.Sprintf("Scheduling %d courses...", inst.CourseCount())
	if opts.Balance {
		msg = fmt.Sprintf("Balancing %d courses...", inst.CourseCount())
	}
	spinner := newSpinnerWithContext(ctx, msg)
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("No schedule")
		return fmt.Errorf("solve: %w", err)
	}
	spinner.Stop()
	c.Logger.Debug("search finished",
		"nodes", result.Stats.Search.Nodes,
		"failures", result.Stats.Search.Failures,
		"rounds", result.Stats.Rounds,
		"duration", result.Stats.SolveTime.Round(time.Millisecond))

	if flags.save {
		if err := c.saveResult(ctx, result); err != nil {
			return err
		}
	}

	switch {
	case flags.asJSON:
		if err := writeJSON(c.Out, result); err != nil {
			return err
		}
	case flags.interactive:
		if _, err := tea.NewProgram(NewPeriodBrowserModel(result), tea.WithContext(ctx)).Run(); err != nil {
			return fmt.Errorf("interactive view: %w", err)
		}
	default:
		printSuccess("Scheduled %s", inst.Name)
		printSchedule(result)
		printStats(inst, result.CacheInfo.ScheduleHit)
	}

	if len(result.Artifacts) > 0 {
		return writeArtifacts(artifactWriteParams{
			artifacts: result.Artifacts,
			formats:   opts.Formats,
			input:     input,
			output:    flags.output,
			cacheHit:  result.CacheInfo.RenderHit,
		})
	}
	return nil
}

func (c *CLI) saveResult(ctx context.Context, result *schedule.Result) error {
	s, err := newFileStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Save(ctx, schedule.NewRecord(result)); err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	c.Logger.Info("saved schedule", "id", result.ID, "store", describeStore(s))
	return nil
}
