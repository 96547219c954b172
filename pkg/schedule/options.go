// Package schedule runs the curriculum pipeline shared by the CLI and the
// HTTP server: precedence bounds, search, and rendering.
//
// # Stages
//
//  1. Bounds: earliest and latest period of every course from the
//     prerequisite graph, optionally tightened by the period load limits
//  2. Solve: a search for a period assignment, optionally minimising the
//     heaviest period load
//  3. Render: DOT, SVG and JSON artifacts of the result
//
// Each stage is cached through a [cache.Cache] keyed by the instance hash and
// the options that change its output.
//
// # Usage
//
//	runner := schedule.NewRunner(c, nil, logger)
//	result, err := runner.Solve(ctx, schedule.Options{
//	    Instance: inst,
//	    Balance:  true,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Assignment, result.PeakLoad)
package schedule

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/curricula/pkg/bounds"
	"github.com/matzehuels/curricula/pkg/cache"
	"github.com/matzehuels/curricula/pkg/curriculum"
	"github.com/matzehuels/curricula/pkg/errors"
	"github.com/matzehuels/curricula/pkg/render"
	"github.com/matzehuels/curricula/pkg/solver"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMode is the propagation mode used during search.
	DefaultMode = "current"

	// DefaultVarOrder is the branching variable order.
	DefaultVarOrder = "first-fail"

	// DefaultNodeLimit bounds the search tree of a single solve.
	DefaultNodeLimit = 1_000_000

	// DefaultTimeout bounds the wall time of a solve, including every
	// balancing round.
	DefaultTimeout = 30 * time.Second
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	Instance *curriculum.Instance `json:"instance"`

	// Search options
	Mode      string        `json:"mode,omitempty"`      // "static" or "current"
	VarOrder  string        `json:"var_order,omitempty"` // "first-fail" or "input"
	Balance   bool          `json:"balance,omitempty"`   // minimise the peak period load
	NodeLimit int           `json:"node_limit,omitempty"`
	Timeout   time.Duration `json:"timeout,omitempty"`
	Refresh   bool          `json:"refresh,omitempty"` // bypass cached results

	// Render options
	Formats    []string `json:"formats,omitempty"`
	ShowBounds bool     `json:"show_bounds,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	mode      bounds.Mode
	order     solver.VarOrder
	validated bool
}

// ValidateAndSetDefaults checks the instance and options and fills in
// defaults. The instance is replaced by a normalised copy. Calling it more
// than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Instance == nil {
		return errors.New(errors.ErrCodeInvalidInput, "instance is required")
	}
	if err := errors.ValidateName(o.Instance.Name); err != nil {
		return err
	}
	inst := o.Instance.Clone()
	inst.Normalize()
	if err := inst.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInstance, err, "invalid instance")
	}
	o.Instance = inst

	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	mode, err := bounds.ParseMode(o.Mode)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid mode")
	}
	o.mode, o.Mode = mode, mode.String()

	if o.VarOrder == "" {
		o.VarOrder = DefaultVarOrder
	}
	order, err := solver.ParseVarOrder(o.VarOrder)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid variable order")
	}
	o.order, o.VarOrder = order, order.String()

	if err := errors.ValidateLimits(o.NodeLimit, o.Timeout); err != nil {
		return err
	}
	if o.NodeLimit == 0 {
		o.NodeLimit = DefaultNodeLimit
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}

	if err := render.ValidateFormats(o.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid format")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// PropagationMode returns the parsed Mode. It is only meaningful after
// ValidateAndSetDefaults.
func (o *Options) PropagationMode() bounds.Mode { return o.mode }

func (o *Options) solverOptions(timeout time.Duration) solver.Options {
	return solver.Options{
		VarOrder:  o.order,
		NodeLimit: o.NodeLimit,
		Timeout:   timeout,
		Logger:    o.Logger,
	}
}

// BoundsKeyOpts returns cache key options for the bounds stage.
func (o *Options) BoundsKeyOpts() cache.BoundsKeyOpts {
	return cache.BoundsKeyOpts{Mode: o.Mode}
}

// ScheduleKeyOpts returns cache key options for the solve stage.
func (o *Options) ScheduleKeyOpts() cache.ScheduleKeyOpts {
	return cache.ScheduleKeyOpts{
		Mode:      o.Mode,
		VarOrder:  o.VarOrder,
		Balance:   o.Balance,
		NodeLimit: o.NodeLimit,
		Timeout:   o.Timeout,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, Bounds: o.ShowBounds}
}

func (o *Options) String() string {
	return fmt.Sprintf("mode=%s order=%s balance=%t", o.Mode, o.VarOrder, o.Balance)
}
