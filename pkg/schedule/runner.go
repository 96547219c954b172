package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/curricula/pkg/bounds"
	"github.com/matzehuels/curricula/pkg/cache"
	"github.com/matzehuels/curricula/pkg/load"
	"github.com/matzehuels/curricula/pkg/observability"
	"github.com/matzehuels/curricula/pkg/render"
	"github.com/matzehuels/curricula/pkg/solver"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; every solve
// builds its own solver. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute solves and then renders every format in opts.Formats.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result, err := r.Solve(ctx, opts)
	if err != nil {
		return nil, err
	}
	if len(opts.Formats) == 0 {
		return result, nil
	}

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit
	return result, nil
}

// =============================================================================
// Bounds
// =============================================================================

// BoundsWithCacheInfo computes the period range of every course and reports
// whether it came from the cache.
//
// In static mode these are the precedence bounds alone, which may be
// infeasible. In current mode they are the root fixed point of the
// precedence and load constraints, and an inconsistency is returned as a
// [solver.WipeoutError].
func (r *Runner) BoundsWithCacheInfo(ctx context.Context, opts Options) ([]bounds.Bound, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	inst := opts.Instance
	key := r.Keyer.BoundsKey(inst.Hash(), opts.BoundsKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var bs []bounds.Bound
			if err := json.Unmarshal(data, &bs); err == nil {
				return bs, true, nil
			}
		}
	}

	hooks := observability.Schedule()
	hooks.OnBoundsStart(ctx, inst.Name, inst.CourseCount())
	start := time.Now()

	var (
		bs  []bounds.Bound
		err error
	)
	if opts.mode == bounds.ModeStatic {
		bs = bounds.NewPreprocessor(inst).Compute()
	} else {
		bs, err = newModel(inst, opts.mode, 0, opts.solverOptions(0)).rootBounds()
	}
	infeasible := len(bounds.Infeasible(bs))
	hooks.OnBoundsComplete(ctx, inst.Name, infeasible, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	r.Logger.Info("computed bounds",
		"courses", inst.CourseCount(),
		"infeasible", infeasible,
		"mode", opts.Mode,
		"duration", time.Since(start))

	if data, err := json.Marshal(bs); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLBounds)
	}
	return bs, false, nil
}

// Bounds is a convenience wrapper that calls BoundsWithCacheInfo and discards the cache hit info.
func (r *Runner) Bounds(ctx context.Context, opts Options) ([]bounds.Bound, error) {
	bs, _, err := r.BoundsWithCacheInfo(ctx, opts)
	return bs, err
}

// =============================================================================
// Solve
// =============================================================================

// Solve finds a period assignment for opts.Instance.
//
// With opts.Balance the search is repeated with a credit cap one below the
// best peak load found so far, until no schedule fits or the peak reaches
// [load.Floor]. The best schedule is returned even when a limit stops a
// later round; Result.Optimal tells the two apart.
//
// Solve returns an error wrapping [solver.ErrNoSolution] when no schedule
// exists at all. When the current-mode root bounds already wipe out, the
// error wraps the [solver.WipeoutError] as well.
func (r *Runner) Solve(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	inst := opts.Instance
	hash := inst.Hash()
	key := r.Keyer.ScheduleKey(hash, opts.ScheduleKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached Result
			if err := json.Unmarshal(data, &cached); err == nil {
				cached.ID = uuid.NewString()
				cached.CreatedAt = time.Now().UTC()
				cached.CacheInfo = CacheInfo{BoundsHit: true, ScheduleHit: true}
				return &cached, nil
			}
		}
	}

	result := &Result{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Instance:     inst,
		InstanceHash: hash,
		Mode:         opts.Mode,
		VarOrder:     opts.VarOrder,
		Balanced:     opts.Balance,
	}

	boundsStart := time.Now()
	bs, hit, err := r.BoundsWithCacheInfo(ctx, opts)
	if solver.IsWipeout(err) {
		return nil, fmt.Errorf("bounds: %w: %w", solver.ErrNoSolution, err)
	}
	if err != nil {
		return nil, fmt.Errorf("bounds: %w", err)
	}
	result.Bounds = bs
	result.Stats.BoundsTime = time.Since(boundsStart)
	result.CacheInfo.BoundsHit = hit

	hooks := observability.Schedule()
	hooks.OnSolveStart(ctx, inst.Name, opts.Mode)
	solveStart := time.Now()
	err = r.search(ctx, opts, result)
	result.Stats.SolveTime = time.Since(solveStart)
	hooks.OnSolveComplete(ctx, inst.Name, result.Stats.Search.Nodes, result.Stats.SolveTime, err)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	r.Logger.Info("solved schedule",
		"courses", inst.CourseCount(),
		"peak_load", result.PeakLoad,
		"rounds", result.Stats.Rounds,
		"nodes", result.Stats.Search.Nodes,
		"duration", result.Stats.SolveTime)

	if data, err := json.Marshal(result); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLSchedule)
	}
	return result, nil
}

// search runs one or more solver rounds and fills the assignment of result.
func (r *Runner) search(ctx context.Context, opts Options, result *Result) error {
	inst := opts.Instance
	deadline := time.Now().Add(opts.Timeout)
	floor := load.Floor(inst)
	maxLoad := 0

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			if result.Assignment != nil {
				return nil
			}
			return solver.ErrLimitReached
		}

		m := newModel(inst, opts.mode, maxLoad, opts.solverOptions(remaining))
		sol, err := m.s.Solve(ctx)
		result.Stats.Rounds++
		result.Stats.Search = addStats(result.Stats.Search, m.s.Stats())

		switch {
		case err == nil:
		case result.Assignment == nil:
			return err
		case errors.Is(err, solver.ErrNoSolution):
			result.Optimal = true
			return nil
		case errors.Is(err, solver.ErrLimitReached):
			opts.Logger.Debug("balancing stopped by limit", "peak_load", result.PeakLoad)
			return nil
		default:
			return err
		}

		result.Assignment = sol.Values
		result.PeriodLoads = load.Loads(inst, sol.Values)
		result.PeakLoad = load.Peak(result.PeriodLoads)

		if !opts.Balance {
			return nil
		}
		if result.PeakLoad <= floor {
			result.Optimal = true
			return nil
		}
		opts.Logger.Debug("balancing", "round", result.Stats.Rounds, "peak_load", result.PeakLoad)
		maxLoad = result.PeakLoad - 1
	}
}

// =============================================================================
// Render
// =============================================================================

// RenderWithCacheInfo renders the formats of opts for a result and reports
// whether every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	if len(opts.Formats) == 0 {
		opts.Formats = []string{render.FormatSVG}
	}
	if err := render.ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	scheduleData, err := json.Marshal(struct {
		Instance   string
		Assignment []int
		Bounds     []bounds.Bound
	}{result.InstanceHash, result.Assignment, result.Bounds})
	if err != nil {
		return nil, false, fmt.Errorf("serialize schedule for cache key: %w", err)
	}
	scheduleHash := cache.Hash(scheduleData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(scheduleHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	hooks := observability.Schedule()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	renderOpts := render.Options{Assignment: result.Assignment}
	if opts.ShowBounds {
		renderOpts.Bounds = result.Bounds
	}
	rendered, err := render.Render(ctx, result.Instance, renderOpts, opts.Formats)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", time.Since(start))

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(scheduleHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, result *Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, result, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
