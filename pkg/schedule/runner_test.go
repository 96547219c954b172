package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/curricula/pkg/bounds"
	"github.com/matzehuels/curricula/pkg/cache"
	"github.com/matzehuels/curricula/pkg/curriculum"
	pkgerrors "github.com/matzehuels/curricula/pkg/errors"
	"github.com/matzehuels/curricula/pkg/observability"
	"github.com/matzehuels/curricula/pkg/render"
	"github.com/matzehuels/curricula/pkg/solver"
)

func chain(k, periods int) *curriculum.Instance {
	ids := make([]int, k)
	for i := range ids {
		ids[i] = i + 1
	}
	return curriculum.NewBuilder("chain", periods).Courses(k).Chain(ids...).MustBuild()
}

// unbalanced has four independent 3-credit courses over two periods. The
// first solution found puts everything in period 0.
func unbalanced() *curriculum.Instance {
	return curriculum.NewBuilder("unbalanced", 2).
		Course("a", 3).Course("b", 3).Course("c", 3).Course("d", 3).
		MustBuild()
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	return NewRunner(c, nil, nil)
}

func TestSolveChain(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	result, err := r.Solve(context.Background(), Options{Instance: chain(3, 3)})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !slices.Equal(result.Assignment, []int{0, 1, 2}) {
		t.Errorf("Assignment = %v, want [0 1 2]", result.Assignment)
	}
	if result.ID == "" || pkgerrors.ValidateID(result.ID) != nil {
		t.Errorf("ID = %q, want a UUID", result.ID)
	}
	if len(result.Bounds) != 3 || result.Bounds[2] != (bounds.Bound{Course: 3, Lower: 2, Upper: 2}) {
		t.Errorf("Bounds = %v", result.Bounds)
	}
	if result.Stats.Rounds != 1 {
		t.Errorf("Rounds = %d, want 1", result.Stats.Rounds)
	}
	if result.Period(2) != 1 || result.Period(9) != -1 {
		t.Errorf("Period(2) = %d, Period(9) = %d", result.Period(2), result.Period(9))
	}
}

func TestSolveWithoutBalance(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	result, err := r.Solve(context.Background(), Options{Instance: unbalanced()})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if result.PeakLoad != 12 || result.Optimal || result.Stats.Rounds != 1 {
		t.Errorf("peak=%d optimal=%t rounds=%d, want 12 false 1",
			result.PeakLoad, result.Optimal, result.Stats.Rounds)
	}
}

func TestSolveBalance(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	result, err := r.Solve(context.Background(), Options{Instance: unbalanced(), Balance: true})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if result.PeakLoad != 6 {
		t.Errorf("PeakLoad = %d, want 6", result.PeakLoad)
	}
	if !slices.Equal(result.PeriodLoads, []int{6, 6}) {
		t.Errorf("PeriodLoads = %v, want [6 6]", result.PeriodLoads)
	}
	if !result.Optimal {
		t.Error("balanced schedule at the load floor should be optimal")
	}
	if result.Stats.Rounds < 2 {
		t.Errorf("Rounds = %d, want several", result.Stats.Rounds)
	}
	if len(result.Courses(0)) != 2 || len(result.Courses(1)) != 2 {
		t.Errorf("courses per period = %v / %v", result.Courses(0), result.Courses(1))
	}
}

func TestSolveBalanceProvesOptimum(t *testing.T) {
	// Credits 5+5+2 over two periods: the floor is 6, but no split beats 7.
	inst := curriculum.NewBuilder("lumpy", 2).Course("a", 5).Course("b", 5).Course("c", 2).MustBuild()
	r := NewRunner(nil, nil, nil)
	result, err := r.Solve(context.Background(), Options{Instance: inst, Balance: true})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if result.PeakLoad != 7 || !result.Optimal {
		t.Errorf("peak=%d optimal=%t, want 7 true", result.PeakLoad, result.Optimal)
	}
}

func TestSolveRespectsPrerequisites(t *testing.T) {
	instances := []*curriculum.Instance{
		// Course 4 requires 2 and 3. The best peak is 5: putting 2 and 3
		// together with 4 would give 4 but breaks both prerequisites.
		curriculum.NewBuilder("join", 3).
			Course("a", 3).Course("b", 2).Course("c", 3).Course("d", 2).
			Require(4, 2).Require(4, 3).
			MustBuild(),
		curriculum.NewBuilder("diamond", 4).
			Course("a", 4).Course("b", 3).Course("c", 3).Course("d", 2).Course("e", 5).
			Require(2, 1).Require(3, 1).Require(4, 2).Require(4, 3).Require(5, 2).
			MustBuild(),
		chain(4, 6),
	}
	wantPeak := map[string]int{"join": 5}

	for _, inst := range instances {
		for _, mode := range []string{"static", "current"} {
			t.Run(inst.Name+"/"+mode, func(t *testing.T) {
				r := NewRunner(nil, nil, nil)
				result, err := r.Solve(context.Background(), Options{Instance: inst, Mode: mode, Balance: true})
				if err != nil {
					t.Fatalf("Solve: %v", err)
				}
				for _, pr := range inst.Prerequisites {
					c, req := result.Assignment[pr.Course-1], result.Assignment[pr.Requires-1]
					if c <= req {
						t.Errorf("course %d (period %d) not after prerequisite %d (period %d)",
							pr.Course, c, pr.Requires, req)
					}
				}
				if want, ok := wantPeak[inst.Name]; ok && (result.PeakLoad != want || !result.Optimal) {
					t.Errorf("peak=%d optimal=%t, want %d true", result.PeakLoad, result.Optimal, want)
				}
			})
		}
	}
}

func TestSolveInfeasible(t *testing.T) {
	for _, mode := range []string{"static", "current"} {
		t.Run(mode, func(t *testing.T) {
			r := NewRunner(nil, nil, nil)
			_, err := r.Solve(context.Background(), Options{Instance: chain(3, 2), Mode: mode})
			if !errors.Is(err, solver.ErrNoSolution) {
				t.Fatalf("Solve error = %v, want %v", err, solver.ErrNoSolution)
			}
			if code := pkgerrors.GetCode(pkgerrors.Classify(err)); code != pkgerrors.ErrCodeInfeasible {
				t.Errorf("classified as %s, want %s", code, pkgerrors.ErrCodeInfeasible)
			}
		})
	}
}

func TestSolveNodeLimit(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Solve(context.Background(), Options{Instance: unbalanced(), NodeLimit: 1})
	if !errors.Is(err, solver.ErrLimitReached) {
		t.Fatalf("Solve error = %v, want ErrLimitReached", err)
	}
}

func TestSolveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(nil, nil, nil)
	_, err := r.Solve(ctx, Options{Instance: unbalanced()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Solve error = %v, want context.Canceled", err)
	}
}

func TestBoundsModes(t *testing.T) {
	// Course 1 fills period 0 on its own, so course 4 cannot go there.
	inst := curriculum.NewBuilder("full", 3).
		Course("a", 5).Course("b", 1).Course("c", 1).Course("d", 1).
		Chain(1, 2, 3).
		Load(0, 5).
		MustBuild()
	r := NewRunner(nil, nil, nil)

	static, err := r.Bounds(context.Background(), Options{Instance: inst, Mode: "static"})
	if err != nil {
		t.Fatalf("Bounds(static): %v", err)
	}
	if got := static[3]; got.Lower != 0 || got.Upper != 2 {
		t.Errorf("static bound of d = %v, want [0,2]", got)
	}

	current, err := r.Bounds(context.Background(), Options{Instance: inst, Mode: "current"})
	if err != nil {
		t.Fatalf("Bounds(current): %v", err)
	}
	if got := current[3]; got.Lower != 1 || got.Upper != 2 {
		t.Errorf("current bound of d = %v, want [1,2]", got)
	}
	for i := range 3 {
		if current[i] != static[i] {
			t.Errorf("course %d: current %v differs from static %v", i+1, current[i], static[i])
		}
	}
}

func TestBoundsCurrentModeWipeout(t *testing.T) {
	inst := curriculum.NewBuilder("crowded", 3).Courses(4).Chain(1, 2, 3).CourseLimits(0, 1).MustBuild()
	r := NewRunner(nil, nil, nil)

	_, err := r.Bounds(context.Background(), Options{Instance: inst})
	if !solver.IsWipeout(err) {
		t.Fatalf("Bounds error = %v, want wipeout", err)
	}

	bs, err := r.Bounds(context.Background(), Options{Instance: inst, Mode: "static"})
	if err != nil {
		t.Fatalf("Bounds(static): %v", err)
	}
	if len(bounds.Infeasible(bs)) != 0 {
		t.Errorf("static bounds should ignore course limits: %v", bs)
	}
}

func TestSolveCache(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Instance: unbalanced(), Balance: true}

	first, err := r.Solve(ctx, opts)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if first.CacheInfo.ScheduleHit || first.CacheInfo.BoundsHit {
		t.Errorf("first solve CacheInfo = %+v, want misses", first.CacheInfo)
	}

	second, err := r.Solve(ctx, opts)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !second.CacheInfo.ScheduleHit {
		t.Error("second solve should hit the cache")
	}
	if second.ID == first.ID {
		t.Error("cached result should get a fresh ID")
	}
	if !slices.Equal(second.Assignment, first.Assignment) || second.PeakLoad != first.PeakLoad {
		t.Errorf("cached schedule %v differs from %v", second.Assignment, first.Assignment)
	}

	opts.Refresh = true
	third, err := r.Solve(ctx, opts)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if third.CacheInfo.ScheduleHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestBoundsCache(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Instance: chain(3, 5), Mode: "static"}

	a, hit, err := r.BoundsWithCacheInfo(ctx, opts)
	if err != nil || hit {
		t.Fatalf("first BoundsWithCacheInfo = %v, %v", hit, err)
	}
	b, hit, err := r.BoundsWithCacheInfo(ctx, opts)
	if err != nil || !hit {
		t.Fatalf("second BoundsWithCacheInfo = %v, %v", hit, err)
	}
	if !slices.Equal(a, b) {
		t.Errorf("cached bounds %v differ from %v", b, a)
	}
	if a[1] != (bounds.Bound{Course: 2, Lower: 1, Upper: 3}) {
		t.Errorf("bound of course 2 = %v, want [1,3]", a[1])
	}
}

func TestExecuteRenders(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{
		Instance:   chain(3, 3),
		Formats:    []string{render.FormatDOT, render.FormatJSON},
		ShowBounds: true,
	}

	result, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Artifacts) != 2 || result.CacheInfo.RenderHit {
		t.Fatalf("artifacts = %d, hit = %t", len(result.Artifacts), result.CacheInfo.RenderHit)
	}
	if !strings.Contains(string(result.Artifacts[render.FormatDOT]), "[2,2]") {
		t.Errorf("dot artifact lacks bounds:\n%s", result.Artifacts[render.FormatDOT])
	}
	var view render.View
	if err := json.Unmarshal(result.Artifacts[render.FormatJSON], &view); err != nil {
		t.Fatalf("json artifact: %v", err)
	}

	_, hit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil || !hit {
		t.Errorf("second render = %v, %v, want cache hit", hit, err)
	}
}

func TestOptionsValidation(t *testing.T) {
	cyclic := &curriculum.Instance{
		Periods:       3,
		Courses:       []curriculum.Course{{ID: 1}, {ID: 2}},
		Prerequisites: []curriculum.Prerequisite{{Course: 1, Requires: 2}, {Course: 2, Requires: 1}},
	}
	tests := []struct {
		name string
		opts Options
		want pkgerrors.Code
	}{
		{"no instance", Options{}, pkgerrors.ErrCodeInvalidInput},
		{"cycle", Options{Instance: cyclic}, pkgerrors.ErrCodeInvalidInstance},
		{"mode", Options{Instance: chain(2, 2), Mode: "eager"}, pkgerrors.ErrCodeInvalidInput},
		{"order", Options{Instance: chain(2, 2), VarOrder: "random"}, pkgerrors.ErrCodeInvalidInput},
		{"node limit", Options{Instance: chain(2, 2), NodeLimit: -1}, pkgerrors.ErrCodeInvalidInput},
		{"format", Options{Instance: chain(2, 2), Formats: []string{"gif"}}, pkgerrors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if got := pkgerrors.GetCode(err); got != tt.want {
				t.Errorf("code = %q (%v), want %q", got, err, tt.want)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Instance: chain(2, 2), Mode: "current-bounds", VarOrder: "ff"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Mode != "current" || opts.VarOrder != "first-fail" {
		t.Errorf("Mode=%q VarOrder=%q, want canonical names", opts.Mode, opts.VarOrder)
	}
	if opts.NodeLimit != DefaultNodeLimit || opts.Timeout != DefaultTimeout || opts.Logger == nil {
		t.Errorf("defaults not applied: %+v", opts)
	}
	if opts.PropagationMode() != bounds.ModeCurrentBounds {
		t.Errorf("PropagationMode = %v", opts.PropagationMode())
	}
}

type recordingHooks struct {
	observability.NoopScheduleHooks
	events []string
}

func (h *recordingHooks) OnBoundsStart(context.Context, string, int) {
	h.events = append(h.events, "bounds")
}

func (h *recordingHooks) OnSolveComplete(context.Context, string, int, time.Duration, error) {
	h.events = append(h.events, "solved")
}

func TestSolveEmitsHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetScheduleHooks(hooks)
	t.Cleanup(observability.Reset)

	r := NewRunner(nil, nil, nil)
	if _, err := r.Solve(context.Background(), Options{Instance: chain(2, 2)}); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !slices.Equal(hooks.events, []string{"bounds", "solved"}) {
		t.Errorf("events = %v", hooks.events)
	}
}

func TestNewRecord(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	result, err := r.Solve(context.Background(), Options{Instance: chain(2, 2)})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	rec := NewRecord(result)
	if rec.ID != result.ID || rec.Name != "chain" || rec.Result != result {
		t.Errorf("record = %+v", rec)
	}
}
