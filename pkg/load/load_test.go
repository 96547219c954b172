package load

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/matzehuels/curricula/pkg/curriculum"
	"github.com/matzehuels/curricula/pkg/solver"
)

func newModel(inst *curriculum.Instance, maxLoad int) (*solver.Solver, []*solver.IntVar, *Propagator) {
	s := solver.New(solver.Options{})
	vars := make([]*solver.IntVar, inst.CourseCount())
	views := make([]solver.Var, len(vars))
	for i := range vars {
		vars[i] = s.NewVar(inst.Courses[i].Label(), 0, inst.Periods-1)
		views[i] = vars[i]
	}
	p := NewPropagator(inst, views, maxLoad)
	s.Post(p)
	return s, vars, p
}

func TestRemovesOverloadedPeriods(t *testing.T) {
	inst := curriculum.NewBuilder("cap", 2).
		Course("a", 4).Course("b", 3).Course("c", 2).
		Load(0, 6).
		MustBuild()
	_, vars, p := newModel(inst, 0)

	if err := vars[0].Fix(0); err != nil {
		t.Fatal(err)
	}
	if err := p.Propagate(); err != nil {
		t.Fatalf("Propagate() error = %v", err)
	}
	// b (3 credits) no longer fits next to a in period 0; c (2) still does.
	if vars[1].Contains(0) {
		t.Errorf("b = %v, want period 0 removed", vars[1])
	}
	if !vars[2].Contains(0) {
		t.Errorf("c = %v, want period 0 kept", vars[2])
	}
}

func TestCascadeWipeout(t *testing.T) {
	inst := curriculum.NewBuilder("cascade", 2).
		Course("a", 4).Course("b", 2).Course("c", 4).
		Load(0, 5).
		MustBuild()
	_, vars, p := newModel(inst, 0)

	if err := vars[0].Fix(0); err != nil {
		t.Fatal(err)
	}
	// b and c are both pushed to period 1, which then carries 6 credits.
	if err := p.Propagate(); !solver.IsWipeout(err) {
		t.Errorf("Propagate() error = %v, want wipeout", err)
	}
}

func TestCourseCountCap(t *testing.T) {
	inst := curriculum.NewBuilder("count", 2).Courses(3).CourseLimits(0, 1).MustBuild()
	_, vars, p := newModel(inst, 0)

	if err := vars[0].Fix(0); err != nil {
		t.Fatal(err)
	}
	if err := vars[1].Fix(1); err != nil {
		t.Fatal(err)
	}
	if err := p.Propagate(); !errors.Is(err, solver.ErrWipeout) {
		t.Errorf("Propagate() error = %v, want wipeout", err)
	}
}

func TestMinimumLoadUnreachable(t *testing.T) {
	inst := curriculum.NewBuilder("min", 2).Course("a", 2).Course("b", 2).Load(5, 0).MustBuild()
	_, _, p := newModel(inst, 0)

	if err := p.Propagate(); !solver.IsWipeout(err) {
		t.Errorf("Propagate() error = %v, want wipeout", err)
	}
}

func TestOverrideCap(t *testing.T) {
	inst := curriculum.NewBuilder("override", 2).Course("a", 3).Course("b", 3).Load(0, 10).MustBuild()
	s, vars, _ := newModel(inst, 5)

	sol, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if sol.Value(vars[0]) == sol.Value(vars[1]) {
		t.Errorf("both courses in period %d despite cap 5", sol.Value(vars[0]))
	}
}

func TestLoadsAndCounts(t *testing.T) {
	inst := curriculum.NewBuilder("loads", 3).
		Course("a", 4).Course("b", 3).Course("c", 2).
		MustBuild()
	assignment := []int{0, 2, 0}

	if got, want := Loads(inst, assignment), []int{6, 0, 3}; !slices.Equal(got, want) {
		t.Errorf("Loads() = %v, want %v", got, want)
	}
	if got, want := Counts(inst, assignment), []int{2, 0, 1}; !slices.Equal(got, want) {
		t.Errorf("Counts() = %v, want %v", got, want)
	}
	if got := Peak(Loads(inst, assignment)); got != 6 {
		t.Errorf("Peak() = %d, want 6", got)
	}
}

func TestFloor(t *testing.T) {
	tests := []struct {
		name string
		inst *curriculum.Instance
		want int
	}{
		{"average", curriculum.NewBuilder("avg", 2).Course("a", 3).Course("b", 3).Course("c", 1).MustBuild(), 4},
		{"heaviest", curriculum.NewBuilder("heavy", 3).Course("a", 9).Course("b", 1).MustBuild(), 9},
	}
	for _, tt := range tests {
		if got := Floor(tt.inst); got != tt.want {
			t.Errorf("%s: Floor() = %d, want %d", tt.name, got, tt.want)
		}
	}
}
