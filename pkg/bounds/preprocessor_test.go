package bounds

import (
	"reflect"
	"slices"
	"testing"

	"github.com/matzehuels/curricula/pkg/curriculum"
)

func chain(k, periods int) *curriculum.Instance {
	ids := make([]int, k)
	for i := range ids {
		ids[i] = i + 1
	}
	return curriculum.NewBuilder("chain", periods).Courses(k).Chain(ids...).MustBuild()
}

func TestLowerBoundsChain(t *testing.T) {
	for k := 1; k <= 7; k++ {
		got := NewPreprocessor(chain(k, k)).LowerBounds()
		for i, lb := range got {
			if lb != i {
				t.Errorf("k=%d: LowerBounds()[%d] = %d, want %d", k, i, lb, i)
			}
		}
	}
}

func TestUpperBoundsChainHasNoSlack(t *testing.T) {
	for k := 1; k <= 7; k++ {
		for _, b := range NewPreprocessor(chain(k, k)).Compute() {
			if b.Lower != b.Course-1 || b.Upper != b.Course-1 {
				t.Errorf("k=%d: course %d = %v, want [%d,%d]", k, b.Course, b, b.Course-1, b.Course-1)
			}
			if b.Slack() != 0 {
				t.Errorf("k=%d: course %d slack = %d, want 0", k, b.Course, b.Slack())
			}
		}
	}
}

func TestIsolatedCourseFullSlack(t *testing.T) {
	inst := curriculum.NewBuilder("mixed", 6).Courses(4).Chain(1, 2, 3).MustBuild()
	got := NewPreprocessor(inst).Compute()[3]
	want := Bound{Course: 4, Lower: 0, Upper: 5}
	if got != want {
		t.Errorf("Compute()[3] = %+v, want %+v", got, want)
	}
}

func TestComputeThreeChain(t *testing.T) {
	tests := []struct {
		periods int
		want    []Bound
	}{
		{3, []Bound{{1, 0, 0}, {2, 1, 1}, {3, 2, 2}}},
		{5, []Bound{{1, 0, 2}, {2, 1, 3}, {3, 2, 4}}},
	}
	for _, tt := range tests {
		got := NewPreprocessor(chain(3, tt.periods)).Compute()
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("P=%d: Compute() = %v, want %v", tt.periods, got, tt.want)
		}
	}
}

func TestComputeDiamond(t *testing.T) {
	// 1 → {2, 3} → 4, plus 2 → 5.
	inst := curriculum.NewBuilder("diamond", 4).Courses(5).
		Require(2, 1).Require(3, 1).Require(4, 2).Require(4, 3).Require(5, 2).
		MustBuild()
	want := []Bound{{1, 0, 1}, {2, 1, 2}, {3, 1, 2}, {4, 2, 3}, {5, 2, 3}}
	if got := NewPreprocessor(inst).Compute(); !reflect.DeepEqual(got, want) {
		t.Errorf("Compute() = %v, want %v", got, want)
	}
}

func TestComputeUnevenChains(t *testing.T) {
	// 4 requires both 3 (end of 1→2→3) and 5 (a lone course).
	inst := curriculum.NewBuilder("uneven", 5).Courses(5).
		Chain(1, 2, 3, 4).Require(4, 5).
		MustBuild()
	got := NewPreprocessor(inst).Compute()
	if got[3].Lower != 3 {
		t.Errorf("course 4 lower = %d, want 3", got[3].Lower)
	}
	if got[4] != (Bound{5, 0, 3}) {
		t.Errorf("course 5 = %v, want [0,3]", got[4])
	}
}

func TestInfeasibleChain(t *testing.T) {
	bs := NewPreprocessor(chain(4, 3)).Compute()
	bad := Infeasible(bs)
	if len(bad) == 0 {
		t.Fatalf("Infeasible(%v) is empty", bs)
	}
	for _, b := range bad {
		if b.Feasible() || b.Lower <= b.Upper {
			t.Errorf("%+v reported as infeasible", b)
		}
	}
	if Infeasible(NewPreprocessor(chain(3, 3)).Compute()) != nil {
		t.Error("feasible chain reported infeasible")
	}
}

func TestExplain(t *testing.T) {
	inst := curriculum.NewBuilder("uneven", 6).Courses(6).
		Chain(1, 2, 3, 4).Require(3, 5).Require(6, 2).
		MustBuild()
	pre := NewPreprocessor(inst)

	got := pre.Explain(2)
	if !slices.Equal(got.Before, []int{1, 2}) {
		t.Errorf("Before = %v, want [1 2]", got.Before)
	}
	if !slices.Equal(got.After, []int{2, 3, 4}) {
		t.Errorf("After = %v, want [2 3 4]", got.After)
	}
	if want := pre.Compute()[1]; got.Bound != want {
		t.Errorf("Bound = %v, want %v", got.Bound, want)
	}
	if got.Bound != (Bound{2, 1, 3}) {
		t.Errorf("Bound = %v, want [1,3]", got.Bound)
	}

	leaf := pre.Explain(4)
	if !slices.Equal(leaf.After, []int{4}) || len(leaf.Before) != 4 {
		t.Errorf("Explain(4) = %+v", leaf)
	}
}

func TestExplainOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Explain(0) did not panic")
		}
	}()
	NewPreprocessor(chain(2, 2)).Explain(0)
}

func TestBoundString(t *testing.T) {
	if got := (Bound{Course: 1, Lower: 2, Upper: 4}).String(); got != "[2,4]" {
		t.Errorf("String() = %q", got)
	}
}
