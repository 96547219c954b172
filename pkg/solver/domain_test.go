package solver

import (
	"slices"
	"testing"
)

func TestNewDomain(t *testing.T) {
	tests := []struct {
		name     string
		lo, hi   int
		wantSize int
		wantStr  string
	}{
		{"single", 3, 3, 1, "{3}"},
		{"interval", 0, 4, 5, "[0..4]"},
		{"empty", 5, 2, 0, "{}"},
		{"wide", 60, 130, 71, "[60..130]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDomain(tt.lo, tt.hi)
			if d.Size() != tt.wantSize {
				t.Errorf("Size() = %d, want %d", d.Size(), tt.wantSize)
			}
			if got := d.String(); got != tt.wantStr {
				t.Errorf("String() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewDomainNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewDomain(-1, 3) did not panic")
		}
	}()
	NewDomain(-1, 3)
}

func TestDomainRemoveBelowAbove(t *testing.T) {
	d := NewDomain(0, 130)

	below := d.RemoveBelow(65)
	if below.Min() != 65 || below.Max() != 130 || below.Size() != 66 {
		t.Errorf("RemoveBelow(65) = %v", below)
	}
	above := d.RemoveAbove(63)
	if above.Min() != 0 || above.Max() != 63 || above.Size() != 64 {
		t.Errorf("RemoveAbove(63) = %v", above)
	}
	if !d.RemoveBelow(131).Empty() {
		t.Error("RemoveBelow past max should empty the domain")
	}
	if !d.RemoveAbove(-1).Empty() {
		t.Error("RemoveAbove below min should empty the domain")
	}
	if d.Size() != 131 {
		t.Errorf("receiver modified: Size() = %d", d.Size())
	}
}

func TestDomainRemove(t *testing.T) {
	d := NewDomain(0, 4).Remove(2).Remove(0)
	if got, want := d.Values(), []int{1, 3, 4}; !slices.Equal(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}
	if d.Min() != 1 {
		t.Errorf("Min() = %d, want 1", d.Min())
	}
	if got := d.String(); got != "{1,3,4}" {
		t.Errorf("String() = %q", got)
	}
	if d.Remove(9).Size() != 3 {
		t.Error("removing an absent value changed the domain")
	}
}

func TestDomainFix(t *testing.T) {
	d := NewDomain(2, 6)
	if f := d.Fix(4); !f.IsFixed() || f.Min() != 4 {
		t.Errorf("Fix(4) = %v", f)
	}
	if !d.Fix(7).Empty() {
		t.Error("Fix outside the domain should be empty")
	}
}

func TestDomainEqual(t *testing.T) {
	a := NewDomain(0, 70).RemoveAbove(5)
	b := NewDomain(0, 5)
	if !a.Equal(b) {
		t.Errorf("%v not equal to %v", a, b)
	}
	if a.Equal(b.Remove(3)) {
		t.Error("domains with different values compare equal")
	}
	if !(Domain{}).Equal(NewDomain(3, 1)) {
		t.Error("empty domains should be equal")
	}
}

func TestDomainEmptyBounds(t *testing.T) {
	var d Domain
	if d.Min() != -1 || d.Max() != -1 || d.Contains(0) {
		t.Errorf("empty domain: min=%d max=%d", d.Min(), d.Max())
	}
}
