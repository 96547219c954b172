// Package load constrains how much work each period carries: total credits
// between MinLoad and the credit cap, and the number of courses between
// MinCourses and MaxCourses.
package load

import (
	"fmt"
	"slices"

	"github.com/matzehuels/curricula/pkg/curriculum"
	"github.com/matzehuels/curricula/pkg/solver"
)

// Propagator filters course-period variables against the per-period limits
// of an instance. vars[i] is the period of course i+1.
type Propagator struct {
	periods    int
	credits    []int
	vars       []solver.Var
	minLoad    int
	maxLoad    int // 0 is unbounded
	minCourses int
	maxCourses int // 0 is unbounded
}

var _ solver.Propagator = (*Propagator)(nil)

// NewPropagator creates a load propagator. maxLoad overrides the instance's
// credit cap when positive, which is how the balancing loop lowers the cap.
// It panics if len(vars) differs from the course count.
func NewPropagator(inst *curriculum.Instance, vars []solver.Var, maxLoad int) *Propagator {
	if len(vars) != inst.CourseCount() {
		panic(fmt.Sprintf("load: %d variables for %d courses", len(vars), inst.CourseCount()))
	}
	if maxLoad <= 0 {
		maxLoad = inst.MaxLoad
	}
	credits := make([]int, inst.CourseCount())
	for i, c := range inst.Courses {
		credits[i] = c.Credits
	}
	return &Propagator{
		periods:    inst.Periods,
		credits:    credits,
		vars:       vars,
		minLoad:    inst.MinLoad,
		maxLoad:    maxLoad,
		minCourses: inst.MinCourses,
		maxCourses: inst.MaxCourses,
	}
}

// Vars returns the course variables.
func (p *Propagator) Vars() []solver.Var { return p.vars }

// Events wakes the propagator on every change: removing a period from a
// course lowers that period's optimistic load.
func (p *Propagator) Events() solver.EventMask { return solver.EventAny }

// PropagateVar refilters all periods.
func (p *Propagator) PropagateVar(int, solver.Event) error { return p.Propagate() }

// Propagate removes periods that cannot take a course without exceeding a
// cap, and fails when a period is already over a cap or can no longer reach
// its minimum.
func (p *Propagator) Propagate() error {
	for {
		changed, err := p.filter()
		if err != nil || !changed {
			return err
		}
	}
}

func (p *Propagator) filter() (bool, error) {
	fixedLoad := make([]int, p.periods)
	fixedCount := make([]int, p.periods)
	optLoad := make([]int, p.periods)
	optCount := make([]int, p.periods)
	for i, v := range p.vars {
		if v.IsFixed() {
			if per := v.Value(); per >= 0 && per < p.periods {
				fixedLoad[per] += p.credits[i]
				fixedCount[per]++
			}
			continue
		}
		for per := range p.periods {
			if v.Contains(per) {
				optLoad[per] += p.credits[i]
				optCount[per]++
			}
		}
	}

	for per := range p.periods {
		if p.maxLoad > 0 && fixedLoad[per] > p.maxLoad {
			return false, p.fail(per, "load %d over cap %d", fixedLoad[per], p.maxLoad)
		}
		if p.maxCourses > 0 && fixedCount[per] > p.maxCourses {
			return false, p.fail(per, "%d courses over cap %d", fixedCount[per], p.maxCourses)
		}
		if fixedLoad[per]+optLoad[per] < p.minLoad {
			return false, p.fail(per, "load can reach at most %d, need %d", fixedLoad[per]+optLoad[per], p.minLoad)
		}
		if fixedCount[per]+optCount[per] < p.minCourses {
			return false, p.fail(per, "at most %d courses, need %d", fixedCount[per]+optCount[per], p.minCourses)
		}
	}

	removed := false
	for i, v := range p.vars {
		if v.IsFixed() {
			continue
		}
		for per := range p.periods {
			if !v.Contains(per) {
				continue
			}
			overLoad := p.maxLoad > 0 && fixedLoad[per]+p.credits[i] > p.maxLoad
			overCount := p.maxCourses > 0 && fixedCount[per]+1 > p.maxCourses
			if overLoad || overCount {
				if err := v.Remove(per); err != nil {
					return false, err
				}
				removed = true
			}
		}
	}
	return removed, nil
}

func (p *Propagator) fail(period int, format string, args ...any) error {
	return &solver.WipeoutError{Var: fmt.Sprintf("period %d (%s)", period, fmt.Sprintf(format, args...))}
}

// Loads returns the credit total of every period for an assignment of
// zero-based periods, indexed by course ID - 1.
func Loads(inst *curriculum.Instance, assignment []int) []int {
	loads := make([]int, inst.Periods)
	for i, per := range assignment {
		if per >= 0 && per < inst.Periods {
			loads[per] += inst.Credits(i + 1)
		}
	}
	return loads
}

// Counts returns the number of courses in every period.
func Counts(inst *curriculum.Instance, assignment []int) []int {
	counts := make([]int, inst.Periods)
	for _, per := range assignment {
		if per >= 0 && per < inst.Periods {
			counts[per]++
		}
	}
	return counts
}

// Peak returns the largest period load.
func Peak(loads []int) int {
	if len(loads) == 0 {
		return 0
	}
	return slices.Max(loads)
}

// Floor returns a lower bound on the peak load of any schedule: the average
// load rounded up, or the heaviest single course if that is larger.
func Floor(inst *curriculum.Instance) int {
	heaviest := 0
	for _, c := range inst.Courses {
		heaviest = max(heaviest, c.Credits)
	}
	return max(heaviest, (inst.TotalCredits()+inst.Periods-1)/inst.Periods)
}
