package curriculum

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNoPeriods is returned by [Instance.Validate] when Periods < 1.
	ErrNoPeriods = errors.New("instance must have at least one period")

	// ErrNoCourses is returned by [Instance.Validate] for an empty course list.
	ErrNoCourses = errors.New("instance must have at least one course")

	// ErrCourseNumbering is returned when course IDs are not exactly 1..N.
	ErrCourseNumbering = errors.New("course IDs must be numbered 1..N")

	// ErrInvalidCredits is returned for negative credit values.
	ErrInvalidCredits = errors.New("credits must not be negative")

	// ErrUnknownCourse is returned when a prerequisite references a course
	// outside 1..N.
	ErrUnknownCourse = errors.New("unknown course")

	// ErrSelfPrerequisite is returned when a course requires itself.
	ErrSelfPrerequisite = errors.New("course cannot require itself")

	// ErrDuplicatePrerequisite is returned when the same pair appears twice.
	ErrDuplicatePrerequisite = errors.New("duplicate prerequisite")

	// ErrCycle is returned when the prerequisite relation is cyclic.
	ErrCycle = errors.New("prerequisite relation contains a cycle")

	// ErrInvalidLimits is returned when a period limit is negative or its
	// minimum exceeds its maximum.
	ErrInvalidLimits = errors.New("invalid period limits")
)

// Course is a single course. IDs are 1-based.
type Course struct {
	ID      int    `toml:"id" json:"id"`
	Name    string `toml:"name,omitempty" json:"name,omitempty"`
	Credits int    `toml:"credits,omitempty" json:"credits,omitempty"`
}

// Label returns the course name, or "course N" when it has none.
func (c Course) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("course %d", c.ID)
}

// Prerequisite states that Course must be scheduled after Requires.
type Prerequisite struct {
	Course   int `toml:"course" json:"course"`
	Requires int `toml:"requires" json:"requires"`
}

// Instance is a complete curriculum scheduling problem.
//
// The zero value is not valid; build instances with [NewBuilder] or decode
// them with [Decode].
type Instance struct {
	Name          string         `toml:"name,omitempty" json:"name,omitempty"`
	Periods       int            `toml:"periods" json:"periods"`
	MinLoad       int            `toml:"min_load,omitempty" json:"min_load,omitempty"`
	MaxLoad       int            `toml:"max_load,omitempty" json:"max_load,omitempty"`
	MinCourses    int            `toml:"min_courses,omitempty" json:"min_courses,omitempty"`
	MaxCourses    int            `toml:"max_courses,omitempty" json:"max_courses,omitempty"`
	Courses       []Course       `toml:"courses" json:"courses"`
	Prerequisites []Prerequisite `toml:"prerequisites,omitempty" json:"prerequisites,omitempty"`
}

// CourseCount returns N, the number of courses.
func (in *Instance) CourseCount() int { return len(in.Courses) }

// Course returns the course with the given 1-based ID.
func (in *Instance) Course(id int) (Course, bool) {
	if id < 1 || id > len(in.Courses) {
		return Course{}, false
	}
	return in.Courses[id-1], true
}

// Credits returns the credits of course id, or 0 if it does not exist.
func (in *Instance) Credits(id int) int {
	c, _ := in.Course(id)
	return c.Credits
}

// TotalCredits returns the sum of all course credits.
func (in *Instance) TotalCredits() int {
	total := 0
	for _, c := range in.Courses {
		total += c.Credits
	}
	return total
}

// Requires returns the immediate prerequisites of course id, sorted.
func (in *Instance) Requires(id int) []int {
	var out []int
	for _, p := range in.Prerequisites {
		if p.Course == id {
			out = append(out, p.Requires)
		}
	}
	slices.Sort(out)
	return out
}

// Dependents returns the courses that immediately require course id, sorted.
func (in *Instance) Dependents(id int) []int {
	var out []int
	for _, p := range in.Prerequisites {
		if p.Requires == id {
			out = append(out, p.Course)
		}
	}
	slices.Sort(out)
	return out
}

// Clone returns a deep copy of the instance.
func (in *Instance) Clone() *Instance {
	out := *in
	out.Courses = slices.Clone(in.Courses)
	out.Prerequisites = slices.Clone(in.Prerequisites)
	return &out
}

// Normalize sorts courses by ID and prerequisites by (Course, Requires), and
// gives every course without credits a single credit. It makes the instance
// hash independent of input order.
func (in *Instance) Normalize() {
	slices.SortFunc(in.Courses, func(a, b Course) int { return a.ID - b.ID })
	for i := range in.Courses {
		if in.Courses[i].Credits == 0 {
			in.Courses[i].Credits = 1
		}
	}
	slices.SortFunc(in.Prerequisites, func(a, b Prerequisite) int {
		if a.Course != b.Course {
			return a.Course - b.Course
		}
		return a.Requires - b.Requires
	})
}

// Validate checks that the instance is well formed: periods and courses are
// present, courses are numbered 1..N in order, limits are consistent, every
// prerequisite references known courses, and the prerequisite relation is
// acyclic.
func (in *Instance) Validate() error {
	if in.Periods < 1 {
		return ErrNoPeriods
	}
	if len(in.Courses) == 0 {
		return ErrNoCourses
	}
	for i, c := range in.Courses {
		if c.ID != i+1 {
			return fmt.Errorf("%w: position %d has id %d", ErrCourseNumbering, i+1, c.ID)
		}
		if c.Credits < 0 {
			return fmt.Errorf("course %d: %w", c.ID, ErrInvalidCredits)
		}
	}
	if err := in.validateLimits(); err != nil {
		return err
	}

	n := len(in.Courses)
	seen := make(map[Prerequisite]bool, len(in.Prerequisites))
	for _, p := range in.Prerequisites {
		if p.Course < 1 || p.Course > n {
			return fmt.Errorf("%w: %d", ErrUnknownCourse, p.Course)
		}
		if p.Requires < 1 || p.Requires > n {
			return fmt.Errorf("%w: %d (required by course %d)", ErrUnknownCourse, p.Requires, p.Course)
		}
		if p.Course == p.Requires {
			return fmt.Errorf("course %d: %w", p.Course, ErrSelfPrerequisite)
		}
		if seen[p] {
			return fmt.Errorf("%w: course %d requires %d", ErrDuplicatePrerequisite, p.Course, p.Requires)
		}
		seen[p] = true
	}

	if cycle := in.FindCycle(); cycle != nil {
		return fmt.Errorf("%w: %v", ErrCycle, cycle)
	}
	return nil
}

func (in *Instance) validateLimits() error {
	limits := []struct {
		name     string
		min, max int
	}{
		{"load", in.MinLoad, in.MaxLoad},
		{"courses", in.MinCourses, in.MaxCourses},
	}
	for _, l := range limits {
		if l.min < 0 || l.max < 0 {
			return fmt.Errorf("%w: negative %s limit", ErrInvalidLimits, l.name)
		}
		if l.max > 0 && l.min > l.max {
			return fmt.Errorf("%w: min %s %d exceeds max %d", ErrInvalidLimits, l.name, l.min, l.max)
		}
	}
	return nil
}

// FindCycle returns a cycle of course IDs in prerequisite order (each course
// is required by the next), or nil if the relation is acyclic. IDs outside
// 1..N are ignored.
func (in *Instance) FindCycle() []int {
	const (
		white = iota
		gray
		black
	)

	n := len(in.Courses)
	next := make([][]int, n+1) // prerequisite -> dependents
	for _, p := range in.Prerequisites {
		if p.Course >= 1 && p.Course <= n && p.Requires >= 1 && p.Requires <= n {
			next[p.Requires] = append(next[p.Requires], p.Course)
		}
	}

	color := make([]int, n+1)
	parent := make([]int, n+1)

	var dfs func(v int) []int
	dfs = func(v int) []int {
		color[v] = gray
		for _, w := range next[v] {
			switch color[w] {
			case gray:
				cycle := []int{v}
				for cur := v; cur != w; {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				slices.Reverse(cycle)
				return cycle
			case white:
				parent[w] = v
				if c := dfs(w); c != nil {
					return c
				}
			}
		}
		color[v] = black
		return nil
	}

	for v := 1; v <= n; v++ {
		if color[v] == white {
			if c := dfs(v); c != nil {
				return c
			}
		}
	}
	return nil
}
