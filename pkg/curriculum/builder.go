package curriculum

// Builder assembles an Instance incrementally. Courses receive consecutive
// IDs starting at 1 in the order they are added.
//
//	inst, err := curriculum.NewBuilder("minor", 3).
//	    Course("Intro", 4).
//	    Course("Data Structures", 4).
//	    Require(2, 1).
//	    Build()
type Builder struct {
	inst Instance
}

// NewBuilder starts an instance with the given name and period count.
func NewBuilder(name string, periods int) *Builder {
	return &Builder{inst: Instance{Name: name, Periods: periods}}
}

// Course appends a course with the given name and credits.
func (b *Builder) Course(name string, credits int) *Builder {
	b.inst.Courses = append(b.inst.Courses, Course{
		ID:      len(b.inst.Courses) + 1,
		Name:    name,
		Credits: credits,
	})
	return b
}

// Courses appends n unnamed one-credit courses.
func (b *Builder) Courses(n int) *Builder {
	for range n {
		b.Course("", 1)
	}
	return b
}

// Require records that course must be taken after requires.
func (b *Builder) Require(course, requires int) *Builder {
	b.inst.Prerequisites = append(b.inst.Prerequisites, Prerequisite{Course: course, Requires: requires})
	return b
}

// Chain makes every course in ids require the one before it.
func (b *Builder) Chain(ids ...int) *Builder {
	for i := 1; i < len(ids); i++ {
		b.Require(ids[i], ids[i-1])
	}
	return b
}

// Load sets the per-period credit limits. A zero maximum is unbounded.
func (b *Builder) Load(minLoad, maxLoad int) *Builder {
	b.inst.MinLoad, b.inst.MaxLoad = minLoad, maxLoad
	return b
}

// CourseLimits sets the per-period course count limits. A zero maximum is
// unbounded.
func (b *Builder) CourseLimits(minCourses, maxCourses int) *Builder {
	b.inst.MinCourses, b.inst.MaxCourses = minCourses, maxCourses
	return b
}

// Build normalises and validates the instance.
func (b *Builder) Build() (*Instance, error) {
	inst := b.inst.Clone()
	inst.Normalize()
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// MustBuild is like Build but panics on an invalid instance. It is intended
// for tests and examples.
func (b *Builder) MustBuild() *Instance {
	inst, err := b.Build()
	if err != nil {
		panic(err)
	}
	return inst
}
