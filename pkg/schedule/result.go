package schedule

import (
	"time"

	"github.com/matzehuels/curricula/pkg/bounds"
	"github.com/matzehuels/curricula/pkg/curriculum"
	"github.com/matzehuels/curricula/pkg/solver"
)

// Result contains the outputs of a solve.
type Result struct {
	// ID identifies this result. It is a fresh UUID for every Solve call,
	// even when the schedule itself came from the cache.
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Instance     *curriculum.Instance `json:"instance"`
	InstanceHash string               `json:"instance_hash"`
	Mode         string               `json:"mode"`
	VarOrder     string               `json:"var_order"`
	Balanced     bool                 `json:"balanced"`

	// Bounds are the period ranges at the root of the search.
	Bounds []bounds.Bound `json:"bounds"`

	// Assignment holds the zero-based period of every course, indexed by
	// course ID - 1.
	Assignment  []int `json:"assignment"`
	PeriodLoads []int `json:"period_loads"`
	PeakLoad    int   `json:"peak_load"`

	// Optimal reports that no schedule has a lower peak load. It is only
	// set by a balancing solve that ran to completion.
	Optimal bool `json:"optimal"`

	Stats     Stats     `json:"stats"`
	CacheInfo CacheInfo `json:"cache"`

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte `json:"-" bson:"-"`
}

// Period returns the zero-based period of a course, or -1 for an unknown
// course ID.
func (r *Result) Period(course int) int {
	if course < 1 || course > len(r.Assignment) {
		return -1
	}
	return r.Assignment[course-1]
}

// Courses returns the IDs of the courses scheduled in period p.
func (r *Result) Courses(p int) []int {
	var ids []int
	for i, per := range r.Assignment {
		if per == p {
			ids = append(ids, i+1)
		}
	}
	return ids
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BoundsTime time.Duration `json:"bounds_time"`
	SolveTime  time.Duration `json:"solve_time"`
	RenderTime time.Duration `json:"render_time"`

	// Rounds is the number of searches run; above one when balancing.
	Rounds int `json:"rounds"`

	// Search sums the solver statistics of every round.
	Search solver.Stats `json:"search"`
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BoundsHit   bool `json:"bounds_hit"`
	ScheduleHit bool `json:"schedule_hit"`
	RenderHit   bool `json:"render_hit"`
}

// Record is the persisted form of a result.
type Record struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	PeakLoad  int       `json:"peak_load" bson:"peak_load"`
	Optimal   bool      `json:"optimal" bson:"optimal"`
	Result    *Result   `json:"result" bson:"result"`
}

// NewRecord wraps a result for storage.
func NewRecord(r *Result) *Record {
	return &Record{
		ID:        r.ID,
		Name:      r.Instance.Name,
		CreatedAt: r.CreatedAt,
		PeakLoad:  r.PeakLoad,
		Optimal:   r.Optimal,
		Result:    r,
	}
}

func addStats(a, b solver.Stats) solver.Stats {
	return solver.Stats{
		Nodes:        a.Nodes + b.Nodes,
		Failures:     a.Failures + b.Failures,
		Propagations: a.Propagations + b.Propagations,
		Solutions:    a.Solutions + b.Solutions,
		MaxDepth:     max(a.MaxDepth, b.MaxDepth),
		Duration:     a.Duration + b.Duration,
	}
}
