package solver

import (
	"context"
	"errors"
	"time"
)

// Solve returns the first solution found. It returns ErrNoSolution when none
// exists, ErrLimitReached when a limit stopped the search first, and the
// context error on cancellation.
func (s *Solver) Solve(ctx context.Context) (Solution, error) {
	var sol Solution
	found := false
	_, err := s.SolveAll(ctx, func(x Solution) bool {
		sol, found = x, true
		return false
	})
	if found {
		return sol, nil
	}
	if err != nil {
		return Solution{}, err
	}
	return Solution{}, ErrNoSolution
}

// SolveAll calls fn for every solution until fn returns false or the search
// space is exhausted. A complete search returns a nil error, whether or not
// any solution was found. Domains are restored when SolveAll returns.
func (s *Solver) SolveAll(ctx context.Context, fn func(Solution) bool) (Stats, error) {
	start := time.Now()
	s.stats = Stats{}
	s.deadline = time.Time{}
	if s.opts.Timeout > 0 {
		s.deadline = start.Add(s.opts.Timeout)
	}

	s.push()
	defer s.pop()

	var err error
	if perr := s.Propagate(); perr != nil {
		if !IsWipeout(perr) {
			err = perr
		} else {
			s.stats.Failures++
		}
	} else {
		_, err = s.search(ctx, fn, 0)
	}

	s.stats.Duration = time.Since(start)
	s.logger.Debug("search finished",
		"vars", len(s.vars),
		"solutions", s.stats.Solutions,
		"nodes", s.stats.Nodes,
		"failures", s.stats.Failures,
		"propagations", s.stats.Propagations,
		"duration", s.stats.Duration)
	return s.stats, err
}

// search explores the subtree below the current domains. The returned flag
// is true when the search must stop.
func (s *Solver) search(ctx context.Context, fn func(Solution) bool, depth int) (bool, error) {
	if err := s.checkLimits(ctx); err != nil {
		return true, err
	}
	s.stats.Nodes++
	s.stats.MaxDepth = max(s.stats.MaxDepth, depth)

	x := s.choose()
	if x == nil {
		s.stats.Solutions++
		return !fn(s.solution()), nil
	}

	v := x.Min()
	stop, err := s.branch(ctx, fn, depth, func() error { return x.Fix(v) })
	if stop || err != nil {
		return stop, err
	}
	return s.branch(ctx, fn, depth, func() error { return x.Remove(v) })
}

func (s *Solver) branch(ctx context.Context, fn func(Solution) bool, depth int, decide func() error) (bool, error) {
	s.push()
	defer s.pop()

	err := decide()
	if err == nil {
		err = s.propagate()
	}
	if err != nil {
		if errors.Is(err, ErrWipeout) {
			s.stats.Failures++
			return false, nil
		}
		return true, err
	}
	return s.search(ctx, fn, depth+1)
}

func (s *Solver) checkLimits(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.opts.NodeLimit > 0 && s.stats.Nodes >= s.opts.NodeLimit {
		return ErrLimitReached
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		return ErrLimitReached
	}
	return nil
}

func (s *Solver) choose() *IntVar {
	var best *IntVar
	for _, x := range s.vars {
		size := s.doms[x.id].Size()
		if size <= 1 {
			continue
		}
		if s.opts.VarOrder == InputOrder {
			return x
		}
		if best == nil || size < s.doms[best.id].Size() {
			best = x
		}
	}
	return best
}

func (s *Solver) solution() Solution {
	values := make([]int, len(s.doms))
	for i, d := range s.doms {
		values[i] = d.Min()
	}
	return Solution{Values: values}
}
