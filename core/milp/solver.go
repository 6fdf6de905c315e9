package milp

import (
	"context"
	"errors"
)

// Status reports the quality of a returned solution.
type Status int

const (
	// Optimal means the backend proved optimality.
	Optimal Status = iota
	// Suboptimal means the time limit was reached and the best incumbent
	// found so far is returned.
	Suboptimal
)

func (s Status) String() string {
	if s == Suboptimal {
		return "suboptimal"
	}
	return "optimal"
}

// Solution is a complete assignment for all decision variables.
type Solution struct {
	Values    []float64
	Objective float64
	Status    Status
}

// ErrInfeasible is returned when no assignment satisfies the constraints.
var ErrInfeasible = errors.New("milp: problem is infeasible")

// ErrTimeout is returned when the time limit expired before any feasible
// incumbent was found.
var ErrTimeout = errors.New("milp: time limit reached without incumbent")

// ErrUnbounded is returned when the relaxation has no finite optimum, which
// indicates a formulation bug rather than a recoverable condition.
var ErrUnbounded = errors.New("milp: problem is unbounded")

// Solver solves a Problem in a single attempt. Implementations honor the
// context deadline and return the best incumbent tagged Suboptimal rather
// than blocking past it. A failed solve is reported upward, never retried.
type Solver interface {
	Solve(ctx context.Context, p *Problem) (Solution, error)
}
