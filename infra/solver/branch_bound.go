package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/agriwater/optimizer/core/logger"
	"github.com/agriwater/optimizer/core/milp"
)

const (
	simplexTol = 1e-7
	intTol     = 1e-6
	pruneTol   = 1e-9
)

// BranchAndBound solves MILPs by branching on fractional binaries and solving
// LP relaxations with the gonum simplex. It performs a single solve attempt
// bounded by the configured wall-clock limit; when the limit is hit the best
// incumbent found so far is returned tagged Suboptimal.
type BranchAndBound struct {
	TimeLimit time.Duration
	MaxNodes  int
	Log       logger.Logger
}

// New returns a solver with the given wall-clock limit. A zero limit means
// the solve is only bounded by the caller's context.
func New(timeLimit time.Duration, log logger.Logger) *BranchAndBound {
	return &BranchAndBound{TimeLimit: timeLimit, MaxNodes: 100000, Log: log}
}

type node struct {
	lower []float64
	upper []float64
}

// lpRelax points to the function used to solve LP relaxations. It can be
// overridden in tests to simulate solver failures.
var lpRelax = solveRelaxation

// solveRelaxation solves the LP relaxation of p under the node variable
// bounds and maps the standard-form solution back to the original variables.
func solveRelaxation(p *milp.Problem, lower, upper []float64) ([]float64, float64, error) {
	n := p.NumVariables()
	cons := p.Constraints()

	// Count rows: one per constraint plus one per finite variable bound.
	rows := len(cons)
	for i := 0; i < n; i++ {
		if !math.IsInf(upper[i], 1) {
			rows++
		}
		if !math.IsInf(lower[i], -1) {
			rows++
		}
	}

	c := make([]float64, n)
	for i := 0; i < n; i++ {
		c[i] = p.Cost(i)
	}
	g := mat.NewDense(rows, n, nil)
	h := make([]float64, rows)

	r := 0
	for _, con := range cons {
		for _, term := range con.Terms {
			g.Set(r, term.Var, term.Coeff)
		}
		h[r] = con.RHS
		r++
	}
	for i := 0; i < n; i++ {
		if !math.IsInf(upper[i], 1) {
			g.Set(r, i, 1)
			h[r] = upper[i]
			r++
		}
		if !math.IsInf(lower[i], -1) {
			g.Set(r, i, -1)
			h[r] = -lower[i]
			r++
		}
	}

	cStd, aStd, bStd := lp.Convert(c, g, h, nil, nil)
	_, sol, err := lp.Simplex(cStd, aStd, bStd, simplexTol, nil)
	if err != nil {
		return nil, 0, err
	}

	// Convert splits each free variable into a positive and negative part.
	x := make([]float64, n)
	var obj float64
	for i := 0; i < n; i++ {
		x[i] = sol[i] - sol[n+i]
		if x[i] < lower[i] {
			x[i] = lower[i]
		}
		if x[i] > upper[i] {
			x[i] = upper[i]
		}
		obj += c[i] * x[i]
	}
	return x, obj, nil
}

// Solve implements milp.Solver.
func (s *BranchAndBound) Solve(ctx context.Context, p *milp.Problem) (milp.Solution, error) {
	if p.NumVariables() == 0 {
		return milp.Solution{Status: milp.Optimal}, nil
	}
	if !p.Bounded() {
		return milp.Solution{}, milp.ErrUnbounded
	}

	deadline := time.Time{}
	if s.TimeLimit > 0 {
		deadline = time.Now().Add(s.TimeLimit)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	maxNodes := s.MaxNodes
	if maxNodes <= 0 {
		maxNodes = 100000
	}

	root := node{lower: make([]float64, p.NumVariables()), upper: make([]float64, p.NumVariables())}
	for i := 0; i < p.NumVariables(); i++ {
		root.lower[i], root.upper[i] = p.Bounds(i)
	}

	var (
		best     []float64
		bestObj  = math.Inf(1)
		stack    = []node{root}
		explored int
		hitLimit bool
	)

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			hitLimit = true
			break
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			hitLimit = true
			break
		}
		if explored >= maxNodes {
			hitLimit = true
			break
		}

		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		explored++

		x, obj, err := lpRelax(p, nd.lower, nd.upper)
		switch {
		case err == nil:
		case errors.Is(err, lp.ErrInfeasible):
			continue
		case errors.Is(err, lp.ErrUnbounded):
			return milp.Solution{}, milp.ErrUnbounded
		default:
			return milp.Solution{}, fmt.Errorf("lp relaxation: %w", err)
		}

		if obj >= bestObj-pruneTol {
			continue
		}

		branch := fractionalBinary(p, x)
		if branch < 0 {
			// Integral on all binaries: new incumbent.
			cand := snapBinaries(p, x)
			candObj := p.Objective(cand)
			if candObj < bestObj {
				best = cand
				bestObj = candObj
				if s.Log != nil {
					s.Log.Debugf("incumbent objective=%.4f after %d nodes", bestObj, explored)
				}
			}
			continue
		}

		// Explore the rounded value first: it is popped last-in.
		zero, one := fixVar(nd, branch, 0), fixVar(nd, branch, 1)
		if x[branch] >= 0.5 {
			stack = append(stack, zero, one)
		} else {
			stack = append(stack, one, zero)
		}
	}

	if hitLimit {
		if best == nil {
			return milp.Solution{}, milp.ErrTimeout
		}
		if s.Log != nil {
			s.Log.Warnf("time limit reached after %d nodes, returning incumbent objective=%.4f", explored, bestObj)
		}
		return milp.Solution{Values: best, Objective: bestObj, Status: milp.Suboptimal}, nil
	}
	if best == nil {
		return milp.Solution{}, milp.ErrInfeasible
	}
	return milp.Solution{Values: best, Objective: bestObj, Status: milp.Optimal}, nil
}

// fractionalBinary returns the index of the most fractional binary variable,
// or -1 when all binaries are integral within tolerance.
func fractionalBinary(p *milp.Problem, x []float64) int {
	bestIdx := -1
	bestFrac := intTol
	for i := range x {
		if !p.IsBinary(i) {
			continue
		}
		frac := math.Abs(x[i] - math.Round(x[i]))
		if frac > bestFrac {
			bestFrac = frac
			bestIdx = i
		}
	}
	return bestIdx
}

// snapBinaries rounds near-integral binaries to exact {0,1} values.
func snapBinaries(p *milp.Problem, x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	for i := range out {
		if p.IsBinary(i) {
			out[i] = math.Round(out[i])
		}
	}
	return out
}

func fixVar(nd node, i int, value float64) node {
	child := node{
		lower: make([]float64, len(nd.lower)),
		upper: make([]float64, len(nd.upper)),
	}
	copy(child.lower, nd.lower)
	copy(child.upper, nd.upper)
	child.lower[i] = value
	child.upper[i] = value
	return child
}
