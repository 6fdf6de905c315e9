package milp

import "math"

// Term is one coefficient of a linear expression.
type Term struct {
	Var   int
	Coeff float64
}

// Constraint is a linear inequality sum(Terms) <= RHS. The label identifies
// the constraint in logs and infeasibility reports.
type Constraint struct {
	Label string
	Terms []Term
	RHS   float64
}

// Problem is a minimization MILP over bounded variables with <= constraints.
// Variables are added in a deterministic order so a solution vector can be
// mapped back by index.
type Problem struct {
	cost   []float64
	lower  []float64
	upper  []float64
	binary []bool
	names  []string
	cons   []Constraint
}

// NewProblem returns an empty problem.
func NewProblem() *Problem { return &Problem{} }

// AddBinary adds a {0,1} variable and returns its index.
func (p *Problem) AddBinary(name string, cost float64) int {
	return p.addVar(name, 0, 1, cost, true)
}

// AddContinuous adds a bounded continuous variable and returns its index.
// Use math.Inf(1) for an unbounded upper limit.
func (p *Problem) AddContinuous(name string, lower, upper, cost float64) int {
	return p.addVar(name, lower, upper, cost, false)
}

func (p *Problem) addVar(name string, lower, upper, cost float64, binary bool) int {
	p.names = append(p.names, name)
	p.lower = append(p.lower, lower)
	p.upper = append(p.upper, upper)
	p.cost = append(p.cost, cost)
	p.binary = append(p.binary, binary)
	return len(p.names) - 1
}

// AddLessEq appends the constraint sum(terms) <= rhs.
func (p *Problem) AddLessEq(label string, terms []Term, rhs float64) {
	p.cons = append(p.cons, Constraint{Label: label, Terms: terms, RHS: rhs})
}

// FixUpper tightens the upper bound of a variable. Used for hard exclusions.
func (p *Problem) FixUpper(i int, upper float64) {
	if upper < p.upper[i] {
		p.upper[i] = upper
	}
}

// NumVariables returns the number of decision variables.
func (p *Problem) NumVariables() int { return len(p.cost) }

// NumConstraints returns the number of inequality rows.
func (p *Problem) NumConstraints() int { return len(p.cons) }

// Cost returns the objective coefficient of variable i.
func (p *Problem) Cost(i int) float64 { return p.cost[i] }

// Bounds returns the lower and upper bound of variable i.
func (p *Problem) Bounds(i int) (lower, upper float64) { return p.lower[i], p.upper[i] }

// IsBinary reports whether variable i is restricted to {0,1}.
func (p *Problem) IsBinary(i int) bool { return p.binary[i] }

// Name returns the label of variable i.
func (p *Problem) Name(i int) string { return p.names[i] }

// Constraints returns the inequality rows. The slice must not be mutated.
func (p *Problem) Constraints() []Constraint { return p.cons }

// Objective evaluates the cost vector at x.
func (p *Problem) Objective(x []float64) float64 {
	var obj float64
	for i, c := range p.cost {
		obj += c * x[i]
	}
	return obj
}

// Bounded reports whether every variable with nonzero cost has a finite
// bound in the cost-decreasing direction, a cheap sanity check used by
// solver backends to detect unbounded formulations early.
func (p *Problem) Bounded() bool {
	for i, c := range p.cost {
		if c < 0 && math.IsInf(p.upper[i], 1) {
			return false
		}
		if c > 0 && math.IsInf(p.lower[i], -1) {
			return false
		}
	}
	return true
}
