package milp

import (
	"math"
	"testing"
)

func TestProblemVariables(t *testing.T) {
	p := NewProblem()
	x := p.AddBinary("x", 2.5)
	g := p.AddContinuous("g", 0, math.Inf(1), 75)

	if p.NumVariables() != 2 {
		t.Fatalf("variables = %d, want 2", p.NumVariables())
	}
	if !p.IsBinary(x) || p.IsBinary(g) {
		t.Fatal("binary flags wrong")
	}
	if p.Cost(x) != 2.5 || p.Cost(g) != 75 {
		t.Fatal("cost coefficients wrong")
	}
	if lo, hi := p.Bounds(x); lo != 0 || hi != 1 {
		t.Fatalf("binary bounds = [%v,%v], want [0,1]", lo, hi)
	}
	if p.Name(g) != "g" {
		t.Fatalf("name = %s", p.Name(g))
	}

	p.FixUpper(x, 0)
	if _, hi := p.Bounds(x); hi != 0 {
		t.Fatalf("upper after FixUpper = %v, want 0", hi)
	}
	// FixUpper only ever tightens.
	p.FixUpper(x, 5)
	if _, hi := p.Bounds(x); hi != 0 {
		t.Fatalf("upper loosened to %v", hi)
	}
}

func TestProblemConstraintsAndObjective(t *testing.T) {
	p := NewProblem()
	a := p.AddBinary("a", 1)
	b := p.AddBinary("b", 3)
	p.AddLessEq("cover", []Term{{Var: a, Coeff: -1}, {Var: b, Coeff: -1}}, -1)

	if p.NumConstraints() != 1 {
		t.Fatalf("constraints = %d, want 1", p.NumConstraints())
	}
	con := p.Constraints()[0]
	if con.Label != "cover" || con.RHS != -1 || len(con.Terms) != 2 {
		t.Fatalf("unexpected constraint %+v", con)
	}
	if got := p.Objective([]float64{1, 1}); got != 4 {
		t.Fatalf("objective = %v, want 4", got)
	}
}

func TestProblemBounded(t *testing.T) {
	p := NewProblem()
	p.AddContinuous("g", 0, math.Inf(1), 75)
	if !p.Bounded() {
		t.Fatal("positive-cost variable with finite lower bound is bounded")
	}
	p.AddContinuous("bad", 0, math.Inf(1), -1)
	if p.Bounded() {
		t.Fatal("negative-cost variable with infinite upper bound must be flagged")
	}
}
