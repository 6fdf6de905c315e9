package plan

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/agriwater/optimizer/core/milp"
	"github.com/agriwater/optimizer/core/model"
	"github.com/agriwater/optimizer/infra/solver"
)

// fakeSolver returns a canned solution or error without solving anything.
type fakeSolver struct {
	err    error
	status milp.Status
}

func (f fakeSolver) Solve(_ context.Context, p *milp.Problem) (milp.Solution, error) {
	if f.err != nil {
		return milp.Solution{}, f.err
	}
	return milp.Solution{Values: make([]float64, p.NumVariables()), Status: f.status}, nil
}

func TestNewPlannerRequiresSolver(t *testing.T) {
	if _, err := NewPlanner(nil, DefaultPolicy(), nil, nil); err == nil {
		t.Fatal("expected error for nil solver")
	}
}

func TestOptimizeMapsSolverInfeasibility(t *testing.T) {
	p, err := NewPlanner(fakeSolver{err: milp.ErrInfeasible}, DefaultPolicy(), nil, nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	in := singlePumpInput(4)
	res, err := p.Optimize(context.Background(), in)
	var infeasible *model.InfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("expected InfeasibleError, got %v", err)
	}
	if infeasible.Slot != -1 {
		t.Fatalf("slot = %d, want -1 for unattributed infeasibility", infeasible.Slot)
	}
	if res.Status != model.StatusInfeasible {
		t.Fatalf("status = %v, want infeasible", res.Status)
	}
}

func TestOptimizePropagatesSolverFailure(t *testing.T) {
	boom := errors.New("backend crashed")
	p, err := NewPlanner(fakeSolver{err: boom}, DefaultPolicy(), nil, nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	_, err = p.Optimize(context.Background(), singlePumpInput(4))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
}

func TestOptimizeReportsInfeasibleInput(t *testing.T) {
	p, err := NewPlanner(fakeSolver{}, DefaultPolicy(), nil, nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	in := singlePumpInput(4)
	in.Demand[2] = 500
	res, err := p.Optimize(context.Background(), in)
	var infeasible *model.InfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("expected InfeasibleError, got %v", err)
	}
	if infeasible.Slot != 2 {
		t.Fatalf("slot = %d, want 2", infeasible.Slot)
	}
	if res.Status != model.StatusInfeasible {
		t.Fatalf("status = %v", res.Status)
	}
}

func TestOptimizeZeroDemandShutsEverythingOff(t *testing.T) {
	p, err := NewPlanner(solver.New(10*time.Second, nil), DefaultPolicy(), nil, nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	in := threePumpInput(24) // demand all zero

	res, err := p.Optimize(context.Background(), in)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	for pi := range in.Pumps {
		if res.Schedule.ActiveSlots(pi) != 0 {
			t.Fatalf("pump %d active with zero demand", pi)
		}
	}
	if got := res.Report.TotalCost(); got != 0 {
		t.Fatalf("total cost = %v, want 0", got)
	}
	if res.Status != model.StatusOptimal {
		t.Fatalf("status = %v", res.Status)
	}
}

func TestOptimizeEveningIrrigation(t *testing.T) {
	// Single 100 m3/h, 10 kW pump; demand concentrated in the evening
	// slots. The pump must run exactly there, under the ceiling, with a
	// single startup.
	in := model.ScenarioInput{
		Name:              "evening",
		Horizon:           24,
		Pumps:             []model.Pump{{ID: "P1", FlowM3h: 100, PowerKW: 10, MaxStartsPerDay: 4, StartupCost: 100}},
		Tariff:            make([]float64, 24),
		Demand:            make([]float64, 24),
		Solar:             make([]float64, 24),
		SubscribedPowerKW: 15,
		PenaltyRateKW:     200,
	}
	for t2 := 0; t2 < 24; t2++ {
		if t2 >= 7 && t2 < 23 {
			in.Tariff[t2] = 110
		} else {
			in.Tariff[t2] = 75
		}
	}
	for t2 := 20; t2 < 24; t2++ {
		in.Demand[t2] = 100
	}

	p, err := NewPlanner(solver.New(10*time.Second, nil), DefaultPolicy(), nil, nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	res, err := p.Optimize(context.Background(), in)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	for t2 := 0; t2 < 24; t2++ {
		want := t2 >= 20
		if res.Schedule.On(0, t2) != want {
			t.Fatalf("slot %d: on = %v, want %v", t2, res.Schedule.On(0, t2), want)
		}
	}
	if res.Report.StartupCounts["P1"] != 1 {
		t.Fatalf("startups = %d, want 1", res.Report.StartupCounts["P1"])
	}
	if res.Report.PenaltyCost != 0 {
		t.Fatalf("penalty = %v, want 0 under the ceiling", res.Report.PenaltyCost)
	}
	if res.Report.PeakDrawKW != 10 {
		t.Fatalf("peak draw = %v, want 10", res.Report.PeakDrawKW)
	}
}

func TestOptimizeStartBudgetInfeasible(t *testing.T) {
	// Demand on both sides of a hard exclusion window with a single
	// startup allowed: the pump cannot stay on through the window, so no
	// schedule exists. The pre-check cannot see this; the solver reports it.
	pol := DefaultPolicy()
	pol.ExclusionWindows = []SlotRange{{From: 3, To: 5}}
	pol.HardExclusion = true

	in := singlePumpInput(8)
	in.Pumps[0].MaxStartsPerDay = 1
	in.Demand[2] = 50
	in.Demand[5] = 50

	p, err := NewPlanner(solver.New(10*time.Second, nil), pol, nil, nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	res, err := p.Optimize(context.Background(), in)
	var infeasible *model.InfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("expected InfeasibleError, got %v", err)
	}
	if infeasible.Slot != -1 {
		t.Fatalf("slot = %d, want -1", infeasible.Slot)
	}
	if res.Status != model.StatusInfeasible {
		t.Fatalf("status = %v", res.Status)
	}
}

func TestCompareNeverWorseThanBaseline(t *testing.T) {
	// The catalog order starts with the power-hungry pump; the optimizer
	// is free to pick the efficient one instead.
	in := model.ScenarioInput{
		Name:    "compare",
		Horizon: 24,
		Pumps: []model.Pump{
			{ID: "BIG", FlowM3h: 60, PowerKW: 45, MaxStartsPerDay: 8},
			{ID: "ECO", FlowM3h: 50, PowerKW: 12, MaxStartsPerDay: 8},
		},
		Tariff:            flatSeries(24, 100),
		Demand:            make([]float64, 24),
		Solar:             make([]float64, 24),
		SubscribedPowerKW: 500,
		PenaltyRateKW:     200,
	}
	for t2 := 6; t2 < 10; t2++ {
		in.Demand[t2] = 50
	}

	p, err := NewPlanner(solver.New(10*time.Second, nil), DefaultPolicy(), nil, nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	cmp, err := p.Compare(context.Background(), in)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if cmp.Optimized.Report.TotalCost() > cmp.Baseline.Report.TotalCost() {
		t.Fatalf("optimized cost %v above baseline %v",
			cmp.Optimized.Report.TotalCost(), cmp.Baseline.Report.TotalCost())
	}
	if cmp.CostSavings <= 0 {
		t.Fatalf("expected strictly positive savings, got %v", cmp.CostSavings)
	}
	wantMonthly := cmp.CostSavings / float64(in.Horizon) * 720
	if math.Abs(cmp.MonthlyProjection-wantMonthly) > 1e-9 {
		t.Fatalf("monthly projection = %v, want %v", cmp.MonthlyProjection, wantMonthly)
	}
	if math.Abs(cmp.AnnualProjection-12*wantMonthly) > 1e-9 {
		t.Fatalf("annual projection = %v", cmp.AnnualProjection)
	}
}
