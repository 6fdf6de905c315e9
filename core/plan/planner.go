package plan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agriwater/optimizer/core/logger"
	"github.com/agriwater/optimizer/core/metrics"
	"github.com/agriwater/optimizer/core/milp"
	"github.com/agriwater/optimizer/core/model"
)

// hoursPerMonth scales horizon savings to a monthly projection.
const hoursPerMonth = 720

// Planner runs the full pipeline: build the MILP, hand it to the solver,
// extract the schedule and pair it with the baseline. One Optimize call is a
// pure function of its input; planners are safe for concurrent use.
type Planner struct {
	solver milp.Solver
	policy Policy
	log    logger.Logger
	sink   metrics.Sink
}

// NewPlanner wires a planner. The solver is mandatory; a nil sink records
// nothing and a nil logger is silenced.
func NewPlanner(solver milp.Solver, pol Policy, log logger.Logger, sink metrics.Sink) (*Planner, error) {
	if solver == nil {
		return nil, fmt.Errorf("plan: nil solver provided to NewPlanner")
	}
	pol.SetDefaults()
	if err := pol.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = nopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Planner{solver: solver, policy: pol, log: log, sink: sink}, nil
}

// Policy returns the active scheduling policy.
func (p *Planner) Policy() Policy { return p.policy }

// Optimize runs one solve over the input. On infeasibility the returned
// result carries StatusInfeasible alongside the error so callers can still
// report the status tag.
func (p *Planner) Optimize(ctx context.Context, in model.ScenarioInput) (model.OptimizationResult, error) {
	start := time.Now()

	builder := Builder{Policy: p.policy}
	m, err := builder.Build(in)
	if err != nil {
		var infeasible *model.InfeasibleError
		if errors.As(err, &infeasible) {
			p.log.Warnf("scenario %s infeasible before solve: %v", in.Name, err)
			return model.OptimizationResult{Scenario: in.Name, Status: model.StatusInfeasible}, err
		}
		return model.OptimizationResult{}, err
	}
	p.log.Debugf("scenario %s: %d variables, %d constraints",
		in.Name, m.Problem.NumVariables(), m.Problem.NumConstraints())

	sol, err := p.solver.Solve(ctx, m.Problem)
	if err != nil {
		if errors.Is(err, milp.ErrInfeasible) {
			res := model.OptimizationResult{Scenario: in.Name, Status: model.StatusInfeasible}
			return res, &model.InfeasibleError{Slot: -1}
		}
		return model.OptimizationResult{}, fmt.Errorf("solve scenario %s: %w", in.Name, err)
	}

	res, err := Extractor{Policy: p.policy}.Extract(in, m, sol)
	if err != nil {
		return model.OptimizationResult{}, err
	}
	res.SolveTime = time.Since(start)

	p.log.Infof("scenario %s solved status=%s cost=%.2f grid=%.1fkWh solar=%.1fkWh in %s",
		in.Name, res.Status, res.Report.TotalCost(), res.Report.GridEnergyKWh,
		res.Report.SolarEnergyKWh, res.SolveTime)
	if err := p.sink.RecordRun(metrics.NewRunRecord("optimized", res)); err != nil {
		p.log.Errorf("record run: %v", err)
	}
	return res, nil
}

// Comparison pairs a baseline with the optimized result over identical
// inputs and quantifies the savings.
type Comparison struct {
	Scenario  string
	Baseline  model.OptimizationResult
	Optimized model.OptimizationResult

	CostSavings      float64
	CostSavingsPct   float64
	EnergySavingsKWh float64
	EnergySavingsPct float64
	PenaltyReduction float64

	// Projections scale the horizon savings to 720-hour months.
	MonthlyProjection float64
	AnnualProjection  float64
}

// Compare runs the baseline comparator and the optimizer over the same input
// and derives the savings report.
func (p *Planner) Compare(ctx context.Context, in model.ScenarioInput) (Comparison, error) {
	baseline, err := Baseline(in, p.policy)
	if err != nil {
		return Comparison{}, err
	}
	if err := p.sink.RecordRun(metrics.NewRunRecord("baseline", baseline)); err != nil {
		p.log.Errorf("record baseline run: %v", err)
	}

	optimized, err := p.Optimize(ctx, in)
	if err != nil {
		return Comparison{}, err
	}

	cmp := newComparison(in, baseline, optimized)
	p.log.Infof("scenario %s savings=%.2f (%.1f%%) penalty reduction=%.2f",
		in.Name, cmp.CostSavings, cmp.CostSavingsPct, cmp.PenaltyReduction)
	if err := p.sink.RecordComparison(metrics.ComparisonRecord{
		Scenario:         in.Name,
		BaselineCost:     baseline.Report.TotalCost(),
		OptimizedCost:    optimized.Report.TotalCost(),
		CostSavings:      cmp.CostSavings,
		CostSavingsPct:   cmp.CostSavingsPct,
		EnergySavingsKWh: cmp.EnergySavingsKWh,
		PenaltyReduction: cmp.PenaltyReduction,
		Time:             time.Now(),
	}); err != nil {
		p.log.Errorf("record comparison: %v", err)
	}
	return cmp, nil
}

func newComparison(in model.ScenarioInput, baseline, optimized model.OptimizationResult) Comparison {
	cmp := Comparison{
		Scenario:         in.Name,
		Baseline:         baseline,
		Optimized:        optimized,
		CostSavings:      baseline.Report.TotalCost() - optimized.Report.TotalCost(),
		EnergySavingsKWh: baseline.Report.GridEnergyKWh - optimized.Report.GridEnergyKWh,
		PenaltyReduction: baseline.Report.PenaltyCost - optimized.Report.PenaltyCost,
	}
	if baseline.Report.TotalCost() > 0 {
		cmp.CostSavingsPct = cmp.CostSavings / baseline.Report.TotalCost() * 100
	}
	if baseline.Report.GridEnergyKWh > 0 {
		cmp.EnergySavingsPct = cmp.EnergySavingsKWh / baseline.Report.GridEnergyKWh * 100
	}
	if in.Horizon > 0 {
		cmp.MonthlyProjection = cmp.CostSavings / float64(in.Horizon) * hoursPerMonth
		cmp.AnnualProjection = cmp.MonthlyProjection * 12
	}
	return cmp
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
