package metrics

import (
	"time"

	"github.com/agriwater/optimizer/core/model"
)

// RunRecord captures one engine run, baseline or optimized, for
// observability sinks.
type RunRecord struct {
	RunID     string
	Scenario  string
	Kind      string // "baseline" or "optimized"
	Status    model.SolveStatus
	SolveTime time.Duration

	TotalCost      float64
	EnergyCost     float64
	PenaltyCost    float64
	StartupCost    float64
	GridEnergyKWh  float64
	SolarEnergyKWh float64
	Startups       int
}

// ComparisonRecord captures the savings delta between a baseline and the
// optimized run over the same inputs.
type ComparisonRecord struct {
	Scenario         string
	BaselineCost     float64
	OptimizedCost    float64
	CostSavings      float64
	CostSavingsPct   float64
	EnergySavingsKWh float64
	PenaltyReduction float64
	Time             time.Time
}

// Sink records engine runs for observability purposes.
type Sink interface {
	RecordRun(rec RunRecord) error
	RecordComparison(rec ComparisonRecord) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(RunRecord) error               { return nil }
func (NopSink) RecordComparison(ComparisonRecord) error { return nil }

// NewRunRecord flattens an optimization result into a record.
func NewRunRecord(kind string, res model.OptimizationResult) RunRecord {
	return RunRecord{
		RunID:          res.RunID,
		Scenario:       res.Scenario,
		Kind:           kind,
		Status:         res.Status,
		SolveTime:      res.SolveTime,
		TotalCost:      res.Report.TotalCost(),
		EnergyCost:     res.Report.EnergyCost,
		PenaltyCost:    res.Report.PenaltyCost,
		StartupCost:    res.Report.StartupCost,
		GridEnergyKWh:  res.Report.GridEnergyKWh,
		SolarEnergyKWh: res.Report.SolarEnergyKWh,
		Startups:       res.Report.TotalStartups(),
	}
}
