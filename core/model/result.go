package model

import "time"

// SolveStatus tags how a schedule was obtained.
type SolveStatus int

const (
	// StatusOptimal means the solver proved optimality within its limits.
	StatusOptimal SolveStatus = iota
	// StatusSuboptimalTimeout means the time limit was hit and the best
	// incumbent found so far is returned. Never presented as optimal.
	StatusSuboptimalTimeout
	// StatusInfeasible means no assignment satisfies the constraints.
	StatusInfeasible
)

// String returns the wire representation of the status tag.
func (s SolveStatus) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusSuboptimalTimeout:
		return "suboptimal-timeout"
	case StatusInfeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// CostReport holds the derived metrics recomputed from a schedule. The same
// computation serves optimized and baseline schedules so comparisons are
// apples to apples.
type CostReport struct {
	EnergyCost  float64 // tariff applied to billed grid energy
	PenaltyCost float64 // overshoot above the subscribed power
	StartupCost float64 // fixed cost per startup event

	GridEnergyKWh  float64 // energy billed after solar offset
	SolarEnergyKWh float64 // drawn energy covered by solar capacity
	PeakDrawKW     float64 // highest simultaneous draw over the horizon

	StartupCounts map[string]int // per pump id
}

// TotalCost returns the full objective value of the report.
func (r CostReport) TotalCost() float64 {
	return r.EnergyCost + r.PenaltyCost + r.StartupCost
}

// TotalStartups sums startup events across all pumps.
func (r CostReport) TotalStartups() int {
	var n int
	for _, c := range r.StartupCounts {
		n += c
	}
	return n
}

// OptimizationResult is created once per solve and never mutated afterwards.
type OptimizationResult struct {
	RunID     string
	Scenario  string
	Status    SolveStatus
	Schedule  *Schedule
	Report    CostReport
	Objective float64 // solver objective, informational only
	SolveTime time.Duration
}
