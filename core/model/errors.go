package model

import "fmt"

// ValidationError reports malformed or out-of-range input. It is raised before
// model construction and never silently coerced.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// InfeasibleError reports that no schedule can satisfy the constraints,
// identifying the offending slot where known (-1 when the solver could not
// attribute the infeasibility to a single slot).
type InfeasibleError struct {
	Slot      int
	DemandM3  float64
	MaxFlowM3 float64
}

func (e *InfeasibleError) Error() string {
	if e.Slot < 0 {
		return "no feasible schedule exists"
	}
	return fmt.Sprintf("infeasible at slot %d: demand %.1f m3 exceeds max deliverable flow %.1f m3",
		e.Slot, e.DemandM3, e.MaxFlowM3)
}

// ContractError reports a solver assignment outside the expected domain, such
// as a binary variable far from {0,1}. It is fatal for the run.
type ContractError struct {
	Variable string
	Value    float64
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("solver contract violation: variable %s = %v outside [0,1]", e.Variable, e.Value)
}
