package plan

import (
	"github.com/google/uuid"

	"github.com/agriwater/optimizer/core/milp"
	"github.com/agriwater/optimizer/core/model"
)

// binarySlack is the tolerance around {0,1} accepted from generic solvers.
// Values further out than this indicate a broken solver contract.
const binarySlack = 1e-6

// Extractor converts raw variable assignments back into schedules and cost
// reports. All metrics are recomputed from the schedule rather than trusted
// from the solver objective.
type Extractor struct {
	Policy Policy
}

// Extract reads the assignment into a Schedule and derives the result.
// Binary values are snapped at the 0.5 threshold; values outside
// [-binarySlack, 1+binarySlack] fail loudly with a ContractError.
func (e Extractor) Extract(in model.ScenarioInput, m *Model, sol milp.Solution) (model.OptimizationResult, error) {
	ids := make([]string, len(in.Pumps))
	for pi, pump := range in.Pumps {
		ids[pi] = pump.ID
	}
	schedule := model.NewSchedule(ids, in.Horizon)

	for pi := range in.Pumps {
		for t := 0; t < in.Horizon; t++ {
			v := sol.Values[m.X[pi][t]]
			if v < -binarySlack || v > 1+binarySlack {
				return model.OptimizationResult{}, &model.ContractError{
					Variable: m.Problem.Name(m.X[pi][t]),
					Value:    v,
				}
			}
			schedule.Set(pi, t, v >= 0.5)
		}
	}

	status := model.StatusOptimal
	if sol.Status == milp.Suboptimal {
		status = model.StatusSuboptimalTimeout
	}
	return model.OptimizationResult{
		RunID:     uuid.New().String(),
		Scenario:  in.Name,
		Status:    status,
		Schedule:  schedule,
		Report:    ComputeReport(in, e.Policy, schedule),
		Objective: sol.Objective,
	}, nil
}
