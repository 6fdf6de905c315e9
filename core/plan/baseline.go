package plan

import (
	"github.com/google/uuid"

	"github.com/agriwater/optimizer/core/model"
)

// BaselineSchedule builds the naive reference schedule: at every slot pumps
// are switched on in catalog order until the demand is covered, ignoring
// tariff, solar timing and the power ceiling. The subscription may be
// exceeded, which is the point of the comparison.
func BaselineSchedule(in model.ScenarioInput) (*model.Schedule, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ids := make([]string, len(in.Pumps))
	for pi, pump := range in.Pumps {
		ids[pi] = pump.ID
	}
	schedule := model.NewSchedule(ids, in.Horizon)

	for t := 0; t < in.Horizon; t++ {
		remaining := in.Demand[t]
		for pi, pump := range in.Pumps {
			if remaining <= 0 {
				break
			}
			schedule.Set(pi, t, true)
			remaining -= pump.FlowM3h
		}
		if remaining > 0 {
			return nil, &model.InfeasibleError{
				Slot:      t,
				DemandM3:  in.Demand[t],
				MaxFlowM3: in.MaxFlowM3h(),
			}
		}
	}
	return schedule, nil
}

// Baseline produces the non-optimized reference result, run through the same
// metric computation as the optimized schedule.
func Baseline(in model.ScenarioInput, pol Policy) (model.OptimizationResult, error) {
	schedule, err := BaselineSchedule(in)
	if err != nil {
		return model.OptimizationResult{}, err
	}
	return model.OptimizationResult{
		RunID:    uuid.New().String(),
		Scenario: in.Name,
		Status:   model.StatusOptimal,
		Schedule: schedule,
		Report:   ComputeReport(in, pol, schedule),
	}, nil
}
