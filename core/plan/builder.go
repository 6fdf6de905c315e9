package plan

import (
	"fmt"
	"math"

	"github.com/agriwater/optimizer/core/milp"
	"github.com/agriwater/optimizer/core/model"
)

// activationEpsilon is a tiny per-slot cost on pump activity so that slots
// whose draw is fully covered by solar still prefer switching off when the
// demand allows it.
const activationEpsilon = 1e-6

// Model is the assembled MILP plus the variable index maps needed to read a
// solution back into a schedule.
type Model struct {
	Problem *milp.Problem

	// X[p][t] is the on/off variable of pump p at slot t.
	X [][]int
	// Start[p][t] indicates an off-to-on transition of pump p at slot t.
	Start [][]int
	// Overshoot[t] is the continuous power drawn above the subscription.
	Overshoot []int
	// Grid[t] is the continuous billed grid power after solar offset.
	Grid []int
}

// Builder deterministically constructs the scheduling MILP from validated
// inputs. The same input and policy always produce the same problem.
type Builder struct {
	Policy Policy
}

// Build assembles the problem. Demand that exceeds the combined flow of the
// available pumps at any slot is rejected up front with the offending slot
// rather than left for the solver to report.
func (b Builder) Build(in model.ScenarioInput) (*Model, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := b.Policy.Validate(); err != nil {
		return nil, err
	}
	if err := b.checkDeliverable(in); err != nil {
		return nil, err
	}

	p := milp.NewProblem()
	m := &Model{
		Problem:   p,
		X:         make([][]int, len(in.Pumps)),
		Start:     make([][]int, len(in.Pumps)),
		Overshoot: make([]int, in.Horizon),
		Grid:      make([]int, in.Horizon),
	}

	hardExcluded := func(t int) bool { return b.Policy.HardExclusion && b.Policy.Excluded(t) }

	for pi, pump := range in.Pumps {
		m.X[pi] = make([]int, in.Horizon)
		m.Start[pi] = make([]int, in.Horizon)
		for t := 0; t < in.Horizon; t++ {
			m.X[pi][t] = p.AddBinary(fmt.Sprintf("x_%s_%d", pump.ID, t), activationEpsilon*pump.PowerKW)
			if hardExcluded(t) {
				p.FixUpper(m.X[pi][t], 0)
			}
		}
		for t := 0; t < in.Horizon; t++ {
			m.Start[pi][t] = p.AddBinary(fmt.Sprintf("start_%s_%d", pump.ID, t), pump.StartupCost)
		}
	}
	for t := 0; t < in.Horizon; t++ {
		m.Overshoot[t] = p.AddContinuous(fmt.Sprintf("overshoot_%d", t), 0, math.Inf(1), in.PenaltyRateKW)
	}
	for t := 0; t < in.Horizon; t++ {
		tariff := in.Tariff[t]
		if !b.Policy.HardExclusion && b.Policy.Excluded(t) {
			tariff *= b.Policy.SoftExclusionFactor
		}
		m.Grid[t] = p.AddContinuous(fmt.Sprintf("grid_%d", t), 0, math.Inf(1), tariff)
	}

	b.addFlowConstraints(in, m)
	b.addPowerConstraints(in, m)
	b.addStartupConstraints(in, m)

	return m, nil
}

// checkDeliverable surfaces unmeetable demand deterministically before any
// solver call.
func (b Builder) checkDeliverable(in model.ScenarioInput) error {
	for t := 0; t < in.Horizon; t++ {
		if in.Demand[t] == 0 {
			continue
		}
		var available float64
		if !b.Policy.HardExclusion || !b.Policy.Excluded(t) {
			available = in.MaxFlowM3h()
		}
		if in.Demand[t] > available {
			return &model.InfeasibleError{Slot: t, DemandM3: in.Demand[t], MaxFlowM3: available}
		}
	}
	return nil
}

// addFlowConstraints enforces demand satisfaction at every slot.
func (b Builder) addFlowConstraints(in model.ScenarioInput, m *Model) {
	for t := 0; t < in.Horizon; t++ {
		terms := make([]milp.Term, len(in.Pumps))
		for pi, pump := range in.Pumps {
			terms[pi] = milp.Term{Var: m.X[pi][t], Coeff: -pump.FlowM3h}
		}
		m.Problem.AddLessEq(fmt.Sprintf("demand_%d", t), terms, -in.Demand[t])
	}
}

// addPowerConstraints links total draw to the overshoot and billed grid
// variables. Grid power covers draw beyond the available solar capacity.
func (b Builder) addPowerConstraints(in model.ScenarioInput, m *Model) {
	for t := 0; t < in.Horizon; t++ {
		ceiling := make([]milp.Term, 0, len(in.Pumps)+1)
		grid := make([]milp.Term, 0, len(in.Pumps)+1)
		for pi, pump := range in.Pumps {
			ceiling = append(ceiling, milp.Term{Var: m.X[pi][t], Coeff: pump.PowerKW})
			grid = append(grid, milp.Term{Var: m.X[pi][t], Coeff: pump.PowerKW})
		}
		ceiling = append(ceiling, milp.Term{Var: m.Overshoot[t], Coeff: -1})
		m.Problem.AddLessEq(fmt.Sprintf("ceiling_%d", t), ceiling, in.SubscribedPowerKW)

		grid = append(grid, milp.Term{Var: m.Grid[t], Coeff: -1})
		m.Problem.AddLessEq(fmt.Sprintf("solar_offset_%d", t), grid, in.Solar[t])
	}
}

// addStartupConstraints links start indicators to activity transitions and
// caps startups per budget block. The linkage resets at every day boundary
// when the policy asks for it, so a pump running across midnight is charged
// a fresh startup on the new day.
func (b Builder) addStartupConstraints(in model.ScenarioInput, m *Model) {
	for pi, pump := range in.Pumps {
		for t := 0; t < in.Horizon; t++ {
			reset := t == 0 || (b.Policy.DailyStartReset && t%model.SlotsPerDay == 0)
			terms := []milp.Term{
				{Var: m.X[pi][t], Coeff: 1},
				{Var: m.Start[pi][t], Coeff: -1},
			}
			if !reset {
				terms = append(terms, milp.Term{Var: m.X[pi][t-1], Coeff: -1})
			}
			m.Problem.AddLessEq(fmt.Sprintf("startup_link_%s_%d", pump.ID, t), terms, 0)
		}

		for d, block := range b.budgetBlocks(in.Horizon) {
			terms := make([]milp.Term, 0, block.to-block.from)
			for t := block.from; t < block.to; t++ {
				terms = append(terms, milp.Term{Var: m.Start[pi][t], Coeff: 1})
			}
			m.Problem.AddLessEq(fmt.Sprintf("max_starts_%s_d%d", pump.ID, d),
				terms, float64(pump.MaxStartsPerDay))
		}

		if pump.MinRuntimeSlots > 1 {
			for t := 0; t < in.Horizon; t++ {
				for delta := 1; delta < pump.MinRuntimeSlots && t+delta < in.Horizon; delta++ {
					m.Problem.AddLessEq(
						fmt.Sprintf("min_runtime_%s_%d_%d", pump.ID, t, delta),
						[]milp.Term{
							{Var: m.Start[pi][t], Coeff: 1},
							{Var: m.X[pi][t+delta], Coeff: -1},
						}, 0)
				}
			}
		}
	}
}

type block struct{ from, to int }

// budgetBlocks returns the slot ranges sharing one startup budget: one block
// per day, or a single block spanning the horizon when the daily reset is
// disabled.
func (b Builder) budgetBlocks(horizon int) []block {
	if !b.Policy.DailyStartReset {
		return []block{{0, horizon}}
	}
	var blocks []block
	for from := 0; from < horizon; from += model.SlotsPerDay {
		to := from + model.SlotsPerDay
		if to > horizon {
			to = horizon
		}
		blocks = append(blocks, block{from, to})
	}
	return blocks
}
