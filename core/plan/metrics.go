package plan

import "github.com/agriwater/optimizer/core/model"

// SlotMetrics is the per-slot accounting derived from a schedule.
type SlotMetrics struct {
	Slot        int
	DrawKW      float64
	GridKW      float64
	SolarKW     float64
	OvershootKW float64
	EnergyCost  float64
	PenaltyCost float64
}

// ComputeReport derives all cost metrics from a schedule, independently of
// any solver objective. Running it twice on the same schedule yields the same
// report, which lets baseline and optimized runs share one accounting path.
func ComputeReport(in model.ScenarioInput, pol Policy, s *model.Schedule) model.CostReport {
	report := model.CostReport{StartupCounts: make(map[string]int, len(in.Pumps))}
	for t := 0; t < in.Horizon; t++ {
		slot := ComputeSlot(in, s, t)
		report.EnergyCost += slot.EnergyCost
		report.PenaltyCost += slot.PenaltyCost
		report.GridEnergyKWh += slot.GridKW
		report.SolarEnergyKWh += slot.SolarKW
		if slot.DrawKW > report.PeakDrawKW {
			report.PeakDrawKW = slot.DrawKW
		}
	}
	for pi, pump := range in.Pumps {
		starts := s.Startups(pi, pol.DailyStartReset)
		report.StartupCounts[pump.ID] = starts
		report.StartupCost += float64(starts) * pump.StartupCost
	}
	return report
}

// ComputeSlot derives the metrics of a single slot. Billed grid power is the
// draw left after the solar capacity offset, never negative.
func ComputeSlot(in model.ScenarioInput, s *model.Schedule, t int) SlotMetrics {
	var draw float64
	for pi, pump := range in.Pumps {
		if s.On(pi, t) {
			draw += pump.PowerKW
		}
	}
	grid := draw - in.Solar[t]
	if grid < 0 {
		grid = 0
	}
	solar := draw - grid
	overshoot := draw - in.SubscribedPowerKW
	if overshoot < 0 {
		overshoot = 0
	}
	return SlotMetrics{
		Slot:        t,
		DrawKW:      draw,
		GridKW:      grid,
		SolarKW:     solar,
		OvershootKW: overshoot,
		EnergyCost:  in.Tariff[t] * grid,
		PenaltyCost: in.PenaltyRateKW * overshoot,
	}
}
