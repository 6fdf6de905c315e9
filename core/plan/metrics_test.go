package plan

import (
	"math"
	"testing"

	"github.com/agriwater/optimizer/core/model"
)

func TestComputeSlotSolarOffset(t *testing.T) {
	in := singlePumpInput(4) // pump draws 10 kW, subscription 15 kW
	in.Solar[1] = 4
	in.Solar[2] = 25

	s := model.NewSchedule([]string{"P1"}, 4)
	s.Set(0, 1, true)
	s.Set(0, 2, true)

	slot := ComputeSlot(in, s, 1)
	if slot.DrawKW != 10 || slot.GridKW != 6 || slot.SolarKW != 4 {
		t.Fatalf("partial offset wrong: %+v", slot)
	}
	if slot.EnergyCost != 50*6 {
		t.Fatalf("energy cost = %v, want 300", slot.EnergyCost)
	}

	// Solar above the draw never produces negative grid power.
	slot = ComputeSlot(in, s, 2)
	if slot.GridKW != 0 || slot.SolarKW != 10 {
		t.Fatalf("full offset wrong: %+v", slot)
	}

	// Off slot contributes nothing.
	slot = ComputeSlot(in, s, 0)
	if slot.DrawKW != 0 || slot.EnergyCost != 0 {
		t.Fatalf("idle slot not empty: %+v", slot)
	}
}

func TestComputeSlotOvershoot(t *testing.T) {
	in := model.ScenarioInput{
		Name:              "overshoot",
		Horizon:           1,
		Pumps:             []model.Pump{{ID: "A", FlowM3h: 60, PowerKW: 45}, {ID: "B", FlowM3h: 50, PowerKW: 38}},
		Tariff:            []float64{100},
		Demand:            []float64{0},
		Solar:             []float64{0},
		SubscribedPowerKW: 50,
		PenaltyRateKW:     200,
	}
	s := model.NewSchedule([]string{"A", "B"}, 1)
	s.Set(0, 0, true)
	s.Set(1, 0, true)

	slot := ComputeSlot(in, s, 0)
	if slot.DrawKW != 83 {
		t.Fatalf("draw = %v, want 83", slot.DrawKW)
	}
	if slot.OvershootKW != 33 || slot.PenaltyCost != 200*33 {
		t.Fatalf("overshoot accounting wrong: %+v", slot)
	}
}

func TestComputeReportAggregates(t *testing.T) {
	in := singlePumpInput(48)
	in.Pumps[0].StartupCost = 1000

	s := model.NewSchedule([]string{"P1"}, 48)
	// One run per day crossing nothing: slots 6..8 and 30..32.
	for _, slot := range []int{6, 7, 8, 30, 31, 32} {
		s.Set(0, slot, true)
	}

	pol := DefaultPolicy()
	report := ComputeReport(in, pol, s)
	if report.StartupCounts["P1"] != 2 {
		t.Fatalf("startups = %d, want 2", report.StartupCounts["P1"])
	}
	if report.StartupCost != 2000 {
		t.Fatalf("startup cost = %v, want 2000", report.StartupCost)
	}
	if report.PeakDrawKW != 10 {
		t.Fatalf("peak draw = %v, want 10", report.PeakDrawKW)
	}
	wantEnergy := 6.0 * 10 * 50 // six active slots, 10 kW, flat tariff 50
	if math.Abs(report.EnergyCost-wantEnergy) > 1e-9 {
		t.Fatalf("energy cost = %v, want %v", report.EnergyCost, wantEnergy)
	}
	if got := report.TotalCost(); math.Abs(got-(wantEnergy+2000)) > 1e-9 {
		t.Fatalf("total cost = %v", got)
	}
	if report.TotalStartups() != 2 {
		t.Fatalf("total startups = %d", report.TotalStartups())
	}
}
