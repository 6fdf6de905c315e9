package model

import (
	"errors"
	"testing"
)

func testInput(horizon int) ScenarioInput {
	series := make([]float64, horizon)
	return ScenarioInput{
		Name:    "test",
		Horizon: horizon,
		Pumps: []Pump{
			{ID: "P1", FlowM3h: 60, PowerKW: 45},
			{ID: "P2", FlowM3h: 50, PowerKW: 38},
		},
		Tariff:            series,
		Demand:            make([]float64, horizon),
		Solar:             make([]float64, horizon),
		SubscribedPowerKW: 150,
		PenaltyRateKW:     200,
	}
}

func TestScenarioInputValidate(t *testing.T) {
	if err := testInput(24).Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	t.Run("zero horizon", func(t *testing.T) {
		in := testInput(24)
		in.Horizon = 0
		if err := in.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})
	t.Run("empty catalog", func(t *testing.T) {
		in := testInput(24)
		in.Pumps = nil
		if err := in.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})
	t.Run("duplicate pump id", func(t *testing.T) {
		in := testInput(24)
		in.Pumps = append(in.Pumps, Pump{ID: "P1", FlowM3h: 10, PowerKW: 5})
		var verr *ValidationError
		if err := in.Validate(); !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
	t.Run("series length mismatch", func(t *testing.T) {
		in := testInput(24)
		in.Demand = make([]float64, 23)
		if err := in.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})
	t.Run("negative tariff", func(t *testing.T) {
		in := testInput(24)
		in.Tariff[3] = -1
		if err := in.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})
	t.Run("negative penalty rate", func(t *testing.T) {
		in := testInput(24)
		in.PenaltyRateKW = -1
		if err := in.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestScenarioInputDerived(t *testing.T) {
	in := testInput(24)
	if got := in.MaxFlowM3h(); got != 110 {
		t.Fatalf("max flow = %v, want 110", got)
	}
	if got := in.Days(); got != 1 {
		t.Fatalf("days = %d, want 1", got)
	}
	in.Horizon = 25
	if got := in.Days(); got != 2 {
		t.Fatalf("partial trailing block: days = %d, want 2", got)
	}
	in.Horizon = 48
	if got := in.Days(); got != 2 {
		t.Fatalf("days = %d, want 2", got)
	}
}
