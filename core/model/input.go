package model

import "fmt"

// ScenarioInput bundles everything the scheduling engine needs for one run.
// All fields are read-only once the run starts; a new run takes a new input.
type ScenarioInput struct {
	Name              string
	Horizon           int // number of hourly slots, day = 24 consecutive slots
	Pumps             []Pump
	Tariff            TariffSeries
	Demand            DemandSeries
	Solar             SolarSeries
	SubscribedPowerKW float64 // contractual ceiling, exceeding it is penalized
	PenaltyRateKW     float64 // cost per kW drawn above the subscription
}

// Validate fails fast on malformed input so the model builder only ever sees
// well-formed scenarios.
func (in ScenarioInput) Validate() error {
	if in.Horizon <= 0 {
		return &ValidationError{Field: "horizon", Reason: fmt.Sprintf("must be positive, got %d", in.Horizon)}
	}
	if len(in.Pumps) == 0 {
		return &ValidationError{Field: "pumps", Reason: "catalog must not be empty"}
	}
	seen := make(map[string]bool, len(in.Pumps))
	for _, p := range in.Pumps {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.ID] {
			return &ValidationError{Field: "pumps", Reason: fmt.Sprintf("duplicate pump id %q", p.ID)}
		}
		seen[p.ID] = true
	}
	if err := in.Tariff.Validate(in.Horizon); err != nil {
		return err
	}
	if err := in.Demand.Validate(in.Horizon); err != nil {
		return err
	}
	if err := in.Solar.Validate(in.Horizon); err != nil {
		return err
	}
	if in.SubscribedPowerKW < 0 {
		return &ValidationError{Field: "subscribed_power_kw", Reason: "must not be negative"}
	}
	if in.PenaltyRateKW < 0 {
		return &ValidationError{Field: "penalty_rate_kw", Reason: "must not be negative"}
	}
	return nil
}

// MaxFlowM3h returns the combined flow of the whole catalog.
func (in ScenarioInput) MaxFlowM3h() float64 {
	var total float64
	for _, p := range in.Pumps {
		total += p.FlowM3h
	}
	return total
}

// Days returns the number of 24-slot blocks covering the horizon. A partial
// trailing block counts as a day.
func (in ScenarioInput) Days() int {
	return (in.Horizon + SlotsPerDay - 1) / SlotsPerDay
}

// SlotsPerDay is the length of one day block for startup accounting.
const SlotsPerDay = 24
