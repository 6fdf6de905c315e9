package model

import "fmt"

// Pump describes an electrically powered irrigation pump. The catalog is
// assembled once per optimization run and treated as read-only afterwards.
type Pump struct {
	ID              string
	FlowM3h         float64 // delivered water volume per hour when running
	PowerKW         float64 // electrical draw when running
	MaxStartsPerDay int     // cap on off-to-on transitions per day block
	MinRuntimeSlots int     // optional minimum contiguous run length, 0 disables
	StartupCost     float64 // fixed cost charged per startup event
}

// Validate checks that the pump configuration is sound.
func (p Pump) Validate() error {
	if p.ID == "" {
		return &ValidationError{Field: "pump.id", Reason: "must not be empty"}
	}
	if p.FlowM3h <= 0 {
		return &ValidationError{Field: "pump.flow_m3h", Reason: fmt.Sprintf("must be positive, got %v", p.FlowM3h)}
	}
	if p.PowerKW <= 0 {
		return &ValidationError{Field: "pump.power_kw", Reason: fmt.Sprintf("must be positive, got %v", p.PowerKW)}
	}
	if p.MaxStartsPerDay < 0 {
		return &ValidationError{Field: "pump.max_starts_per_day", Reason: "must not be negative"}
	}
	if p.MinRuntimeSlots < 0 {
		return &ValidationError{Field: "pump.min_runtime_slots", Reason: "must not be negative"}
	}
	if p.StartupCost < 0 {
		return &ValidationError{Field: "pump.startup_cost", Reason: "must not be negative"}
	}
	return nil
}
