package model

import "fmt"

// TariffSeries maps each slot to an energy price. Prices may encode
// peak/off-peak bands; one non-negative value per slot.
type TariffSeries []float64

// DemandSeries maps each slot to the required water volume in m3.
type DemandSeries []float64

// SolarSeries maps each slot to the available solar power capacity in kW.
// Grid draw is offset by this capacity before tariff is applied.
type SolarSeries []float64

func validateSeries(name string, values []float64, horizon int) error {
	if len(values) != horizon {
		return &ValidationError{
			Field:  name,
			Reason: fmt.Sprintf("length %d does not match horizon %d", len(values), horizon),
		}
	}
	for t, v := range values {
		if v < 0 {
			return &ValidationError{
				Field:  name,
				Reason: fmt.Sprintf("negative value %v at slot %d", v, t),
			}
		}
	}
	return nil
}

// Validate checks the series covers the horizon with non-negative prices.
func (s TariffSeries) Validate(horizon int) error { return validateSeries("tariff", s, horizon) }

// Validate checks the series covers the horizon with non-negative volumes.
func (s DemandSeries) Validate(horizon int) error { return validateSeries("demand", s, horizon) }

// Validate checks the series covers the horizon with non-negative capacities.
func (s SolarSeries) Validate(horizon int) error { return validateSeries("solar", s, horizon) }
