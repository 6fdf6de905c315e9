package plan

import (
	"fmt"

	"github.com/agriwater/optimizer/core/model"
)

// SlotRange designates slots [From, To) relative to the start of each day,
// e.g. midday evaporation hours.
type SlotRange struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// Contains reports whether slot t falls inside the range, using the
// position of t within its day block.
func (r SlotRange) Contains(t int) bool {
	h := t % model.SlotsPerDay
	return h >= r.From && h < r.To
}

// Policy configures deployment-specific scheduling behavior. The zero value
// keeps soft exclusion handling and daily startup-budget resets.
type Policy struct {
	// ExclusionWindows are daily slot ranges where pumping is discouraged.
	ExclusionWindows []SlotRange `json:"exclusion_windows" yaml:"exclusion_windows"`
	// HardExclusion zeroes pump activity inside the windows instead of
	// biasing the cost. With soft handling the tariff is inflated by
	// SoftExclusionFactor for the affected slots.
	HardExclusion bool `json:"hard_exclusion" yaml:"hard_exclusion"`
	// SoftExclusionFactor multiplies the effective tariff in excluded slots
	// when HardExclusion is off. Values below 1 are rejected.
	SoftExclusionFactor float64 `json:"soft_exclusion_factor" yaml:"soft_exclusion_factor"`
	// DailyStartReset treats each 24-slot block as an independent startup
	// budget. When false a single budget spans the whole horizon.
	DailyStartReset bool `json:"daily_start_reset" yaml:"daily_start_reset"`
}

// DefaultPolicy mirrors the common deployment: soft exclusion bias and
// per-day startup budgets.
func DefaultPolicy() Policy {
	return Policy{SoftExclusionFactor: 1.5, DailyStartReset: true}
}

// SetDefaults fills unset fields.
func (p *Policy) SetDefaults() {
	if p.SoftExclusionFactor == 0 {
		p.SoftExclusionFactor = 1.5
	}
}

// Validate checks window ordering and factor sanity.
func (p Policy) Validate() error {
	for _, w := range p.ExclusionWindows {
		if w.From < 0 || w.To > model.SlotsPerDay || w.From >= w.To {
			return fmt.Errorf("exclusion window [%d,%d) out of range", w.From, w.To)
		}
	}
	if p.SoftExclusionFactor < 1 {
		return fmt.Errorf("soft exclusion factor %v must be >= 1", p.SoftExclusionFactor)
	}
	return nil
}

// Excluded reports whether slot t falls in any exclusion window.
func (p Policy) Excluded(t int) bool {
	for _, w := range p.ExclusionWindows {
		if w.Contains(t) {
			return true
		}
	}
	return false
}
