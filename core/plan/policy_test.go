package plan

import "testing"

func TestSlotRangeContainsWrapsDays(t *testing.T) {
	r := SlotRange{From: 12, To: 14}
	if !r.Contains(12) || !r.Contains(13) || r.Contains(14) {
		t.Fatal("range bounds wrong")
	}
	// Ranges apply to every day of the horizon.
	if !r.Contains(24 + 13) {
		t.Fatal("range must repeat on day two")
	}
	if r.Contains(24 + 15) {
		t.Fatal("slot outside the daily window matched")
	}
}

func TestPolicyValidate(t *testing.T) {
	pol := DefaultPolicy()
	if err := pol.Validate(); err != nil {
		t.Fatalf("default policy invalid: %v", err)
	}

	pol.ExclusionWindows = []SlotRange{{From: 14, To: 12}}
	if err := pol.Validate(); err == nil {
		t.Fatal("inverted window accepted")
	}

	pol = DefaultPolicy()
	pol.SoftExclusionFactor = 0.5
	if err := pol.Validate(); err == nil {
		t.Fatal("attenuating factor accepted")
	}
}

func TestPolicySetDefaults(t *testing.T) {
	var pol Policy
	pol.SetDefaults()
	if pol.SoftExclusionFactor != 1.5 {
		t.Fatalf("factor = %v, want 1.5", pol.SoftExclusionFactor)
	}
}
