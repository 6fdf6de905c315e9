// Package export writes schedules and comparison reports for downstream
// visualization tooling. The engine itself never touches the filesystem;
// callers pass any io.Writer.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/agriwater/optimizer/core/model"
	"github.com/agriwater/optimizer/core/plan"
)

// WriteScheduleCSV writes the per-slot schedule with its derived metrics.
// One row per slot, one trailing ON/OFF column per pump.
func WriteScheduleCSV(w io.Writer, in model.ScenarioInput, res model.OptimizationResult) error {
	cw := csv.NewWriter(w)
	header := []string{
		"slot", "demand_m3", "tariff", "solar_kw",
		"draw_kw", "grid_kw", "overshoot_kw", "energy_cost", "penalty_cost",
	}
	for _, p := range in.Pumps {
		header = append(header, "pump_"+p.ID)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for t := 0; t < in.Horizon; t++ {
		slot := plan.ComputeSlot(in, res.Schedule, t)
		rec := []string{
			strconv.Itoa(t),
			fmtFloat(in.Demand[t]),
			fmtFloat(in.Tariff[t]),
			fmtFloat(in.Solar[t]),
			fmtFloat(slot.DrawKW),
			fmtFloat(slot.GridKW),
			fmtFloat(slot.OvershootKW),
			fmtFloat(slot.EnergyCost),
			fmtFloat(slot.PenaltyCost),
		}
		for pi := range in.Pumps {
			if res.Schedule.On(pi, t) {
				rec = append(rec, "ON")
			} else {
				rec = append(rec, "OFF")
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// slotDoc mirrors one CSV row for JSON exports.
type slotDoc struct {
	Slot        int      `json:"slot"`
	DemandM3    float64  `json:"demand_m3"`
	Tariff      float64  `json:"tariff"`
	SolarKW     float64  `json:"solar_kw"`
	DrawKW      float64  `json:"draw_kw"`
	GridKW      float64  `json:"grid_kw"`
	OvershootKW float64  `json:"overshoot_kw"`
	EnergyCost  float64  `json:"energy_cost"`
	PenaltyCost float64  `json:"penalty_cost"`
	PumpsOn     []string `json:"pumps_on"`
}

type resultDoc struct {
	Scenario    string         `json:"scenario"`
	Status      string         `json:"status"`
	TotalCost   float64        `json:"total_cost"`
	EnergyCost  float64        `json:"energy_cost"`
	PenaltyCost float64        `json:"penalty_cost"`
	StartupCost float64        `json:"startup_cost"`
	Startups    map[string]int `json:"startups"`
	PeakDrawKW  float64        `json:"peak_draw_kw"`
	SolveTimeMS int64          `json:"solve_time_ms"`
	Slots       []slotDoc      `json:"slots"`
}

// WriteResultJSON writes the full optimized schedule as a JSON document.
func WriteResultJSON(w io.Writer, in model.ScenarioInput, res model.OptimizationResult) error {
	doc := resultDoc{
		Scenario:    res.Scenario,
		Status:      res.Status.String(),
		TotalCost:   res.Report.TotalCost(),
		EnergyCost:  res.Report.EnergyCost,
		PenaltyCost: res.Report.PenaltyCost,
		StartupCost: res.Report.StartupCost,
		Startups:    res.Report.StartupCounts,
		PeakDrawKW:  res.Report.PeakDrawKW,
		SolveTimeMS: res.SolveTime.Milliseconds(),
	}
	for t := 0; t < in.Horizon; t++ {
		slot := plan.ComputeSlot(in, res.Schedule, t)
		sd := slotDoc{
			Slot:        t,
			DemandM3:    in.Demand[t],
			Tariff:      in.Tariff[t],
			SolarKW:     in.Solar[t],
			DrawKW:      slot.DrawKW,
			GridKW:      slot.GridKW,
			OvershootKW: slot.OvershootKW,
			EnergyCost:  slot.EnergyCost,
			PenaltyCost: slot.PenaltyCost,
			PumpsOn:     []string{},
		}
		for pi, p := range in.Pumps {
			if res.Schedule.On(pi, t) {
				sd.PumpsOn = append(sd.PumpsOn, p.ID)
			}
		}
		doc.Slots = append(doc.Slots, sd)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// comparisonDoc is the JSON shape consumed by the reporting frontend.
type comparisonDoc struct {
	Scenario          string  `json:"scenario"`
	BaselineCost      float64 `json:"baseline_cost"`
	OptimizedCost     float64 `json:"optimized_cost"`
	Savings           float64 `json:"savings"`
	SavingsPercent    float64 `json:"savings_percent"`
	EnergySavingsKWh  float64 `json:"energy_savings_kwh"`
	PenaltyReduction  float64 `json:"penalty_reduction"`
	MonthlyProjection float64 `json:"monthly_projection"`
	AnnualProjection  float64 `json:"annual_projection"`
	Status            string  `json:"status"`
}

// WriteComparisonJSON writes the savings report of one scenario.
func WriteComparisonJSON(w io.Writer, cmp plan.Comparison) error {
	doc := comparisonDoc{
		Scenario:          cmp.Scenario,
		BaselineCost:      cmp.Baseline.Report.TotalCost(),
		OptimizedCost:     cmp.Optimized.Report.TotalCost(),
		Savings:           cmp.CostSavings,
		SavingsPercent:    cmp.CostSavingsPct,
		EnergySavingsKWh:  cmp.EnergySavingsKWh,
		PenaltyReduction:  cmp.PenaltyReduction,
		MonthlyProjection: cmp.MonthlyProjection,
		AnnualProjection:  cmp.AnnualProjection,
		Status:            cmp.Optimized.Status.String(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
