package scenario

import (
	"math"
	"math/rand"

	"github.com/agriwater/optimizer/core/model"
)

// Generator produces synthetic but realistic irrigation scenarios: demand
// peaks in the early morning and evening when evaporation is low, a midday
// trough, off-peak night tariffs and a daytime solar bell. The same seed
// always yields the same scenario.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

// New creates a Generator. Call cfg.SetDefaults before when building the
// config by hand.
func New(cfg Config) *Generator {
	return &Generator{cfg: cfg, rand: rand.New(rand.NewSource(cfg.Seed))}
}

// Generate assembles a complete scenario input for the configured number of
// days.
func (g *Generator) Generate() model.ScenarioInput {
	horizon := g.cfg.Days * model.SlotsPerDay

	pumps := make([]model.Pump, len(g.cfg.Pumps))
	var maxFlow float64
	for i, pc := range g.cfg.Pumps {
		pumps[i] = model.Pump{
			ID:              pc.ID,
			FlowM3h:         pc.FlowM3h,
			PowerKW:         pc.PowerKW,
			MaxStartsPerDay: pc.MaxStartsPerDay,
			MinRuntimeSlots: pc.MinRuntimeSlots,
			StartupCost:     pc.StartupCost,
		}
		maxFlow += pc.FlowM3h
	}

	in := model.ScenarioInput{
		Name:              g.cfg.Name,
		Horizon:           horizon,
		Pumps:             pumps,
		Tariff:            make(model.TariffSeries, horizon),
		Demand:            make(model.DemandSeries, horizon),
		Solar:             make(model.SolarSeries, horizon),
		SubscribedPowerKW: g.cfg.SubscribedPowerKW,
		PenaltyRateKW:     g.cfg.PenaltyRateKW,
	}
	for t := 0; t < horizon; t++ {
		hour := t % model.SlotsPerDay
		in.Tariff[t] = g.tariffAt(hour)
		in.Demand[t] = g.demandAt(hour, maxFlow)
		in.Solar[t] = solarAt(hour, g.cfg.SolarPeakKW)
	}
	return in
}

func (g *Generator) tariffAt(hour int) float64 {
	if hour >= g.cfg.PeakStartHour && hour < g.cfg.PeakEndHour {
		return g.cfg.TariffPeak
	}
	return g.cfg.TariffOffPeak
}

// demandAt follows the market-garden irrigation pattern: main session in the
// early morning, second session in the evening, minimal pumping at midday
// when evaporation peaks and a safety trickle at night. Demand is clamped to
// the deliverable catalog flow so generated scenarios stay feasible.
func (g *Generator) demandAt(hour int, maxFlow float64) float64 {
	var base float64
	switch {
	case hour >= 5 && hour <= 8:
		base = 120
	case hour >= 18 && hour <= 21:
		base = 100
	case hour >= 11 && hour <= 15:
		base = 30
	case hour >= 22 || hour <= 4:
		base = 20
	default:
		base = 50
	}
	if g.cfg.DemandNoise > 0 {
		base += g.rand.NormFloat64() * base * g.cfg.DemandNoise
	}
	if base < 0 {
		base = 0
	}
	if base > maxFlow {
		base = maxFlow
	}
	return base
}

// solarAt models available solar capacity as a sine bell between 06:00 and
// 18:00.
func solarAt(hour int, peakKW float64) float64 {
	if hour < 6 || hour > 18 {
		return 0
	}
	angle := float64(hour-6) / 12 * math.Pi
	return peakKW * math.Sin(angle)
}
