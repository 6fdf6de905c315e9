package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PumpConfig describes one pump of the generated catalog.
type PumpConfig struct {
	ID              string  `json:"id" yaml:"id"`
	FlowM3h         float64 `json:"flow_m3h" yaml:"flow_m3h"`
	PowerKW         float64 `json:"power_kw" yaml:"power_kw"`
	MaxStartsPerDay int     `json:"max_starts_per_day" yaml:"max_starts_per_day"`
	MinRuntimeSlots int     `json:"min_runtime_slots" yaml:"min_runtime_slots"`
	StartupCost     float64 `json:"startup_cost" yaml:"startup_cost"`
}

// Config drives the synthetic scenario generator. Defaults reproduce the
// reference Sahel market-garden farm: three pumps, SONABEL-style peak and
// off-peak bands and a midday solar plant covering roughly a third of the
// subscription.
type Config struct {
	Name string `json:"name" yaml:"name"`
	Days int    `json:"days" yaml:"days"`
	Seed int64  `json:"seed" yaml:"seed"`

	TariffPeak    float64 `json:"tariff_peak" yaml:"tariff_peak"`
	TariffOffPeak float64 `json:"tariff_offpeak" yaml:"tariff_offpeak"`
	PeakStartHour int     `json:"peak_start_hour" yaml:"peak_start_hour"`
	PeakEndHour   int     `json:"peak_end_hour" yaml:"peak_end_hour"`

	SubscribedPowerKW float64 `json:"subscribed_power_kw" yaml:"subscribed_power_kw"`
	PenaltyRateKW     float64 `json:"penalty_rate_kw" yaml:"penalty_rate_kw"`
	SolarPeakKW       float64 `json:"solar_peak_kw" yaml:"solar_peak_kw"`

	// DemandNoise is the relative standard deviation applied to the daily
	// demand pattern. Zero disables the jitter entirely.
	DemandNoise float64 `json:"demand_noise" yaml:"demand_noise"`

	Pumps []PumpConfig `json:"pumps" yaml:"pumps"`
}

// SetDefaults applies the reference farm parameters for unset fields.
func (c *Config) SetDefaults() {
	if c.Name == "" {
		c.Name = "agriwater"
	}
	if c.Days == 0 {
		c.Days = 1
	}
	if c.TariffPeak == 0 {
		c.TariffPeak = 110
	}
	if c.TariffOffPeak == 0 {
		c.TariffOffPeak = 75
	}
	if c.PeakStartHour == 0 {
		c.PeakStartHour = 7
	}
	if c.PeakEndHour == 0 {
		c.PeakEndHour = 23
	}
	if c.SubscribedPowerKW == 0 {
		c.SubscribedPowerKW = 150
	}
	if c.PenaltyRateKW == 0 {
		c.PenaltyRateKW = 200
	}
	if c.SolarPeakKW == 0 {
		c.SolarPeakKW = 45
	}
	if len(c.Pumps) == 0 {
		c.Pumps = []PumpConfig{
			{ID: "P1", FlowM3h: 60, PowerKW: 45, MaxStartsPerDay: 8, StartupCost: 5000},
			{ID: "P2", FlowM3h: 50, PowerKW: 38, MaxStartsPerDay: 8, StartupCost: 5000},
			{ID: "P3", FlowM3h: 55, PowerKW: 42, MaxStartsPerDay: 8, StartupCost: 5000},
		}
	}
}

// Validate checks band ordering and basic ranges.
func (c Config) Validate() error {
	if c.Days <= 0 {
		return fmt.Errorf("days must be positive, got %d", c.Days)
	}
	if c.TariffPeak < 0 || c.TariffOffPeak < 0 {
		return fmt.Errorf("tariffs must not be negative")
	}
	if c.PeakStartHour < 0 || c.PeakEndHour > 24 || c.PeakStartHour >= c.PeakEndHour {
		return fmt.Errorf("peak band [%d,%d) out of range", c.PeakStartHour, c.PeakEndHour)
	}
	if c.DemandNoise < 0 {
		return fmt.Errorf("demand noise must not be negative")
	}
	if len(c.Pumps) == 0 {
		return fmt.Errorf("pump catalog must not be empty")
	}
	return nil
}

// LoadConfig loads a generator Config from a JSON or YAML file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return DecodeConfig(f, ext)
}

// DecodeConfig reads from r to decode a generator Config.
func DecodeConfig(r io.Reader, format string) (Config, error) {
	var cfg Config
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
			return cfg, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported format: %s", format)
	}
	return cfg, nil
}
