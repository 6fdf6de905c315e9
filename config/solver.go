package config

import "fmt"

// SolverConfig bounds the MILP solve.
type SolverConfig struct {
	// TimeLimitSeconds is the wall-clock budget for one solve. When the
	// limit is hit the best incumbent is returned tagged suboptimal.
	TimeLimitSeconds int `json:"time_limit_seconds"`
	// MaxNodes caps the branch-and-bound tree size.
	MaxNodes int `json:"max_nodes"`
}

// SetDefaults applies the 60 second budget used by the reference deployment.
func (c *SolverConfig) SetDefaults() {
	if c.TimeLimitSeconds == 0 {
		c.TimeLimitSeconds = 60
	}
	if c.MaxNodes == 0 {
		c.MaxNodes = 100000
	}
}

// Validate checks ranges.
func (c SolverConfig) Validate() error {
	if c.TimeLimitSeconds < 0 {
		return fmt.Errorf("time_limit_seconds must not be negative")
	}
	if c.MaxNodes < 0 {
		return fmt.Errorf("max_nodes must not be negative")
	}
	return nil
}

// MetricsConfig selects the observability sinks.
type MetricsConfig struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    int    `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SweepConfig drives multi-scenario runs.
type SweepConfig struct {
	// Scenarios is the number of seeded variants generated for a sweep.
	Scenarios int `json:"scenarios"`
	Workers   int `json:"workers"`
	// SeedBase offsets the per-scenario generator seeds.
	SeedBase int64 `json:"seed_base"`
}

// SetDefaults applies sweep defaults.
func (c *SweepConfig) SetDefaults() {
	if c.Scenarios == 0 {
		c.Scenarios = 4
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
}

// ExportConfig controls where schedules and comparisons are written.
type ExportConfig struct {
	Dir    string `json:"dir"`
	Format string `json:"format"`
}

// SetDefaults applies export defaults.
func (c *ExportConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "results"
	}
	if c.Format == "" {
		c.Format = "csv"
	}
}

// Validate checks the format selector.
func (c ExportConfig) Validate() error {
	if c.Format != "csv" && c.Format != "json" {
		return fmt.Errorf("unknown export format %s", c.Format)
	}
	return nil
}
