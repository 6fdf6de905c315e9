package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/agriwater/optimizer/core/plan"
	"github.com/agriwater/optimizer/core/scenario"
)

// Config is the top-level application configuration.
type Config struct {
	Scenario scenario.Config `json:"scenario"`
	Policy   plan.Policy     `json:"policy"`
	Solver   SolverConfig    `json:"solver"`
	Metrics  MetricsConfig   `json:"metrics"`
	Sweep    SweepConfig     `json:"sweep"`
	Export   ExportConfig    `json:"export"`
}

// Load reads the configuration file, applies AGRI_* environment overrides
// and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("AGRI_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "agri_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Scenario.SetDefaults()
	cfg.Policy.SetDefaults()
	cfg.Solver.SetDefaults()
	cfg.Sweep.SetDefaults()
	cfg.Export.SetDefaults()
	if err := cfg.Scenario.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Policy.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Solver.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Export.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
