package registry

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML registry configuration surface: which banks to
// register, in what priority order, and the deployment's counterparty
// marker. A per-bank marker overrides the global one.
type Config struct {
	Marker string       `yaml:"marker"`
	Banks  []BankConfig `yaml:"banks"`
}

// BankConfig selects one built-in strategy by key.
type BankConfig struct {
	Strategy string `yaml:"strategy"`
	Marker   string `yaml:"marker,omitempty"`
}

// builders maps config keys to strategy constructors.
var builders = map[string]func(*slog.Logger) *bankStrategy{
	"central-bank-of-india": NewCentralBankOfIndia,
	"city-union-bank":       NewCityUnionBank,
	"baroda-gramin-bank":    NewBarodaGraminBank,
}

// LoadConfig reads a registry configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse registry config: %w", err)
	}
	if len(cfg.Banks) == 0 {
		return nil, fmt.Errorf("registry config: no banks configured")
	}
	return &cfg, nil
}

// Build constructs a registry with the configured banks registered in file
// order. Unknown strategy keys fail loudly at startup.
func (c *Config) Build(logger *slog.Logger) (*Registry, error) {
	r := NewRegistry(logger)
	for _, bank := range c.Banks {
		build, ok := builders[bank.Strategy]
		if !ok {
			return nil, fmt.Errorf("registry config: unknown strategy %q", bank.Strategy)
		}
		marker := c.Marker
		if bank.Marker != "" {
			marker = bank.Marker
		}
		s := build(logger).WithMarker(marker)
		if err := r.Register(s.BankName(), s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultRegistry registers every built-in bank with one shared marker.
// Priority follows the order the banks were added to the codebase.
func DefaultRegistry(marker string, logger *slog.Logger) *Registry {
	r := NewRegistry(logger)
	for _, build := range []func(*slog.Logger) *bankStrategy{
		NewCentralBankOfIndia,
		NewCityUnionBank,
		NewBarodaGraminBank,
	} {
		s := build(logger).WithMarker(marker)
		// Register cannot fail here: names are distinct constants.
		_ = r.Register(s.BankName(), s)
	}
	return r
}
