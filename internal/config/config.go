package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents a settled.yaml run configuration.
type Config struct {
	// Format names the input CSV dialect.
	Format string `yaml:"format"`
	// Precision is the number of decimal places in the report.
	Precision int32 `yaml:"precision"`
	// OnReject is "log" or "silent".
	OnReject string `yaml:"on_reject"`
	// AuditLog, when set, is the path rejected events are appended to.
	AuditLog string `yaml:"audit_log,omitempty"`
}

// Load reads a settled.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration used when no settled.yaml is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Format == "" {
		c.Format = "standard"
	}
	if c.Precision == 0 {
		c.Precision = 4
	}
	if c.OnReject == "" {
		c.OnReject = "log"
	}
}
