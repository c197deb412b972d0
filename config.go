package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all service configuration.
type Config struct {
	Listen  string        `yaml:"listen"`
	Evocon  EvoconConfig  `yaml:"evocon"`
	Report  ReportConfig  `yaml:"report"`
	Logging LoggingConfig `yaml:"logging"`
}

// EvoconConfig configures the Evocon checklist API client.
type EvoconConfig struct {
	BaseURL string `yaml:"base_url"`
	Tenant  string `yaml:"tenant"`
	Secret  string `yaml:"secret"`
}

// ReportConfig carries the per-tenant report tables: the catalog of
// checklist items (in display order) and the nominal shift start times.
type ReportConfig struct {
	Items        []string          `yaml:"items"`
	ShiftStarts  map[string]string `yaml:"shift_starts"`
	LookbackDays int               `yaml:"lookback_days"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the stock laminator-line setup.
func DefaultConfig() *Config {
	return &Config{
		Listen: ":8080",
		Evocon: EvoconConfig{
			BaseURL: "https://api.evocon.com",
		},
		Report: ReportConfig{
			Items: []string{
				"Θερμοκρασία λαμινατορίου (°C)",
				"Είδος μαργαρίνης",
				"Θερμοκρασία μαργαρίνης (°C)",
				"Λαμάκι μαργαρίνης (mm)",
				"Λαμάκι recupero (mm)",
				"Διάκενο μαχαιριών (cm)",
				"Πάχος extruder (1η)",
				"Πάχος extruder (2η)",
				"Ποσοστό μαργαρίνης (%)",
				"Ποσοστό ανακύκλωσης ζύμης recupero (%)",
			},
			ShiftStarts: map[string]string{
				"A": "06:00",
				"B": "14:00",
				"Γ": "22:00",
			},
			LookbackDays: 3,
		},
	}
}

// LoadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults untouched. Env overrides apply in both cases.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("EVOCON_TENANT"); v != "" {
		c.Evocon.Tenant = v
	}
	if v := os.Getenv("EVOCON_SECRET"); v != "" {
		c.Evocon.Secret = v
	}
	if v := os.Getenv("EVOCON_API_BASE"); v != "" {
		c.Evocon.BaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Listen = ":" + v
	}
}
