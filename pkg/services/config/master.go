// Package config loads the master configuration file and the buyer
// recipient profiles.
package config

import (
	"fmt"

	"github.com/qed-tools/fabric-atlas/pkg/models/domain"
	"github.com/qed-tools/fabric-atlas/pkg/services/extract"
	"github.com/spf13/viper"
)

// Paths are the working folders of the tool.
type Paths struct {
	Pending string `mapstructure:"pending"`
	Archive string `mapstructure:"archive"`
	Review  string `mapstructure:"review"`
	Outbox  string `mapstructure:"outbox"`
	Ledger  string `mapstructure:"ledger"`
}

// RuleConfig is one rule definition as it appears in the master file.
type RuleConfig struct {
	Name       string  `mapstructure:"name"`
	Field      string  `mapstructure:"field"`
	Comparator string  `mapstructure:"comparator"`
	Threshold  float64 `mapstructure:"threshold"`
	Tolerance  float64 `mapstructure:"tolerance"`
	Reason     string  `mapstructure:"reason"`
}

// EmailConfig points at the recipient profiles and defines fallbacks used
// when a buyer has no profile section.
type EmailConfig struct {
	RecipientsFile   string `mapstructure:"recipients_file"`
	DefaultPrimary   string `mapstructure:"default_primary"`
	DefaultSecondary string `mapstructure:"default_secondary"`
}

// Config is the parsed master configuration.
type Config struct {
	Paths   Paths           `mapstructure:"paths"`
	CellMap extract.CellMap `mapstructure:"cell_map"`
	Rules   []RuleConfig    `mapstructure:"rules"`
	Email   EmailConfig     `mapstructure:"email"`
}

// Load reads the master configuration from the given file (YAML or JSON,
// decided by extension) and validates it.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse master config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Paths.Pending == "" {
		return fmt.Errorf("paths.pending is required")
	}
	if c.Paths.Archive == "" {
		return fmt.Errorf("paths.archive is required")
	}
	if c.CellMap.SheetName == "" {
		return fmt.Errorf("cell_map.sheet_name is required")
	}
	for i, r := range c.Rules {
		switch domain.Comparator(r.Comparator) {
		case domain.ComparatorEquals, domain.ComparatorGreaterThan,
			domain.ComparatorLessThan, domain.ComparatorToleranceBand:
		default:
			return fmt.Errorf("rules[%d] %q: unknown comparator %q", i, r.Name, r.Comparator)
		}
		if r.Field == "" {
			return fmt.Errorf("rules[%d] %q: field is required", i, r.Name)
		}
	}
	return nil
}

// RuleSet converts the configured rule definitions, preserving their order.
func (c *Config) RuleSet() domain.RuleSet {
	rules := make(domain.RuleSet, 0, len(c.Rules))
	for _, r := range c.Rules {
		rules = append(rules, domain.Rule{
			Name:       r.Name,
			Field:      r.Field,
			Comparator: domain.Comparator(r.Comparator),
			Threshold:  r.Threshold,
			Tolerance:  r.Tolerance,
			Reason:     r.Reason,
		})
	}
	return rules
}
