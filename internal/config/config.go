// Package config loads beanpull.yaml and environment-sourced settings. The
// file holds run policy; the environment holds secrets and diagnostics knobs.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "beanpull.yaml"

// Config represents the top-level beanpull.yaml configuration.
type Config struct {
	Budget BudgetConfig `yaml:"budget"`
	Ledger LedgerConfig `yaml:"ledger"`
	Import ImportConfig `yaml:"import"`
}

// BudgetConfig selects the remote budget.
type BudgetConfig struct {
	// Name of the budget to import. Only needed when the token owns more
	// than one budget.
	Name string `yaml:"name,omitempty"`
}

// LedgerConfig describes the existing ledger and the derived-path hierarchy.
type LedgerConfig struct {
	// Path to the ledger file scanned for ynab-id account overrides.
	Path string `yaml:"path,omitempty"`
	// Hierarchy roots used by the default naming algorithm.
	AssetPrefix   string `yaml:"asset_prefix"`
	ExpensePrefix string `yaml:"expense_prefix"`
	IncomePrefix  string `yaml:"income_prefix"`
}

// ImportConfig holds translation policy.
type ImportConfig struct {
	// SkipStartingBalances drops the service's generated starting-balance
	// transactions.
	SkipStartingBalances bool `yaml:"skip_starting_balances"`
	// IncludeCleared imports cleared transactions in addition to reconciled
	// ones. Reconciled-only is the default: reconciled transactions no
	// longer change remotely, which keeps repeat runs consistent.
	IncludeCleared bool `yaml:"include_cleared"`
	// AdjustmentAccount receives automatically entered reconciliation
	// balance adjustments when set.
	AdjustmentAccount string `yaml:"adjustment_account,omitempty"`
}

// Load reads a beanpull.yaml file from disk.
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

// Default returns a Config with the conventional hierarchy roots.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Ledger.AssetPrefix == "" {
		c.Ledger.AssetPrefix = "Assets"
	}
	if c.Ledger.ExpensePrefix == "" {
		c.Ledger.ExpensePrefix = "Expenses"
	}
	if c.Ledger.IncomePrefix == "" {
		c.Ledger.IncomePrefix = "Income"
	}
}

// Env holds environment-sourced settings. A .env file in the working
// directory is honored if present.
type Env struct {
	Token    string `env:"YNAB_TOKEN"`
	BaseURL  string `env:"YNAB_API_URL" envDefault:"https://api.ynab.com/v1"`
	LogLevel string `env:"BEANPULL_LOG_LEVEL" envDefault:"warn"`
}

// LoadEnv parses environment settings, loading .env first when it exists.
func LoadEnv() (*Env, error) {
	_ = godotenv.Load()

	e := &Env{}
	if err := env.Parse(e); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return e, nil
}
