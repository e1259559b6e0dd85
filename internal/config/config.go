package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the project config file inside a kontor directory.
const FileName = "kontor.yaml"

// Config represents the top-level kontor.yaml configuration.
type Config struct {
	Database string         `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	VAT      VATConfig      `yaml:"vat"`
	Import   ImportConfig   `yaml:"import"`
	Invoices InvoicesConfig `yaml:"invoices"`
	Display  DisplayConfig  `yaml:"display"`
}

// LogConfig controls the log file.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"` // debug, info, warn, error
}

// VATConfig holds the defaults for auto-vat.
type VATConfig struct {
	Percentage int    `yaml:"percentage"`
	InAccount  string `yaml:"in_account"`
	OutAccount string `yaml:"out_account"`
}

// ImportConfig controls bank statement imports.
type ImportConfig struct {
	Format string `yaml:"format"` // parser name, see importer.DefaultRegistry
}

// InvoicesConfig controls invoice imports.
type InvoicesConfig struct {
	DateFormat string `yaml:"date_format"` // Go layout, e.g. "02.01.2006"
}

// DisplayConfig controls table output.
type DisplayConfig struct {
	Width int `yaml:"width"`
}

// Load reads a kontor.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadDir loads <dir>/kontor.yaml, falling back to defaults when the file does not
// exist, and applies overrides from <dir>/.env and the process environment.
func LoadDir(dir, path string) (*Config, error) {
	if path == "" {
		path = filepath.Join(dir, FileName)
	}

	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}

	envFile := filepath.Join(dir, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("KONTOR_DATABASE"); v != "" {
		c.Database = v
	}
	if v := os.Getenv("KONTOR_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("KONTOR_VAT_PERCENTAGE"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid KONTOR_VAT_PERCENTAGE %q: %w", v, err)
		}
		c.VAT.Percentage = p
	}
	return nil
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

// DatabasePath resolves the database file relative to the project directory.
func (c *Config) DatabasePath(dir string) string {
	if filepath.IsAbs(c.Database) {
		return c.Database
	}
	return filepath.Join(dir, c.Database)
}

// LogPath resolves the log file relative to the project directory.
func (c *Config) LogPath(dir string) string {
	if filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(dir, c.Log.File)
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Database: "kontor.db",
		Log: LogConfig{
			File:  "kontor.log",
			Level: "info",
		},
		VAT: VATConfig{
			Percentage: 19,
			InAccount:  "VAT_IN",
			OutAccount: "VAT_OUT",
		},
		Import: ImportConfig{
			Format: "kontor",
		},
		Invoices: InvoicesConfig{
			DateFormat: "02.01.2006",
		},
		Display: DisplayConfig{
			Width: 80,
		},
	}
}
