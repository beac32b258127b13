package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/san-kum/matcalc/internal/logging"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDataDir = ".matcalc"
	DefaultRender  = "plain"

	// EnvPrefix prefixes every environment override, e.g. MATCALC_DATA_DIR.
	EnvPrefix = "MATCALC"
)

type Config struct {
	DataDir string             `yaml:"data_dir" envconfig:"DATA_DIR"`
	History bool               `yaml:"history" envconfig:"HISTORY"`
	Render  string             `yaml:"render" envconfig:"RENDER"`
	Log     logging.Config     `yaml:"log" envconfig:"LOG"`
	Presets map[string]*Preset `yaml:"presets,omitempty" ignored:"true"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir,
		History: true,
		Render:  DefaultRender,
		Log:     logging.DefaultConfig(),
	}
}

// Load reads a yaml file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from MATCALC_* variables. Unset variables leave
// the current value alone.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("env: %w", err)
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	switch c.Render {
	case "plain", "box":
	default:
		return fmt.Errorf("render %q: want plain or box", c.Render)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	for name, p := range c.Presets {
		if err := p.validate(); err != nil {
			return fmt.Errorf("preset %s: %w", name, err)
		}
	}
	return nil
}
