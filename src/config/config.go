package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"lifechain/src/universe"
)

//go:embed defaults.yaml
var defaultsYAML []byte

//Config holds the run configuration: which engine, its field and how the
//field is seeded
type Config struct {
	Engine          string           `yaml:"engine"`
	Width           int              `yaml:"width"`
	Height          int              `yaml:"height"`
	Interval        time.Duration    `yaml:"interval"`
	MaxSteps        int              `yaml:"max_steps"`
	MaxSkippedTicks int              `yaml:"max_skipped_ticks"`
	Seed            uint64           `yaml:"seed"`
	Template        string           `yaml:"template"`
	Random          bool             `yaml:"random"`
	Pattern         bool             `yaml:"pattern"`
	Interactive     bool             `yaml:"interactive"`
	StatsPath       string           `yaml:"stats_path"` //per-generation CSV, empty disables it
	LogLevel        string           `yaml:"log_level"`
	Templates       []TemplateConfig `yaml:"templates"`
}

//TemplateConfig is a named list of [row, col] cells
type TemplateConfig struct {
	Name  string   `yaml:"name"`
	Descr string   `yaml:"descr"`
	Cells [][2]int `yaml:"cells"`
}

//Load loads configuration from a YAML file, merging with embedded defaults
//if path is empty, only embedded defaults are used
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		//only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}

//Validate checks the values the engine can't be created without
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("field %v x %v: %w", c.Width, c.Height, universe.ErrInvalidDimension)
	}
	if c.Interval < 0 {
		return fmt.Errorf("negative interval %v", c.Interval)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

//UniverseOptions converts the configuration to the universe options
func (c *Config) UniverseOptions() universe.Options {
	return universe.Options{
		Width:           c.Width,
		Height:          c.Height,
		Interval:        c.Interval,
		MaxSteps:        c.MaxSteps,
		MaxSkippedTicks: c.MaxSkippedTicks,
		Seed:            c.Seed,
	}
}

//UniverseTemplates converts the configured templates
func (c *Config) UniverseTemplates() []universe.Template {
	templates := make([]universe.Template, 0, len(c.Templates))
	for _, t := range c.Templates {
		coords := make([]universe.Coord, len(t.Cells))
		for i, cell := range t.Cells {
			coords[i] = universe.Coord{Row: cell[0], Col: cell[1]}
		}
		templates = append(templates, universe.Template{Name: t.Name, Descr: t.Descr, Coordinates: coords})
	}
	return templates
}

//SlogLevel parses LogLevel
func (c *Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return l, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

//WriteYAML writes the configuration to a YAML file
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
