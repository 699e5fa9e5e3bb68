package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/integrii/flaggy"

	"lifechain/src/config"
	"lifechain/src/telemetry"
	"lifechain/src/universe"
	"lifechain/src/view"
)

func main() {
	cfg, err := initOptions()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(cfg); err != nil {
		slog.Error("simulation failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	e, err := universe.NewEngine(cfg.Engine, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}

	var stateCh chan universe.Status

	if !cfg.Interactive {
		stateCh = make(chan universe.Status, 10) //the buffered channel to getting the universe status
	}

	u := universe.NewBaseUniverse(e, ptr(cfg.UniverseOptions()), stateCh)
	defer u.Close()

	for _, tmpl := range cfg.UniverseTemplates() {
		u.AddTemplate(tmpl)
	}

	switch {
	case cfg.Random:
		u.SettleWithRandomData()
	case cfg.Pattern:
		u.SettlePattern()
	case cfg.Template != "":
		if err := u.SettleTemplate(cfg.Template); err != nil {
			return err
		}
	}

	if cfg.Interactive {
		v, err := view.NewViewTerminal()
		if err != nil {
			return err
		}
		u.RegisterViewer(v)
		v.Start()
		return nil
	}

	rec, err := newRecorder(cfg)
	if err != nil {
		return err
	}
	defer rec.Close()

	out := view.NewConsoleOut()
	u.RegisterViewer(out)
	out.Start()
	u.Run()
	for st := range stateCh {
		if err := rec.Observe(st); err != nil {
			return err
		}
		if st.RunningMode == universe.RunningStateFinished {
			slog.Info("simulation finished", "status", st, "summary", rec.Summary())
			return nil
		}
	}
	return errors.New("state channel closed before the simulation finished")
}

//newRecorder creates the telemetry recorder, the effective config is saved next to the CSV
//as <stats name>.config.yaml
func newRecorder(cfg *config.Config) (*telemetry.Recorder, error) {
	if cfg.StatsPath == "" {
		return telemetry.NewRecorder(nil), nil
	}
	rec, err := telemetry.Create(cfg.StatsPath)
	if err != nil {
		return nil, err
	}
	configPath := strings.TrimSuffix(cfg.StatsPath, filepath.Ext(cfg.StatsPath)) + ".config.yaml"
	if err := cfg.WriteYAML(configPath); err != nil {
		_ = rec.Close()
		return nil, err
	}
	return rec, nil
}

func initOptions() (*config.Config, error) {
	var (
		configPath string
		flags      config.Config
	)
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&configPath, "c", "config", "YAML configuration file, merged over the defaults")
	flaggy.Int(&flags.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&flags.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&flags.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&flags.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps")
	flaggy.UInt64(&flags.Seed, "", "seed", "Seed of the random settling, 0 seeds from the clock")
	flaggy.Bool(&flags.Interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&flags.Random, "r", "random", "Settle with random data")
	flaggy.Bool(&flags.Pattern, "p", "pattern", "Settle with the engine's fixed pattern")
	flaggy.String(&flags.Template, "t", "template", "Settle with the named template")
	flaggy.String(&flags.Engine, "e", "engine", "Engine to use ["+strings.Join(universe.EngineNames(), "|")+"]")
	flaggy.String(&flags.StatsPath, "o", "stats", "Write per-generation statistics to this CSV file")
	flaggy.String(&flags.LogLevel, "l", "logLevel", "Log level [debug|info|warn|error]")

	flaggy.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	merge(cfg, &flags)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return cfg, nil
}

//merge copies the flags given on the command line over the loaded configuration
func merge(cfg *config.Config, flags *config.Config) {
	if flags.Width != 0 {
		cfg.Width = flags.Width
	}
	if flags.Height != 0 {
		cfg.Height = flags.Height
	}
	if flags.Interval != 0 {
		cfg.Interval = flags.Interval
	}
	if flags.MaxSteps != 0 {
		cfg.MaxSteps = flags.MaxSteps
	}
	if flags.Seed != 0 {
		cfg.Seed = flags.Seed
	}
	if flags.Engine != "" {
		cfg.Engine = flags.Engine
	}
	if flags.Template != "" {
		cfg.Template = flags.Template
	}
	if flags.StatsPath != "" {
		cfg.StatsPath = flags.StatsPath
	}
	if flags.LogLevel != "" {
		cfg.LogLevel = flags.LogLevel
	}
	cfg.Interactive = cfg.Interactive || flags.Interactive
	cfg.Random = cfg.Random || flags.Random
	cfg.Pattern = cfg.Pattern || flags.Pattern
}

func ptr[T any](v T) *T { return &v }
