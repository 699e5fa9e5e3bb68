package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lifechain/src/universe"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine != "life" || cfg.Width != 40 || cfg.Height != 15 {
		t.Errorf("defaults: engine %q, %v x %v", cfg.Engine, cfg.Width, cfg.Height)
	}
	if cfg.Interval != 100*time.Millisecond {
		t.Errorf("interval = %v", cfg.Interval)
	}
	if cfg.MaxSteps != universe.DefMaxSteps || cfg.MaxSkippedTicks != universe.DefMaxSkippedTicks {
		t.Errorf("steps %v, skipped %v", cfg.MaxSteps, cfg.MaxSkippedTicks)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadMergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte("engine: foodChain\nwidth: 64\ninterval: 20ms\nlog_level: debug\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine != "foodChain" || cfg.Width != 64 || cfg.Interval != 20*time.Millisecond {
		t.Errorf("merged: engine %q, width %v, interval %v", cfg.Engine, cfg.Width, cfg.Interval)
	}
	if cfg.Height != 15 || len(cfg.Templates) == 0 {
		t.Errorf("defaults lost: height %v, %v templates", cfg.Height, len(cfg.Templates))
	}
	if l, err := cfg.SlogLevel(); err != nil || l != slog.LevelDebug {
		t.Errorf("SlogLevel = %v, %v", l, err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file loaded")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("width: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed file loaded")
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := Load("")
	cfg.Width = 0
	if err := cfg.Validate(); !errors.Is(err, universe.ErrInvalidDimension) {
		t.Errorf("err = %v, want ErrInvalidDimension", err)
	}
	cfg, _ = Load("")
	cfg.LogLevel = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown log level accepted")
	}
}

func TestUniverseTemplates(t *testing.T) {
	cfg := &Config{Templates: []TemplateConfig{{Name: "dot", Descr: "one cell", Cells: [][2]int{{3, 4}}}}}
	tmpls := cfg.UniverseTemplates()
	if len(tmpls) != 1 || tmpls[0].Name != "dot" {
		t.Fatalf("templates = %+v", tmpls)
	}
	if c := tmpls[0].Coordinates; len(c) != 1 || c[0] != (universe.Coord{Row: 3, Col: 4}) {
		t.Fatalf("coordinates = %v", c)
	}
}

func TestWriteYAML(t *testing.T) {
	cfg, _ := Load("")
	cfg.Engine = "doubleBuff"
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Engine != "doubleBuff" || back.Interval != cfg.Interval || len(back.Templates) != len(cfg.Templates) {
		t.Errorf("written config reloaded as %+v", back)
	}
}
