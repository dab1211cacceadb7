package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Drive != "none" {
		t.Errorf("expected drive none, got %s", cfg.Drive)
	}
	if cfg.Ticks <= 0 {
		t.Error("ticks should be positive")
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.CapPercentage <= 0 || cfg.CapPercentage > 1 {
		t.Errorf("cap percentage out of range: %f", cfg.CapPercentage)
	}
}

func TestFiberParamsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	p := cfg.FiberParams()

	if p.RestingForce != 0.2 {
		t.Errorf("expected resting force 0.2, got %f", p.RestingForce)
	}
	if p.MyosinHeads != 100 {
		t.Errorf("expected 100 myosin heads, got %d", p.MyosinHeads)
	}
}

func TestFiberParamsPartialOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fiber = FiberConfig{FatigueRate: 0.3}

	p := cfg.FiberParams()
	if p.FatigueRate != 0.3 {
		t.Errorf("expected fatigue rate 0.3, got %f", p.FatigueRate)
	}
	if p.RestingForce != 0.2 {
		t.Errorf("unset fields should keep defaults, got resting %f", p.RestingForce)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Drive = "spasm"
	cfg.Seed = 7
	cfg.Spasm.Probability = 0.05

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Drive != "spasm" {
		t.Errorf("expected drive spasm, got %s", loaded.Drive)
	}
	if loaded.Seed != 7 {
		t.Errorf("expected seed 7, got %d", loaded.Seed)
	}
	if loaded.Spasm.Probability != 0.05 {
		t.Errorf("expected probability 0.05, got %f", loaded.Spasm.Probability)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("drive: breathing\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Drive != "breathing" {
		t.Errorf("expected drive breathing, got %s", cfg.Drive)
	}
	if cfg.Ticks != DefaultTicks {
		t.Errorf("expected default ticks, got %d", cfg.Ticks)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFillDriveDefaults(t *testing.T) {
	cfg := *GetPreset("calm")
	cfg.FillDriveDefaults()

	if cfg.Breathing.Amplitude != 0.4 || cfg.Breathing.Period != 10.0 {
		t.Errorf("expected default breathing section, got %+v", cfg.Breathing)
	}
	if cfg.Spasm.Probability != 0.02 || cfg.Spasm.Burst != 0.8 {
		t.Errorf("expected default spasm section, got %+v", cfg.Spasm)
	}
}

func TestFillDriveDefaultsKeepsExplicitSections(t *testing.T) {
	cfg := *GetPreset("fatigue")
	cfg.FillDriveDefaults()

	if cfg.Breathing.Amplitude != 0.9 || cfg.Breathing.Period != 4.0 {
		t.Errorf("explicit breathing section must survive, got %+v", cfg.Breathing)
	}
}

func TestBuildGraphDefault(t *testing.T) {
	g, err := DefaultConfig().BuildGraph()
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 26 {
		t.Errorf("expected 26 nodes, got %d", g.Len())
	}
}

func TestBuildGraphOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Graph = &GraphConfig{
		Order: "ab",
		Neighbors: map[string][]string{
			"a": {"b"},
			"b": {"a"},
		},
		Positions: map[string]PointConfig{
			"a": {X: 0, Y: 0},
			"b": {X: 1, Y: 0},
		},
	}

	g, err := cfg.BuildGraph()
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 2 {
		t.Errorf("expected 2 nodes, got %d", g.Len())
	}
	if nbs := g.Neighbors('a'); len(nbs) != 1 || nbs[0] != 'b' {
		t.Errorf("unexpected neighbors for a: %v", nbs)
	}
}

func TestBuildGraphInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Graph = &GraphConfig{
		Order: "a",
		Neighbors: map[string][]string{
			"a": {"z"},
		},
	}

	if _, err := cfg.BuildGraph(); err == nil {
		t.Error("expected error for unknown neighbor reference")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("breathing")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Breathing.Period != 10.0 {
		t.Errorf("expected period 10, got %f", cfg.Breathing.Period)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != 4 {
		t.Errorf("expected 4 presets, got %d", len(names))
	}
}
