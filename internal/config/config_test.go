package config

import (
	"path/filepath"
	"testing"

	"github.com/san-kum/cellsim/internal/symb"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "spme" {
		t.Errorf("expected model spme, got %s", cfg.Model)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if len(cfg.Outputs) == 0 {
		t.Error("expected default outputs")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("spme", "2c")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.CRate != 2.0 {
		t.Errorf("expected c-rate 2.0, got %f", cfg.CRate)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg := GetPreset("spme", "nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg = GetPreset("nonexistent", "1c")
	if cfg != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("spm")
	if len(presets) == 0 {
		t.Error("expected presets for spm")
	}

	presets = ListPresets("nonexistent")
	if presets != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestMeshSpec(t *testing.T) {
	cfg := GetPreset("spme", "fine")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	spec := cfg.MeshSpec()
	if spec[symb.NegativeElectrode] != 40 {
		t.Errorf("expected 40 points, got %d", spec[symb.NegativeElectrode])
	}

	if DefaultConfig().MeshSpec() != nil {
		t.Error("expected nil spec when no overrides set")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := DefaultConfig()
	cfg.CRate = 1.5
	cfg.Model = "spm"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.CRate != 1.5 {
		t.Errorf("expected c-rate 1.5, got %f", loaded.CRate)
	}
	if loaded.Model != "spm" {
		t.Errorf("expected model spm, got %s", loaded.Model)
	}
}
