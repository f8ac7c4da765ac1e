package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Model != "full" {
		t.Errorf("default model = %q, want full", cfg.Model)
	}
	if cfg.Cosmology.T0 != DefaultT0 {
		t.Errorf("default T0 = %g, want %g", cfg.Cosmology.T0, DefaultT0)
	}
	if cfg.Cosmology.W0 != -1 {
		t.Errorf("default w0 = %g, want -1", cfg.Cosmology.W0)
	}
	if cfg.Stride != DefaultStride {
		t.Errorf("default stride = %d, want %d", cfg.Stride, DefaultStride)
	}
	if cfg.Injection.PAnn != 0 || cfg.Injection.PDec != 0 {
		t.Error("default config should have no injection channels")
	}
}

func TestConfigInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cosmology.OBh2 = 0.023
	cfg.Injection.PAnn = 1e-6

	in := cfg.Input()
	if in.OBh2 != 0.023 {
		t.Errorf("input OBh2 = %g, want 0.023", in.OBh2)
	}
	if in.T0 != DefaultT0 {
		t.Errorf("input T0 = %g, want %g", in.T0, DefaultT0)
	}
	if in.PAnn != 1e-6 {
		t.Errorf("input PAnn = %g, want 1e-6", in.PAnn)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")

	cfg := DefaultConfig()
	cfg.Model = "recfast"
	cfg.Cosmology.YHe = 0.25
	cfg.Cosmology.WA = 0.1
	cfg.Injection.PDec = 1e-25
	cfg.Stride = 4

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got.Model != "recfast" {
		t.Errorf("model = %q, want recfast", got.Model)
	}
	if got.Cosmology.YHe != 0.25 {
		t.Errorf("YHe = %g, want 0.25", got.Cosmology.YHe)
	}
	if got.Cosmology.WA != 0.1 {
		t.Errorf("WA = %g, want 0.1", got.Cosmology.WA)
	}
	if got.Injection.PDec != 1e-25 {
		t.Errorf("PDec = %g, want 1e-25", got.Injection.PDec)
	}
	if got.Stride != 4 {
		t.Errorf("stride = %d, want 4", got.Stride)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")
	if err := os.WriteFile(path, []byte("model: peebles\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Model != "peebles" {
		t.Errorf("model = %q, want peebles", cfg.Model)
	}
	if cfg.Cosmology.OBh2 != DefaultOBh2 {
		t.Errorf("OBh2 = %g, want default %g", cfg.Cosmology.OBh2, DefaultOBh2)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("no presets registered")
	}
	for i := 1; i < len(names); i++ {
		if names[i] <= names[i-1] {
			t.Errorf("preset names not sorted: %v", names)
		}
	}
	for _, name := range names {
		p := GetPreset(name)
		if p == nil {
			t.Fatalf("listed preset %q not found", name)
		}
		if p.Cosmology.T0 <= 0 {
			t.Errorf("preset %q has no CMB temperature", name)
		}
	}
	if GetPreset("planck") == nil {
		t.Error("planck preset missing")
	}
	if GetPreset("no-such-preset") != nil {
		t.Error("unknown preset should return nil")
	}
}

func TestGetPresetReturnsCopy(t *testing.T) {
	p := GetPreset("planck")
	p.Cosmology.OBh2 = 0.5
	p.Model = "peebles"
	if again := GetPreset("planck"); again.Cosmology.OBh2 == 0.5 || again.Model == "peebles" {
		t.Error("mutating a preset leaked into the shared table")
	}
}
