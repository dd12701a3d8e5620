package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/janekbaraniewski/daytrend/internal/core"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.UI.RefreshIntervalSeconds != 30 {
		t.Errorf("default refresh = %d, want 30", cfg.UI.RefreshIntervalSeconds)
	}
	if cfg.TimeWindow() != core.TimeWindow30d {
		t.Errorf("default window = %s, want 30d", cfg.TimeWindow())
	}
	specs := cfg.MetricSpecs()
	if len(specs) != 3 {
		t.Fatalf("default metrics = %d, want 3", len(specs))
	}
	wantHues := map[core.MetricName]float64{
		core.MetricNutrition:    30,
		core.MetricEnergy:       200,
		core.MetricSatisfaction: 280,
	}
	for _, s := range specs {
		if s.Family.Hue != wantHues[s.Name] {
			t.Errorf("%s hue = %v, want %v", s.Name, s.Family.Hue, wantHues[s.Name])
		}
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UI.RefreshIntervalSeconds != 30 {
		t.Error("should return defaults for missing file")
	}
	if cfg.Chart.Width != defaultChartWidth {
		t.Errorf("chart width = %v, want %v", cfg.Chart.Width, defaultChartWidth)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	content := `{
  "theme": "Nord",
  "window": "7d",
  "ui": {"refresh_interval_seconds": 10},
  "chart": {"width": 300, "height": 100, "padding_top": 5, "padding_bottom": 5},
  "metrics": [
    {"name": " Mood ", "hue": 120},
    {"name": "energy", "label": "Energy", "hue": 200, "saturation": 70},
    {"name": "mood", "hue": 10}
  ]
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Theme != "Nord" {
		t.Errorf("theme = %q, want Nord", cfg.Theme)
	}
	if cfg.TimeWindow() != core.TimeWindow7d {
		t.Errorf("window = %s, want 7d", cfg.Window)
	}
	if cfg.UI.RefreshIntervalSeconds != 10 {
		t.Errorf("refresh = %d, want 10", cfg.UI.RefreshIntervalSeconds)
	}
	frame := cfg.Frame()
	if frame.Width != 300 || frame.Height != 100 || frame.Padding.Top != 5 {
		t.Errorf("frame = %+v", frame)
	}
	if len(cfg.Metrics) != 2 {
		t.Fatalf("metrics = %d, want 2 after dedupe", len(cfg.Metrics))
	}
	mood := cfg.Metrics[0]
	if mood.Name != "mood" || mood.Label != "mood" || mood.Hue != 120 || mood.Saturation != defaultSaturation {
		t.Errorf("mood metric = %+v", mood)
	}
}

func TestLoadFrom_Normalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	content := `{"window": "90d", "theme": "  ", "ui": {"refresh_interval_seconds": -1}, "chart": {"width": 0, "height": 20, "padding_top": 15, "padding_bottom": 15}, "metrics": []}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"window", cfg.Window, "30d"},
		{"theme", cfg.Theme, defaultTheme},
		{"refresh", cfg.UI.RefreshIntervalSeconds, 30},
		{"width", cfg.Chart.Width, float64(defaultChartWidth)},
		{"padding top", cfg.Chart.PaddingTop, 0.0},
		{"metrics", len(cfg.Metrics), 3},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	t.Setenv("DAYTREND_WINDOW", "14d")
	t.Setenv("DAYTREND_DB_PATH", "/tmp/daytrend-env.db")
	t.Setenv("DAYTREND_CHART_WIDTH", "420")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.TimeWindow() != core.TimeWindow14d {
		t.Errorf("window = %s, want 14d", cfg.Window)
	}
	if cfg.DBPath != "/tmp/daytrend-env.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if cfg.Chart.Width != 420 {
		t.Errorf("chart width = %v, want 420", cfg.Chart.Width)
	}
}

func TestLoadFrom_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	cfg, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg.Theme != defaultTheme {
		t.Errorf("theme = %q, want defaults on error", cfg.Theme)
	}
}

func TestSaveThemeAndWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	if err := SaveThemeTo(path, "Dracula"); err != nil {
		t.Fatalf("SaveThemeTo() error: %v", err)
	}
	if err := SaveWindowTo(path, core.TimeWindow14d); err != nil {
		t.Fatalf("SaveWindowTo() error: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Theme != "Dracula" {
		t.Errorf("theme = %q, want Dracula", cfg.Theme)
	}
	if cfg.Window != "14d" {
		t.Errorf("window = %q, want 14d", cfg.Window)
	}
	if len(cfg.Metrics) != 3 {
		t.Errorf("metrics = %d, want 3", len(cfg.Metrics))
	}
}

func TestSaveTheme_IgnoresEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := SaveTo(path, DefaultConfig()); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	t.Setenv("DAYTREND_WINDOW", "7d")
	t.Setenv("DAYTREND_DB_PATH", "/tmp/scratch.db")
	t.Setenv("DAYTREND_CHART_WIDTH", "420")

	if err := SaveThemeTo(path, "Nord"); err != nil {
		t.Fatalf("SaveThemeTo() error: %v", err)
	}
	if err := SaveWindowTo(path, core.TimeWindow14d); err != nil {
		t.Fatalf("SaveWindowTo() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	var onDisk Config
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("decoding config: %v", err)
	}
	if onDisk.Theme != "Nord" {
		t.Errorf("theme = %q, want Nord", onDisk.Theme)
	}
	if onDisk.Window != "14d" {
		t.Errorf("window = %q, want 14d", onDisk.Window)
	}
	if onDisk.DBPath != "" {
		t.Errorf("db_path = %q, env override written to disk", onDisk.DBPath)
	}
	if onDisk.Chart.Width != DefaultConfig().Chart.Width {
		t.Errorf("chart width = %v, env override written to disk", onDisk.Chart.Width)
	}

	// The environment still wins when loading.
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Window != "7d" || cfg.DBPath != "/tmp/scratch.db" {
		t.Errorf("loaded window=%q db_path=%q, want env values", cfg.Window, cfg.DBPath)
	}
}
