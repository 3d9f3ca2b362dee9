package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load with missing file: %v", err)
	}
	if cfg.Forecast.MinSamples != 30 {
		t.Errorf("expected default min_samples 30, got %d", cfg.Forecast.MinSamples)
	}
	if cfg.Forecast.HorizonSteps != 168 {
		t.Errorf("expected default horizon_steps 168, got %d", cfg.Forecast.HorizonSteps)
	}
	if cfg.Forecast.StepSeconds != 3600 {
		t.Errorf("expected default step_seconds 3600, got %d", cfg.Forecast.StepSeconds)
	}
	if cfg.Input.TimestampColumn != 1 || cfg.Input.ValueColumn != 7 {
		t.Errorf("unexpected default columns: ts=%d value=%d", cfg.Input.TimestampColumn, cfg.Input.ValueColumn)
	}
	if cfg.Input.TimeLayout != "2006-01-02 15:04" {
		t.Errorf("unexpected default time layout: %q", cfg.Input.TimeLayout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
input:
  path: history.csv
  timestamp_column: 0
  value_column: 2
forecast:
  horizon_steps: 24
chart:
  output_path: out.png
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FORECAST_OUTPUT", "override.png")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Input.Path != "history.csv" {
		t.Errorf("expected input path from file, got %q", cfg.Input.Path)
	}
	if cfg.Input.TimestampColumn != 0 || cfg.Input.ValueColumn != 2 {
		t.Errorf("expected columns 0/2, got %d/%d", cfg.Input.TimestampColumn, cfg.Input.ValueColumn)
	}
	if cfg.Forecast.HorizonSteps != 24 {
		t.Errorf("expected horizon_steps 24, got %d", cfg.Forecast.HorizonSteps)
	}
	if cfg.Chart.OutputPath != "override.png" {
		t.Errorf("env override should win, got %q", cfg.Chart.OutputPath)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"same columns", func(c *Config) { c.Input.ValueColumn = c.Input.TimestampColumn }},
		{"negative horizon", func(c *Config) { c.Forecast.HorizonSteps = -1 }},
		{"zero step", func(c *Config) { c.Forecast.StepSeconds = -5 }},
		{"interval width out of range", func(c *Config) { c.Forecast.IntervalWidth = 1.5 }},
		{"zero canvas", func(c *Config) { c.Chart.WidthPx = -900 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
