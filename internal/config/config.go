package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Input struct {
		Path            string `yaml:"path"`
		TimestampColumn int    `yaml:"timestamp_column"`
		ValueColumn     int    `yaml:"value_column"`
		TimeLayout      string `yaml:"time_layout"`
	} `yaml:"input"`
	Forecast struct {
		MinSamples      int     `yaml:"min_samples"`
		HorizonSteps    int     `yaml:"horizon_steps"`
		StepSeconds     int64   `yaml:"step_seconds"`
		Growth          string  `yaml:"growth"`
		SeasonalityMode string  `yaml:"seasonality_mode"`
		Daily           string  `yaml:"daily_seasonality"`
		Weekly          string  `yaml:"weekly_seasonality"`
		Yearly          string  `yaml:"yearly_seasonality"`
		IntervalWidth   float64 `yaml:"interval_width"`
	} `yaml:"forecast"`
	Chart struct {
		OutputPath string `yaml:"output_path"`
		Title      string `yaml:"title"`
		WidthPx    int    `yaml:"width_px"`
		HeightPx   int    `yaml:"height_px"`
		FullRange  bool   `yaml:"full_range"`
	} `yaml:"chart"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Input.TimestampColumn = -1
	cfg.Input.ValueColumn = -1

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FORECAST_INPUT"); v != "" {
		cfg.Input.Path = v
	}
	if v := os.Getenv("FORECAST_OUTPUT"); v != "" {
		cfg.Chart.OutputPath = v
	}
	if v := os.Getenv("FORECAST_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("FORECAST_HORIZON_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Forecast.HorizonSteps = n
		}
	}

	// Defaults
	if cfg.Input.Path == "" {
		cfg.Input.Path = "data/site_data.csv"
	}
	if cfg.Input.TimestampColumn < 0 {
		cfg.Input.TimestampColumn = 1
	}
	if cfg.Input.ValueColumn < 0 {
		cfg.Input.ValueColumn = 7
	}
	if cfg.Input.TimeLayout == "" {
		cfg.Input.TimeLayout = "2006-01-02 15:04"
	}
	if cfg.Forecast.MinSamples == 0 {
		cfg.Forecast.MinSamples = 30
	}
	if cfg.Forecast.HorizonSteps == 0 {
		cfg.Forecast.HorizonSteps = 168
	}
	if cfg.Forecast.StepSeconds == 0 {
		cfg.Forecast.StepSeconds = 3600
	}
	if cfg.Forecast.Growth == "" {
		cfg.Forecast.Growth = "linear"
	}
	if cfg.Forecast.SeasonalityMode == "" {
		cfg.Forecast.SeasonalityMode = "multiplicative"
	}
	if cfg.Forecast.Daily == "" {
		cfg.Forecast.Daily = "on"
	}
	if cfg.Forecast.Weekly == "" {
		cfg.Forecast.Weekly = "on"
	}
	if cfg.Forecast.Yearly == "" {
		cfg.Forecast.Yearly = "off"
	}
	if cfg.Forecast.IntervalWidth == 0 {
		cfg.Forecast.IntervalWidth = 0.8
	}
	if cfg.Chart.OutputPath == "" {
		cfg.Chart.OutputPath = "forecast.png"
	}
	if cfg.Chart.Title == "" {
		cfg.Chart.Title = "EV Charging Demand Forecast"
	}
	if cfg.Chart.WidthPx == 0 {
		cfg.Chart.WidthPx = 900
	}
	if cfg.Chart.HeightPx == 0 {
		cfg.Chart.HeightPx = 600
	}

	return cfg, nil
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("input.path is required")
	}
	if c.Input.TimestampColumn < 0 || c.Input.ValueColumn < 0 {
		return fmt.Errorf("input column indices must be non-negative")
	}
	if c.Input.TimestampColumn == c.Input.ValueColumn {
		return fmt.Errorf("input.timestamp_column and input.value_column must differ")
	}
	if c.Forecast.MinSamples <= 0 {
		return fmt.Errorf("forecast.min_samples must be positive")
	}
	if c.Forecast.HorizonSteps <= 0 {
		return fmt.Errorf("forecast.horizon_steps must be positive")
	}
	if c.Forecast.StepSeconds <= 0 {
		return fmt.Errorf("forecast.step_seconds must be positive")
	}
	if c.Forecast.IntervalWidth <= 0 || c.Forecast.IntervalWidth >= 1 {
		return fmt.Errorf("forecast.interval_width must be in (0, 1)")
	}
	if c.Chart.WidthPx <= 0 || c.Chart.HeightPx <= 0 {
		return fmt.Errorf("chart dimensions must be positive")
	}
	return nil
}
