// Package engine defines the forecasting capability boundary. The pipeline
// only depends on the Engine interface; any compliant backend can be
// substituted.
package engine

import (
	"fmt"

	"github.com/h-gmc/ev-charging/internal/model"
)

// Growth selects the trend curve fitted by the engine.
type Growth int

const (
	GrowthLinear Growth = iota
	GrowthLogistic
	GrowthFlat
)

func (g Growth) String() string {
	switch g {
	case GrowthLogistic:
		return "logistic"
	case GrowthFlat:
		return "flat"
	default:
		return "linear"
	}
}

// SeasonalityMode selects how seasonal effects combine with the trend.
type SeasonalityMode int

const (
	SeasonalityAdditive SeasonalityMode = iota
	SeasonalityMultiplicative
)

func (m SeasonalityMode) String() string {
	if m == SeasonalityMultiplicative {
		return "multiplicative"
	}
	return "additive"
}

// SeasonalityOption toggles one seasonal component. The zero value is Auto,
// which leaves the decision to the engine.
type SeasonalityOption struct {
	Manual  bool
	Enabled bool
}

// Auto lets the engine decide whether to model the component.
func Auto() SeasonalityOption { return SeasonalityOption{} }

// Manual forces the component on or off.
func Manual(on bool) SeasonalityOption { return SeasonalityOption{Manual: true, Enabled: on} }

// Options configures an engine before fitting.
type Options struct {
	Growth          Growth
	SeasonalityMode SeasonalityMode
	Daily           SeasonalityOption
	Weekly          SeasonalityOption
	Yearly          SeasonalityOption
	IntervalWidth   float64
}

// DefaultOptions matches the hourly charging-demand profile: linear trend,
// multiplicative seasonality, daily and weekly components on, yearly off.
func DefaultOptions() Options {
	return Options{
		Growth:          GrowthLinear,
		SeasonalityMode: SeasonalityMultiplicative,
		Daily:           Manual(true),
		Weekly:          Manual(true),
		Yearly:          Manual(false),
		IntervalWidth:   0.8,
	}
}

// Engine is the consumed forecasting capability: configure, fit, predict.
type Engine interface {
	Configure(opts Options) error
	// Fit consumes the training set; callers must not reuse it afterward.
	Fit(ts model.TrainingSet) error
	// Predict returns exactly one point per horizon entry, order-aligned.
	Predict(h model.Horizon) ([]model.ForecastPoint, error)
}

// FitError reports a model fit failure, including structurally invalid input.
type FitError struct {
	Err error
}

func (e *FitError) Error() string { return "fit: " + e.Err.Error() }
func (e *FitError) Unwrap() error { return e.Err }

// PredictError reports a prediction failure or a misaligned result.
type PredictError struct {
	Err error
}

func (e *PredictError) Error() string { return "predict: " + e.Err.Error() }
func (e *PredictError) Unwrap() error { return e.Err }

// checkChronology rejects out-of-order or duplicate training timestamps.
// Backend behavior on such input is unspecified, so it is refused up front.
func checkChronology(ts model.TrainingSet) error {
	for i := 1; i < len(ts); i++ {
		if ts[i].Timestamp == ts[i-1].Timestamp {
			return fmt.Errorf("duplicate timestamp %d at row %d", ts[i].Timestamp, i)
		}
		if ts[i].Timestamp < ts[i-1].Timestamp {
			return fmt.Errorf("timestamps not chronological at row %d (%d < %d)", i, ts[i].Timestamp, ts[i-1].Timestamp)
		}
	}
	return nil
}

// ParseGrowth maps a config string to a Growth value.
func ParseGrowth(s string) (Growth, error) {
	switch s {
	case "linear":
		return GrowthLinear, nil
	case "logistic":
		return GrowthLogistic, nil
	case "flat":
		return GrowthFlat, nil
	}
	return GrowthLinear, fmt.Errorf("unknown growth %q", s)
}

// ParseSeasonalityMode maps a config string to a SeasonalityMode value.
func ParseSeasonalityMode(s string) (SeasonalityMode, error) {
	switch s {
	case "additive":
		return SeasonalityAdditive, nil
	case "multiplicative":
		return SeasonalityMultiplicative, nil
	}
	return SeasonalityAdditive, fmt.Errorf("unknown seasonality mode %q", s)
}

// ParseSeasonalityOption maps "auto", "on", or "off" to a toggle.
func ParseSeasonalityOption(s string) (SeasonalityOption, error) {
	switch s {
	case "auto":
		return Auto(), nil
	case "on":
		return Manual(true), nil
	case "off":
		return Manual(false), nil
	}
	return Auto(), fmt.Errorf("unknown seasonality option %q", s)
}
