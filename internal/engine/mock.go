package engine

import (
	"errors"

	"github.com/h-gmc/ev-charging/internal/model"
)

// MockEngine returns controllable results for development and testing.
type MockEngine struct {
	ConfigureErr error
	FitErr       error
	PredictErr   error
	// PointFn computes the predicted value for a horizon timestamp.
	// Defaults to a constant 1.0.
	PointFn func(ts int64) float64
	// Extra pads the result with this many additional points to simulate a
	// misbehaving backend.
	Extra int

	Opts   Options
	Fitted model.TrainingSet
}

func (m *MockEngine) Configure(opts Options) error {
	if m.ConfigureErr != nil {
		return m.ConfigureErr
	}
	m.Opts = opts
	return nil
}

func (m *MockEngine) Fit(ts model.TrainingSet) error {
	if m.FitErr != nil {
		return &FitError{Err: m.FitErr}
	}
	if err := checkChronology(ts); err != nil {
		return &FitError{Err: err}
	}
	m.Fitted = ts
	return nil
}

func (m *MockEngine) Predict(h model.Horizon) ([]model.ForecastPoint, error) {
	if m.PredictErr != nil {
		return nil, &PredictError{Err: m.PredictErr}
	}
	if m.Fitted == nil {
		return nil, &PredictError{Err: errors.New("model not fitted")}
	}
	fn := m.PointFn
	if fn == nil {
		fn = func(int64) float64 { return 1.0 }
	}
	points := make([]model.ForecastPoint, 0, len(h)+m.Extra)
	for _, ts := range h {
		points = append(points, model.ForecastPoint{Timestamp: ts, Point: fn(ts)})
	}
	for i := 0; i < m.Extra; i++ {
		points = append(points, model.ForecastPoint{})
	}
	return points, nil
}
