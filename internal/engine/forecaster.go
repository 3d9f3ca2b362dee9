package engine

import (
	"errors"
	"fmt"
	"math"
	"time"

	forecaster "github.com/aouyang1/go-forecaster"
	"github.com/aouyang1/go-forecaster/forecast"
	"github.com/aouyang1/go-forecaster/timedataset"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/h-gmc/ev-charging/internal/model"
)

const (
	defaultDailyOrders    = 12
	defaultWeeklyOrders   = 6
	defaultResidualWindow = 100
)

// Forecaster adapts github.com/aouyang1/go-forecaster to the Engine
// interface. The backend fits a piecewise-linear trend with Fourier
// seasonality terms, so only linear growth is accepted. Multiplicative
// seasonality is realised by fitting the log-transformed series and
// exponentiating predictions.
type Forecaster struct {
	opts   Options
	fc     *forecaster.Forecaster
	useLog bool
}

// NewForecaster returns an unconfigured adapter with default options.
func NewForecaster() *Forecaster {
	return &Forecaster{opts: DefaultOptions()}
}

// Configure stores the options, rejecting combinations the backend cannot
// express.
func (f *Forecaster) Configure(opts Options) error {
	switch opts.Growth {
	case GrowthLinear:
	default:
		return fmt.Errorf("%s growth is not supported by the go-forecaster backend", opts.Growth)
	}
	if opts.Yearly.Manual && opts.Yearly.Enabled {
		return errors.New("yearly seasonality is not supported by the go-forecaster backend")
	}
	if opts.IntervalWidth <= 0 || opts.IntervalWidth >= 1 {
		return fmt.Errorf("interval width %f must be in (0, 1)", opts.IntervalWidth)
	}
	f.opts = opts
	f.useLog = opts.SeasonalityMode == SeasonalityMultiplicative
	return nil
}

// Fit trains the backend on the given samples. The training set is consumed;
// callers must not reuse it.
func (f *Forecaster) Fit(ts model.TrainingSet) error {
	if len(ts) == 0 {
		return &FitError{Err: errors.New("empty training set")}
	}
	if err := checkChronology(ts); err != nil {
		return &FitError{Err: err}
	}

	t := make([]time.Time, len(ts))
	y := make([]float64, len(ts))
	for i, s := range ts {
		t[i] = time.Unix(s.Timestamp, 0)
		if f.useLog {
			if s.Value <= 0 {
				return &FitError{Err: fmt.Errorf("non-positive value %f at row %d under multiplicative seasonality", s.Value, i)}
			}
			y[i] = math.Log(s.Value)
		} else {
			y[i] = s.Value
		}
	}

	fc, err := forecaster.New(f.backendOptions(len(ts)))
	if err != nil {
		return &FitError{Err: err}
	}
	td, err := timedataset.NewUnivariateDataset(t, y)
	if err != nil {
		return &FitError{Err: err}
	}
	if err := fitBackend(fc, td); err != nil {
		return &FitError{Err: err}
	}
	f.fc = fc
	return nil
}

// fitBackend converts backend panics into plain errors; the engine contract
// promises a FitError, never a crash.
func fitBackend(fc *forecaster.Forecaster, td *timedataset.TimeDataset) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("backend panic: %v", r)
		}
	}()
	return fc.Fit(td)
}

// Predict returns one aligned forecast point per horizon timestamp.
func (f *Forecaster) Predict(h model.Horizon) ([]model.ForecastPoint, error) {
	if f.fc == nil {
		return nil, &PredictError{Err: errors.New("model not fitted")}
	}
	if len(h) == 0 {
		return nil, &PredictError{Err: errors.New("empty horizon")}
	}

	t := make([]time.Time, len(h))
	for i, ts := range h {
		t[i] = time.Unix(ts, 0)
	}
	res, err := predictBackend(f.fc, t)
	if err != nil {
		return nil, &PredictError{Err: err}
	}
	if len(res.Forecast) != len(h) {
		return nil, &PredictError{Err: fmt.Errorf("backend returned %d points for %d horizon entries", len(res.Forecast), len(h))}
	}

	points := make([]model.ForecastPoint, len(h))
	for i := range h {
		p := model.ForecastPoint{Timestamp: h[i], Point: f.untransform(res.Forecast[i])}
		if len(res.Lower) == len(h) && len(res.Upper) == len(h) {
			lo := f.untransform(res.Lower[i])
			hi := f.untransform(res.Upper[i])
			p.Lower, p.Upper = &lo, &hi
		}
		points[i] = p
	}
	return points, nil
}

func predictBackend(fc *forecaster.Forecaster, t []time.Time) (res *forecaster.Results, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("backend panic: %v", r)
		}
	}()
	return fc.Predict(t)
}

func (f *Forecaster) untransform(v float64) float64 {
	if f.useLog {
		return math.Exp(v)
	}
	return v
}

func (f *Forecaster) backendOptions(n int) *forecaster.Options {
	seriesOpts := forecast.NewDefaultOptions()
	seriesOpts.DailyOrders = orders(f.opts.Daily, defaultDailyOrders)
	seriesOpts.WeeklyOrders = orders(f.opts.Weekly, defaultWeeklyOrders)

	// Residual windows larger than the series break the uncertainty fit.
	window := defaultResidualWindow
	if window > n/2 {
		window = n / 2
	}
	if window < 2 {
		window = 2
	}

	// OutlierOptions must be non-nil: the backend dereferences it during
	// fitting even when no outlier passes are requested.
	return &forecaster.Options{
		SeriesOptions:   seriesOpts,
		ResidualOptions: forecast.NewDefaultOptions(),
		OutlierOptions:  forecaster.NewOutlierOptions(),
		ResidualWindow:  window,
		ResidualZscore:  zscore(f.opts.IntervalWidth),
	}
}

// orders maps a seasonality toggle to Fourier order count; Auto keeps the
// backend default.
func orders(opt SeasonalityOption, def int) int {
	if !opt.Manual {
		return def
	}
	if opt.Enabled {
		return def
	}
	return 0
}

// zscore converts a central interval width (e.g. 0.8) to the matching
// standard-normal quantile (e.g. 1.2816).
func zscore(width float64) float64 {
	return distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.5 + width/2)
}
