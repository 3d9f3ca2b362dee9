// Package pipeline sequences one forecast run: ingest, validate, fit,
// predict, report, render, record. The first failing stage aborts the run
// and its error propagates unchanged.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/h-gmc/ev-charging/internal/config"
	"github.com/h-gmc/ev-charging/internal/engine"
	"github.com/h-gmc/ev-charging/internal/horizon"
	"github.com/h-gmc/ev-charging/internal/ingest"
	"github.com/h-gmc/ev-charging/internal/model"
	"github.com/h-gmc/ev-charging/internal/recorder"
	"github.com/h-gmc/ev-charging/internal/render"
)

// ErrInsufficientData is returned when the training set is smaller than the
// configured minimum.
var ErrInsufficientData = errors.New("insufficient training data")

// Pipeline wires a source, an engine, and a recorder into one forecast run.
type Pipeline struct {
	Cfg      *config.Config
	Source   ingest.Source
	Engine   engine.Engine
	Recorder recorder.Recorder
	// Out receives the per-point report; defaults to stdout.
	Out io.Writer
}

// New creates a Pipeline with the given collaborators.
func New(cfg *config.Config, src ingest.Source, eng engine.Engine, rec recorder.Recorder) *Pipeline {
	return &Pipeline{Cfg: cfg, Source: src, Engine: eng, Recorder: rec, Out: os.Stdout}
}

// Run executes one complete forecast.
func (p *Pipeline) Run() error {
	startedAt := time.Now()
	cfg := p.Cfg

	ing := ingest.New(cfg.Input.TimestampColumn, cfg.Input.ValueColumn, cfg.Input.TimeLayout, nil)
	ts, err := ing.Ingest(p.Source)
	if err != nil {
		return err
	}

	if err := validate(ts, cfg.Forecast.MinSamples); err != nil {
		return err
	}
	log.Printf("[INFO] training set: %d samples, %s .. %s",
		len(ts),
		time.Unix(ts[0].Timestamp, 0).Format(cfg.Input.TimeLayout),
		time.Unix(ts.Last().Timestamp, 0).Format(cfg.Input.TimeLayout))

	opts, err := engineOptions(cfg)
	if err != nil {
		return fmt.Errorf("forecast options: %w", err)
	}
	if err := p.Engine.Configure(opts); err != nil {
		return fmt.Errorf("configure engine: %w", err)
	}

	// Fit consumes the training set; keep copies for the chart and metrics.
	last := ts.Last().Timestamp
	actualTimestamps := ts.Timestamps()
	actualValues := ts.Values()

	if err := p.Engine.Fit(ts); err != nil {
		return err
	}

	h, err := horizon.Generate(last, cfg.Forecast.StepSeconds, cfg.Forecast.HorizonSteps)
	if err != nil {
		return fmt.Errorf("generate horizon: %w", err)
	}

	points, err := p.Engine.Predict(h)
	if err != nil {
		return err
	}
	if len(points) != len(h) {
		return &engine.PredictError{Err: fmt.Errorf("engine returned %d points for %d horizon entries", len(points), len(h))}
	}

	p.report(h, points)

	actual := make(model.TrainingSet, len(actualTimestamps))
	for i := range actualTimestamps {
		actual[i] = model.Sample{Timestamp: actualTimestamps[i], Value: actualValues[i]}
	}
	if err := render.Chart(actual, points, h, render.ChartOptions{
		Title:      cfg.Chart.Title,
		OutputPath: cfg.Chart.OutputPath,
		WidthPx:    cfg.Chart.WidthPx,
		HeightPx:   cfg.Chart.HeightPx,
		FullRange:  cfg.Chart.FullRange,
	}); err != nil {
		return err
	}
	log.Printf("[INFO] forecast chart saved to %s", cfg.Chart.OutputPath)

	rec := &recorder.RunRecord{
		StartedAt:   startedAt,
		Source:      p.Source.Name(),
		SampleCount: len(actual),
		Growth:      opts.Growth.String(),
		Seasonality: opts.SeasonalityMode.String(),
		Artifact:    cfg.Chart.OutputPath,
		Points:      points,
	}

	// In-sample fit quality; a metric failure downgrades the record but
	// never the run.
	if m, err := fitMetrics(p.Engine, actual); err != nil {
		log.Printf("[WARN] fit metrics unavailable: %v", err)
	} else {
		rec.RMSE, rec.MAE, rec.MAPE = m.RMSE, m.MAE, m.MAPE
		log.Printf("[INFO] in-sample fit: RMSE=%.3f MAE=%.3f MAPE=%.2f%%", m.RMSE, m.MAE, m.MAPE)
	}

	if err := p.Recorder.RecordRun(rec); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
	return nil
}

// validate enforces the minimum sample-count policy before any modeling work.
func validate(ts model.TrainingSet, min int) error {
	if len(ts) < min {
		return fmt.Errorf("%w: %d samples, need at least %d", ErrInsufficientData, len(ts), min)
	}
	return nil
}

// report prints one line per horizon entry, each paired with its own
// prediction.
func (p *Pipeline) report(h model.Horizon, points []model.ForecastPoint) {
	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintln(out, "Timestamp | Predicted Demand")
	for i := range h {
		fmt.Fprintf(out, "%d | %g\n", h[i], points[i].Point)
	}
}

func engineOptions(cfg *config.Config) (engine.Options, error) {
	growth, err := engine.ParseGrowth(cfg.Forecast.Growth)
	if err != nil {
		return engine.Options{}, err
	}
	mode, err := engine.ParseSeasonalityMode(cfg.Forecast.SeasonalityMode)
	if err != nil {
		return engine.Options{}, err
	}
	daily, err := engine.ParseSeasonalityOption(cfg.Forecast.Daily)
	if err != nil {
		return engine.Options{}, err
	}
	weekly, err := engine.ParseSeasonalityOption(cfg.Forecast.Weekly)
	if err != nil {
		return engine.Options{}, err
	}
	yearly, err := engine.ParseSeasonalityOption(cfg.Forecast.Yearly)
	if err != nil {
		return engine.Options{}, err
	}
	return engine.Options{
		Growth:          growth,
		SeasonalityMode: mode,
		Daily:           daily,
		Weekly:          weekly,
		Yearly:          yearly,
		IntervalWidth:   cfg.Forecast.IntervalWidth,
	}, nil
}
