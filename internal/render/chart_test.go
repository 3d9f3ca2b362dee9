package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/h-gmc/ev-charging/internal/model"
)

func testSeries(n int, value func(i int) float64) model.TrainingSet {
	ts := make(model.TrainingSet, n)
	for i := 0; i < n; i++ {
		ts[i] = model.Sample{Timestamp: 1700000000 + int64(i)*3600, Value: value(i)}
	}
	return ts
}

func testOpts(t *testing.T) ChartOptions {
	t.Helper()
	return ChartOptions{
		Title:      "test",
		OutputPath: filepath.Join(t.TempDir(), "chart.png"),
		WidthPx:    900,
		HeightPx:   600,
	}
}

func predictions(h model.Horizon, v float64) []model.ForecastPoint {
	out := make([]model.ForecastPoint, len(h))
	for i, ts := range h {
		out[i] = model.ForecastPoint{Timestamp: ts, Point: v}
	}
	return out
}

func TestChart_WritesArtifact(t *testing.T) {
	actual := testSeries(48, func(i int) float64 { return 100 + float64(i) })
	h := model.Horizon{1700000000 + 49*3600, 1700000000 + 50*3600}
	opts := testOpts(t)

	if err := Chart(actual, predictions(h, 120), h, opts); err != nil {
		t.Fatalf("render: %v", err)
	}
	info, err := os.Stat(opts.OutputPath)
	if err != nil {
		t.Fatalf("artifact missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("artifact is empty")
	}
}

func TestChart_DegenerateActualRange(t *testing.T) {
	actual := testSeries(48, func(int) float64 { return 42.0 })
	h := model.Horizon{1700000000 + 49*3600}

	if err := Chart(actual, predictions(h, 42), h, testOpts(t)); err != nil {
		t.Fatalf("all-equal actual values must still render: %v", err)
	}
}

func TestChart_InputErrors(t *testing.T) {
	opts := testOpts(t)
	h := model.Horizon{1, 2, 3}

	if err := Chart(nil, predictions(h, 1), h, opts); err == nil {
		t.Error("expected error for empty actual series")
	}

	actual := testSeries(10, func(i int) float64 { return float64(i + 1) })
	if err := Chart(actual, predictions(h[:2], 1), h, opts); err == nil {
		t.Error("expected error for prediction/horizon length mismatch")
	}
}

func TestPad(t *testing.T) {
	lo, hi := pad(5, 10)
	if lo != 5 || hi != 10 {
		t.Errorf("non-degenerate range must be unchanged, got %f..%f", lo, hi)
	}
	lo, hi = pad(42, 42)
	if hi-lo <= 0 {
		t.Errorf("degenerate range must be widened, got %f..%f", lo, hi)
	}
	lo, hi = pad(0, 0)
	if hi-lo < 1 {
		t.Errorf("zero range must widen by at least the minimum span, got %f..%f", lo, hi)
	}
}
