package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/h-gmc/ev-charging/internal/model"
)

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	lower, upper := 9.5, 12.5
	rec := &RunRecord{
		StartedAt:   time.Now(),
		Source:      "data/site_data.csv",
		SampleCount: 40,
		Growth:      "linear",
		Seasonality: "multiplicative",
		Artifact:    "forecast.png",
		RMSE:        1.5,
		MAE:         1.1,
		MAPE:        4.2,
		Points: []model.ForecastPoint{
			{Timestamp: 1700003600, Point: 11.0, Lower: &lower, Upper: &upper},
			{Timestamp: 1700007200, Point: 12.0},
		},
	}
	if err := r.RecordRun(rec); err != nil {
		t.Fatalf("record: %v", err)
	}

	var runs, points int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&runs); err != nil {
		t.Fatal(err)
	}
	if err := r.db.QueryRow("SELECT COUNT(*) FROM forecast_points").Scan(&points); err != nil {
		t.Fatal(err)
	}
	if runs != 1 || points != 2 {
		t.Errorf("expected 1 run with 2 points, got %d/%d", runs, points)
	}

	var horizonLen int
	if err := r.db.QueryRow("SELECT horizon_len FROM runs").Scan(&horizonLen); err != nil {
		t.Fatal(err)
	}
	if horizonLen != 2 {
		t.Errorf("expected horizon_len 2, got %d", horizonLen)
	}
}
