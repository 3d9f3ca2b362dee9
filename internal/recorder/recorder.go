package recorder

import (
	"time"

	"github.com/h-gmc/ev-charging/internal/model"
)

// RunRecord holds everything worth keeping about one completed forecast run.
type RunRecord struct {
	StartedAt   time.Time
	Source      string
	SampleCount int
	Growth      string
	Seasonality string
	Artifact    string
	RMSE        float64
	MAE         float64
	MAPE        float64
	Points      []model.ForecastPoint
}

// Recorder persists forecast run history for later analysis.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
