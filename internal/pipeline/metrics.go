package pipeline

import (
	"errors"
	"math"

	"github.com/h-gmc/ev-charging/internal/engine"
	"github.com/h-gmc/ev-charging/internal/model"
)

// Metrics summarises in-sample fit quality.
type Metrics struct {
	RMSE float64
	MAE  float64
	MAPE float64
}

// fitMetrics predicts over the training timestamps and compares against the
// observed values.
func fitMetrics(eng engine.Engine, actual model.TrainingSet) (Metrics, error) {
	if len(actual) == 0 {
		return Metrics{}, errors.New("no samples")
	}
	fitted, err := eng.Predict(model.Horizon(actual.Timestamps()))
	if err != nil {
		return Metrics{}, err
	}
	if len(fitted) != len(actual) {
		return Metrics{}, errors.New("fitted series misaligned with training set")
	}

	var sqSum, absSum, pctSum float64
	for i, s := range actual {
		diff := fitted[i].Point - s.Value
		sqSum += diff * diff
		absSum += math.Abs(diff)
		pctSum += math.Abs(diff / s.Value) // values are strictly positive
	}
	n := float64(len(actual))
	return Metrics{
		RMSE: math.Sqrt(sqSum / n),
		MAE:  absSum / n,
		MAPE: pctSum / n * 100,
	}, nil
}
