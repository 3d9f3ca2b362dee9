// Package horizon generates future timestamp sequences for prediction.
package horizon

import (
	"errors"

	"github.com/h-gmc/ev-charging/internal/model"
)

// Generate returns count future timestamps spaced step seconds apart,
// starting one step after last. Deterministic, no side effects.
func Generate(last, step int64, count int) (model.Horizon, error) {
	if step <= 0 {
		return nil, errors.New("step must be positive")
	}
	if count <= 0 {
		return nil, errors.New("count must be positive")
	}
	h := make(model.Horizon, count)
	for i := 0; i < count; i++ {
		h[i] = last + int64(i+1)*step
	}
	return h, nil
}
