package model

// Sample is one observed demand reading, timestamp in unix seconds.
type Sample struct {
	Timestamp int64
	Value     float64
}

// TrainingSet holds accepted samples in input order. Timestamps are assumed
// non-decreasing; the engine rejects series that violate this at fit time.
type TrainingSet []Sample

// Timestamps returns the sample timestamps as a new slice.
func (ts TrainingSet) Timestamps() []int64 {
	out := make([]int64, len(ts))
	for i, s := range ts {
		out[i] = s.Timestamp
	}
	return out
}

// Values returns the sample values as a new slice.
func (ts TrainingSet) Values() []float64 {
	out := make([]float64, len(ts))
	for i, s := range ts {
		out[i] = s.Value
	}
	return out
}

// Last returns the most recent sample. The pipeline only calls this after
// the minimum-count check, so ts is never empty there.
func (ts TrainingSet) Last() Sample {
	if len(ts) == 0 {
		return Sample{}
	}
	return ts[len(ts)-1]
}

// Horizon is an ordered sequence of future unix-second timestamps.
type Horizon []int64

// Last returns the final horizon timestamp, or 0 for an empty horizon.
func (h Horizon) Last() int64 {
	if len(h) == 0 {
		return 0
	}
	return h[len(h)-1]
}

// ForecastPoint is the engine's estimate for one horizon entry. Lower and
// Upper are nil when the engine does not produce interval bounds.
type ForecastPoint struct {
	Timestamp int64
	Point     float64
	Lower     *float64
	Upper     *float64
}
