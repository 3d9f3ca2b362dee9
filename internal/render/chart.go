// Package render draws actual-vs-predicted demand charts.
package render

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/h-gmc/ev-charging/internal/model"
)

// ChartOptions controls the rendered artifact.
type ChartOptions struct {
	Title      string
	OutputPath string
	WidthPx    int
	HeightPx   int
	// FullRange widens the Y axis to cover predicted values as well.
	// Off by default: the Y axis spans actual values only, so predicted
	// excursions beyond that range are clipped.
	FullRange bool
}

var (
	actualColor    = color.RGBA{B: 255, A: 255}
	predictedColor = color.RGBA{R: 255, A: 255}
)

// Chart renders the actual and predicted series to a PNG file.
func Chart(actual model.TrainingSet, predicted []model.ForecastPoint, h model.Horizon, opts ChartOptions) error {
	if len(actual) == 0 {
		return errors.New("render: no actual samples to draw")
	}
	if len(predicted) != len(h) {
		return fmt.Errorf("render: %d predictions for %d horizon entries", len(predicted), len(h))
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Time"
	p.Y.Label.Text = "Demand (Wh)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "01-02 15:04"}
	p.Legend.Top = true

	actualLine, err := plotter.NewLine(seriesXYs(actual.Timestamps(), actual.Values()))
	if err != nil {
		return fmt.Errorf("render actual series: %w", err)
	}
	actualLine.Color = actualColor

	predValues := make([]float64, len(predicted))
	for i, pt := range predicted {
		predValues[i] = pt.Point
	}
	predictedLine, err := plotter.NewLine(seriesXYs([]int64(h), predValues))
	if err != nil {
		return fmt.Errorf("render predicted series: %w", err)
	}
	predictedLine.Color = predictedColor

	p.Add(actualLine, predictedLine)
	p.Legend.Add("Actual Demand", actualLine)
	p.Legend.Add("Predicted Demand", predictedLine)

	// X spans first actual observation through the later of the last
	// horizon entry and the last actual observation.
	p.X.Min = float64(actual[0].Timestamp)
	xMax := actual.Last().Timestamp
	if last := h.Last(); last > xMax {
		xMax = last
	}
	p.X.Max = float64(xMax)

	yMin, yMax := floats.Min(actual.Values()), floats.Max(actual.Values())
	if opts.FullRange && len(predValues) > 0 {
		if m := floats.Min(predValues); m < yMin {
			yMin = m
		}
		if m := floats.Max(predValues); m > yMax {
			yMax = m
		}
	}
	p.Y.Min, p.Y.Max = pad(yMin, yMax)

	w := vg.Length(opts.WidthPx) * vg.Inch / 96
	ht := vg.Length(opts.HeightPx) * vg.Inch / 96
	if err := p.Save(w, ht, opts.OutputPath); err != nil {
		return fmt.Errorf("save chart %s: %w", opts.OutputPath, err)
	}
	return nil
}

// pad widens a degenerate (all-equal) value range to a minimal non-zero
// span so the axis remains drawable.
func pad(min, max float64) (float64, float64) {
	if min < max {
		return min, max
	}
	span := 1.0
	if v := min * 0.05; v > span {
		span = v
	} else if v := -min * 0.05; v > span {
		span = v
	}
	return min - span, max + span
}

func seriesXYs(ts []int64, values []float64) plotter.XYs {
	xys := make(plotter.XYs, len(values))
	for i := range values {
		xys[i].X = float64(ts[i])
		xys[i].Y = values[i]
	}
	return xys
}
