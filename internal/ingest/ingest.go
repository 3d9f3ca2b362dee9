// Package ingest turns raw tabular rows into an ordered training set.
package ingest

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/h-gmc/ev-charging/internal/model"
)

// ErrEmptyDataset is returned when no row survives parsing and filtering.
var ErrEmptyDataset = errors.New("no valid rows in input")

// Ingestor extracts timestamp/value pairs from fixed column positions.
// Rows that fail to parse, or carry a non-positive value, are skipped with
// a diagnostic; they never abort the run.
type Ingestor struct {
	TimestampColumn int
	ValueColumn     int
	TimeLayout      string
	Location        *time.Location
}

// New creates an Ingestor. A nil location defaults to local wall-clock time,
// matching the naive timestamps in the input.
func New(tsCol, valCol int, layout string, loc *time.Location) *Ingestor {
	if loc == nil {
		loc = time.Local
	}
	return &Ingestor{
		TimestampColumn: tsCol,
		ValueColumn:     valCol,
		TimeLayout:      layout,
		Location:        loc,
	}
}

// Ingest reads all records from src and returns accepted samples in row order.
func (ing *Ingestor) Ingest(src Source) (model.TrainingSet, error) {
	records, err := src.Records()
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", src.Name(), err)
	}

	var samples model.TrainingSet
	skipped := 0
	for i, rec := range records {
		if ing.TimestampColumn >= len(rec) || ing.ValueColumn >= len(rec) {
			log.Printf("[WARN] skipping row %d: only %d fields", i+1, len(rec))
			skipped++
			continue
		}
		tsStr := strings.TrimSpace(rec[ing.TimestampColumn])
		valStr := strings.TrimSpace(rec[ing.ValueColumn])

		ts, tsErr := time.ParseInLocation(ing.TimeLayout, tsStr, ing.Location)
		val, valErr := strconv.ParseFloat(valStr, 64)
		if tsErr != nil || valErr != nil || val <= 0 {
			log.Printf("[WARN] skipping invalid row %d: %q | %q", i+1, tsStr, valStr)
			skipped++
			continue
		}

		samples = append(samples, model.Sample{Timestamp: ts.Unix(), Value: val})
	}

	if skipped > 0 {
		log.Printf("[INFO] ingested %d samples from %s (%d rows skipped)", len(samples), src.Name(), skipped)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("ingest %s: %w", src.Name(), ErrEmptyDataset)
	}
	return samples, nil
}
