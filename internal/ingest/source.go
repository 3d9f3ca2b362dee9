package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Source yields raw tabular records for ingestion.
type Source interface {
	Name() string
	Records() ([][]string, error)
}

// CSVSource reads delimited rows from a local file. The file has no header
// row; column meaning is fixed by configuration, not inferred.
type CSVSource struct {
	Path string
}

// NewCSVSource creates a CSVSource for the given path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Name() string { return s.Path }

func (s *CSVSource) Records() ([][]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return records, nil
}

// MockSource returns controllable fixed rows for development and testing.
type MockSource struct {
	Rows [][]string
	Err  error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Records() ([][]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Rows, nil
}
