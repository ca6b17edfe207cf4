package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"jobseek/internal/extract"
)

// RecordSource yields raw records in input order. Next returns io.EOF when
// the source is exhausted. A *RowReadError rejects one record only.
type RecordSource interface {
	Next() (extract.Record, error)
}

// RowReadError is a single unreadable line in an otherwise readable stream.
type RowReadError struct {
	Err error
}

func (e *RowReadError) Error() string { return "Malformed line: " + e.Err.Error() }
func (e *RowReadError) Unwrap() error { return e.Err }

// CSVSource reads comma-delimited text with a header row. Header matching is
// case-insensitive and columns not listed in the header are ignored.
type CSVSource struct {
	r      *csv.Reader
	header *extract.Header
}

func NewCSVSource(r io.Reader) (*CSVSource, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = false

	cols, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	return &CSVSource{r: cr, header: extract.NewHeader(cols)}, nil
}

func (s *CSVSource) Next() (extract.Record, error) {
	values, err := s.r.Read()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, &RowReadError{Err: pe.Err}
		}
		return nil, err
	}
	return s.header.Row(values), nil
}
