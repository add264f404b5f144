// Package ingest adapts delimited-text input into raw order instructions.
// Parsing stops at field splitting; all value interpretation belongs to the
// validator.
package ingest

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/crocusx/crocus/pkg/core/order"
)

// Source yields instructions lazily, one per input row, with the row's
// origin index already assigned. Next returns io.EOF once exhausted.
type Source interface {
	Next() (order.Instruction, error)
}

const fieldCount = 5 // client, instrument, side, quantity, price

type CSVSource struct {
	r      *csv.Reader
	closer io.Closer
	origin uint64
	header bool
}

// Open opens a CSV file for ingestion. This is the run's only fatal failure
// path: if the source cannot be opened, no report is produced at all.
func Open(path string) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open input %s", path)
	}
	s := NewCSVSource(f)
	s.closer = f
	return s, nil
}

// NewCSVSource reads instructions from r. The first row is treated as a
// header and skipped.
func NewCSVSource(r io.Reader) *CSVSource {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return &CSVSource{r: cr}
}

func (s *CSVSource) Next() (order.Instruction, error) {
	for {
		rec, err := s.r.Read()
		if err == io.EOF {
			return order.Instruction{}, io.EOF
		}
		if err != nil {
			return order.Instruction{}, errors.Wrap(err, "read input row")
		}
		if !s.header {
			s.header = true
			continue
		}

		// Short rows validate as missing fields; extra columns are ignored.
		fields := make([]string, fieldCount)
		copy(fields, rec)

		s.origin++
		return order.Instruction{
			Origin:     s.origin,
			Client:     fields[0],
			Instrument: fields[1],
			SideText:   fields[2],
			QtyText:    fields[3],
			PriceText:  fields[4],
		}, nil
	}
}

func (s *CSVSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
