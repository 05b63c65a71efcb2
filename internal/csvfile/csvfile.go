// Package csvfile encodes and decodes one record table as a ';'-separated
// text file: a header row of field names in schema order, then one row per
// record. Values containing the separator, a quote or a line break are
// quoted; nothing else is. A quoted CRLF reads back as LF, which is why
// types.Text stores text with LF line breaks.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

// Separator is the field separator of every table file.
const Separator = ';'

// Encode writes the header and every record of kind to w.
// Output depends only on the records, so repeated encodes are byte-identical.
func Encode(w io.Writer, kind types.Kind, records []types.Record) error {
	s, err := types.SchemaFor(kind)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Comma = Separator
	if err := cw.Write(s.Names()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, rec := range records {
		if rec.Kind() != kind {
			return fmt.Errorf("row %d: %w: %s record in %s table", i+1, types.ErrKindMismatch, rec.Kind(), kind)
		}
		if err := cw.Write(rec.Strings()); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode reads a table of kind from r. The header must list exactly the
// schema's field names in order. Every failure wraps types.ErrFormat;
// a wrong header also wraps types.ErrHeaderMismatch.
func Decode(r io.Reader, kind types.Kind) ([]types.Record, error) {
	s, err := types.SchemaFor(kind)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(r)
	cr.Comma = Separator
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header row", types.ErrFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrFormat, err)
	}
	want := s.Names()
	if !slices.Equal(header, want) {
		return nil, fmt.Errorf("%w: %w: got %v, want %v", types.ErrFormat, types.ErrHeaderMismatch, header, want)
	}

	var records []types.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrFormat, err)
		}
		line, _ := cr.FieldPos(0)
		if len(row) != len(s.Fields) {
			return nil, fmt.Errorf("%w: line %d has %d columns, want %d", types.ErrFormat, line, len(row), len(s.Fields))
		}
		values := make([]types.Value, len(row))
		for i, f := range s.Fields {
			v, err := types.ParseValue(f.Type, row[i])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d, %s: %w", types.ErrFormat, line, f.Name, err)
			}
			values[i] = v
		}
		rec, err := types.Build(kind, values...)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", types.ErrFormat, line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
