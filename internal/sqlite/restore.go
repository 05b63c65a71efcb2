package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

// Restore reads every table of the mirror at path back into records, in
// insertion order. NULL columns become the empty value.
func Restore(ctx context.Context, path string) (map[types.Kind][]types.Record, error) {
	// sql.Open would create a missing file; a mirror must already exist.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", types.ErrIO, path, err)
	}
	defer db.Close()

	out := make(map[types.Kind][]types.Record, len(types.Kinds()))
	for _, kind := range types.Kinds() {
		recs, err := restoreTable(ctx, db, kind)
		if err != nil {
			return nil, fmt.Errorf("restoring %s: %w", kind.TableName(), err)
		}
		out[kind] = recs
	}
	return out, nil
}

func restoreTable(ctx context.Context, db *sql.DB, kind types.Kind) ([]types.Record, error) {
	schema, err := types.SchemaFor(kind)
	if err != nil {
		return nil, err
	}
	q, err := selectSQL(kind)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	defer rows.Close()

	var recs []types.Record
	for rows.Next() {
		ints := make([]sql.NullInt64, len(schema.Fields))
		texts := make([]sql.NullString, len(schema.Fields))
		dest := make([]any, len(schema.Fields))
		for i, f := range schema.Fields {
			if f.Type == types.FieldInteger {
				dest[i] = &ints[i]
			} else {
				dest[i] = &texts[i]
			}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrFormat, err)
		}

		values := make([]types.Value, len(schema.Fields))
		for i, f := range schema.Fields {
			switch {
			case f.Type == types.FieldInteger && ints[i].Valid:
				values[i] = types.Int(ints[i].Int64)
			case f.Type == types.FieldText && texts[i].Valid:
				values[i] = types.Text(texts[i].String)
			}
		}
		rec, err := types.Build(kind, values...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrFormat, err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	return recs, nil
}
