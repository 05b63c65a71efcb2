package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

// Lister is the read side of a record store.
type Lister interface {
	List(kind types.Kind) []types.Record
}

// Mirror recreates the SQLite database at path with one table per kind and
// copies every record of src into it inside a single transaction. It returns
// the number of rows written per kind. Any existing file at path is removed
// first.
func Mirror(ctx context.Context, path string, src Lister) (map[types.Kind]int, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty database path", types.ErrIO)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: removing old mirror: %w", types.ErrIO, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", types.ErrIO, path, err)
	}
	defer db.Close()
	return MirrorDB(ctx, db, src)
}

// MirrorDB creates the kind tables in db, which must not already hold them,
// and fills them from src in one transaction. Nothing is left behind if any
// statement fails.
func MirrorDB(ctx context.Context, db *sql.DB, src Lister) (map[types.Kind]int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: beginning mirror transaction: %w", types.ErrIO, err)
	}
	defer tx.Rollback()

	counts := make(map[types.Kind]int, len(types.Kinds()))
	for _, kind := range types.Kinds() {
		n, err := mirrorTable(ctx, tx, kind, src.List(kind))
		if err != nil {
			return nil, fmt.Errorf("%w: mirroring %s: %w", types.ErrIO, kind.TableName(), err)
		}
		counts[kind] = n
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: committing mirror transaction: %w", types.ErrIO, err)
	}
	return counts, nil
}

func mirrorTable(ctx context.Context, tx *sql.Tx, kind types.Kind, recs []types.Record) (int, error) {
	ddl, err := createTableSQL(kind)
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return 0, fmt.Errorf("creating table: %w", err)
	}
	idx, err := indexSQL(kind)
	if err != nil {
		return 0, err
	}
	for _, stmt := range idx {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return 0, fmt.Errorf("creating index: %w", err)
		}
	}

	q, err := insertSQL(kind)
	if err != nil {
		return 0, err
	}
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range recs {
		args := make([]any, 0, rec.Len()+1)
		args = append(args, i+1)
		for j := 0; j < rec.Len(); j++ {
			args = append(args, sqlValue(rec.At(j)))
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("inserting row %d: %w", i+1, err)
		}
	}
	return len(recs), nil
}

// sqlValue converts a field value to a driver argument. The empty value is
// stored as NULL.
func sqlValue(v types.Value) any {
	if v.IsEmpty() {
		return nil
	}
	if n, ok := v.Int(); ok {
		return n
	}
	return v.String()
}
