// Package sqlite exposes the SQLite mirror of the record tables to callers
// outside this module while keeping the implementation internal.
package sqlite

import (
	"context"

	"github.com/mesh-intelligence/biobank/internal/sqlite"
	"github.com/mesh-intelligence/biobank/pkg/types"
)

// Mirror recreates the SQLite database at path from src, one table per
// record kind, and returns the rows written per kind.
//
// Example:
//
//	counts, err := sqlite.Mirror(ctx, "biobank.db", st)
func Mirror(ctx context.Context, path string, src types.Store) (map[types.Kind]int, error) {
	return sqlite.Mirror(ctx, path, src)
}

// Restore reads a mirror written by Mirror back into records per kind.
func Restore(ctx context.Context, path string) (map[types.Kind][]types.Record, error) {
	return sqlite.Restore(ctx, path)
}
