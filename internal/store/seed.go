package store

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mesh-intelligence/biobank/internal/csvfile"
	"github.com/mesh-intelligence/biobank/internal/storage"
	"github.com/mesh-intelligence/biobank/pkg/types"
)

// Seed writes a header-only table file for every kind whose file is missing
// from loc, and returns the kinds it created. Existing files are never
// touched, so seeding is idempotent.
func Seed(ctx context.Context, loc storage.Location) ([]types.Kind, error) {
	var created []types.Kind
	for _, kind := range types.Kinds() {
		ok, err := loc.Exists(ctx, kind.FileName())
		if err != nil {
			return created, fmt.Errorf("%w: stat %s: %w", types.ErrIO, kind.FileName(), err)
		}
		if ok {
			continue
		}
		var buf bytes.Buffer
		if err := csvfile.Encode(&buf, kind, nil); err != nil {
			return created, err
		}
		if err := loc.Write(ctx, kind.FileName(), buf.Bytes()); err != nil {
			return created, fmt.Errorf("%w: write %s: %w", types.ErrIO, kind.FileName(), err)
		}
		created = append(created, kind)
	}
	return created, nil
}
