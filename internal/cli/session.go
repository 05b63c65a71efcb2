package cli

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/biobank/internal/storage"
	"github.com/mesh-intelligence/biobank/internal/store"
	"github.com/mesh-intelligence/biobank/pkg/types"
)

// session is a store attached to the working data directory.
type session struct {
	store *store.Store
	dir   *storage.Dir
}

// attach opens the data directory, seeds any missing table files and loads
// every table into a fresh store.
func (a *app) attach(ctx context.Context) (*session, error) {
	dir, err := storage.NewDir(a.cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("%w: open data dir: %w", types.ErrIO, err)
	}
	created, err := store.Seed(ctx, dir)
	if err != nil {
		return nil, err
	}
	if len(created) > 0 {
		a.logger.Info("seeded data dir", zap.String("dir", dir.Root()), zap.Int("files", len(created)))
	}

	s := store.New(store.WithLogger(a.logger))
	if err := s.ImportAll(ctx, dir); err != nil {
		return nil, fmt.Errorf("load %s: %w", dir, err)
	}
	return &session{store: s, dir: dir}, nil
}

// persist writes every table back to the data directory.
func (s *session) persist(ctx context.Context) error {
	return s.store.ExportAll(ctx, s.dir)
}

// openLocation resolves a save/load target using the configured S3
// settings for s3:// URIs.
func (a *app) openLocation(ctx context.Context, uri string) (storage.Location, error) {
	loc, err := storage.Open(ctx, uri, storage.S3Options{
		Region:          a.cfg.S3.Region,
		Endpoint:        a.cfg.S3.Endpoint,
		PathStyle:       a.cfg.S3.PathStyle,
		AccessKeyID:     a.cfg.S3.AccessKeyID,
		SecretAccessKey: a.cfg.S3.SecretAccessKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", types.ErrIO, uri, err)
	}
	return loc, nil
}

// parseAssignments splits field=value arguments. A repeated field keeps the
// last value.
func parseAssignments(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid argument %q (expected field=value)", arg)
		}
		out[field] = value
	}
	return out, nil
}
