// Package storage provides the locations that table files are saved to and
// loaded from: a local directory or a prefix in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotExist is returned by Read when the named file does not exist.
var ErrNotExist = errors.New("file does not exist")

// ErrInvalidName is returned for file names that are empty or contain a
// path separator.
var ErrInvalidName = errors.New("invalid file name")

// Location is a flat namespace of named files.
type Location interface {
	// Write replaces the named file with data.
	Write(ctx context.Context, name string, data []byte) error

	// Read returns the contents of the named file.
	// Returns an error wrapping ErrNotExist if it is missing.
	Read(ctx context.Context, name string) ([]byte, error)

	// Exists reports whether the named file is present.
	Exists(ctx context.Context, name string) (bool, error)

	// String describes the location for logs and messages.
	String() string
}

// S3Options configures Open for s3:// URIs.
type S3Options struct {
	Region          string
	Endpoint        string
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
}

// Open returns the Location named by uri: "s3://bucket/prefix" opens a
// bucket prefix, anything else is a local directory (created if needed).
func Open(ctx context.Context, uri string, opts S3Options) (Location, error) {
	if rest, ok := strings.CutPrefix(uri, "s3://"); ok {
		bucket, prefix, _ := strings.Cut(rest, "/")
		return NewBucket(ctx, BucketConfig{
			Bucket:          bucket,
			Prefix:          prefix,
			Region:          opts.Region,
			Endpoint:        opts.Endpoint,
			PathStyle:       opts.PathStyle,
			AccessKeyID:     opts.AccessKeyID,
			SecretAccessKey: opts.SecretAccessKey,
		})
	}
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("%w: empty location", ErrInvalidName)
	}
	return NewDir(uri)
}

// checkName rejects names that would escape a flat namespace.
func checkName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
