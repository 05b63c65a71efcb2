// Package store implements the in-memory record store: one ordered,
// append-only table per record kind, with bulk export to and import from
// a storage.Location.
package store

import (
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

// Compile-time interface check: Store must implement types.Store.
var _ types.Store = (*Store)(nil)

// Store owns the five record tables. The zero value is not usable; call New.
type Store struct {
	mu     sync.RWMutex
	tables map[types.Kind][]types.Record
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for add, export and import events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Store with every table empty.
func New(opts ...Option) *Store {
	s := &Store{
		tables: make(map[types.Kind][]types.Record, len(types.Kinds())),
		logger: zap.NewNop(),
	}
	for _, k := range types.Kinds() {
		s.tables[k] = nil
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func checkKind(kind types.Kind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", types.ErrUnknownKind, string(kind))
	}
	return nil
}

// Add appends rec to kind's table. Duplicate identifying keys and dangling
// link values are accepted.
func (s *Store) Add(kind types.Kind, rec types.Record) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	if rec.Kind() != kind {
		return fmt.Errorf("%w: %s record added to %s table", types.ErrKindMismatch, rec.Kind(), kind)
	}
	s.mu.Lock()
	s.tables[kind] = append(s.tables[kind], rec)
	n := len(s.tables[kind])
	s.mu.Unlock()

	s.logger.Debug("record added", zap.Stringer("kind", kind), zap.Int("rows", n))
	return nil
}

// List returns a copy of kind's table in insertion order.
// An unknown kind yields an empty list.
func (s *Store) List(kind types.Kind) []types.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tables[kind])
}

// Len returns the number of records in kind's table.
func (s *Store) Len(kind types.Kind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables[kind])
}

// Filter returns the records of kind whose field has the stored
// representation value, in insertion order. An empty value returns the
// whole table.
func (s *Store) Filter(kind types.Kind, field, value string) ([]types.Record, error) {
	schema, err := types.SchemaFor(kind)
	if err != nil {
		return nil, err
	}
	idx := schema.Index(field)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s has no field %q", types.ErrUnknownField, kind, field)
	}
	if value == "" {
		return s.List(kind), nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []types.Record
	for _, rec := range s.tables[kind] {
		if rec.At(idx).String() == value {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Linked shows child records in the context of a parent: key is copied into
// the child's link field and the child table is filtered by it. The parent
// record does not have to exist.
func (s *Store) Linked(parent types.Kind, key string, child types.Kind) ([]types.Record, error) {
	link, err := types.LinkBetween(parent, child)
	if err != nil {
		return nil, err
	}
	return s.Filter(child, link.Field, key)
}

// LinkedTo is Linked with the key taken from an existing parent record.
func (s *Store) LinkedTo(parent types.Record, child types.Kind) ([]types.Record, error) {
	if err := checkKind(parent.Kind()); err != nil {
		return nil, err
	}
	return s.Linked(parent.Kind(), parent.At(0).String(), child)
}

// Replace swaps kind's whole table for recs.
func (s *Store) Replace(kind types.Kind, recs []types.Record) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	for i, rec := range recs {
		if rec.Kind() != kind {
			return fmt.Errorf("%w: row %d is a %s record", types.ErrKindMismatch, i+1, rec.Kind())
		}
	}
	s.mu.Lock()
	s.tables[kind] = slices.Clone(recs)
	s.mu.Unlock()
	return nil
}

// Counts returns the row count of every table.
func (s *Store) Counts() map[types.Kind]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[types.Kind]int, len(s.tables))
	for k, recs := range s.tables {
		out[k] = len(recs)
	}
	return out
}
