package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Record is one immutable row of a record kind. It always holds a value
// for every field of its schema, in declared order.
type Record struct {
	kind   Kind
	values []Value
}

// Build creates a record from positional values, one per schema field.
// Returns ErrFieldCount if the number of values differs from the schema,
// and ErrTypeMismatch if a value does not fit its field's type.
func Build(kind Kind, values ...Value) (Record, error) {
	s, err := SchemaFor(kind)
	if err != nil {
		return Record{}, err
	}
	if len(values) != len(s.Fields) {
		return Record{}, fmt.Errorf("%w: %s has %d fields, got %d", ErrFieldCount, kind, len(s.Fields), len(values))
	}
	for i, f := range s.Fields {
		if !values[i].Fits(f.Type) {
			return Record{}, fmt.Errorf("%w: %s.%s is %s", ErrTypeMismatch, kind, f.Name, f.Type)
		}
	}
	return Record{kind: kind, values: slices.Clone(values)}, nil
}

// NewRecord creates a record from named values. Fields absent from the map
// are empty. Returns ErrUnknownField for a name outside the schema and
// ErrTypeMismatch if a value does not fit its field's type.
func NewRecord(kind Kind, fields map[string]Value) (Record, error) {
	s, err := SchemaFor(kind)
	if err != nil {
		return Record{}, err
	}
	values := make([]Value, len(s.Fields))
	for name, v := range fields {
		i := s.Index(name)
		if i < 0 {
			return Record{}, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, kind, name)
		}
		values[i] = v
	}
	return Build(kind, values...)
}

// ParseRecord creates a record from raw text input keyed by field name,
// converting each entry with ParseValue for its field's type.
func ParseRecord(kind Kind, fields map[string]string) (Record, error) {
	s, err := SchemaFor(kind)
	if err != nil {
		return Record{}, err
	}
	values := make(map[string]Value, len(fields))
	for name, raw := range fields {
		f, ok := s.Field(name)
		if !ok {
			return Record{}, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, kind, name)
		}
		v, err := ParseValue(f.Type, raw)
		if err != nil {
			return Record{}, fmt.Errorf("%s.%s: %w", kind, name, err)
		}
		values[name] = v
	}
	return NewRecord(kind, values)
}

// Kind returns the record's kind.
func (r Record) Kind() Kind { return r.kind }

// Len returns the number of fields.
func (r Record) Len() int { return len(r.values) }

// At returns the value at field position i.
func (r Record) At(i int) Value { return r.values[i] }

// Get returns the value of the named field.
// Returns ErrUnknownField if the schema has no such field.
func (r Record) Get(field string) (Value, error) {
	s, err := SchemaFor(r.kind)
	if err != nil {
		return Value{}, err
	}
	i := s.Index(field)
	if i < 0 {
		return Value{}, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, r.kind, field)
	}
	return r.values[i], nil
}

// Values returns a copy of the values in field order.
func (r Record) Values() []Value { return slices.Clone(r.values) }

// Strings returns the stored representation of every value in field order.
func (r Record) Strings() []string {
	out := make([]string, len(r.values))
	for i, v := range r.values {
		out[i] = v.String()
	}
	return out
}

// Equal reports whether r and o have the same kind and values.
func (r Record) Equal(o Record) bool {
	return r.kind == o.kind && slices.Equal(r.values, o.values)
}

// MarshalJSON encodes the record as an object whose keys follow the
// schema's field order.
func (r Record) MarshalJSON() ([]byte, error) {
	s, err := SchemaFor(r.kind)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range s.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(f.Name)
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.values[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
