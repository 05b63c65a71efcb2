package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// valueTag discriminates the Value variants.
type valueTag uint8

const (
	tagEmpty valueTag = iota
	tagInt
	tagText
)

// Value is a single field value: empty, an integer, or text.
// The zero Value is empty. Values are comparable with ==.
type Value struct {
	tag valueTag
	i   int64
	s   string
}

// Empty returns the empty value, used for any field left blank.
func Empty() Value { return Value{} }

// Int returns an integer value.
func Int(n int64) Value { return Value{tag: tagInt, i: n} }

// Text returns a text value. Text("") is the empty value. CRLF line
// breaks are stored as LF, the form a table file reads back.
func Text(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{tag: tagText, s: strings.ReplaceAll(s, "\r\n", "\n")}
}

// IsEmpty reports whether v holds no value.
func (v Value) IsEmpty() bool { return v.tag == tagEmpty }

// Int returns the integer held by v and whether v is an integer.
func (v Value) Int() (int64, bool) { return v.i, v.tag == tagInt }

// Fits reports whether v may be stored in a field of type t.
// The empty value fits every type.
func (v Value) Fits(t FieldType) bool {
	switch v.tag {
	case tagEmpty:
		return true
	case tagInt:
		return t == FieldInteger
	default:
		return t == FieldText
	}
}

// String returns the stored representation: decimal for integers, the text
// itself for text, and "" for the empty value. Filtering and export compare
// and write this form.
func (v Value) String() string {
	switch v.tag {
	case tagInt:
		return strconv.FormatInt(v.i, 10)
	case tagText:
		return v.s
	default:
		return ""
	}
}

// MarshalJSON encodes integers as numbers, text as strings and the empty
// value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.tag {
	case tagInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case tagText:
		return json.Marshal(v.s)
	default:
		return []byte("null"), nil
	}
}

// ParseValue converts raw field input to a Value of type t. Blank input is
// the empty value. Integer fields accept an optional sign and also integral
// decimals such as "42.0", which spreadsheet tools write for integer columns
// holding blanks. Returns ErrTypeMismatch for anything else.
func ParseValue(t FieldType, raw string) (Value, error) {
	switch t {
	case FieldText:
		return Text(raw), nil
	case FieldInteger:
		s := strings.TrimSpace(raw)
		if s == "" {
			return Empty(), nil
		}
		if whole, frac, ok := strings.Cut(s, "."); ok && strings.Trim(frac, "0") == "" {
			s = whole
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not an integer", ErrTypeMismatch, raw)
		}
		return Int(n), nil
	default:
		return Value{}, fmt.Errorf("%w: unknown field type %q", ErrTypeMismatch, string(t))
	}
}
