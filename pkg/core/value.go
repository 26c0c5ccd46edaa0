package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindBool
	KindTime
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindRecord:
		return "record"
	default:
		return "invalid"
	}
}

// Value is a field value read from a Record.
//
// Values are a closed sum: a field is a string, a number, a bool, a point in
// time or a nested Record. The zero Value is invalid and behaves like a
// missing field everywhere in the engine.
//
// Source data for this product mixes numeric and string encodings for the
// same field (a price may arrive as 120 or "120"), so Value unmarshals from
// any JSON scalar and all filter comparisons go through String().
type Value struct {
	kind Kind
	s    string
	n    float64
	b    bool
	t    time.Time
	rec  Record
}

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Number wraps a number.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Int wraps an integer as a number.
func Int(n int) Value { return Value{kind: KindNumber, n: float64(n)} }

// Bool wraps a bool.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Time wraps a point in time.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Nested wraps a nested record so dotted lookups can descend into it.
// A nil record yields an invalid Value.
func Nested(r Record) Value {
	if r == nil {
		return Value{}
	}
	return Value{kind: KindRecord, rec: r}
}

func (v Value) Kind() Kind    { return v.kind }
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// AsString returns the string payload and whether v is a string.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsNumber returns the numeric payload and whether v is a number.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsTime returns the time payload and whether v is a time.
func (v Value) AsTime() (time.Time, bool) { return v.t, v.kind == KindTime }

// AsRecord returns the nested record and whether v holds one.
func (v Value) AsRecord() (Record, bool) { return v.rec, v.kind == KindRecord }

// String renders the value the way filter comparisons see it.
// Numbers use the shortest representation, so 3 and "3" compare equal.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return v.t.Format(time.RFC3339)
	default:
		return ""
	}
}

// Truthy reports whether the value counts as present for category tallies.
// Invalid values, empty strings, zero, false and zero times are falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindString:
		return v.s != ""
	case KindNumber:
		return v.n != 0
	case KindBool:
		return v.b
	case KindTime:
		return !v.t.IsZero()
	case KindRecord:
		return true
	default:
		return false
	}
}

// MarshalJSON encodes the scalar payload. Nested records encode as null;
// records own their JSON shape.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.s)
	case KindNumber:
		return json.Marshal(v.n)
	case KindBool:
		return json.Marshal(v.b)
	case KindTime:
		return json.Marshal(v.t)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts any JSON scalar. Objects and arrays are rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Bool(b)
	case '{', '[':
		return fmt.Errorf("unsupported value %s: expected a scalar", data)
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("parsing number %s: %w", data, err)
		}
		*v = Number(n)
	}
	return nil
}
