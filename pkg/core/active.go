package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// FilterValue is the active selection of one filter dimension: either a
// single option key or a set of option keys.
//
// Single("") and Single("all") are unconstrained, as are Multi() and any
// multi value containing "all".
type FilterValue struct {
	multi  bool
	single string
	values []string
}

// Single returns a single-select value.
func Single(key string) FilterValue {
	return FilterValue{single: key}
}

// Multi returns a multi-select value holding keys in the given order.
func Multi(keys ...string) FilterValue {
	return FilterValue{multi: true, values: slices.Clone(keys)}
}

func (f FilterValue) IsMulti() bool { return f.multi }

// Key returns the single-select key. It is empty for multi values.
func (f FilterValue) Key() string {
	if f.multi {
		return ""
	}
	return f.single
}

// Values returns a copy of the selected keys. A non-empty single value is
// returned as a one-element slice.
func (f FilterValue) Values() []string {
	if f.multi {
		return slices.Clone(f.values)
	}
	if f.single == "" {
		return nil
	}
	return []string{f.single}
}

// Contains reports whether key is selected.
func (f FilterValue) Contains(key string) bool {
	if f.multi {
		return slices.Contains(f.values, key)
	}
	return f.single == key
}

// Unconstrained reports whether this value places no constraint on items.
func (f FilterValue) Unconstrained() bool {
	if f.multi {
		return len(f.values) == 0 || slices.Contains(f.values, AllKey)
	}
	return f.single == "" || f.single == AllKey
}

// Accepts applies the shared filter policy to one field value. present is
// false when the item lacks the field; such items only pass unconstrained
// filters.
func (f FilterValue) Accepts(v Value, present bool) bool {
	if f.Unconstrained() {
		return true
	}
	if !present {
		return false
	}
	s := v.String()
	if f.multi {
		return slices.Contains(f.values, s)
	}
	return s == f.single
}

// Equal reports whether two values select the same keys in the same order.
func (f FilterValue) Equal(other FilterValue) bool {
	if f.multi != other.multi {
		return false
	}
	if f.multi {
		return slices.Equal(f.values, other.values)
	}
	return f.single == other.single
}

func (f FilterValue) String() string {
	if f.multi {
		return "[" + strings.Join(f.values, ",") + "]"
	}
	return f.single
}

// MarshalJSON encodes single values as a string and multi values as an array.
func (f FilterValue) MarshalJSON() ([]byte, error) {
	if f.multi {
		if f.values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(f.values)
	}
	return json.Marshal(f.single)
}

// UnmarshalJSON accepts a string (single) or an array of strings (multi).
func (f *FilterValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*f = Single("")
	case data[0] == '[':
		var keys []string
		if err := json.Unmarshal(data, &keys); err != nil {
			return fmt.Errorf("decoding filter values: %w", err)
		}
		*f = Multi(keys...)
	default:
		var key string
		if err := json.Unmarshal(data, &key); err != nil {
			return fmt.Errorf("decoding filter value: %w", err)
		}
		*f = Single(key)
	}
	return nil
}

// ActiveFilters maps a filter key to its current selection.
type ActiveFilters map[string]FilterValue

// Get returns the selection for key, or an unconstrained single value.
func (a ActiveFilters) Get(key string) FilterValue {
	if v, ok := a[key]; ok {
		return v
	}
	return Single("")
}

// Constrained reports whether any selection constrains items.
func (a ActiveFilters) Constrained() bool {
	for _, v := range a {
		if !v.Unconstrained() {
			return true
		}
	}
	return false
}

// Clone returns an independent copy.
func (a ActiveFilters) Clone() ActiveFilters {
	out := make(ActiveFilters, len(a))
	for k, v := range a {
		if v.multi {
			out[k] = Multi(v.values...)
		} else {
			out[k] = v
		}
	}
	return out
}
