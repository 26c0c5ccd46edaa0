package core

import "strings"

// Record is a single dataset item as seen by the filtering engine.
//
// Each content kind (favorites, posts, trades, ...) has its own schema in
// pkg/records; the engine never indexes into arbitrary maps. Instead every
// schema exposes its fields through Field, and nested objects (an author, a
// seller, a stats block) are returned as Nested values so that dotted paths
// such as "author.name" or "stats.likes" can be resolved by Lookup.
//
// Implementations must be side-effect free: Field is called many times per
// recomputation and the engine assumes the record is immutable.
//
// Example implementation pattern:
//
//	type Author struct{ Name string }
//
//	func (a Author) Field(name string) (core.Value, bool) {
//		switch name {
//		case "name":
//			return core.String(a.Name), true
//		}
//		return core.Value{}, false
//	}
type Record interface {
	// Field returns the value stored under name and whether the record
	// knows that field. Unknown fields must return (Value{}, false).
	Field(name string) (Value, bool)
}

// Lookup resolves a possibly dotted path against r.
//
// Every segment but the last must resolve to a nested record. A missing
// segment, a nil record or an empty path yields (Value{}, false); callers
// treat that as "does not match" rather than as an error.
func Lookup(r Record, path string) (Value, bool) {
	if r == nil || path == "" {
		return Value{}, false
	}

	current := r
	for {
		head, rest, nested := strings.Cut(path, ".")
		v, ok := current.Field(head)
		if !ok || !v.IsValid() {
			return Value{}, false
		}
		if !nested {
			return v, true
		}
		next, isRecord := v.AsRecord()
		if !isRecord {
			return Value{}, false
		}
		current = next
		path = rest
	}
}

// Fields is a Record backed by a plain map. It is handy for ad-hoc datasets
// and tests; production schemas live in pkg/records.
type Fields map[string]Value

func (f Fields) Field(name string) (Value, bool) {
	v, ok := f[name]
	return v, ok
}
