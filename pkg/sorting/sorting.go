// Package sorting orders datasets according to a page's sort configuration.
package sorting

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/rubiojr/sieve/pkg/core"
	"github.com/rubiojr/sieve/pkg/relativetime"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DescSuffix marks a sort key that always orders descending when the
// SuffixDesc custom function is in use.
const DescSuffix = "_desc"

// Func is a page-specific sort. It receives a private copy of the items and
// returns them in the desired order.
type Func[T core.Record] func(items []T, key string, cfg core.SortConfig) []T

// Sorter compares field values. It is not safe for concurrent use; every
// controller owns its own Sorter.
type Sorter struct {
	collator *collate.Collator
	times    *relativetime.Parser
}

// Option configures a Sorter.
type Option func(*Sorter)

// WithClock sets the clock relative timestamps are resolved against.
func WithClock(now func() time.Time) Option {
	return func(s *Sorter) {
		s.times = relativetime.New(now)
	}
}

// New returns a Sorter collating strings for locale. An unparseable locale
// falls back to the root collation order.
func New(locale string, opts ...Option) *Sorter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	s := &Sorter{
		collator: collate.New(tag),
		times:    relativetime.New(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Direction returns the declared direction of key, ascending when key is
// not one of the configured options.
func Direction(key string, cfg core.SortConfig) core.SortDirection {
	if opt, ok := cfg.Option(key); ok && opt.Direction == core.Desc {
		return core.Desc
	}
	return core.Asc
}

// Sort returns a sorted copy of items. When custom is set it decides the
// order alone; otherwise key is resolved on every item and compared with
// Compare, flipped for descending options. Sorting is stable.
func Sort[T core.Record](s *Sorter, items []T, key string, cfg core.SortConfig, custom Func[T]) []T {
	out := slices.Clone(items)
	if out == nil {
		out = []T{}
	}
	if custom != nil {
		return custom(out, key, cfg)
	}
	if key == "" {
		return out
	}
	return SortBy(s, out, key, Direction(key, cfg))
}

// SortBy sorts items in place by the field at path. Relative timestamps
// are resolved against a single clock reading for the whole pass.
func SortBy[T core.Record](s *Sorter, items []T, path string, dir core.SortDirection) []T {
	now := s.times.Now()
	slices.SortStableFunc(items, func(a, b T) int {
		av, _ := core.Lookup(a, path)
		bv, _ := core.Lookup(b, path)
		c := s.compareAt(av, bv, now)
		if dir == core.Desc {
			c = -c
		}
		return c
	})
	return items
}

// Compare orders two field values:
//
//  1. two strings compare chronologically when at least one is a relative
//     timestamp ("3天前") and both resolve to a point in time
//  2. two strings compare with the locale collation
//  3. two numbers compare numerically
//  4. two values that both resolve to a point in time (time values, relative
//     timestamps, parseable dates) compare chronologically
//  5. anything else is equal
func (s *Sorter) Compare(a, b core.Value) int {
	return s.compareAt(a, b, s.times.Now())
}

func (s *Sorter) compareAt(a, b core.Value, now time.Time) int {
	as, aString := a.AsString()
	bs, bString := b.AsString()
	if aString && bString {
		if as == bs {
			return 0
		}
		// Checked before collation, unlike a plain strings-first order, so
		// "10天前" sorts after "3天前".
		_, aRel := relativetime.ParseRelativeAt(as, now)
		_, bRel := relativetime.ParseRelativeAt(bs, now)
		if aRel || bRel {
			at, aOK := relativetime.ParseAt(as, now)
			bt, bOK := relativetime.ParseAt(bs, now)
			if aOK && bOK {
				return at.Compare(bt)
			}
		}
		return s.collator.CompareString(as, bs)
	}

	an, aNum := a.AsNumber()
	bn, bNum := b.AsNumber()
	if aNum && bNum {
		return cmp.Compare(an, bn)
	}

	at, aTime := resolveTime(a, now)
	bt, bTime := resolveTime(b, now)
	if aTime && bTime {
		return at.Compare(bt)
	}
	return 0
}

func resolveTime(v core.Value, now time.Time) (time.Time, bool) {
	if t, ok := v.AsTime(); ok {
		return t, true
	}
	if str, ok := v.AsString(); ok {
		return relativetime.ParseAt(str, now)
	}
	return time.Time{}, false
}

// SuffixDesc returns a custom sort implementing the key suffix convention:
// a key ending in "_desc" sorts the field named by the rest of the key in
// descending order, whatever direction the option declares. Other keys use
// the declared direction.
func SuffixDesc[T core.Record](s *Sorter) Func[T] {
	return func(items []T, key string, cfg core.SortConfig) []T {
		if key == "" {
			return items
		}
		if field, ok := strings.CutSuffix(key, DescSuffix); ok {
			return SortBy(s, items, field, core.Desc)
		}
		return SortBy(s, items, key, Direction(key, cfg))
	}
}
