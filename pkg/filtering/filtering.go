// Package filtering applies free-text search and filter constraints to a
// dataset. Functions are pure: the input slice is never modified and the
// result is always a fresh, non-nil slice.
package filtering

import (
	"strings"

	"github.com/rubiojr/sieve/pkg/core"
	"golang.org/x/text/cases"
)

// Params describes one filtering pass.
type Params struct {
	// Query is the free-text search. Blank queries disable searching.
	Query string

	// Search lists the searched fields. A nil config disables searching.
	Search *core.SearchConfig

	// Filters are the configured filter dimensions. Only these keys are
	// evaluated by the generic matcher.
	Filters []core.FilterConfig

	// Active holds the current selections.
	Active core.ActiveFilters

	// Predicate replaces the generic matcher when set.
	Predicate core.Predicate
}

// Apply searches, then filters items.
func Apply[T core.Record](items []T, p Params) []T {
	found := Search(items, p.Query, p.Search)
	if len(found) == 0 {
		return found
	}

	if p.Predicate != nil {
		return keep(found, func(item T) bool { return p.Predicate(item, p.Active) })
	}
	return keep(found, func(item T) bool { return Match(item, p.Filters, p.Active) })
}

// Search keeps the items where any configured search field is a string
// containing query, ignoring case. Non-string fields never match.
func Search[T core.Record](items []T, query string, cfg *core.SearchConfig) []T {
	if strings.TrimSpace(query) == "" || cfg == nil {
		return keep(items, func(T) bool { return true })
	}

	fold := cases.Fold()
	needle := fold.String(query)
	return keep(items, func(item T) bool {
		for _, path := range cfg.SearchFields {
			v, ok := core.Lookup(item, path)
			if !ok {
				continue
			}
			s, isString := v.AsString()
			if !isString {
				continue
			}
			if strings.Contains(fold.String(s), needle) {
				return true
			}
		}
		return false
	})
}

// Match is the generic matcher: item must satisfy the active selection of
// every configured filter key.
func Match(item core.Record, filters []core.FilterConfig, active core.ActiveFilters) bool {
	if len(active) == 0 {
		return true
	}
	for _, f := range filters {
		value, ok := active[f.Key]
		if !ok {
			continue
		}
		field, present := core.Lookup(item, f.Key)
		if !value.Accepts(field, present) {
			return false
		}
	}
	return true
}

func keep[T any](items []T, fn func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if fn(item) {
			out = append(out, item)
		}
	}
	return out
}
