// Package predicates implements the per-page filter semantics.
//
// Every predicate follows the same policy: an empty filter set accepts
// everything, "" and "all" disable a single-select constraint, an empty set
// or a set containing "all" disables a multi-select constraint, and all
// comparisons are done on stringified values.
package predicates

import (
	"fmt"

	"github.com/rubiojr/sieve/pkg/core"
)

// Filter keys used by the page predicates.
const (
	KeyType     = "type"
	KeyCategory = "category"
	KeyStatus   = "status"
)

// matchAll reports whether item satisfies every listed key of active.
func matchAll(item core.Record, active core.ActiveFilters, keys ...string) bool {
	if len(active) == 0 {
		return true
	}
	for _, key := range keys {
		value, ok := active[key]
		if !ok {
			continue
		}
		field, present := core.Lookup(item, key)
		if !value.Accepts(field, present) {
			return false
		}
	}
	return true
}

// Favorites filters saved items by content type.
func Favorites(item core.Record, active core.ActiveFilters) bool {
	return matchAll(item, active, KeyType)
}

// Posts filters posts by category.
func Posts(item core.Record, active core.ActiveFilters) bool {
	return matchAll(item, active, KeyCategory)
}

// Trades filters exchange listings by status and category.
func Trades(item core.Record, active core.ActiveFilters) bool {
	return matchAll(item, active, KeyStatus, KeyCategory)
}

// Activities filters activities by status and category.
func Activities(item core.Record, active core.ActiveFilters) bool {
	return matchAll(item, active, KeyStatus, KeyCategory)
}

// Drafts filters drafts by the kind of content being drafted.
func Drafts(item core.Record, active core.ActiveFilters) bool {
	return matchAll(item, active, KeyType)
}

// For returns the predicate of page.
func For(page core.PageKey) (core.Predicate, error) {
	switch page {
	case core.PageFavorites:
		return Favorites, nil
	case core.PagePosts:
		return Posts, nil
	case core.PageTrades:
		return Trades, nil
	case core.PageActivities:
		return Activities, nil
	case core.PageDrafts:
		return Drafts, nil
	}
	return nil, fmt.Errorf("predicate for %q: %w", page, core.ErrUnknownPage)
}
