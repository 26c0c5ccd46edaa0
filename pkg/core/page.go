package core

import (
	"errors"
	"fmt"
)

// ErrUnknownPage is returned when a page key is outside the closed set of
// content kinds. Asking for a profile of an unknown page is a programmer
// error and must never yield a partially populated profile.
var ErrUnknownPage = errors.New("unknown page")

// PageKey identifies a content kind with its own filter profile.
type PageKey string

const (
	PageFavorites  PageKey = "favorites"
	PagePosts      PageKey = "posts"
	PageTrades     PageKey = "trades"
	PageActivities PageKey = "activities"
	PageDrafts     PageKey = "drafts"
)

// AllPages lists every page key in display order.
var AllPages = []PageKey{PageFavorites, PagePosts, PageTrades, PageActivities, PageDrafts}

func (p PageKey) String() string { return string(p) }

// Valid reports whether p belongs to the closed set of pages.
func (p PageKey) Valid() bool {
	switch p {
	case PageFavorites, PagePosts, PageTrades, PageActivities, PageDrafts:
		return true
	}
	return false
}

// ParsePageKey converts s into a PageKey.
func ParsePageKey(s string) (PageKey, error) {
	p := PageKey(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPage, s)
	}
	return p, nil
}
