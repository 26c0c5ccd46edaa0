// Package controller owns the filter, sort and search state of one list view
// and keeps its filtered result up to date.
//
// Each of the three state slices is either uncontrolled (the controller is
// the source of truth) or controlled (an external owner mirrors the value and
// is told about every change). A slice becomes controlled by injecting its
// owner interface in Config; owners push their own value back with the Sync*
// methods.
//
// The result is recomputed in full after every change to the dataset, the
// filters, the sort key or the search query, and handed to the data observer.
// A Controller is not safe for concurrent use: one goroutine owns it.
package controller

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rubiojr/sieve/pkg/core"
	"github.com/rubiojr/sieve/pkg/filtering"
	"github.com/rubiojr/sieve/pkg/log"
	"github.com/rubiojr/sieve/pkg/sorting"
)

// ErrUnknownFilter is returned by ToggleOption for keys the profile does not
// declare.
var ErrUnknownFilter = errors.New("unknown filter")

// FilterOwner controls the filter slice.
type FilterOwner interface {
	FilterChanged(key string, value core.FilterValue)
}

// SortOwner controls the sort slice.
type SortOwner interface {
	SortChanged(key string)
}

// SearchOwner controls the search slice.
type SearchOwner interface {
	SearchChanged(text string)
}

// Config wires a Controller.
type Config[T core.Record] struct {
	// Profile is the page profile. When zero and ProfileFunc is set, the
	// profile is built from Items.
	Profile core.Profile

	// ProfileFunc rebuilds the profile whenever the dataset changes, used by
	// pages whose options are discovered from the data.
	ProfileFunc func(items []T) core.Profile

	// Items is the initial dataset. It is never modified.
	Items []T

	// Initial values of uncontrolled slices, or the current values of
	// controlled ones. An empty InitialSort selects the profile default.
	InitialFilters core.ActiveFilters
	InitialSort    string
	InitialSearch  string

	FilterOwner FilterOwner
	SortOwner   SortOwner
	SearchOwner SearchOwner

	// OnDataChange receives every recomputed result.
	OnDataChange func(items []T)

	// Predicate replaces the generic filter matcher.
	Predicate core.Predicate

	// SortFunc replaces the generic comparator.
	SortFunc sorting.Func[T]

	// Sorter compares values; defaults to the "zh" collation.
	Sorter *sorting.Sorter

	Logger *log.Logger
}

// Controller is the state machine behind a filterable list.
type Controller[T core.Record] struct {
	profile     core.Profile
	profileFunc func([]T) core.Profile
	items       []T

	filters core.ActiveFilters
	sortKey string
	query   string

	filterOwner FilterOwner
	sortOwner   SortOwner
	searchOwner SearchOwner
	onData      func([]T)

	predicate core.Predicate
	sortFunc  sorting.Func[T]
	sorter    *sorting.Sorter

	result []T
	closed bool
	log    *log.Logger
}

// New builds a controller and computes its first result.
func New[T core.Record](cfg Config[T]) *Controller[T] {
	c := &Controller[T]{
		profile:     cfg.Profile,
		profileFunc: cfg.ProfileFunc,
		items:       cfg.Items,
		filters:     cfg.InitialFilters.Clone(),
		sortKey:     cfg.InitialSort,
		query:       cfg.InitialSearch,
		filterOwner: cfg.FilterOwner,
		sortOwner:   cfg.SortOwner,
		searchOwner: cfg.SearchOwner,
		onData:      cfg.OnDataChange,
		predicate:   cfg.Predicate,
		sortFunc:    cfg.SortFunc,
		sorter:      cfg.Sorter,
		log:         cfg.Logger,
	}
	if c.sorter == nil {
		c.sorter = sorting.New("zh")
	}
	if c.log == nil {
		c.log = log.ForService("controller")
	}
	if c.profileFunc != nil && isZeroProfile(c.profile) {
		c.profile = c.profileFunc(c.items)
	}
	if c.sortKey == "" {
		c.sortKey = c.profile.Sort.DefaultSort
	}
	c.recompute()
	return c
}

func isZeroProfile(p core.Profile) bool {
	return len(p.Filters) == 0 && len(p.Sort.Options) == 0 && len(p.Search.SearchFields) == 0
}

// SetFilter replaces the selection of key.
func (c *Controller[T]) SetFilter(key string, value core.FilterValue) {
	if c.closed {
		return
	}
	c.filters[key] = value
	if c.filterOwner != nil {
		c.filterOwner.FilterChanged(key, value)
	}
	c.recompute()
}

// ToggleOption applies a click on option of the dimension key, following the
// single- or multi-select state machine declared by the profile.
func (c *Controller[T]) ToggleOption(key, option string) error {
	f, ok := c.profile.Filter(key)
	if !ok {
		return fmt.Errorf("toggling %q: %w", key, ErrUnknownFilter)
	}
	current := c.filters.Get(key)
	if f.Multi() {
		c.SetFilter(key, NextMulti(current, option))
	} else {
		c.SetFilter(key, NextSingle(current, option))
	}
	return nil
}

// SetSort selects a sort key.
func (c *Controller[T]) SetSort(key string) {
	if c.closed {
		return
	}
	c.sortKey = key
	if c.sortOwner != nil {
		c.sortOwner.SortChanged(key)
	}
	c.recompute()
}

// SetSearch replaces the search query.
func (c *Controller[T]) SetSearch(text string) {
	if c.closed {
		return
	}
	c.query = text
	if c.searchOwner != nil {
		c.searchOwner.SearchChanged(text)
	}
	c.recompute()
}

// ClearAll resets filters, search and sort. Controlled owners receive one
// notification per configured filter key plus one for search and one for
// sort, so their mirrored state converges on the cleared state.
func (c *Controller[T]) ClearAll() {
	if c.closed {
		return
	}
	c.filters = core.ActiveFilters{}
	c.query = ""
	c.sortKey = c.profile.Sort.DefaultSort

	if c.filterOwner != nil {
		for _, f := range c.profile.Filters {
			c.filterOwner.FilterChanged(f.Key, f.Empty())
		}
	}
	if c.searchOwner != nil {
		c.searchOwner.SearchChanged("")
	}
	if c.sortOwner != nil {
		c.sortOwner.SortChanged(c.sortKey)
	}
	c.recompute()
}

// SyncFilters adopts the filters held by an external owner without echoing a
// change notification.
func (c *Controller[T]) SyncFilters(active core.ActiveFilters) {
	if c.closed {
		return
	}
	c.filters = active.Clone()
	c.recompute()
}

// SyncSort adopts the sort key held by an external owner.
func (c *Controller[T]) SyncSort(key string) {
	if c.closed {
		return
	}
	c.sortKey = key
	c.recompute()
}

// SyncSearch adopts the query held by an external owner.
func (c *Controller[T]) SyncSearch(text string) {
	if c.closed {
		return
	}
	c.query = text
	c.recompute()
}

// SetData replaces the dataset. Dynamic profiles are rebuilt first.
func (c *Controller[T]) SetData(items []T) {
	if c.closed {
		return
	}
	c.items = items
	if c.profileFunc != nil {
		c.profile = c.profileFunc(items)
	}
	c.recompute()
}

// SetProfile replaces the page profile.
func (c *Controller[T]) SetProfile(p core.Profile) {
	if c.closed {
		return
	}
	c.profile = p
	c.recompute()
}

// Close resets all state and detaches owners and the data observer. Later
// calls on the controller are ignored.
func (c *Controller[T]) Close() {
	c.filters = core.ActiveFilters{}
	c.query = ""
	c.sortKey = c.profile.Sort.DefaultSort
	c.items = nil
	c.result = nil
	c.filterOwner = nil
	c.sortOwner = nil
	c.searchOwner = nil
	c.onData = nil
	c.closed = true
}

func (c *Controller[T]) recompute() {
	var search *core.SearchConfig
	if len(c.profile.Search.SearchFields) > 0 {
		search = &c.profile.Search
	}

	filtered := filtering.Apply(c.items, filtering.Params{
		Query:     c.query,
		Search:    search,
		Filters:   c.profile.Filters,
		Active:    c.filters,
		Predicate: c.predicate,
	})
	c.result = sorting.Sort(c.sorter, filtered, c.sortKey, c.profile.Sort, c.sortFunc)

	c.log.Debugf("recomputed %d/%d items (filters=%v sort=%q query=%q)",
		len(c.result), len(c.items), c.filters, c.sortKey, c.query)

	if c.onData != nil {
		c.onData(slices.Clone(c.result))
	}
}

// Result returns a copy of the current filtered and sorted items.
func (c *Controller[T]) Result() []T {
	out := slices.Clone(c.result)
	if out == nil {
		out = []T{}
	}
	return out
}

// Filters returns a copy of the active filters.
func (c *Controller[T]) Filters() core.ActiveFilters { return c.filters.Clone() }

func (c *Controller[T]) Sort() string          { return c.sortKey }
func (c *Controller[T]) Search() string        { return c.query }
func (c *Controller[T]) Profile() core.Profile { return c.profile }
func (c *Controller[T]) TotalCount() int       { return len(c.items) }
func (c *Controller[T]) FilteredCount() int    { return len(c.result) }
func (c *Controller[T]) Controlled() (filters, sort, search bool) {
	return c.filterOwner != nil, c.sortOwner != nil, c.searchOwner != nil
}

// HasActiveFilters reports whether the view differs from its default: a
// constraining filter, a non-blank query or a non-default sort.
func (c *Controller[T]) HasActiveFilters() bool {
	if c.filters.Constrained() {
		return true
	}
	if strings.TrimSpace(c.query) != "" {
		return true
	}
	return c.sortKey != c.profile.Sort.DefaultSort
}
