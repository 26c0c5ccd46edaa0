package core

// AllKey is the reserved option key meaning "no constraint".
const AllKey = "all"

// FilterType is the UI shape of a filter dimension.
type FilterType string

const (
	FilterTabs     FilterType = "tabs"
	FilterChips    FilterType = "chips"
	FilterDropdown FilterType = "dropdown"
)

// SortDirection is the order applied by a sort option.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// FilterOption is one selectable value of a filter dimension.
// Count is only set for options produced by category discovery.
type FilterOption struct {
	Key   string `json:"key" toml:"key"`
	Label string `json:"label" toml:"label"`
	Count *int   `json:"count,omitempty" toml:"count,omitempty"`
}

// SortOption is one selectable ordering.
type SortOption struct {
	Key       string        `json:"key" toml:"key"`
	Label     string        `json:"label" toml:"label"`
	Direction SortDirection `json:"direction" toml:"direction"`
}

// FilterConfig declares one filterable dimension.
type FilterConfig struct {
	Type          FilterType     `json:"type" toml:"type"`
	Key           string         `json:"key" toml:"key"`
	Title         string         `json:"title,omitempty" toml:"title,omitempty"`
	Options       []FilterOption `json:"options" toml:"options"`
	AllowMultiple bool           `json:"allowMultiple" toml:"allow_multiple"`
	ShowCount     bool           `json:"showCount" toml:"show_count"`
}

// Multi reports whether the dimension behaves as multi-select.
// Tabs and dropdowns are single-select regardless of AllowMultiple.
func (c FilterConfig) Multi() bool {
	return c.Type == FilterChips && c.AllowMultiple
}

// HasOption reports whether key is one of the declared options.
func (c FilterConfig) HasOption(key string) bool {
	for _, o := range c.Options {
		if o.Key == key {
			return true
		}
	}
	return false
}

// Empty returns the unconstrained value for this dimension.
func (c FilterConfig) Empty() FilterValue {
	if c.Multi() {
		return Multi()
	}
	return Single("")
}

// SortConfig declares the available orderings of a page.
type SortConfig struct {
	Title       string       `json:"title,omitempty" toml:"title,omitempty"`
	Options     []SortOption `json:"options" toml:"options"`
	DefaultSort string       `json:"defaultSort" toml:"default_sort"`
}

// Option returns the sort option registered under key.
func (c SortConfig) Option(key string) (SortOption, bool) {
	for _, o := range c.Options {
		if o.Key == key {
			return o, true
		}
	}
	return SortOption{}, false
}

// SearchConfig lists the (possibly dotted) field paths searched by free text.
type SearchConfig struct {
	Placeholder  string   `json:"placeholder,omitempty" toml:"placeholder,omitempty"`
	SearchFields []string `json:"searchFields" toml:"search_fields"`
}

// Profile bundles the filter, sort and search configuration of one page.
type Profile struct {
	Filters []FilterConfig `json:"filters"`
	Sort    SortConfig     `json:"sort"`
	Search  SearchConfig   `json:"search"`
}

// Filter returns the filter dimension registered under key.
func (p Profile) Filter(key string) (FilterConfig, bool) {
	for _, f := range p.Filters {
		if f.Key == key {
			return f, true
		}
	}
	return FilterConfig{}, false
}

// Predicate decides whether item passes the active filters.
// Pages supply one when their filter semantics differ from the generic
// per-key equality used by the filtering engine.
type Predicate func(item Record, active ActiveFilters) bool
