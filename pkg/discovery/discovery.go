// Package discovery derives filter options from a live dataset.
package discovery

import (
	"maps"
	"slices"

	"github.com/rubiojr/sieve/pkg/core"
)

// OtherKey collects items whose field is missing or falsy.
const OtherKey = "other"

// Labels maps internal category codes to display labels.
type Labels map[string]string

// DefaultLabels is the fixed code → label table used by the product.
var DefaultLabels = Labels{
	core.AllKey:   "全部",
	"music":       "音乐",
	"food":        "美食",
	"learning":    "学习",
	"sports":      "运动",
	"travel":      "旅行",
	"tech":        "科技",
	"art":         "艺术",
	"social":      "社交",
	"outdoor":     "户外",
	"photography": "摄影",
	"games":       "游戏",
	OtherKey:      "其他",
}

// Merge returns DefaultLabels overlaid with overrides.
func Merge(overrides Labels) Labels {
	out := maps.Clone(DefaultLabels)
	maps.Copy(out, overrides)
	return out
}

// Label returns the display label for code, falling back to the code itself.
func (l Labels) Label(code string) string {
	if label, ok := l[code]; ok && label != "" {
		return label
	}
	return code
}

type tally struct {
	key       string
	count     int
	firstSeen int
}

// Discover tallies the distinct values of field across items and returns
// them as filter options.
//
// The result always starts with an "all" option counting every item. The
// remaining options are ordered by descending count; equal counts keep the
// order in which their value was first seen, so repeated runs over the same
// dataset return identical lists. A nil labels map uses DefaultLabels.
func Discover[T core.Record](items []T, field string, labels Labels) []core.FilterOption {
	if labels == nil {
		labels = DefaultLabels
	}

	index := make(map[string]int)
	var tallies []tally
	for _, item := range items {
		key := OtherKey
		if v, ok := core.Lookup(item, field); ok && v.Truthy() {
			key = v.String()
		}
		if i, seen := index[key]; seen {
			tallies[i].count++
			continue
		}
		index[key] = len(tallies)
		tallies = append(tallies, tally{key: key, count: 1, firstSeen: len(tallies)})
	}

	slices.SortStableFunc(tallies, func(a, b tally) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return a.firstSeen - b.firstSeen
	})

	options := make([]core.FilterOption, 0, len(tallies)+1)
	options = append(options, core.FilterOption{
		Key:   core.AllKey,
		Label: labels.Label(core.AllKey),
		Count: intPtr(len(items)),
	})
	for _, t := range tallies {
		options = append(options, core.FilterOption{
			Key:   t.key,
			Label: labels.Label(t.key),
			Count: intPtr(t.count),
		})
	}
	return options
}

func intPtr(n int) *int { return &n }
