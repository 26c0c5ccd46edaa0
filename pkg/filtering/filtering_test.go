package filtering

import (
	"reflect"
	"testing"

	"github.com/rubiojr/sieve/pkg/core"
	"github.com/rubiojr/sieve/pkg/predicates"
)

type item struct {
	id    string
	title string
	typ   string
	cat   string
	likes int
	owner core.Fields
}

func (i item) Field(name string) (core.Value, bool) {
	switch name {
	case "id":
		return core.String(i.id), true
	case "title":
		return core.String(i.title), true
	case "type":
		return core.String(i.typ), i.typ != ""
	case "category":
		return core.String(i.cat), i.cat != ""
	case "likes":
		return core.Int(i.likes), true
	case "owner":
		return core.Nested(i.owner), i.owner != nil
	}
	return core.Value{}, false
}

func ids(items []item) []string {
	out := []string{}
	for _, i := range items {
		out = append(out, i.id)
	}
	return out
}

var typeFilter = []core.FilterConfig{{Type: core.FilterTabs, Key: "type"}}
var categoryFilter = []core.FilterConfig{{Type: core.FilterChips, Key: "category", AllowMultiple: true}}

func TestSingleSelectKeepsOrder(t *testing.T) {
	data := []item{{id: "1", typ: "activity"}, {id: "2", typ: "post"}, {id: "3", typ: "exchange"}, {id: "4", typ: "post"}}

	got := Apply(data, Params{Filters: typeFilter, Active: core.ActiveFilters{"type": core.Single("post")}})
	if !reflect.DeepEqual(ids(got), []string{"2", "4"}) {
		t.Fatalf("got %v, want [2 4]", ids(got))
	}
}

func TestMultiSelectCategories(t *testing.T) {
	data := []item{{id: "m", cat: "music"}, {id: "l", cat: "learning"}, {id: "f", cat: "food"}}

	got := Apply(data, Params{Filters: categoryFilter, Active: core.ActiveFilters{"category": core.Multi("music", "food")}})
	if !reflect.DeepEqual(ids(got), []string{"m", "f"}) {
		t.Fatalf("got %v, want [m f]", ids(got))
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	data := []item{{id: "1", title: "MacBook Air"}, {id: "2", title: "iPad Pro"}, {id: "3", title: "iMac"}}
	cfg := &core.SearchConfig{SearchFields: []string{"title"}}

	got := Apply(data, Params{Query: "mac", Search: cfg})
	if !reflect.DeepEqual(ids(got), []string{"1", "3"}) {
		t.Fatalf("got %v, want [1 3]", ids(got))
	}
}

func TestSearchKeepsQueryWhitespace(t *testing.T) {
	data := []item{{id: "1", title: "MacBook Air"}, {id: "2", title: "iMac"}, {id: "3", title: "mac mini"}}
	cfg := &core.SearchConfig{SearchFields: []string{"title"}}

	got := Apply(data, Params{Query: "mac ", Search: cfg})
	if !reflect.DeepEqual(ids(got), []string{"3"}) {
		t.Fatalf("got %v, want [3]", ids(got))
	}
}

func TestSearchNestedAndNonString(t *testing.T) {
	data := []item{
		{id: "1", title: "x", owner: core.Fields{"name": core.String("Alice Wang")}},
		{id: "2", title: "y", owner: core.Fields{"name": core.String("Bob")}},
		{id: "3", title: "42", likes: 42},
	}
	cfg := &core.SearchConfig{SearchFields: []string{"owner.name", "likes", "missing.path"}}

	if got := Apply(data, Params{Query: "alice", Search: cfg}); !reflect.DeepEqual(ids(got), []string{"1"}) {
		t.Errorf("nested search got %v, want [1]", ids(got))
	}
	if got := Apply(data, Params{Query: "42", Search: cfg}); len(got) != 0 {
		t.Errorf("numeric fields must never match search, got %v", ids(got))
	}
}

func TestBlankQueryOrNilConfigKeepsAll(t *testing.T) {
	data := []item{{id: "1", title: "a"}, {id: "2", title: "b"}}

	if got := Apply(data, Params{Query: "   ", Search: &core.SearchConfig{SearchFields: []string{"title"}}}); len(got) != 2 {
		t.Errorf("blank query should keep all, got %v", ids(got))
	}
	if got := Apply(data, Params{Query: "zzz"}); len(got) != 2 {
		t.Errorf("nil search config should keep all, got %v", ids(got))
	}
}

func TestSearchRunsBeforeFilter(t *testing.T) {
	data := []item{
		{id: "1", title: "Guitar lesson", cat: "music"},
		{id: "2", title: "Guitar for sale", cat: "trade"},
		{id: "3", title: "Piano", cat: "music"},
	}
	got := Apply(data, Params{
		Query:   "guitar",
		Search:  &core.SearchConfig{SearchFields: []string{"title"}},
		Filters: categoryFilter,
		Active:  core.ActiveFilters{"category": core.Multi("music")},
	})
	if !reflect.DeepEqual(ids(got), []string{"1"}) {
		t.Fatalf("got %v, want [1]", ids(got))
	}
}

func TestCustomPredicateWins(t *testing.T) {
	data := []item{{id: "1", cat: "music"}, {id: "2", cat: "food"}}

	got := Apply(data, Params{
		Filters:   nil,
		Active:    core.ActiveFilters{"category": core.Single("food")},
		Predicate: predicates.Posts,
	})
	if !reflect.DeepEqual(ids(got), []string{"2"}) {
		t.Fatalf("got %v, want [2]", ids(got))
	}
}

func TestUnconfiguredKeysIgnored(t *testing.T) {
	data := []item{{id: "1", typ: "post"}}
	got := Apply(data, Params{Filters: typeFilter, Active: core.ActiveFilters{"color": core.Single("red")}})
	if len(got) != 1 {
		t.Fatalf("unconfigured key should not constrain, got %v", ids(got))
	}
}

func TestMultiSentinelEquivalence(t *testing.T) {
	data := []item{{id: "1", cat: "music"}, {id: "2", cat: "food"}, {id: "3"}}

	empty := Apply(data, Params{Filters: categoryFilter, Active: core.ActiveFilters{"category": core.Multi()}})
	all := Apply(data, Params{Filters: categoryFilter, Active: core.ActiveFilters{"category": core.Multi("all")}})
	if !reflect.DeepEqual(ids(empty), ids(all)) || len(all) != 3 {
		t.Fatalf("[] gave %v, [all] gave %v", ids(empty), ids(all))
	}
}

func TestIdempotentAndSound(t *testing.T) {
	data := []item{
		{id: "1", typ: "post", cat: "music"},
		{id: "2", typ: "post", cat: "food"},
		{id: "3", typ: "activity", cat: "music"},
		{id: "4", cat: "music"},
	}
	filters := append(append([]core.FilterConfig{}, typeFilter...), categoryFilter...)
	active := core.ActiveFilters{"type": core.Single("post"), "category": core.Multi("music")}
	p := Params{Filters: filters, Active: active}

	first := Apply(data, p)
	second := Apply(data, p)
	if !reflect.DeepEqual(ids(first), ids(second)) {
		t.Fatalf("Apply is not idempotent: %v vs %v", ids(first), ids(second))
	}

	kept := map[string]bool{}
	for _, i := range first {
		kept[i.id] = true
		if !Match(i, filters, active) {
			t.Errorf("item %s in output fails the filters", i.id)
		}
	}
	for _, i := range data {
		if !kept[i.id] && Match(i, filters, active) {
			t.Errorf("item %s excluded but satisfies the filters", i.id)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	got := Apply([]item(nil), Params{Filters: typeFilter, Active: core.ActiveFilters{"type": core.Single("post")}})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestInputNotMutated(t *testing.T) {
	data := []item{{id: "1", typ: "a"}, {id: "2", typ: "b"}}
	_ = Apply(data, Params{Filters: typeFilter, Active: core.ActiveFilters{"type": core.Single("b")}})
	if data[0].id != "1" || data[1].id != "2" {
		t.Fatalf("input was modified: %v", ids(data))
	}
}
