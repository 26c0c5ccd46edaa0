package records

import (
	"testing"

	"github.com/rubiojr/sieve/pkg/core"
)

func TestNestedPaths(t *testing.T) {
	p := Post{
		ID:       "p1",
		Title:    "Jam",
		Category: core.String("music"),
		Author:   Person{ID: "u1", Name: "Lin"},
		Stats:    Stats{Likes: 7},
	}

	if v, ok := core.Lookup(p, "author.name"); !ok || v.String() != "Lin" {
		t.Errorf("author.name = %q", v.String())
	}
	if v, ok := core.Lookup(p, "stats.likes"); !ok || v.String() != "7" {
		t.Errorf("stats.likes = %q", v.String())
	}
	if ID(p) != "p1" || Title(p) != "Jam" {
		t.Errorf("ID/Title helpers = %q/%q", ID(p), Title(p))
	}
}

func TestMissingCategoryIsAbsent(t *testing.T) {
	for _, r := range []core.Record{Post{}, Trade{}, Activity{}} {
		if _, ok := r.Field("category"); ok {
			t.Errorf("%T: unset category should be absent", r)
		}
	}
	if _, ok := (Trade{}).Field("price"); ok {
		t.Errorf("unset price should be absent")
	}
}

func TestUnknownField(t *testing.T) {
	records := []core.Record{Favorite{}, Post{}, Trade{}, Activity{}, Draft{}, Person{}, Stats{}}
	for _, r := range records {
		if _, ok := r.Field("nope"); ok {
			t.Errorf("%T resolved an unknown field", r)
		}
	}
}
