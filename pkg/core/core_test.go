package core

import (
	"encoding/json"
	"errors"
	"testing"
)

type person struct{ name string }

func (p person) Field(name string) (Value, bool) {
	if name == "name" {
		return String(p.name), true
	}
	return Value{}, false
}

func TestLookupNestedPaths(t *testing.T) {
	item := Fields{
		"title":  String("Jam"),
		"author": Nested(person{name: "Lin"}),
		"likes":  Int(3),
	}

	if v, ok := Lookup(item, "author.name"); !ok || v.String() != "Lin" {
		t.Fatalf("author.name = %q, %v", v.String(), ok)
	}
	if _, ok := Lookup(item, "author.email"); ok {
		t.Errorf("missing nested field should not resolve")
	}
	if _, ok := Lookup(item, "title.length"); ok {
		t.Errorf("descending into a scalar should not resolve")
	}
	if v, ok := Lookup(item, "likes"); !ok || v.String() != "3" {
		t.Errorf("likes = %q", v.String())
	}
	if _, ok := Lookup(Fields{}, ""); ok {
		t.Errorf("empty path should not resolve")
	}
}

func TestValueJSON(t *testing.T) {
	var v struct {
		A Value `json:"a"`
		B Value `json:"b"`
		C Value `json:"c"`
		D Value `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"a":"music","b":12.5,"c":true,"d":null}`), &v); err != nil {
		t.Fatal(err)
	}
	if s, ok := v.A.AsString(); !ok || s != "music" {
		t.Errorf("a = %v", v.A)
	}
	if n, ok := v.B.AsNumber(); !ok || n != 12.5 {
		t.Errorf("b = %v", v.B)
	}
	if v.C.Kind() != KindBool || !v.C.Truthy() {
		t.Errorf("c = %v", v.C)
	}
	if v.D.IsValid() {
		t.Errorf("null should decode to an invalid value")
	}

	if err := json.Unmarshal([]byte(`{"a":{"x":1}}`), &v); err == nil {
		t.Errorf("objects should be rejected")
	}
}

func TestValueStringAndTruthy(t *testing.T) {
	if Int(3).String() != String("3").String() {
		t.Errorf("numbers should render like their string form")
	}
	for _, falsy := range []Value{{}, String(""), Int(0), Bool(false)} {
		if falsy.Truthy() {
			t.Errorf("%v should be falsy", falsy)
		}
	}
	if Nested(nil).IsValid() {
		t.Errorf("nil record should not be a valid value")
	}
}

func TestFilterValueSentinels(t *testing.T) {
	cases := []struct {
		value FilterValue
		want  bool
	}{
		{Single(""), true},
		{Single(AllKey), true},
		{Single("music"), false},
		{Multi(), true},
		{Multi(AllKey), true},
		{Multi("music", AllKey), true},
		{Multi("music"), false},
	}
	for _, c := range cases {
		if got := c.value.Unconstrained(); got != c.want {
			t.Errorf("%v.Unconstrained() = %v, want %v", c.value, got, c.want)
		}
	}
}

func TestFilterValueAccepts(t *testing.T) {
	multi := Multi("music", "food")
	if !multi.Accepts(String("food"), true) || multi.Accepts(String("tech"), true) {
		t.Errorf("multi membership broken")
	}
	if multi.Accepts(Value{}, false) {
		t.Errorf("missing field must not pass a constraining filter")
	}
	if !Multi().Accepts(Value{}, false) {
		t.Errorf("unconstrained filter must accept missing fields")
	}
	if !Single("3").Accepts(Int(3), true) {
		t.Errorf("numeric field should match its string key")
	}
}

func TestFilterValueJSON(t *testing.T) {
	var active ActiveFilters
	if err := json.Unmarshal([]byte(`{"type":"post","category":["music","food"],"status":null}`), &active); err != nil {
		t.Fatal(err)
	}
	if !active.Get("type").Equal(Single("post")) {
		t.Errorf("type = %v", active.Get("type"))
	}
	if !active.Get("category").Equal(Multi("music", "food")) {
		t.Errorf("category = %v", active.Get("category"))
	}
	if !active.Get("status").Unconstrained() || !active.Get("missing").Unconstrained() {
		t.Errorf("null and missing keys should be unconstrained")
	}

	out, err := json.Marshal(Multi())
	if err != nil || string(out) != "[]" {
		t.Errorf("empty multi encoded as %s, %v", out, err)
	}
}

func TestActiveFiltersCloneIsDeep(t *testing.T) {
	orig := ActiveFilters{"category": Multi("music")}
	clone := orig.Clone()
	clone["category"] = Multi("food")
	clone["type"] = Single("post")

	if !orig.Get("category").Equal(Multi("music")) || len(orig) != 1 {
		t.Fatalf("clone shares state with original: %v", orig)
	}
	if !orig.Constrained() || (ActiveFilters{"type": Single(AllKey)}).Constrained() {
		t.Errorf("Constrained mismatch")
	}
}

func TestParsePageKey(t *testing.T) {
	for _, p := range AllPages {
		got, err := ParsePageKey(string(p))
		if err != nil || got != p {
			t.Errorf("ParsePageKey(%q) = %q, %v", p, got, err)
		}
	}
	if _, err := ParsePageKey("settings"); !errors.Is(err, ErrUnknownPage) {
		t.Errorf("expected ErrUnknownPage, got %v", err)
	}
}

func TestFilterConfigEmpty(t *testing.T) {
	chips := FilterConfig{Type: FilterChips, Key: "category", AllowMultiple: true}
	if e := chips.Empty(); !e.IsMulti() || len(e.Values()) != 0 {
		t.Errorf("multi-select empty value = %v", e)
	}
	tabs := FilterConfig{Type: FilterTabs, Key: "type"}
	if e := tabs.Empty(); e.IsMulti() || e.Key() != "" {
		t.Errorf("single-select empty value = %v", e)
	}
}
