// Package records holds the per-page dataset schemas.
//
// Each schema implements core.Record with an explicit field switch, so the
// set of filterable, searchable and sortable paths is closed and visible in
// one place. Field names match the JSON keys of the dataset files.
package records

import "github.com/rubiojr/sieve/pkg/core"

// Person is an author, seller or organizer.
type Person struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

func (p Person) Field(name string) (core.Value, bool) {
	switch name {
	case "id":
		return core.String(p.ID), true
	case "name":
		return core.String(p.Name), true
	case "avatar":
		return core.String(p.Avatar), true
	}
	return core.Value{}, false
}

// Stats are engagement counters.
type Stats struct {
	Likes        int `json:"likes"`
	Comments     int `json:"comments"`
	Views        int `json:"views"`
	Participants int `json:"participants"`
}

func (s Stats) Field(name string) (core.Value, bool) {
	switch name {
	case "likes":
		return core.Int(s.Likes), true
	case "comments":
		return core.Int(s.Comments), true
	case "views":
		return core.Int(s.Views), true
	case "participants":
		return core.Int(s.Participants), true
	}
	return core.Value{}, false
}

// Favorite is an item the user saved: an activity, a post or an exchange
// listing.
type Favorite struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Author       Person `json:"author"`
	FavoriteTime string `json:"favoriteTime"`
}

func (f Favorite) Field(name string) (core.Value, bool) {
	switch name {
	case "id":
		return core.String(f.ID), true
	case "type":
		return core.String(f.Type), true
	case "title":
		return core.String(f.Title), true
	case "description":
		return core.String(f.Description), true
	case "author":
		return core.Nested(f.Author), true
	case "favoriteTime":
		return core.String(f.FavoriteTime), true
	}
	return core.Value{}, false
}

// Post is a community post.
type Post struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Category   core.Value `json:"category"`
	Author     Person     `json:"author"`
	CreateTime string     `json:"createTime"`
	Stats      Stats      `json:"stats"`
}

func (p Post) Field(name string) (core.Value, bool) {
	switch name {
	case "id":
		return core.String(p.ID), true
	case "title":
		return core.String(p.Title), true
	case "content":
		return core.String(p.Content), true
	case "category":
		return p.Category, p.Category.IsValid()
	case "author":
		return core.Nested(p.Author), true
	case "createTime":
		return core.String(p.CreateTime), true
	case "stats":
		return core.Nested(p.Stats), true
	}
	return core.Value{}, false
}

// Trade is an exchange listing.
type Trade struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       core.Value `json:"price"`
	Status      string     `json:"status"`
	Category    core.Value `json:"category"`
	Seller      Person     `json:"seller"`
	Location    string     `json:"location,omitempty"`
	PublishTime string     `json:"publishTime"`
}

func (t Trade) Field(name string) (core.Value, bool) {
	switch name {
	case "id":
		return core.String(t.ID), true
	case "title":
		return core.String(t.Title), true
	case "description":
		return core.String(t.Description), true
	case "price":
		return t.Price, t.Price.IsValid()
	case "status":
		return core.String(t.Status), true
	case "category":
		return t.Category, t.Category.IsValid()
	case "seller":
		return core.Nested(t.Seller), true
	case "location":
		return core.String(t.Location), true
	case "publishTime":
		return core.String(t.PublishTime), true
	}
	return core.Value{}, false
}

// Activity is an organised event.
type Activity struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Location  string     `json:"location"`
	Category  core.Value `json:"category"`
	Status    string     `json:"status"`
	StartTime string     `json:"startTime"`
	Organizer Person     `json:"organizer"`
	Stats     Stats      `json:"stats"`
}

func (a Activity) Field(name string) (core.Value, bool) {
	switch name {
	case "id":
		return core.String(a.ID), true
	case "title":
		return core.String(a.Title), true
	case "location":
		return core.String(a.Location), true
	case "category":
		return a.Category, a.Category.IsValid()
	case "status":
		return core.String(a.Status), true
	case "startTime":
		return core.String(a.StartTime), true
	case "organizer":
		return core.Nested(a.Organizer), true
	case "stats":
		return core.Nested(a.Stats), true
	}
	return core.Value{}, false
}

// Draft is unpublished content of any kind.
type Draft struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	UpdateTime string `json:"updateTime"`
}

func (d Draft) Field(name string) (core.Value, bool) {
	switch name {
	case "id":
		return core.String(d.ID), true
	case "type":
		return core.String(d.Type), true
	case "title":
		return core.String(d.Title), true
	case "content":
		return core.String(d.Content), true
	case "updateTime":
		return core.String(d.UpdateTime), true
	}
	return core.Value{}, false
}

// ID returns the identifier of any record that exposes an "id" field.
func ID(r core.Record) string {
	v, _ := core.Lookup(r, "id")
	return v.String()
}

// Title returns the "title" field of r, if any.
func Title(r core.Record) string {
	v, _ := core.Lookup(r, "title")
	return v.String()
}
