package api

import (
	"time"

	"github.com/rubiojr/sieve/pkg/core"
)

type PageInfo struct {
	Key   core.PageKey `json:"key"`
	Count int          `json:"count"`
}

type ListPagesResponse struct {
	Pages []PageInfo `json:"pages"`
	Count int        `json:"count"`
}

type ProfileResponse struct {
	Page    core.PageKey `json:"page"`
	Dynamic bool         `json:"dynamic"`
	Profile core.Profile `json:"profile"`
}

type CategoriesResponse struct {
	Page    core.PageKey        `json:"page"`
	Field   string              `json:"field"`
	Options []core.FilterOption `json:"options"`
}

// ItemsResponse is one filtered, sorted view of a page.
type ItemsResponse struct {
	Page             core.PageKey       `json:"page"`
	Items            []core.Record      `json:"items"`
	Total            int                `json:"total"`
	Count            int                `json:"count"`
	Filters          core.ActiveFilters `json:"filters"`
	Sort             string             `json:"sort"`
	Query            string             `json:"query,omitempty"`
	HasActiveFilters bool               `json:"has_active_filters"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Session message types sent by the server.
const (
	MessageInit    = "init"
	MessageData    = "data"
	MessageChanged = "changed"
	MessageError   = "error"
)

// Client actions accepted on a session.
const (
	ActionToggle    = "toggle"
	ActionSetFilter = "set_filter"
	ActionSort      = "sort"
	ActionSearch    = "search"
	ActionClear     = "clear"
	ActionSync      = "sync"
)

// SessionMessage is sent by the server over a WebSocket session.
//
// init carries the profile and first result, data every later result.
// changed mirrors one state change to a client that owns the state
// (sessions opened with ?controlled=true). error reports a rejected action
// or a failed dataset reload.
type SessionMessage struct {
	Type    string        `json:"type"`
	Session string        `json:"session"`
	Page    core.PageKey  `json:"page"`
	Profile *core.Profile `json:"profile,omitempty"`
	*ItemsResponse

	// Set on changed messages.
	Slice string            `json:"slice,omitempty"`
	Key   string            `json:"key,omitempty"`
	Value *core.FilterValue `json:"value,omitempty"`
	Text  *string           `json:"text,omitempty"`

	Error string `json:"error,omitempty"`
}

// ClientMessage is an action sent by the client.
type ClientMessage struct {
	Action string `json:"action"`

	// toggle and set_filter
	Key    string           `json:"key,omitempty"`
	Option string           `json:"option,omitempty"`
	Value  core.FilterValue `json:"value"`

	// sort and search
	Text string `json:"text,omitempty"`

	// sync
	Filters core.ActiveFilters `json:"filters,omitempty"`
	Sort    *string            `json:"sort,omitempty"`
	Search  *string            `json:"search,omitempty"`
}
