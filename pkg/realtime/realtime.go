// Package realtime is an in-process publish/subscribe hub that fans dataset
// events out to listeners such as WebSocket sessions.
//
// Delivery is best effort: a listener whose buffer is full misses the event,
// so one slow session never blocks a reload. There is no replay.
package realtime

import (
	"sync"
	"time"

	"github.com/rubiojr/sieve/pkg/dataset"
)

const (
	EventReload = "reload"
	EventError  = "error"
)

// Event is the hub envelope. Reload events carry the freshly loaded dataset;
// error events carry the reason a reload failed.
type Event struct {
	Type    string           `json:"type"`
	Source  string           `json:"source,omitempty"`
	At      time.Time        `json:"at"`
	Dataset *dataset.Dataset `json:"-"`
	Error   string           `json:"error,omitempty"`
}

// Reload wraps a dataset loaded from source.
func Reload(source string, d *dataset.Dataset) Event {
	return Event{Type: EventReload, Source: source, At: time.Now().UTC(), Dataset: d}
}

// Failure reports a reload of source that did not succeed.
func Failure(source string, err error) Event {
	return Event{Type: EventError, Source: source, At: time.Now().UTC(), Error: err.Error()}
}

// Hub is a concurrency-safe fan-out dispatcher. Each listener receives
// events on its own buffered channel.
type Hub struct {
	mu        sync.RWMutex
	listeners map[uint64]chan Event
	nextID    uint64
	bufSize   int
}

// NewHub constructs a hub with per-listener buffer size. If bufSize <= 0, a
// default of 8 is used.
func NewHub(bufSize int) *Hub {
	if bufSize <= 0 {
		bufSize = 8
	}
	return &Hub{
		listeners: make(map[uint64]chan Event),
		bufSize:   bufSize,
	}
}

// Register adds a new listener and returns its id and receive channel.
// Callers must later Unregister(id).
func (h *Hub) Register() (uint64, <-chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan Event, h.bufSize)
	h.listeners[id] = ch
	return id, ch
}

// Unregister removes the listener and closes its channel. Unknown ids are
// ignored.
func (h *Hub) Unregister(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.listeners[id]; ok {
		delete(h.listeners, id)
		close(ch)
	}
}

// Broadcast delivers ev to every listener, dropping it for listeners whose
// buffer is full. It returns how many listeners received the event.
func (h *Hub) Broadcast(ev Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	delivered := 0
	for _, ch := range h.listeners {
		select {
		case ch <- ev:
			delivered++
		default:
			// Drop for slow listener.
		}
	}
	return delivered
}

// Size returns the current number of listeners.
func (h *Hub) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}
