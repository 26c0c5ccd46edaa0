package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rubiojr/sieve/pkg/controller"
	"github.com/rubiojr/sieve/pkg/core"
	"github.com/rubiojr/sieve/pkg/realtime"
)

const (
	writeTimeout = 10 * time.Second
	maxMessage   = 64 * 1024
)

// session is one live view of a page. Its controller is owned by the
// goroutine running loop; the reader goroutine only decodes client
// messages.
type session struct {
	id     string
	page   core.PageKey
	conn   *websocket.Conn
	server *Server
	ctrl   *controller.Controller[core.Record]

	dirty  bool
	outbox []SessionMessage
}

// HandleSession upgrades the request and serves a page session until the
// client disconnects. With ?controlled=true the client owns the filter,
// sort and search state and receives a changed message for every update.
func (s *Server) HandleSession(w http.ResponseWriter, r *http.Request) {
	page, ok := s.pageParam(w, r)
	if !ok {
		return
	}
	controlled, _ := strconv.ParseBool(r.URL.Query().Get("controlled"))

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnf("upgrading session: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessage)

	sess := &session{
		id:     uuid.NewString(),
		page:   page,
		conn:   conn,
		server: s,
	}

	cfg := controller.Config[core.Record]{
		InitialSort:   r.URL.Query().Get("sort"),
		InitialSearch: r.URL.Query().Get("q"),
		OnDataChange:  func([]core.Record) { sess.dirty = true },
	}
	if controlled {
		cfg.FilterOwner = sess
		cfg.SortOwner = sess
		cfg.SearchOwner = sess
	}
	sess.ctrl, err = s.newController(page, cfg)
	if err != nil {
		_ = sess.write(SessionMessage{Type: MessageError, Session: sess.id, Page: page, Error: err.Error()})
		return
	}
	defer sess.ctrl.Close()

	id, events := s.hub.Register()
	defer s.hub.Unregister(id)

	s.log.Debugf("session %s opened for %s (controlled=%v)", sess.id, page, controlled)
	defer s.log.Debugf("session %s closed", sess.id)

	sess.loop(r.Context(), events)
}

func (sess *session) loop(ctx context.Context, events <-chan realtime.Event) {
	profile := sess.ctrl.Profile()
	if err := sess.write(SessionMessage{
		Type:          MessageInit,
		Session:       sess.id,
		Page:          sess.page,
		Profile:       &profile,
		ItemsResponse: itemsResponse(sess.page, sess.ctrl),
	}); err != nil {
		return
	}
	sess.dirty = false

	incoming := make(chan ClientMessage)
	done := make(chan struct{})
	defer close(done)
	go sess.read(incoming, done)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-incoming:
			if !ok {
				return
			}
			if err := sess.apply(msg); err != nil {
				sess.queue(SessionMessage{Type: MessageError, Error: err.Error()})
			}
		case ev, ok := <-events:
			if !ok {
				return
			}
			sess.reload(ev)
		}
		if err := sess.flush(); err != nil {
			sess.server.log.Debugf("session %s: %v", sess.id, err)
			return
		}
	}
}

func (sess *session) read(out chan<- ClientMessage, done <-chan struct{}) {
	defer close(out)
	for {
		var msg ClientMessage
		if err := sess.conn.ReadJSON(&msg); err != nil {
			return
		}
		select {
		case out <- msg:
		case <-done:
			return
		}
	}
}

func (sess *session) apply(msg ClientMessage) error {
	c := sess.ctrl
	switch msg.Action {
	case ActionToggle:
		return c.ToggleOption(msg.Key, msg.Option)
	case ActionSetFilter:
		f, ok := c.Profile().Filter(msg.Key)
		if !ok {
			return fmt.Errorf("setting %q: %w", msg.Key, controller.ErrUnknownFilter)
		}
		value, err := coerceFilter(f, msg.Value)
		if err != nil {
			return fmt.Errorf("setting %q: %w", msg.Key, err)
		}
		c.SetFilter(msg.Key, value)
	case ActionSort:
		c.SetSort(msg.Text)
	case ActionSearch:
		c.SetSearch(msg.Text)
	case ActionClear:
		c.ClearAll()
	case ActionSync:
		if msg.Filters != nil {
			c.SyncFilters(msg.Filters)
		}
		if msg.Sort != nil {
			c.SyncSort(*msg.Sort)
		}
		if msg.Search != nil {
			c.SyncSearch(*msg.Search)
		}
	default:
		return fmt.Errorf("unknown action %q", msg.Action)
	}
	return nil
}

func (sess *session) reload(ev realtime.Event) {
	switch ev.Type {
	case realtime.EventReload:
		if ev.Dataset == nil {
			return
		}
		items, err := ev.Dataset.Items(sess.page)
		if err != nil {
			sess.queue(SessionMessage{Type: MessageError, Error: err.Error()})
			return
		}
		sess.ctrl.SetData(items)
	case realtime.EventError:
		sess.queue(SessionMessage{Type: MessageError, Error: "reloading " + ev.Source + ": " + ev.Error})
	}
}

// flush writes queued messages, then the latest result if it changed.
func (sess *session) flush() error {
	queued := sess.outbox
	sess.outbox = nil
	for _, m := range queued {
		if err := sess.write(m); err != nil {
			return err
		}
	}
	if !sess.dirty {
		return nil
	}
	sess.dirty = false
	return sess.write(SessionMessage{
		Type:          MessageData,
		ItemsResponse: itemsResponse(sess.page, sess.ctrl),
	})
}

func (sess *session) queue(m SessionMessage) {
	sess.outbox = append(sess.outbox, m)
}

func (sess *session) write(m SessionMessage) error {
	m.Session = sess.id
	m.Page = sess.page
	if err := sess.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return sess.conn.WriteJSON(m)
}

func (sess *session) FilterChanged(key string, value core.FilterValue) {
	sess.queue(SessionMessage{Type: MessageChanged, Slice: "filter", Key: key, Value: &value})
}

func (sess *session) SortChanged(key string) {
	sess.queue(SessionMessage{Type: MessageChanged, Slice: "sort", Key: key})
}

func (sess *session) SearchChanged(text string) {
	sess.queue(SessionMessage{Type: MessageChanged, Slice: "search", Text: &text})
}

// coerceFilter converts v to the shape of the dimension f: a multi-select
// always holds a Multi, a single-select a Single of at most one key.
func coerceFilter(f core.FilterConfig, v core.FilterValue) (core.FilterValue, error) {
	if f.Multi() {
		if v.IsMulti() {
			return v, nil
		}
		if v.Key() == "" {
			return core.Multi(), nil
		}
		return core.Multi(v.Key()), nil
	}
	if !v.IsMulti() {
		return v, nil
	}
	switch values := v.Values(); len(values) {
	case 0:
		return core.Single(""), nil
	case 1:
		return core.Single(values[0]), nil
	default:
		return core.FilterValue{}, fmt.Errorf("%w: %q accepts a single value", errBadFilter, f.Key)
	}
}
