package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rubiojr/sieve/pkg/dataset"
	"github.com/rubiojr/sieve/pkg/discovery"
	"github.com/rubiojr/sieve/pkg/log"
	"github.com/rubiojr/sieve/pkg/profiles"
	"github.com/rubiojr/sieve/pkg/realtime"
)

// Options tune how the server builds page controllers.
type Options struct {
	Locale string
	Mode   profiles.Mode
	Labels discovery.Labels
}

type Server struct {
	mu       sync.RWMutex
	data     *dataset.Dataset
	hub      *realtime.Hub
	opts     Options
	upgrader websocket.Upgrader
	log      *log.Logger
}

func NewServer(data *dataset.Dataset, hub *realtime.Hub, opts Options) *Server {
	if data == nil {
		data = &dataset.Dataset{}
	}
	if hub == nil {
		hub = realtime.NewHub(0)
	}
	if opts.Locale == "" {
		opts.Locale = "zh"
	}
	if opts.Labels == nil {
		opts.Labels = discovery.DefaultLabels
	}
	return &Server{
		data: data,
		hub:  hub,
		opts: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log.ForService("api"),
	}
}

// Dataset returns the dataset currently served.
func (s *Server) Dataset() *dataset.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Reload swaps the served dataset and pushes it to every open session.
func (s *Server) Reload(source string, d *dataset.Dataset) {
	if d == nil {
		d = &dataset.Dataset{}
	}
	s.mu.Lock()
	s.data = d
	s.mu.Unlock()

	n := s.hub.Broadcast(realtime.Reload(source, d))
	s.log.Infof("dataset reloaded from %s, notified %d sessions", source, n)
}

// ReloadFailed tells open sessions a reload did not succeed. The served
// dataset is kept.
func (s *Server) ReloadFailed(source string, err error) {
	s.log.Warnf("reloading %s: %v", source, err)
	s.hub.Broadcast(realtime.Failure(source, err))
}

// Hub returns the hub sessions subscribe to.
func (s *Server) Hub() *realtime.Hub { return s.hub }

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}
	s.writeJSON(w, status, response)
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
