package api

import (
	"net/http"
)

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// API routes with method-specific routing
	mux.HandleFunc("GET /api/pages", s.HandleListPages)
	mux.HandleFunc("GET /api/pages/{page}/profile", s.HandleProfile)
	mux.HandleFunc("GET /api/pages/{page}/categories", s.HandleCategories)
	mux.HandleFunc("GET /api/pages/{page}/items", s.HandleItems)
	mux.HandleFunc("GET /ws/pages/{page}", s.HandleSession)
	mux.HandleFunc("GET /health", s.HandleHealth)
}

// Handler returns the routes wrapped in the CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return CorsMiddleware(mux)
}
