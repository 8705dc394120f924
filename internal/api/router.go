package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check (no auth required)
		r.Get("/health", s.handleHealth)

		// Auth endpoints (no auth required)
		r.Post("/auth/login", s.handleLogin)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			// WS ticket requires authentication
			r.Post("/auth/ws-ticket", s.handleWSTicket)

			// Catalogue endpoints (read-only reference data)
			r.Route("/catalog/products", func(r chi.Router) {
				r.Get("/", s.handleListProducts)
				r.Get("/{id}", s.handleGetProduct)
			})

			// Template endpoints
			r.Route("/templates", func(r chi.Router) {
				r.Get("/", s.handleListTemplates)
				r.Post("/match", s.handleMatchTemplate)
				r.Get("/{id}", s.handleGetTemplate)
			})

			// Stateless engine endpoints
			r.Post("/recommendations", s.handleRecommendations)
			r.Post("/compatibility", s.handleCompatibility)
			r.Post("/price", s.handlePrice)

			// Configuration endpoints
			r.Route("/configurations", func(r chi.Router) {
				r.Get("/", s.handleListConfigurations)
				r.Post("/", s.handleCreateConfiguration)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetConfiguration)
					r.Put("/", s.handleUpdateConfiguration)
					r.Delete("/", s.handleDeleteConfiguration)
					r.Get("/quote", s.handleQuoteConfiguration)
				})
			})

			// WebSocket (auth via ticket, validated in handler)
			r.Get("/ws", s.handleWebSocket)
		})
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
