/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend
  5. RateLimit:  Per-IP throttling

ROUTE GROUPS:
  /api/user/*    Member-facing calendar and reservation routes
  /api/admin/*   Admin dashboard, approval workflow
  /api/users     Seed user listing (user-selection screen)

SECURITY NOTE:
  No authentication middleware. The member identity is configured, the
  admin routes are open. This mirrors the single-family deployment model.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured. A nil
// limiter disables rate limiting.
func NewRouter(h *Handler, rl *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	if rl != nil {
		r.Use(rl.Limit)
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/users", h.ListUsers)

		// Member routes
		r.Route("/user", func(r chi.Router) {
			r.Get("/calendar/{year}", h.GetCalendar)
			r.Get("/calendar/{year}/grid", h.GetCalendarGrid)
			r.Get("/reservations/{year}", h.GetUserReservations)
			r.Post("/reservations", h.CreateReservation)
			r.Post("/reservations/{id}/cancel", h.CancelReservation)
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Get("/stats/{year}", h.GetStats)
			r.Get("/reservations/{year}", h.ListReservations)
			r.Get("/reservations/pending/{year}", h.ListPendingReservations)
			r.Get("/reservations/history/{year}", h.ListReservationHistory)
			r.Patch("/reservations/{id}/status", h.UpdateReservationStatus)
		})
	})

	return r
}
