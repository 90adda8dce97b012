/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     zap request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for a browser client

ROUTE GROUPS:
  /api/games/*      Game lifecycle and rounds
  /api/profiles     Generation profiles
  /healthz          Liveness
  /metrics          Prometheus scrape endpoint
  /                 Index page listing the endpoints

SECURITY NOTE:
  No authentication. Game IDs are random UUIDs and act as bearer handles.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultAllowedOrigins is used when no origins are configured.
var DefaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = DefaultAllowedOrigins
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.Log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/games", func(r chi.Router) {
			r.Post("/", h.CreateGame)
			r.Get("/{id}", h.GetGame)
			r.Delete("/{id}", h.DeleteGame)
			r.Post("/{id}/offer", h.SubmitOffer)
			r.Post("/{id}/ack", h.Acknowledge)
			r.Post("/{id}/reset", h.ResetGame)
			r.Get("/{id}/summary", h.GetSummary)
		})

		r.Get("/profiles", h.ListProfiles)
	})

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(indexPage))
	})

	return r
}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>Jobstack Tycoon</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Jobstack Tycoon API</h1>
<p>Five rounds. Quote a bill rate to the customer, offer a pay rate to the workers, keep the spread.</p>
<h2>API Endpoints</h2>
<ul>
<li><code>POST /api/games</code> - Start a game</li>
<li><code>GET /api/games/{id}</code> - Current round</li>
<li><code>POST /api/games/{id}/offer</code> - Submit bill and pay rates</li>
<li><code>POST /api/games/{id}/ack</code> - Next round</li>
<li><code>GET /api/games/{id}/summary</code> - Round summary</li>
<li><a href="/api/profiles">/api/profiles</a> - Generation profiles</li>
</ul>
</body>
</html>`
