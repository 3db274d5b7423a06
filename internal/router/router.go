package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/corkboard-dev/corkboard/internal/middleware/metrics"
	"github.com/corkboard-dev/corkboard/internal/setup"
)

// New creates and configures the chi router with all the routes.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(mw.Middleware)

	// setup CORS for browser clients
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:8081"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	h := deps.Handler

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/boards", h.CreateBoard)

		r.Route("/{board}", func(r chi.Router) {
			r.Get("/", h.GetBoard)
			r.Delete("/", h.DeleteBoard)

			r.Route("/sections/{section}", func(r chi.Router) {
				r.Post("/", h.CreateEntry)
				r.Put("/order", h.ReorderSection)
			})

			r.Route("/entries/{entry}", func(r chi.Router) {
				r.Get("/", h.GetEntry)
				r.Patch("/", h.UpdateEntry)
				r.Delete("/", h.DeleteEntry)
				r.Post("/move", h.MoveEntry)
			})
		})
	})

	return r
}
