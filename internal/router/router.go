package router

import (
	"net/http"
	"time"

	"bistro-kart/internal/handler"
	"bistro-kart/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Options tunes the router's cross-cutting behaviour.
type Options struct {
	AllowedOrigin  string
	RequestTimeout time.Duration
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	catalogHandler *handler.CatalogHandler,
	orderHandler *handler.OrderHandler,
	opts Options,
	logger zerolog.Logger,
) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Order matters: request id first so every later layer can log it.
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestIDHeader)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(opts.AllowedOrigin))
	r.Use(chimw.Timeout(opts.RequestTimeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "NOT_FOUND", "message": "not found"}`))
	})
	r.MethodNotAllowed(handler.MethodNotAllowed(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", catalogHandler.Menu)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.List)
			r.Get("/{id}", catalogHandler.GetByID)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderHandler.Create)
			r.Get("/{id}", orderHandler.GetByID)
		})
	})

	return otelhttp.NewHandler(r, "bistro-kart-api")
}
