package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/wandernote/internal/middleware"
)

// RouterConfig carries the cross-cutting pieces NewRouter wires around the
// handlers.
type RouterConfig struct {
	Logger       *slog.Logger
	CORSOrigins  []string
	MaxBodyBytes int64
	// Auth guards every /api route. It must store the user ID with
	// middleware.WithUserID.
	Auth func(http.Handler) http.Handler
	// Metrics and MetricsHandler are optional; /metrics is only mounted when
	// MetricsHandler is set.
	Metrics        *middleware.Metrics
	MetricsHandler http.Handler
	// OpenAPI is served verbatim at /openapi.yaml when non-empty.
	OpenAPI []byte
}

// NewRouter builds the chi router for the whole API.
//
// Middleware is applied in order: RequestID → RealIP → SlogLogger → Recoverer
// → CORS → metrics → body limit. RequestID generates a unique trace ID per
// request. RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP.
// SlogLogger writes one structured log line per request. Recoverer catches
// panics and returns HTTP 500 instead of crashing.
func NewRouter(s *Server, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	if cfg.MaxBodyBytes > 0 {
		r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, notFoundBody("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorResponse{Error: ErrorDetail{
			Code: "method_not_allowed", Message: "method not allowed",
		}})
	})

	r.Get("/healthz", s.GetHealth)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}
	if len(cfg.OpenAPI) > 0 {
		r.Get("/openapi.yaml", openAPIHandler(cfg.OpenAPI))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(cfg.Auth)

		r.Get("/currencies", s.ListCurrencies)
		r.Get("/currencies/convert", s.ConvertCurrency)

		r.Get("/trips", s.ListTrips)
		r.Post("/trips", s.CreateTrip)
		r.Route("/trips/{tripId}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)

			r.Get("/destinations", s.ListDestinations)
			r.Post("/destinations", s.CreateDestination)

			r.Get("/expenses", s.ListExpenses)
			r.Post("/expenses", s.CreateExpense)
			r.Get("/expenses/export", s.ExportExpenses)

			r.Get("/budget", s.GetBudget)
			r.Get("/itinerary", s.GetItinerary)

			r.Get("/notes", s.ListNotes)
			r.Post("/notes", s.CreateNote)
		})

		r.Get("/destinations/{id}", s.GetDestination)
		r.Put("/destinations/{id}", s.UpdateDestination)
		r.Delete("/destinations/{id}", s.DeleteDestination)
		r.Get("/destinations/{id}/activities", s.ListActivities)
		r.Post("/destinations/{id}/activities", s.CreateActivity)

		r.Put("/activities/{id}", s.UpdateActivity)
		r.Delete("/activities/{id}", s.DeleteActivity)

		r.Get("/expenses/{id}", s.GetExpense)
		r.Put("/expenses/{id}", s.UpdateExpense)
		r.Delete("/expenses/{id}", s.DeleteExpense)

		r.Get("/notes/{id}", s.GetNote)
		r.Put("/notes/{id}", s.UpdateNote)
		r.Delete("/notes/{id}", s.DeleteNote)
	})

	return r
}

func openAPIHandler(doc []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(doc)
	}
}
