package router

import (
	"net/http"
	"strings"

	"price-scout/internal/auth"
	"price-scout/internal/handler"
	"price-scout/internal/metrics"
	"price-scout/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	categoryHandler *handler.CategoryHandler,
	storeHandler *handler.StoreHandler,
	observationHandler *handler.ObservationHandler,
	comparisonHandler *handler.ComparisonHandler,
	verifier *auth.Verifier,
	m *metrics.Metrics,
	metricsEnabled bool,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	if metricsEnabled {
		mux.Handle("/metrics", m.Handler())
	}

	// Category routes: collection plus the {id}/units extension.
	mux.HandleFunc("/api/categories", categoryHandler.Collection)
	mux.HandleFunc("/api/categories/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/units") {
			categoryHandler.ExtendUnits(w, r)
			return
		}
		http.Error(w, "not found", http.StatusNotFound)
	})

	// Store routes
	storeRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/stores" || r.URL.Path == "/api/stores/" {
			storeHandler.Collection(w, r)
			return
		}
		storeHandler.ByID(w, r)
	}
	mux.HandleFunc("/api/stores", storeRouteHandler)
	mux.HandleFunc("/api/stores/", storeRouteHandler)

	// Observation routes; /cheapest is its own endpoint, everything else
	// under the prefix is {id}.
	observationRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/observations" || r.URL.Path == "/api/observations/" {
			observationHandler.Collection(w, r)
			return
		}
		observationHandler.ByID(w, r)
	}
	mux.HandleFunc("/api/observations", observationRouteHandler)
	mux.HandleFunc("/api/observations/", observationRouteHandler)
	mux.HandleFunc("/api/observations/cheapest", observationHandler.Cheapest)

	// Comparison routes
	mux.HandleFunc("/api/compare", comparisonHandler.Compare)
	mux.HandleFunc("/api/comparisons", comparisonHandler.History)
	mux.HandleFunc("/api/comparisons/stats", comparisonHandler.Stats)

	// Apply middleware in order: Recovery -> Logging -> CORS -> Instrument -> BearerAuth
	var h http.Handler = mux
	h = middleware.BearerAuth(verifier, logger)(h)
	h = middleware.Instrument(m)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
