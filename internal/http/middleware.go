package http

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// paramsMiddleware tags the request with an id and handles 'verbose' for
// request-scoped debug logging.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		log.Info("incoming request", "method", r.Method, "url", r.URL.String(), "requestID", requestID)

		if r.URL.Query().Get("verbose") == "true" {
			originalLevel := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			defer log.SetLevel(originalLevel)
		}
		next.ServeHTTP(w, r)
	})
}

type readiness interface {
	Ready() bool
}

// readinessMiddleware answers 503 until the engine completed its first load.
func readinessMiddleware(engine readiness) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !engine.Ready() {
				log.Warn("Rejecting request, simulation not ready", "url", r.URL.Path)
				writeError(w, http.StatusServiceUnavailable, "simulation is not ready")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
