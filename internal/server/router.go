// Package server implements the collage HTTP API.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kiesman99/collage/internal/api"
)

// RouterOptions configures the middleware stack around the API.
type RouterOptions struct {
	Timeout time.Duration
	// MaxBody limits request bodies in bytes; zero disables the limit.
	MaxBody int64
	Logger  *log.Logger
}

// Router mounts srv at /api/v1 behind the standard middleware stack.
func Router(srv *Server, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  logger.StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel}),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	if opts.Timeout > 0 {
		r.Use(middleware.Timeout(opts.Timeout))
	}
	if opts.MaxBody > 0 {
		r.Use(middleware.RequestSize(opts.MaxBody))
	}
	r.Use(cors)

	api.HandlerWithOptions(srv, api.ChiServerOptions{
		BaseURL:    "/api/v1",
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			requestID := requestIDFrom(r)
			srv.writeErrorResponse(w, http.StatusBadRequest, "INVALID_PARAMETER", err.Error(), &requestID, nil)
		},
	})

	// Unversioned health endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/v1/health", http.StatusMovedPermanently)
	})

	return r
}

// cors allows browser clients from any origin.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, X-Collage-Layout, X-Collage-Blank-Cells, X-Collage-Skipped-Panels")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
