// Package server is the thin HTTP surface over the chat engine and the
// quick oven calculator.
package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/buildagent/multibuild/internal/catalog"
	"github.com/buildagent/multibuild/internal/engine"
	"github.com/buildagent/multibuild/internal/quickcalc"
)

// Server holds the handler dependencies.
type Server struct {
	engine  *engine.Engine
	quick   *quickcalc.Calculator
	catalog *catalog.Catalog
	log     zerolog.Logger
}

// New creates a Server. All dependencies are required.
func New(eng *engine.Engine, quick *quickcalc.Calculator, cat *catalog.Catalog, log zerolog.Logger) *Server {
	return &Server{engine: eng, quick: quick, catalog: cat, log: log}
}

// Routes builds the full route table wrapped in request logging.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/oven/calculate", s.handleCalculate)
	mux.HandleFunc("GET /api/oven/options/{quality}", s.handleOptions)
	mux.HandleFunc("GET /api/oven/demo", s.handleDemo)
	mux.HandleFunc("GET /api/oven/materials", s.handleMaterials)

	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/session/{id}", s.handleSessionInfo)
	mux.HandleFunc("DELETE /api/session/{id}", s.handleSessionDelete)

	mux.HandleFunc("GET /healthz", s.handleHealth)

	return s.logRequests(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
