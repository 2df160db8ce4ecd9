// Package chi is the REST transport: a thin layer translating wire formats
// to plain values before handing off to the usecases.
package chi

import (
	"errors"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/finmock/researchd/internal/domain"
	cataloguc "github.com/finmock/researchd/internal/usecase/catalog"
	exportuc "github.com/finmock/researchd/internal/usecase/export"
	extractionuc "github.com/finmock/researchd/internal/usecase/extraction"
	healthuc "github.com/finmock/researchd/internal/usecase/health"
	queryuc "github.com/finmock/researchd/internal/usecase/query"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the API handlers.
type Server struct {
	catalog       *cataloguc.Service
	extractions   *extractionuc.Service
	queries       *queryuc.Service
	exports       *exportuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *cataloguc.Service,
	extractions *extractionuc.Service,
	queries *queryuc.Service,
	exports *exportuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		catalog:     catalog,
		extractions: extractions,
		queries:     queries,
		exports:     exports,
		health:      health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrTradeIdeaNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrTagNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrDuplicateTag, http.StatusConflict, codeConflict),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidCategory, http.StatusBadRequest, codeValidationFailed),
	}
	return s
}

// Register mounts every route on the router.
func (s *Server) Register(r chirouter.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api", func(r chirouter.Router) {
		r.Get("/extractions", s.ListExtractions)
		r.Post("/extractions", s.CreateExtraction)
		r.Get("/extractions/{id}", s.GetExtraction)
		r.Patch("/extractions/{id}", s.PatchExtraction)
		r.Patch("/extractions/{id}/trade-ideas/{ideaID}", s.PatchTradeIdea)

		r.Post("/dashboard", s.Dashboard)

		r.Get("/tags", s.ListTags)
		r.Get("/tags/categories", s.ListTagCategories)
		r.Get("/tags/by-category/{category}", s.ListTagsByCategory)
		r.Post("/tags", s.CreateTag)
		r.Post("/tags/load", s.LoadTaxonomy)

		r.Get("/dumpdata", s.DumpData)
		r.Post("/loaddata", s.LoadData)
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.health.Check(r.Context()); err != nil {
		s.logger.Error("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// sentinelHandler returns an errorHandler that matches a single sentinel
// error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
