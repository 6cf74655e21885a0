// Package chi exposes the HTTP API.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/quizdex/quizdex/internal/domain"
	"github.com/quizdex/quizdex/internal/domain/actor"
	"github.com/quizdex/quizdex/internal/domain/search/query"
	"github.com/quizdex/quizdex/internal/metrics"
	cataloguc "github.com/quizdex/quizdex/internal/usecase/catalog"
	healthuc "github.com/quizdex/quizdex/internal/usecase/health"
	searchuc "github.com/quizdex/quizdex/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers for the quizdex API.
type Server struct {
	search        *searchuc.Service
	catalog       *cataloguc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	bounds        query.Bounds
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	catalog *cataloguc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		catalog: catalog,
		health:  health,
		logger:  logger,
		bounds:  query.DefaultBounds(),
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidArgument, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrUnauthorized, http.StatusUnauthorized, codeUnauthorized),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavailable),
		sentinelHandler(domain.ErrTimeout, http.StatusGatewayTimeout, codeTimeout),
	}
	return s
}

// WithSearchBounds overrides the search window bounds.
func (s *Server) WithSearchBounds(defaultLimit, maxLimit int, defaultMinScore float64) *Server {
	if defaultLimit > 0 {
		s.bounds.DefaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.bounds.MaxLimit = maxLimit
	}
	if defaultMinScore >= 0 && defaultMinScore <= 1 {
		s.bounds.DefaultMinScore = defaultMinScore
	}
	return s
}

// Register mounts all routes on the given router.
func (s *Server) Register(r chi.Router) {
	r.Route("/api/v1/tests", func(r chi.Router) {
		r.Get("/search", s.SearchTests)
		r.Get("/feed", s.Feed)
		r.Get("/next-id", s.NextCustomID)
		r.Get("/slug/{slug}", s.GetTestBySlug)
		r.Get("/user/{userID}", s.ListUserTests)
		r.Get("/{ref}", s.GetTest)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchTests handles GET /api/v1/tests/search.
func (s *Server) SearchTests(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	limit, err := intParam(params.Get("limit"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "limit must be an integer")
		return
	}
	offset, err := intParam(params.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "offset must be an integer")
		return
	}

	minScore := 0.0
	hasMinScore := params.Has("min_score")
	if hasMinScore {
		minScore, err = strconv.ParseFloat(params.Get("min_score"), 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "min_score must be a number")
			return
		}
	}

	q, err := query.NewBounded(
		params.Get("q"), limit, offset,
		minScore, hasMinScore, params.Get("creator_id"),
		s.bounds,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, err := s.search.Search(r.Context(), callerFromRequest(r), &q)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		s.handleDomainError(w, err)
		return
	}

	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	metrics.SearchResultsReturned.WithLabelValues().Observe(float64(len(results)))
	if len(results) > 0 {
		metrics.SearchMatchesTotal.WithLabelValues(string(results[0].MatchType())).Inc()
	}

	items := make([]testDTO, len(results))
	for i := range results {
		items[i] = scoredToDTO(&results[i])
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Items:  items,
		Total:  len(items),
		Limit:  q.Limit(),
		Offset: q.Offset(),
	})
}

// Feed handles GET /api/v1/tests/feed.
func (s *Server) Feed(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	page, err := intParam(params.Get("page"), 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "page must be an integer")
		return
	}
	limit, err := intParam(params.Get("limit"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "limit must be an integer")
		return
	}

	feed, err := s.catalog.Feed(r.Context(), page, limit, params.Get("q"), params.Get("category_id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, feedResponse{
		Items:   itemsToDTO(feed.Items),
		Page:    feed.Page,
		HasMore: feed.HasMore,
	})
}

// GetTest handles GET /api/v1/tests/{ref}. The reference resolves as a
// UUID, then a custom id, then a slug.
func (s *Server) GetTest(w http.ResponseWriter, r *http.Request) {
	item, err := s.catalog.Get(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemToDTO(item))
}

// GetTestBySlug handles GET /api/v1/tests/slug/{slug}.
func (s *Server) GetTestBySlug(w http.ResponseWriter, r *http.Request) {
	item, err := s.catalog.BySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemToDTO(item))
}

// ListUserTests handles GET /api/v1/tests/user/{userID}.
func (s *Server) ListUserTests(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalog.UserTests(r.Context(), callerFromRequest(r), chi.URLParam(r, "userID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{
		Items: itemsToDTO(items),
		Total: len(items),
	})
}

// NextCustomID handles GET /api/v1/tests/next-id.
func (s *Server) NextCustomID(w http.ResponseWriter, r *http.Request) {
	id, err := s.catalog.NextCustomID(r.Context(), r.URL.Query().Get("prefix"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nextIDResponse{CustomID: id})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// callerFromRequest resolves the acting user from the X-User-ID header.
// Absent header means an anonymous caller.
func callerFromRequest(r *http.Request) actor.Actor {
	id := r.Header.Get("X-User-ID")
	if id == "" {
		return actor.Anonymous()
	}
	return actor.New(id, false)
}

func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse int param: %w", err)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidArgument,
		domain.ErrUnauthorized,
		domain.ErrNotFound,
		domain.ErrStoreUnavailable,
		domain.ErrTimeout,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
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
