// Package httpapi is the chi HTTP transport: routing, DTO mapping and the
// sentinel-error to status-code translation. Handlers stay thin; every
// decision beyond parsing lives in a usecase service.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kaverma/forumdex/internal/domain"
	answeruc "github.com/kaverma/forumdex/internal/usecase/answer"
	browseuc "github.com/kaverma/forumdex/internal/usecase/browse"
	healthuc "github.com/kaverma/forumdex/internal/usecase/health"
	searchuc "github.com/kaverma/forumdex/internal/usecase/search"
	trendinguc "github.com/kaverma/forumdex/internal/usecase/trending"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Config carries server-side defaults applied when a request leaves the
// corresponding parameter unset.
type Config struct {
	MinSimilarity float64 // semantic floor when a search omits min_similarity
	NeighborFloor float64 // similar-posts floor when the query omits min_similarity
}

// Server holds the usecase services behind the HTTP API.
type Server struct {
	search        *searchuc.Service
	trending      *trendinguc.Service
	answers       *answeruc.Service
	browse        *browseuc.Service
	health        *healthuc.Service
	cfg           Config
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	trending *trendinguc.Service,
	answers *answeruc.Service,
	browse *browseuc.Service,
	health *healthuc.Service,
	cfg Config,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:   search,
		trending: trending,
		answers:  answers,
		browse:   browse,
		health:   health,
		cfg:      cfg,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeEmptyQuery),
		sentinelHandler(domain.ErrInvalidThreshold, http.StatusBadRequest, codeInvalidThreshold),
		sentinelHandler(domain.ErrInvalidWindow, http.StatusBadRequest, codeInvalidWindow),
		sentinelHandler(domain.ErrPostNotFound, http.StatusNotFound, codePostNotFound),
		sentinelHandler(domain.ErrTopicNotFound, http.StatusNotFound, codeTopicNotFound),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProviderError),
		sentinelHandler(domain.ErrAnswerProviderError, http.StatusBadGateway, codeAnswerProviderError),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavailable),
	}
	return s
}

// Routes registers every endpoint on the router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Post("/ask", s.handleAsk)
		r.Get("/posts/{id}", s.handleGetPost)
		r.Get("/posts/{id}/similar", s.handleSimilarPosts)
		r.Get("/topics/trending", s.handleTrending)
		r.Get("/topics/{id}", s.handleGetTopic)
		r.Get("/topics/{id}/posts", s.handleTopicPosts)
		r.Get("/users/search", s.handleSearchUsers)
		r.Get("/categories", s.handleCategories)
		r.Get("/stats", s.handleStats)
	})
	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
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

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
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
		domain.ErrEmptyQuery,
		domain.ErrInvalidThreshold,
		domain.ErrInvalidWindow,
		domain.ErrPostNotFound,
		domain.ErrTopicNotFound,
		domain.ErrEmbeddingProviderError,
		domain.ErrAnswerProviderError,
		domain.ErrStoreUnavailable,
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
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
