// Package api serves the matching HTTP API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/pkg/logger"
	"github.com/xeipuuv/gojsonschema"
)

const (
	defaultMaxBulkPairs = 10_000
	defaultMaxBodyBytes = 8 << 20
)

// Matcher is the scoring facade the handlers delegate to.
type Matcher interface {
	Match(ctx context.Context, t model.Talent, j model.Job) (model.MatchResult, error)
	MatchBulk(ctx context.Context, talents []model.Talent, jobs []model.Job, filterFalse bool) ([]model.MatchResult, error)
	RankAndFilter(ctx context.Context, t model.Talent, jobs []model.Job, criteria model.Criteria) ([]model.MatchResult, error)
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxBulkPairs caps the number of pairs one request may score.
func WithMaxBulkPairs(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBulkPairs = n
		}
	}
}

// WithMaxBodyBytes caps the request body size.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithLogger sets a custom logger for the server.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	matcher       Matcher
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	maxBulkPairs  int
	maxBodyBytes  int64
	logger        logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(matcher Matcher, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		matcher:       matcher,
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		maxBulkPairs:  defaultMaxBulkPairs,
		maxBodyBytes:  defaultMaxBodyBytes,
		logger:        logger.Get().Named("api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/{$}", s.wrap("root", s.handleRoot))
	mux.Handle("/match", s.wrap("match", s.handleMatch))
	mux.Handle("/match_bulk", s.wrap("match_bulk", s.handleMatchBulk))
	mux.Handle("/rank_and_filter", s.wrap("rank_and_filter", s.handleRankAndFilter))
	mux.Handle("/healthz", s.wrap("healthz", s.healthHandler.HandleHealth))
	mux.Handle("/stats", s.wrap("stats", s.statsHandler.HandleStats))
}

func (s *Server) wrap(endpoint string, h http.HandlerFunc) http.Handler {
	return RequestIDMiddleware(MetricsMiddleware(h, endpoint))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// fail writes err with the status and code its kind maps to. Server-side
// failures are logged.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.String("request_id", RequestID(r.Context())),
			logger.Error(err),
		)
	}
	writeError(w, status, code, err)
}

// decode reads the body, checks it against schema and unmarshals it into
// dst. Malformed JSON is ErrBadRequest. Schema violations and values that
// do not fit their Go field are ErrSchema.
func (s *Server) decode(op string, w http.ResponseWriter, r *http.Request, schema *gojsonschema.Schema, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	if !json.Valid(body) {
		return WrapKind(op, ErrBadRequest, errors.New("malformed JSON body"))
	}
	if err := validateBody(op, schema, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		// schema "integer" admits 50000.0, which does not fit an int field
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return WrapKind(op, ErrSchema, fmt.Errorf("%s: %s does not fit %s", typeErr.Field, typeErr.Value, typeErr.Type))
		}
		return WrapKind(op, ErrBadRequest, err)
	}
	return nil
}
