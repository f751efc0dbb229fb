package api

import (
	"fmt"
	"net/http"

	"github.com/okian/talentmatch/internal/domain/model"
)

const welcomeMessage = "Welcome to the Talent Job Matching API"

type matchRequest struct {
	Talent model.Talent `json:"talent"`
	Job    model.Job    `json:"job"`
}

type matchBulkRequest struct {
	Talents     []model.Talent `json:"talents"`
	Jobs        []model.Job    `json:"jobs"`
	FilterFalse bool           `json:"filter_false_predictions"`
}

type rankAndFilterRequest struct {
	Talent   model.Talent   `json:"talent"`
	Jobs     []model.Job    `json:"jobs"`
	Criteria model.Criteria `json:"criteria"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// handleRoot handles GET / requests.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.fail(w, r, NewKind("api.root", ErrMethod))
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: welcomeMessage})
}

// handleMatch handles POST /match requests.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.match"
	if r.Method != http.MethodPost {
		s.fail(w, r, NewKind(op, ErrMethod))
		return
	}
	var req matchRequest
	if err := s.decode(op, w, r, matchSchema, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.matcher.Match(r.Context(), req.Talent, req.Job)
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleMatchBulk handles POST /match_bulk requests.
func (s *Server) handleMatchBulk(w http.ResponseWriter, r *http.Request) {
	const op = "api.match_bulk"
	if r.Method != http.MethodPost {
		s.fail(w, r, NewKind(op, ErrMethod))
		return
	}
	var req matchBulkRequest
	if err := s.decode(op, w, r, matchBulkSchema, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.checkPairs(op, len(req.Talents)*len(req.Jobs)); err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.matcher.MatchBulk(r.Context(), req.Talents, req.Jobs, req.FilterFalse)
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleRankAndFilter handles POST /rank_and_filter requests.
func (s *Server) handleRankAndFilter(w http.ResponseWriter, r *http.Request) {
	const op = "api.rank_and_filter"
	if r.Method != http.MethodPost {
		s.fail(w, r, NewKind(op, ErrMethod))
		return
	}
	var req rankAndFilterRequest
	if err := s.decode(op, w, r, rankSchema, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.checkPairs(op, len(req.Jobs)); err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.matcher.RankAndFilter(r.Context(), req.Talent, req.Jobs, req.Criteria)
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) checkPairs(op string, pairs int) error {
	if pairs > s.maxBulkPairs {
		return WrapKind(op, ErrBulkLimit, fmt.Errorf("%d pairs requested, limit is %d", pairs, s.maxBulkPairs))
	}
	return nil
}
