package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/hs-advisor/internal/hscode"
	"github.com/jonathan/hs-advisor/internal/server/middleware"
	"github.com/jonathan/hs-advisor/internal/types"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

// maxSearchResults bounds the k query parameter
const maxSearchResults = 100

// SearchResponse is the response for GET /search
type SearchResponse struct {
	Query string      `json:"query"`
	Hits  []types.Hit `json:"hits"`
}

// CodesRequest is the request body for POST /codes
type CodesRequest struct {
	Text string `json:"text" validate:"required"`
}

// CodesResponse is the response for POST /codes
type CodesResponse struct {
	Codes []string `json:"codes"`
}

// ExplanationsResponse is the response for GET /explanations
type ExplanationsResponse struct {
	Lookups []hscode.Lookup `json:"lookups"`
	Text    string          `json:"text"`
}

// AskRequest is the request body for POST /ask
type AskRequest struct {
	Question string `json:"question" validate:"required,max=4000"`
	History  string `json:"history,omitempty" validate:"max=32000"`
}

// AskResponse is the response for POST /ask
type AskResponse struct {
	Intent    types.Intent `json:"intent"`
	Answer    string       `json:"answer"`
	RequestID string       `json:"request_id,omitempty"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSearch returns the top matching corpus records
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.errorFromErr(w, r, &ErrValidation{Field: "q", Message: "is required"})
		return
	}

	k := s.maxResults
	if raw := r.URL.Query().Get("k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxSearchResults {
			s.errorFromErr(w, r, &ErrValidation{Field: "k", Message: "must be an integer between 0 and " + strconv.Itoa(maxSearchResults)})
			return
		}
		k = n
	}

	hits := s.services.Searcher.Search(query, k)
	if hits == nil {
		hits = []types.Hit{}
	}
	s.jsonResponse(w, http.StatusOK, SearchResponse{Query: query, Hits: hits})
}

// handleCodes extracts HS codes from free text
func (s *Server) handleCodes(w http.ResponseWriter, r *http.Request) {
	var req CodesRequest
	if !s.decode(w, r, &req) {
		return
	}

	codes := hscode.ExtractCodes(req.Text)
	if codes == nil {
		codes = []string{}
	}
	s.jsonResponse(w, http.StatusOK, CodesResponse{Codes: codes})
}

// handleExplanations resolves one or more ?code= parameters. Each value may be
// free text; the codes found in it are explained.
func (s *Server) handleExplanations(w http.ResponseWriter, r *http.Request) {
	var codes []string
	seen := make(map[string]bool)
	for _, raw := range r.URL.Query()["code"] {
		for _, code := range hscode.ExtractCodes(raw) {
			if !seen[code] {
				seen[code] = true
				codes = append(codes, code)
			}
		}
	}
	if len(codes) == 0 {
		s.errorFromErr(w, r, &ErrValidation{Field: "code", Message: "must contain an HS code of at least 4 digits"})
		return
	}

	lookups := make([]hscode.Lookup, len(codes))
	for i, code := range codes {
		lookups[i] = s.services.Explainer.Lookup(code)
	}
	s.jsonResponse(w, http.StatusOK, ExplanationsResponse{
		Lookups: lookups,
		Text:    s.services.Explainer.Explanations(codes),
	})
}

// handleAsk answers a question through the dispatcher
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if s.services.Answerer == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "question answering is not configured")
		return
	}

	var req AskRequest
	if !s.decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.askTimeout)
	defer cancel()

	answer, err := s.services.Answerer.Answer(ctx, req.Question, req.History)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	if clientID, ok := middleware.GetClientID(r); ok {
		s.logger.Info("question answered", "client", clientID, "intent", answer.Intent)
	}
	s.jsonResponse(w, http.StatusOK, AskResponse{
		Intent:    answer.Intent,
		Answer:    answer.Text,
		RequestID: middleware.GetRequestID(r.Context()),
	})
}

// decode reads a JSON body into dst and validates it. It writes the error
// response and returns false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.errorFromErr(w, r, &ErrBadRequest{Cause: err})
		return false
	}
	if err := s.validator.Struct(dst); err != nil {
		s.errorFromErr(w, r, validationMessage(err))
		return false
	}
	return true
}
