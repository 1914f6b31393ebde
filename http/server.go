package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/fwojciec/wikiloop"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Health and error messages returned by the API.
const (
	HealthMessage     = "Server is up!"
	UnexpectedMessage = "Oups. There was an unexpected server error."
)

// FollowRequest is the body of a journey request.
type FollowRequest struct {
	StartURL string `json:"start_url"`
	StopURL  string `json:"stop_url"`
}

// FollowResponse is the body of a journey response. Error is set when the
// journey stopped before reaching its goal.
type FollowResponse struct {
	Error   string                  `json:"error,omitempty"`
	Journey []*wikiloop.PageSummary `json:"journey"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server exposes journeys over HTTP.
// Journeys run with the request context and share no state between requests.
type Server struct {
	router   chi.Router
	journeys wikiloop.JourneyService
	logger   *slog.Logger
}

// NewServer wires handlers onto a chi router.
func NewServer(journeys wikiloop.JourneyService, logger *slog.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		journeys: journeys,
		logger:   logger,
	}
	s.routes()
	return s
}

// ServeHTTP satisfies the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.handleHealth)
	s.router.Post("/api/wikiloop", s.handleFollow)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(HealthMessage))
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	var req FollowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json payload"})
		return
	}
	if err := validateURL("start_url", req.StartURL); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: wikiloop.ErrorMessage(err)})
		return
	}
	if err := validateURL("stop_url", req.StopURL); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: wikiloop.ErrorMessage(err)})
		return
	}

	result, err := s.journeys.Follow(r.Context(), req.StartURL, req.StopURL)
	if err != nil {
		s.logger.Error("journey failed",
			"start", req.StartURL,
			"goal", req.StopURL,
			"err", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: UnexpectedMessage})
		return
	}

	writeJSON(w, http.StatusOK, NewFollowResponse(result))
}

// NewFollowResponse builds the response payload for a finished journey.
// Journey is never nil so it encodes as an empty array.
func NewFollowResponse(r *wikiloop.Result) FollowResponse {
	resp := FollowResponse{
		Error:   r.Message(),
		Journey: r.Journey,
	}
	if resp.Journey == nil {
		resp.Journey = []*wikiloop.PageSummary{}
	}
	return resp
}

// validateURL checks that raw is an absolute http(s) URL.
func validateURL(field, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return wikiloop.Errorf(wikiloop.EINVALID, "%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return wikiloop.Errorf(wikiloop.EINVALID, "%s must be an absolute http(s) URL", field)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
