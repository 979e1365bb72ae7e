package api

import (
	"github.com/go-json-experiment/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookclubapp/bookclub-server/internal/http/response"
	"github.com/bookclubapp/bookclub-server/internal/service"
)

// handleListTopRatedSummaries returns a book's summaries, best rated first.
// Private summaries only appear for their author.
func (s *Server) handleListTopRatedSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.summaryService.ListTopRatedSummaries(
		r.Context(),
		chi.URLParam(r, "bookID"),
		getUserID(r.Context()),
		parseLimit(r),
	)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, summaries, s.logger)
}

// AddSummaryBody is the request body for adding a summary.
type AddSummaryBody struct {
	Text    string `json:"text"`
	Private bool   `json:"private"`
}

// handleAddSummary creates a summary written by the caller.
func (s *Server) handleAddSummary(w http.ResponseWriter, r *http.Request) {
	var body AddSummaryBody
	if err := json.UnmarshalRead(r.Body, &body); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	summary, err := s.summaryService.AddSummary(r.Context(), service.AddSummaryRequest{
		BookID:  chi.URLParam(r, "bookID"),
		Author:  getUserID(r.Context()),
		Text:    body.Text,
		Private: body.Private,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, summary, s.logger)
}

// RateSummaryBody is the request body for rating a summary.
type RateSummaryBody struct {
	Rating float64 `json:"rating"`
}

// handleRateSummary folds the caller's rating into the summary's average.
func (s *Server) handleRateSummary(w http.ResponseWriter, r *http.Request) {
	var body RateSummaryBody
	if err := json.UnmarshalRead(r.Body, &body); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	summary, err := s.summaryService.RateSummary(r.Context(), service.RateSummaryRequest{
		SummaryID: chi.URLParam(r, "summaryID"),
		Rating:    body.Rating,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, summary, s.logger)
}
