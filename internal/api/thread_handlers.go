package api

import (
	"github.com/go-json-experiment/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookclubapp/bookclub-server/internal/domain"
	"github.com/bookclubapp/bookclub-server/internal/http/response"
	"github.com/bookclubapp/bookclub-server/internal/service"
)

// handleListThreads returns a book's threads. The sort query parameter picks
// the ordering: recent (default), unanswered, or top.
func (s *Server) handleListThreads(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookID")
	limit := parseLimit(r)

	var (
		threads []domain.ThreadView
		err     error
	)
	switch sort := r.URL.Query().Get("sort"); sort {
	case "", "recent":
		threads, err = s.bookService.ListThreadsByRecency(r.Context(), bookID, limit)
	case "unanswered":
		threads, err = s.bookService.ListUnansweredThreads(r.Context(), bookID, limit)
	case "top":
		threads, err = s.bookService.ListTopThreads(r.Context(), bookID, limit)
	default:
		response.BadRequest(w, "Unknown sort: "+sort, s.logger)
		return
	}

	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, threads, s.logger)
}

// CreateThreadBody is the request body for opening a thread.
type CreateThreadBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// handleCreateThread opens a new discussion thread on a book.
func (s *Server) handleCreateThread(w http.ResponseWriter, r *http.Request) {
	var body CreateThreadBody
	if err := json.UnmarshalRead(r.Body, &body); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	thread, err := s.bookService.CreateThread(r.Context(), service.CreateThreadRequest{
		BookID:      chi.URLParam(r, "bookID"),
		CreatedBy:   getUserID(r.Context()),
		Title:       body.Title,
		Description: body.Description,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, thread, s.logger)
}

// handleGetThread returns a single thread with participants resolved.
func (s *Server) handleGetThread(w http.ResponseWriter, r *http.Request) {
	thread, err := s.bookService.GetThread(r.Context(), chi.URLParam(r, "bookID"), chi.URLParam(r, "threadID"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, thread, s.logger)
}

// handleRecordView increments a thread's view counter.
func (s *Server) handleRecordView(w http.ResponseWriter, r *http.Request) {
	err := s.bookService.RecordView(r.Context(), chi.URLParam(r, "bookID"), chi.URLParam(r, "threadID"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

// ReplyBody is the request body for replying to a thread.
type ReplyBody struct {
	Text string `json:"text"`
}

// handleReplyToThread appends the caller's reply to a thread.
func (s *Server) handleReplyToThread(w http.ResponseWriter, r *http.Request) {
	var body ReplyBody
	if err := json.UnmarshalRead(r.Body, &body); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	err := s.bookService.ReplyToThread(r.Context(), service.ReplyRequest{
		BookID:    chi.URLParam(r, "bookID"),
		ThreadID:  chi.URLParam(r, "threadID"),
		RepliedBy: getUserID(r.Context()),
		Text:      body.Text,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
