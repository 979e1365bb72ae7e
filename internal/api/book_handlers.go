package api

import (
	"github.com/go-json-experiment/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bookclubapp/bookclub-server/internal/http/response"
	"github.com/bookclubapp/bookclub-server/internal/service"
)

// parseLimit reads the optional "limit" query parameter. Zero means
// "use the handler's default".
func parseLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

// handleListBooks returns every book in the library.
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.bookService.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, books, s.logger)
}

// handleListRecentBooks returns the most recently added books.
func (s *Server) handleListRecentBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.bookService.ListRecentlyAdded(r.Context(), parseLimit(r))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, books, s.logger)
}

// handleTextSearch searches books by title, author, genre, or ISBN.
func (s *Server) handleTextSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.BadRequest(w, "Query parameter q is required", s.logger)
		return
	}

	books, err := s.bookService.TextSearch(r.Context(), query)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, books, s.logger)
}

// FilteredSearchRequest selects books matching one value from each list.
type FilteredSearchRequest struct {
	Genres     []string `json:"genres"`
	Authors    []string `json:"authors"`
	Publishers []string `json:"publishers"`
}

// handleFilteredSearch returns books matching all three criteria.
func (s *Server) handleFilteredSearch(w http.ResponseWriter, r *http.Request) {
	var req FilteredSearchRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	books, err := s.bookService.FilteredSearch(r.Context(), req.Genres, req.Authors, req.Publishers)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, books, s.logger)
}

// handleLookup returns books matching a field filter, with thread
// participants resolved.
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	var filter service.BookFilter
	if err := json.UnmarshalRead(r.Body, &filter); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	views, err := s.bookService.Lookup(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, views, s.logger)
}

// handleUpsertBook stores a book unless the same edition already exists.
func (s *Server) handleUpsertBook(w http.ResponseWriter, r *http.Request) {
	var req service.UpsertBookRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	book, err := s.bookService.Upsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, book, s.logger)
}

// handleAddToFavorites adds the book to the caller's favorites.
func (s *Server) handleAddToFavorites(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookID")

	if err := s.bookService.AddToFavorites(r.Context(), bookID, getUserID(r.Context())); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
