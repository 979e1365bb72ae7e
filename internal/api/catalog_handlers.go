package api

import (
	"net/http"

	"github.com/bookclubapp/bookclub-server/internal/catalog"
	"github.com/bookclubapp/bookclub-server/internal/http/response"
)

// handleCatalogSearch looks a book up in the external catalog by ISBN or
// title. The result is always 200; misses and upstream failures both come
// back as found=false.
func (s *Server) handleCatalogSearch(w http.ResponseWriter, r *http.Request) {
	query := catalog.Query{
		ISBN:  r.URL.Query().Get("isbn"),
		Title: r.URL.Query().Get("title"),
	}
	if query.ISBN == "" && query.Title == "" {
		response.BadRequest(w, "Either isbn or title is required", s.logger)
		return
	}

	result := s.catalogClient.Search(r.Context(), query)
	response.Success(w, result, s.logger)
}
