// Package domain contains the core business entities for the BookClub
// discussion platform.
package domain

import (
	"slices"
	"time"

	"github.com/bookclubapp/bookclub-server/internal/search"
)

// Book represents a book in the library, with its discussion threads embedded
// and its summaries referenced by ID.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Authors     []string  `json:"authors,omitempty"`
	Genre       string    `json:"genre,omitempty"`
	ISBN10      string    `json:"isbn10,omitempty"`
	ISBN13      string    `json:"isbn13,omitempty"`
	Publisher   string    `json:"publisher,omitempty"`
	Description string    `json:"description,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty"`
	DateAdded   time.Time `json:"date_added"`

	// Favorites counts users who favorited this book. It is kept in step with
	// User.FavoriteBookIDs inside a single store transaction.
	Favorites int `json:"favorites"`

	Threads    []Thread `json:"threads"`
	SummaryIDs []string `json:"summary_ids,omitempty"`
}

// Thread is a discussion thread embedded in its owning book.
type Thread struct {
	ID          string    `json:"id"`
	CreatedBy   string    `json:"created_by"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Views       int       `json:"views"`
	Replies     []Reply   `json:"replies"`
}

// Reply is a single answer inside a thread.
type Reply struct {
	Text      string    `json:"text"`
	RepliedBy string    `json:"replied_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Equal reports whether two replies are structurally identical.
// Identical replies posted within the same instant are considered duplicates.
func (r Reply) Equal(other Reply) bool {
	return r.Text == other.Text &&
		r.RepliedBy == other.RepliedBy &&
		r.CreatedAt.Equal(other.CreatedAt)
}

// EngagementScore weights replies twice as heavily as views.
func (t *Thread) EngagementScore() int {
	return 2*len(t.Replies) + t.Views
}

// FindThread returns the index of the thread with the given ID, or -1.
func (b *Book) FindThread(threadID string) int {
	return slices.IndexFunc(b.Threads, func(t Thread) bool {
		return t.ID == threadID
	})
}

// HasAuthor reports whether any of the book's authors matches name exactly.
func (b *Book) HasAuthor(name string) bool {
	return slices.Contains(b.Authors, name)
}

// MatchesText reports whether the query matches the book's title, any author,
// or genre as a case- and accent-insensitive substring, or equals one of its
// ISBNs exactly.
func (b *Book) MatchesText(query string) bool {
	if query == "" {
		return false
	}
	if b.ISBN10 == query || b.ISBN13 == query {
		return true
	}

	if search.Contains(b.Title, query) {
		return true
	}
	if search.Contains(b.Genre, query) {
		return true
	}
	for _, author := range b.Authors {
		if search.Contains(author, query) {
			return true
		}
	}
	return false
}

// SameEdition reports whether two books describe the same edition, comparing
// the descriptive fields only (not counters, threads, or summaries). Upsert
// uses this as its match key, mirroring find-or-create on document equality.
func (b *Book) SameEdition(other *Book) bool {
	return b.Title == other.Title &&
		slices.Equal(b.Authors, other.Authors) &&
		b.Genre == other.Genre &&
		b.ISBN10 == other.ISBN10 &&
		b.ISBN13 == other.ISBN13 &&
		b.Publisher == other.Publisher
}
