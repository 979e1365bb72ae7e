package domain

import "time"

// Resolved views replace user ID references with full public identities.
// They are assembled by the service layer before leaving the API boundary.

// ThreadView is a thread with its creator and reply authors resolved.
type ThreadView struct {
	ID          string      `json:"id"`
	CreatedBy   UserRef     `json:"created_by"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	Views       int         `json:"views"`
	Replies     []ReplyView `json:"replies"`
}

// ReplyView is a reply with its author resolved.
type ReplyView struct {
	Text      string    `json:"text"`
	RepliedBy UserRef   `json:"replied_by"`
	CreatedAt time.Time `json:"created_at"`
}

// BookView is a book whose thread creators have been resolved.
type BookView struct {
	Book
	ThreadViews []ThreadView `json:"thread_views,omitempty"`
}

// SummaryView is a summary with its author resolved.
type SummaryView struct {
	ID             string    `json:"id"`
	BookID         string    `json:"book_id"`
	Author         UserRef   `json:"author"`
	Text           string    `json:"text"`
	Private        bool      `json:"private"`
	Rating         float64   `json:"rating"`
	TimesEvaluated int       `json:"times_evaluated"`
	CreatedAt      time.Time `json:"created_at"`
}
