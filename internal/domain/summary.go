package domain

import "time"

// Summary is a user-written book summary. Summaries live in their own
// collection and are referenced from both the book and the author.
type Summary struct {
	ID             string    `json:"id"`
	BookID         string    `json:"book_id"`
	Author         string    `json:"author"`
	Text           string    `json:"text"`
	Private        bool      `json:"private"`
	Rating         float64   `json:"rating"`
	TimesEvaluated int       `json:"times_evaluated"`
	CreatedAt      time.Time `json:"created_at"`
}

// VisibleTo reports whether the summary may be shown to the given user.
// Private summaries are only visible to their author.
func (s *Summary) VisibleTo(userID string) bool {
	return !s.Private || s.Author == userID
}

// AddRating folds a new evaluation into the running average rating.
func (s *Summary) AddRating(rating float64) {
	total := s.Rating*float64(s.TimesEvaluated) + rating
	s.TimesEvaluated++
	s.Rating = total / float64(s.TimesEvaluated)
}
