package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/bookclubapp/bookclub-server/internal/domain"
	"github.com/bookclubapp/bookclub-server/internal/errors"
	"github.com/bookclubapp/bookclub-server/internal/id"
	"github.com/bookclubapp/bookclub-server/internal/store"
)

// SummaryService handles book summaries and their ratings.
type SummaryService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewSummaryService creates a new summary service.
func NewSummaryService(store *store.Store, logger *slog.Logger) *SummaryService {
	return &SummaryService{
		store:  store,
		logger: logger,
	}
}

// AddSummaryRequest carries a new summary for a book.
type AddSummaryRequest struct {
	BookID  string `json:"book_id" validate:"required"`
	Author  string `json:"-"`
	Text    string `json:"text" validate:"required"`
	Private bool   `json:"private"`
}

// AddSummary creates a summary and links it to both the book and its author.
// The summary record, the book's reference, and the author's reference are
// written in one transaction, so a failed add leaves no partial state.
func (s *SummaryService) AddSummary(ctx context.Context, req AddSummaryRequest) (*domain.Summary, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	summaryID, err := id.Generate(id.PrefixSummary)
	if err != nil {
		return nil, errors.Internal("failed to generate summary ID").WithCause(err)
	}

	summary := &domain.Summary{
		ID:        summaryID,
		BookID:    req.BookID,
		Author:    req.Author,
		Text:      req.Text,
		Private:   req.Private,
		CreatedAt: time.Now(),
	}

	if err := s.store.CreateSummary(ctx, summary); err != nil {
		return nil, err
	}

	s.logger.Info("summary added", "book_id", req.BookID, "summary_id", summaryID)
	return summary, nil
}

// ListTopRatedSummaries returns a book's summaries by descending rating, with
// authors resolved. Private summaries are only included for their author;
// viewerID may be empty for anonymous readers.
func (s *SummaryService) ListTopRatedSummaries(ctx context.Context, bookID, viewerID string, limit int) ([]domain.SummaryView, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	summaries, err := s.store.GetSummariesByIDs(ctx, book.SummaryIDs)
	if err != nil {
		return nil, fmt.Errorf("load summaries: %w", err)
	}

	visible := make([]*domain.Summary, 0, len(summaries))
	for _, summary := range summaries {
		if summary.VisibleTo(viewerID) {
			visible = append(visible, summary)
		}
	}

	slices.SortStableFunc(visible, func(a, b *domain.Summary) int {
		return cmp.Compare(b.Rating, a.Rating)
	})

	if limit > 0 && len(visible) > limit {
		visible = visible[:limit]
	}

	return s.resolveSummaries(ctx, visible)
}

// RateSummaryRequest carries a rating for a summary.
type RateSummaryRequest struct {
	SummaryID string  `json:"summary_id" validate:"required"`
	Rating    float64 `json:"rating" validate:"min=0,max=5"`
}

// RateSummary folds a new evaluation into the summary's running average.
func (s *SummaryService) RateSummary(ctx context.Context, req RateSummaryRequest) (*domain.Summary, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	return s.store.UpdateSummary(ctx, func(summary *domain.Summary) error {
		summary.AddRating(req.Rating)
		return nil
	}, req.SummaryID)
}

// resolveSummaries converts summaries into views with authors resolved.
func (s *SummaryService) resolveSummaries(ctx context.Context, summaries []*domain.Summary) ([]domain.SummaryView, error) {
	authorIDs := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		authorIDs = append(authorIDs, summary.Author)
	}

	users, err := s.store.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve users: %w", err)
	}

	views := make([]domain.SummaryView, 0, len(summaries))
	for _, summary := range summaries {
		author := domain.UserRef{ID: summary.Author}
		if user, ok := users[summary.Author]; ok {
			author = user.Ref()
		}
		views = append(views, domain.SummaryView{
			ID:             summary.ID,
			BookID:         summary.BookID,
			Author:         author,
			Text:           summary.Text,
			Private:        summary.Private,
			Rating:         summary.Rating,
			TimesEvaluated: summary.TimesEvaluated,
			CreatedAt:      summary.CreatedAt,
		})
	}
	return views, nil
}
