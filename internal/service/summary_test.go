package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookclubapp/bookclub-server/internal/domain"
	"github.com/bookclubapp/bookclub-server/internal/errors"
	"github.com/bookclubapp/bookclub-server/internal/store"
)

func newSummaryService(t *testing.T) (*SummaryService, *store.Store) {
	t.Helper()
	st := setupTestStore(t)
	return NewSummaryService(st, testLogger()), st
}

func TestAddSummary_LinksBookAndAuthor(t *testing.T) {
	svc, st := newSummaryService(t)
	ctx := context.Background()

	seedBook(t, st, &domain.Book{ID: "book-1", Title: "Dune"})
	seedUser(t, st, "user-1", "a@example.com", "Alice")

	summary, err := svc.AddSummary(ctx, AddSummaryRequest{
		BookID: "book-1",
		Author: "user-1",
		Text:   "A desert planet and its spice.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, summary.ID)
	assert.Zero(t, summary.Rating)
	assert.Zero(t, summary.TimesEvaluated)

	book, err := st.GetBook(ctx, "book-1")
	require.NoError(t, err)
	assert.Contains(t, book.SummaryIDs, summary.ID)

	user, err := st.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Contains(t, user.SummaryIDs, summary.ID)
}

func TestAddSummary_MissingBookLeavesNoTrace(t *testing.T) {
	svc, st := newSummaryService(t)
	ctx := context.Background()

	seedUser(t, st, "user-1", "a@example.com", "Alice")

	_, err := svc.AddSummary(ctx, AddSummaryRequest{
		BookID: "book-missing",
		Author: "user-1",
		Text:   "orphan",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	user, err := st.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, user.SummaryIDs)
}

func TestListTopRatedSummaries(t *testing.T) {
	svc, st := newSummaryService(t)
	ctx := context.Background()

	seedBook(t, st, &domain.Book{ID: "book-1", Title: "Dune"})
	seedUser(t, st, "user-1", "a@example.com", "Alice")
	seedUser(t, st, "user-2", "b@example.com", "Bob")

	add := func(author, text string, private bool) *domain.Summary {
		summary, err := svc.AddSummary(ctx, AddSummaryRequest{
			BookID: "book-1", Author: author, Text: text, Private: private,
		})
		require.NoError(t, err)
		return summary
	}

	low := add("user-1", "public low", false)
	high := add("user-2", "public high", false)
	secret := add("user-2", "private note", true)

	rate := func(id string, rating float64) {
		_, err := svc.RateSummary(ctx, RateSummaryRequest{SummaryID: id, Rating: rating})
		require.NoError(t, err)
	}
	rate(low.ID, 2)
	rate(high.ID, 5)
	rate(secret.ID, 4)

	// Anonymous viewer sees only public summaries, best first.
	views, err := svc.ListTopRatedSummaries(ctx, "book-1", "", 0)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, high.ID, views[0].ID)
	assert.Equal(t, "Bob", views[0].Author.DisplayName)
	assert.Equal(t, low.ID, views[1].ID)

	// The author sees their own private summary.
	views, err = svc.ListTopRatedSummaries(ctx, "book-1", "user-2", 0)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, high.ID, views[0].ID)
	assert.Equal(t, secret.ID, views[1].ID)

	// Another user does not.
	views, err = svc.ListTopRatedSummaries(ctx, "book-1", "user-1", 0)
	require.NoError(t, err)
	assert.Len(t, views, 2)

	// Limit truncates after sorting.
	views, err = svc.ListTopRatedSummaries(ctx, "book-1", "", 1)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, high.ID, views[0].ID)
}

func TestRateSummary_RunningAverage(t *testing.T) {
	svc, st := newSummaryService(t)
	ctx := context.Background()

	seedBook(t, st, &domain.Book{ID: "book-1", Title: "Dune"})
	seedUser(t, st, "user-1", "a@example.com", "Alice")

	summary, err := svc.AddSummary(ctx, AddSummaryRequest{
		BookID: "book-1", Author: "user-1", Text: "text",
	})
	require.NoError(t, err)

	updated, err := svc.RateSummary(ctx, RateSummaryRequest{SummaryID: summary.ID, Rating: 4})
	require.NoError(t, err)
	assert.InEpsilon(t, 4.0, updated.Rating, 1e-9)
	assert.Equal(t, 1, updated.TimesEvaluated)

	updated, err = svc.RateSummary(ctx, RateSummaryRequest{SummaryID: summary.ID, Rating: 2})
	require.NoError(t, err)
	assert.InEpsilon(t, 3.0, updated.Rating, 1e-9)
	assert.Equal(t, 2, updated.TimesEvaluated)
}

func TestRateSummary_Validation(t *testing.T) {
	svc, _ := newSummaryService(t)

	_, err := svc.RateSummary(context.Background(), RateSummaryRequest{SummaryID: "summary-1", Rating: 9})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestRateSummary_NotFound(t *testing.T) {
	svc, _ := newSummaryService(t)

	_, err := svc.RateSummary(context.Background(), RateSummaryRequest{SummaryID: "summary-missing", Rating: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
