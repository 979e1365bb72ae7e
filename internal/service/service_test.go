package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bookclubapp/bookclub-server/internal/domain"
	"github.com/bookclubapp/bookclub-server/internal/store"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.New(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedBook(t *testing.T, st *store.Store, book *domain.Book) {
	t.Helper()
	require.NoError(t, st.CreateBook(context.Background(), book))
}

func seedUser(t *testing.T, st *store.Store, id, email, displayName string) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:          id,
		Email:       email,
		DisplayName: displayName,
		PhotoURL:    domain.DefaultPhotoURL,
	}
	require.NoError(t, st.CreateUser(context.Background(), user))
	return user
}

func bookWithDate(id, title string, added time.Time) *domain.Book {
	return &domain.Book{
		ID:        id,
		Title:     title,
		DateAdded: added,
	}
}
