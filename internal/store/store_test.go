package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bookclubapp/bookclub-server/internal/domain"
)

// setupTestStore creates a temporary store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "bookclub-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := New(dbPath, nil)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}

	return store, cleanup
}

// Helper to create a test book.
func createTestBook(id string) *domain.Book {
	return &domain.Book{
		ID:        id,
		Title:     "Test Book " + id,
		Authors:   []string{"Test Author"},
		Genre:     "Fiction",
		ISBN10:    "1234567890",
		ISBN13:    "9781234567897",
		Publisher: "Test House",
		DateAdded: time.Now(),
	}
}

// Helper to create a test user.
func createTestUser(id, email string) *domain.User {
	return &domain.User{
		ID:          id,
		DisplayName: "Reader " + id,
		Email:       email,
		PhotoURL:    domain.DefaultPhotoURL,
		Description: domain.DefaultDescription,
	}
}
