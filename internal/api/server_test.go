package api

import (
	"bytes"
	"context"
	"github.com/go-json-experiment/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bookclubapp/bookclub-server/internal/auth"
	"github.com/bookclubapp/bookclub-server/internal/catalog"
	"github.com/bookclubapp/bookclub-server/internal/domain"
	"github.com/bookclubapp/bookclub-server/internal/http/response"
	"github.com/bookclubapp/bookclub-server/internal/service"
	"github.com/bookclubapp/bookclub-server/internal/store"
)

// testKeyHex is a fixed 32-byte key for token tests.
const testKeyHex = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

type testServer struct {
	*Server
	store *store.Store
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.New(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	tokenService, err := auth.NewTokenServiceFromHex(testKeyHex, 15*time.Minute)
	require.NoError(t, err)

	authService := service.NewAuthService(st, tokenService, logger)
	bookService := service.NewBookService(st, logger)
	summaryService := service.NewSummaryService(st, logger)
	catalogClient := catalog.NewClient("http://catalog.invalid", "test-key", logger)

	server := NewServer(st, authService, bookService, summaryService, catalogClient, logger)
	return &testServer{Server: server, store: st}
}

// request performs an HTTP request against the test server's router.
func (ts *testServer) request(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.ServeHTTP(w, req)
	return w
}

// registerUser creates an account through the API and returns its user ID
// and access token.
func (ts *testServer) registerUser(t *testing.T, email, displayName string) (userID, token string) {
	t.Helper()

	w := ts.request(t, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email":        email,
		"password":     "correct horse battery",
		"display_name": displayName,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var env struct {
		Data service.AuthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Data.User.ID, env.Data.AccessToken
}

func (ts *testServer) seedBook(t *testing.T, book *domain.Book) {
	t.Helper()
	require.NoError(t, ts.store.CreateBook(context.Background(), book))
}

// decodeData unmarshals the data field of a response envelope into dest.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest any) response.Envelope {
	t.Helper()

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))

	if dest != nil {
		raw, err := json.Marshal(env.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, dest))
	}
	return env
}
