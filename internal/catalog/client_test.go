package catalog

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSearch_ByISBN(t *testing.T) {
	var gotQuery, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"totalItems": 1,
			"items": [{
				"id": "vol1",
				"volumeInfo": {
					"title": "The Left Hand of Darkness",
					"authors": ["Ursula K. Le Guin"],
					"industryIdentifiers": [
						{"type": "ISBN_10", "identifier": "0441478123"}
					]
				}
			}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", discardLogger())

	result := client.Search(context.Background(), Query{ISBN: "0441478123"})

	assert.Equal(t, "isbn:0441478123", gotQuery)
	assert.Equal(t, "test-key", gotKey)
	require.True(t, result.Found)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "The Left Hand of Darkness", result.Items[0].VolumeInfo.Title)
}

func TestSearch_ISBNTakesPrecedenceOverTitle(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`{"totalItems": 0, "items": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", discardLogger())
	client.Search(context.Background(), Query{ISBN: "123", Title: "Dune"})

	assert.Equal(t, "isbn:123", gotQuery)
}

func TestSearch_NoMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalItems": 0, "items": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", discardLogger())
	result := client.Search(context.Background(), Query{Title: "no such book"})

	assert.False(t, result.Found)
	assert.Empty(t, result.Items)
	assert.NotNil(t, result.Items)
}

func TestSearch_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", discardLogger())
	result := client.Search(context.Background(), Query{Title: "anything"})

	assert.False(t, result.Found)
	assert.Empty(t, result.Items)
}

func TestSearch_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", discardLogger())
	result := client.Search(context.Background(), Query{Title: "anything"})

	assert.False(t, result.Found)
}

func TestSearch_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // immediately unreachable

	client := NewClient(server.URL, "k", discardLogger())
	result := client.Search(context.Background(), Query{Title: "anything"})

	assert.False(t, result.Found)
	assert.Empty(t, result.Items)
}

func TestSearch_EmptyQuery(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", discardLogger())
	result := client.Search(context.Background(), Query{})

	assert.False(t, result.Found)
	assert.False(t, called)
}
