package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookclubapp/bookclub-server/internal/catalog"
)

func TestCatalogSearch_RequiresQuery(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.request(t, http.MethodGet, "/api/v1/catalog/search", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogSearch_UpstreamFailure(t *testing.T) {
	ts := setupTestServer(t)

	// The test server's catalog client points at an unreachable host, so
	// the lookup degrades to a miss instead of an error.
	w := ts.request(t, http.MethodGet, "/api/v1/catalog/search?isbn=0441478123", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var result catalog.Result
	decodeData(t, w, &result)
	assert.False(t, result.Found)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
}
