package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck_Success(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.request(t, http.MethodGet, "/health", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)

	var healthResp HealthResponse
	env := decodeData(t, w, &healthResp)

	assert.True(t, env.Success)
	assert.Equal(t, healthGreeting, healthResp.Greeting)
	assert.Equal(t, "healthy", healthResp.Status)
	assert.Equal(t, "healthy", healthResp.Components["database"].Status)
}
