package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRateLimit(t *testing.T) {
	ts := setupTestServer(t)

	body := map[string]any{
		"email":    "alice@example.com",
		"password": "wrong password",
	}

	// The burst budget admits the first few attempts (they fail auth, not
	// rate limiting), then the limiter cuts the client off.
	sawTooMany := false
	for i := 0; i < 10; i++ {
		w := ts.request(t, http.MethodPost, "/api/v1/auth/login", body, "")
		if w.Code == http.StatusTooManyRequests {
			sawTooMany = true
			break
		}
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	assert.True(t, sawTooMany, "rapid login attempts should hit the rate limit")
}
