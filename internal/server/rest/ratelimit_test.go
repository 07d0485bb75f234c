package rest

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllow(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	ok, _ := rl.allow("1.1.1.1")
	assert.True(t, ok)
	ok, _ = rl.allow("1.1.1.1")
	assert.True(t, ok)

	ok, delay := rl.allow("1.1.1.1")
	assert.False(t, ok)
	assert.InDelta(t, (30 * time.Second).Seconds(), delay.Seconds(), 0.01)

	// other clients have their own bucket
	ok, _ = rl.allow("2.2.2.2")
	assert.True(t, ok)

	now = now.Add(30 * time.Second)
	ok, _ = rl.allow("1.1.1.1")
	assert.True(t, ok)
}

func TestRateLimiterCleanup(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5, time.Minute)
	rl.now = func() time.Time { return now }

	rl.allow("1.1.1.1")
	now = now.Add(45 * time.Second)
	rl.allow("2.2.2.2")

	now = now.Add(30 * time.Second)
	rl.Cleanup()

	assert.NotContains(t, rl.visitors, "1.1.1.1")
	assert.Contains(t, rl.visitors, "2.2.2.2")
}

func TestAuthEndpointsAreRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.AuthRateLimit = 2
	h := newSQLiteHandler(t, cfg)

	body := map[string]any{"email": "nobody@x.io", "password": "secret1"}
	for i := 0; i < 2; i++ {
		rec := doRequest(t, h, http.MethodPost, "/auth/login", "", body)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := doRequest(t, h, http.MethodPost, "/auth/login", "", body)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	retry, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.Positive(t, retry)

	// other endpoints are unaffected
	rec = doRequest(t, h, http.MethodGet, "/products", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
