package security

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRateLimiter(limit int) (*RateLimiter, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	return NewRateLimiter(db, limit, time.Minute), mock
}

func TestRateLimiter_Allow_WithinBudget(t *testing.T) {
	limiter, mock := setupTestRateLimiter(5)
	defer mock.ClearExpect()

	// First hit sets the window expiry.
	mock.ExpectIncr("ratelimit:user:abc").SetVal(1)
	mock.ExpectExpire("ratelimit:user:abc", time.Minute).SetVal(true)

	ok, err := limiter.allow(context.Background(), "ratelimit:user:abc")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_Allow_SubsequentHitSkipsExpire(t *testing.T) {
	limiter, mock := setupTestRateLimiter(5)
	defer mock.ClearExpect()

	mock.ExpectIncr("ratelimit:user:abc").SetVal(3)

	ok, err := limiter.allow(context.Background(), "ratelimit:user:abc")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_Allow_OverBudget(t *testing.T) {
	limiter, mock := setupTestRateLimiter(5)
	defer mock.ClearExpect()

	mock.ExpectIncr("ratelimit:ip:1.2.3.4").SetVal(6)

	ok, err := limiter.allow(context.Background(), "ratelimit:ip:1.2.3.4")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_Allow_RedisError(t *testing.T) {
	limiter, mock := setupTestRateLimiter(5)
	defer mock.ClearExpect()

	mock.ExpectIncr("ratelimit:user:abc").SetErr(assert.AnError)

	_, err := limiter.allow(context.Background(), "ratelimit:user:abc")

	assert.Error(t, err)
}

func TestIsSuspiciousUserAgent(t *testing.T) {
	tests := []struct {
		name       string
		userAgent  string
		suspicious bool
	}{
		{"Regular browser", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36", false},
		{"Googlebot", "Mozilla/5.0 (compatible; Googlebot/2.1)", true},
		{"Generic crawler", "my-crawler/1.0", true},
		{"Spider", "Baiduspider/2.0", true},
		{"Scraper", "DataScraper 3.1", true},
		{"Mixed case", "SneakyBOT", true},
		{"Empty user agent", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.suspicious, isSuspiciousUserAgent(tt.userAgent))
		})
	}
}
