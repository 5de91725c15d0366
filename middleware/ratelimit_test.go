package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"notesmanager/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedRouter(cfg config.RateLimitConfig, rdb *redis.Client) *gin.Engine {
	r := gin.New()
	r.POST("/api/auth/login", RateLimit(cfg, rdb), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRateLimit_PassThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	unreachable := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer unreachable.Close()

	tests := []struct {
		name string
		cfg  config.RateLimitConfig
		rdb  *redis.Client
	}{
		{"disabled", config.RateLimitConfig{Enabled: false, Capacity: 1}, unreachable},
		{"no client", config.RateLimitConfig{Enabled: true, Capacity: 1}, nil},
		{"redis down fails open", config.RateLimitConfig{Enabled: true, Prefix: "rl", Capacity: 1, RefillTokens: 1, RefillInterval: time.Second, TTL: time.Minute}, unreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := limitedRouter(tt.cfg, tt.rdb)
			for i := 0; i < 3; i++ {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
				assert.Equal(t, http.StatusNoContent, w.Code)
				assert.Empty(t, w.Header().Get("Retry-After"))
			}
		})
	}
}

func TestRateKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var key string
	r := gin.New()
	r.POST("/api/auth/:action", func(c *gin.Context) {
		key = rateKey("rl", c)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "rl:ip:203.0.113.7:route:POST /api/auth/:action", key)
}

// newTestRedis connects to REDIS_TEST_URL; the limiter keys it creates
// live under a per-test prefix and are removed afterwards.
func newTestRedis(t *testing.T) (*redis.Client, string) {
	t.Helper()
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}

	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opts)
	require.NoError(t, rdb.Ping(context.Background()).Err())

	prefix := "rltest-" + uuid.NewString()[:8]
	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := rdb.Keys(ctx, prefix+":*").Result()
		if len(keys) > 0 {
			rdb.Del(ctx, keys...)
		}
		rdb.Close()
	})
	return rdb, prefix
}

func TestRateLimit_TokenBucket(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, prefix := newTestRedis(t)

	cfg := config.RateLimitConfig{
		Enabled:        true,
		Prefix:         prefix,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            time.Minute,
	}
	r := limitedRouter(cfg, rdb)

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	for i, wantRemaining := range []string{"1", "0"} {
		w := send("198.51.100.1:1000")
		require.Equal(t, http.StatusNoContent, w.Code, "request %d", i)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, wantRemaining, w.Header().Get("X-RateLimit-Remaining"))
	}

	w := send("198.51.100.1:1000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.Greater(t, retryAfter, 0)
	assert.LessOrEqual(t, retryAfter, 60)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Too many requests, please try again later", body["error"])

	// buckets are per client
	other := send("198.51.100.2:1000")
	assert.Equal(t, http.StatusNoContent, other.Code)
}

func TestRateLimit_Refill(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, prefix := newTestRedis(t)

	cfg := config.RateLimitConfig{
		Enabled:        true,
		Prefix:         prefix,
		Capacity:       1,
		RefillTokens:   1,
		RefillInterval: 200 * time.Millisecond,
		TTL:            time.Minute,
	}
	r := limitedRouter(cfg, rdb)

	send := func() int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
		return w.Code
	}

	require.Equal(t, http.StatusNoContent, send())
	require.Equal(t, http.StatusTooManyRequests, send())

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, http.StatusNoContent, send())
}
