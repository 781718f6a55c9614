package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWithRateLimitDisabled(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("nil client passes through", func(t *testing.T) {
		handler := WithRateLimit(nil, 30, zap.NewNop())(next)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/analyze", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("zero limit passes through", func(t *testing.T) {
		rdb := redis.NewClient(&redis.Options{Addr: "localhost:0"})
		defer rdb.Close()

		handler := WithRateLimit(rdb, 0, zap.NewNop())(next)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/analyze", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestWithRateLimitFailsOpen(t *testing.T) {
	// A client pointed at a dead address makes every INCR fail. The limiter
	// must let the request through rather than block analyses.
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:1", MaxRetries: -1})
	defer rdb.Close()

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	handler := WithRateLimit(rdb, 1, zap.NewNop())(next)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
	req = InjectUser(req, "user-1", "user")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}
