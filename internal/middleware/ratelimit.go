package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/pranav06082004/Authen-X/internal/models"
)

// WithRateLimit caps analysis submissions per authenticated user per minute
// using a redis counter with a one-minute expiry. A nil client disables the
// limiter; a redis outage fails open so a cache hiccup never blocks analyses.
func WithRateLimit(rdb *redis.Client, perMinute int, log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rdb == nil || perMinute <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			userID := UserIDFrom(r.Context())
			key := fmt.Sprintf("ratelimit:%s:%s", userID, time.Now().Format("2006-01-02T15:04"))

			count, err := rdb.Incr(r.Context(), key).Result()
			if err != nil {
				log.Error("rate limiter unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if count == 1 {
				rdb.Expire(r.Context(), key, time.Minute)
			}

			if count > int64(perMinute) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(models.ErrorResponse{Error: "too many submissions, try again later"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
