package api

import (
	"net/http"
	"time"

	"github.com/bookclubapp/bookclub-server/internal/http/response"
	"github.com/bookclubapp/bookclub-server/internal/ratelimit"
)

// authRateLimiter limits credential endpoints per client IP to slow down
// brute-force attempts: 10 requests per minute with a burst of 5.
func newAuthRateLimiter() *ratelimit.KeyedRateLimiter {
	rps := 10.0 / time.Minute.Seconds()
	return ratelimit.New(rps, 5)
}

// rateLimitByIP returns middleware that rejects requests beyond the limiter's
// budget for the client IP with 429.
func (s *Server) rateLimitByIP(limiter *ratelimit.KeyedRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// middleware.RealIP has already resolved forwarded headers.
			key := r.RemoteAddr

			if !limiter.Allow(key) {
				s.logger.Warn("Rate limit exceeded", "ip", key, "path", r.URL.Path)
				response.TooManyRequests(w, "Too many requests. Please try again later.", s.logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
