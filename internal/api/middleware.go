package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"f3region/site-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// SecretQueryParam is the query parameter that carries the admin secret.
const SecretQueryParam = "pw"

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// SecretMiddleware rejects the request with denyStatus unless the pw query
// parameter passes gate. Nothing downstream, including the store, runs for
// a rejected request.
func SecretMiddleware(gate service.SecretGate, denyStatus int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gate.Check(c.Query(SecretQueryParam)); err != nil {
			slog.Warn("admin secret rejected", "path", c.Request.URL.Path, "client_ip", c.ClientIP())
			abortWithError(c, denyStatus, "Invalid password")
			return
		}
		c.Next()
	}
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*visitor
	rate      rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows requestsPerMinute sustained with the given burst.
func NewRateLimiter(requestsPerMinute int, burst int) *RateLimiter {
	return &RateLimiter{
		limiters:  make(map[string]*visitor),
		rate:      rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:     burst,
		idle:      10 * time.Minute,
		lastSweep: time.Now(),
	}
}

// Allow reports whether key may make a request now.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastSweep) > rl.idle {
		for k, v := range rl.limiters {
			if now.Sub(v.lastSeen) > rl.idle {
				delete(rl.limiters, k)
			}
		}
		rl.lastSweep = now
	}

	v, ok := rl.limiters[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = v
	}
	v.lastSeen = now
	return v.limiter.Allow()
}

// RateLimit throttles requests per client IP with rl.
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.Header("Retry-After", strconv.Itoa(60))
			abortWithError(c, http.StatusTooManyRequests, "Too many requests. Try again later.")
			return
		}
		c.Next()
	}
}

// RequestTimeout bounds every store call made while serving the request.
func RequestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequestLogger logs one structured line per request. Only the path is
// logged because the query string can carry the admin secret.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)

		c.Next()

		slog.Info("http request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// respondError maps a service error onto a status and message. Anything
// unrecognised is logged and reported as failMessage with a 500 so driver
// errors never reach the client.
func respondError(c *gin.Context, err error, failMessage string) {
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		abortWithError(c, http.StatusUnauthorized, "Invalid password")
	case errors.Is(err, service.ErrDuplicate):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrMediaDisabled):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		slog.Error("request failed", "path", c.Request.URL.Path, "error", err)
		abortWithError(c, http.StatusInternalServerError, failMessage)
	}
}
