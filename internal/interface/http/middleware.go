package http

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/space-cap/saju-lotto-firebase/internal/infra/config"
)

// ErrorRecorder counts error responses by code.
type ErrorRecorder interface {
	RecordError(code string)
}

func errorHandlingMiddleware(logger *slog.Logger, recorder ErrorRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		httpErr := asHTTPError(c.Errors.Last().Err)
		message := httpErr.Message
		if message == "" {
			message = httpErr.Error()
		}

		if httpErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed", "code", httpErr.Code, "status", httpErr.Status, "path", c.Request.URL.Path, "error", httpErr.Err)
		} else {
			logger.Warn("request failed", "code", httpErr.Code, "status", httpErr.Status, "path", c.Request.URL.Path, "error", httpErr.Err)
		}
		if recorder != nil {
			recorder.RecordError(httpErr.Code)
		}

		c.JSON(httpErr.Status, gin.H{
			"error": gin.H{
				"code":    httpErr.Code,
				"message": message,
			},
		})
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}

func rateLimitMiddleware(cfg config.RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RequestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := newClientRateLimiter(cfg, time.Now)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if limiter.allow(ip) {
			c.Next()
			return
		}
		logger.Warn("rate limit exceeded", "ip", ip, "path", c.Request.URL.Path)
		abortWithError(c, NewHTTPError(http.StatusTooManyRequests, "rate_limit_exceeded", "too many requests", nil))
	}
}

// clientRateLimiter keeps one token bucket per client IP and forgets idle
// clients after ttl.
type clientRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
	ttl     time.Duration
	now     func() time.Time
	swept   time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientRateLimiter(cfg config.RateLimitConfig, now func() time.Time) *clientRateLimiter {
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &clientRateLimiter{
		clients: make(map[string]*client),
		limit:   rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute)),
		burst:   burst,
		ttl:     5 * time.Minute,
		now:     now,
	}
}

func (l *clientRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	cl, ok := l.clients[ip]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = cl
	}
	cl.lastSeen = now
	if now.Sub(l.swept) > l.ttl {
		l.sweepLocked(now)
	}
	return cl.limiter.AllowN(now, 1)
}

func (l *clientRateLimiter) sweepLocked(now time.Time) {
	for ip, cl := range l.clients {
		if now.Sub(cl.lastSeen) > l.ttl {
			delete(l.clients, ip)
		}
	}
	l.swept = now
}
