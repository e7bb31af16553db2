package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/meukanban/kanban-api/internal/infra/metrics"
	"github.com/meukanban/kanban-api/pkg/ratelimit"
)

// RateLimitMiddleware gerencia rate limiting
type RateLimitMiddleware struct {
	limiter *ratelimit.RedisLimiter
	logger  *zap.Logger
	metrics *metrics.APIMetrics
}

// NewRateLimitMiddleware cria um novo middleware de rate limiting
func NewRateLimitMiddleware(limiter *ratelimit.RedisLimiter, metrics *metrics.APIMetrics, logger *zap.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		logger:  logger,
		metrics: metrics,
	}
}

// IPRateLimit limita requisições por IP
func (m *RateLimitMiddleware) IPRateLimit(limit int, period time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.limiter == nil {
			c.Next()
			return
		}

		clientIP := c.ClientIP()

		config := ratelimit.LimitConfig{
			Key:    "ip:" + clientIP,
			Limit:  limit,
			Period: period,
		}

		allowed, limit, remaining, resetAfter, err := m.limiter.Allow(c.Request.Context(), config)
		if err != nil {
			m.logger.Error("erro ao verificar rate limit", zap.Error(err))
			c.Next() // Em caso de erro, permite a requisição
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(resetAfter).Unix(), 10))

		if !allowed {
			if m.metrics != nil {
				path := c.FullPath()
				if path == "" {
					path = c.Request.URL.Path
				}
				m.metrics.RateLimitExceeded(path, c.Request.Method, "ip_limit")
			}

			c.Header("Retry-After", strconv.Itoa(int(resetAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "taxa de requisições excedida",
				"retry_after": int(resetAfter.Seconds()),
			})
			return
		}

		c.Next()
	}
}

// UserRateLimit limita requisições por usuário autenticado
func (m *RateLimitMiddleware) UserRateLimit(limit int, period time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.limiter == nil {
			c.Next()
			return
		}

		userID := c.GetString("userID")
		if userID == "" {
			c.Next() // Se não houver usuário, passa adiante
			return
		}

		config := ratelimit.LimitConfig{
			Key:    "user:" + userID,
			Limit:  limit,
			Period: period,
		}

		allowed, limit, remaining, resetAfter, err := m.limiter.Allow(c.Request.Context(), config)
		if err != nil {
			m.logger.Error("erro ao verificar rate limit do usuário", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-User-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-User-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-User-Reset", strconv.FormatInt(time.Now().Add(resetAfter).Unix(), 10))

		if !allowed {
			if m.metrics != nil {
				path := c.FullPath()
				if path == "" {
					path = c.Request.URL.Path
				}
				m.metrics.RateLimitExceeded(path, c.Request.Method, "user_limit")
			}

			c.Header("Retry-After", strconv.Itoa(int(resetAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "taxa de requisições do usuário excedida",
				"retry_after": int(resetAfter.Seconds()),
			})
			return
		}

		c.Next()
	}
}
