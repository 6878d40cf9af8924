package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/facuperezm/barberia-sub000/internal/httperr"
	"github.com/facuperezm/barberia-sub000/internal/metrics"
	"github.com/facuperezm/barberia-sub000/internal/ratelimit"
)

// RateLimit throttles by client IP. A limiter backend failure lets the
// request through.
func RateLimit(limiter ratelimit.Limiter, route string, m *metrics.Metrics, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		ok, err := limiter.Allow(c.Request.Context(), route+":"+ip)
		if err != nil {
			log.Warn("rate limiter unavailable", zap.String("route", route), zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			m.ObserveRateLimited()
			log.Info("rate limit exceeded", zap.String("route", route), zap.String("ip", ip))
			c.Header("Retry-After", "60")
			httperr.TooManyRequests(c, "rate_limited", "Demasiadas solicitudes. Probá en un minuto.")
			return
		}

		c.Next()
	}
}
