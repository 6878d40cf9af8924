package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/facuperezm/barberia-sub000/internal/config"
)

// CORSMiddleware allows the configured origins. With none configured every
// origin is reflected, which suits local development.
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if origins := cfg.Origins(); len(origins) > 0 {
		c.AllowOrigins = origins
	} else {
		c.AllowOriginFunc = func(string) bool { return true }
	}

	return cors.New(c)
}
