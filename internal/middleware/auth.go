package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/facuperezm/barberia-sub000/internal/config"
	"github.com/facuperezm/barberia-sub000/internal/httperr"
)

const (
	ContextActor    = "actor"
	ContextUserRole = "userRole"
)

// AuthMiddleware accepts HS256 tokens issued by the identity provider. The
// subject becomes the audit actor for every staff action.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Falta el encabezado Authorization.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Encabezado Authorization inválido.")
			return
		}

		claims := jwt.MapClaims{}
		token, err := parser.ParseWithClaims(parts[1], claims, func(*jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Token inválido o vencido.")
			return
		}

		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			httperr.Unauthorized(c, "invalid_token_payload", "El token no identifica al usuario.")
			return
		}
		role, _ := claims["role"].(string)

		c.Set(ContextActor, sub)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// Actor returns the authenticated subject, or "" on public routes.
func Actor(c *gin.Context) string {
	return c.GetString(ContextActor)
}
