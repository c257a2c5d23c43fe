// Package middleware provides HTTP middleware components for the application.
// It includes operator authentication, request metrics and panic recovery
// for the fiber web framework.
package middleware

import (
	"strings"

	"mcacrm/internal/logger"
	"mcacrm/internal/models"
	"mcacrm/internal/utils"
	"mcacrm/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthMiddleware validates operator bearer tokens issued by the identity
// provider. With an empty secret every request passes as the system actor.
type AuthMiddleware struct {
	secret string
	log    *zap.Logger
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: secret, log: logger.Named("auth")}
}

// Enabled reports whether tokens are checked at all.
func (m *AuthMiddleware) Enabled() bool {
	return m.secret != ""
}

// Handler validates the bearer token and stores the claims in the
// request context under "claims".
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	if !m.Enabled() {
		return c.Next()
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return response.Error(c, fiber.StatusUnauthorized, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Error(c, fiber.StatusUnauthorized, "invalid authorization format")
	}

	claims, err := utils.ParseOperatorToken(m.secret, strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		m.log.Debug("token rejected", zap.Error(err), zap.String("path", c.Path()))
		return response.Error(c, fiber.StatusUnauthorized, "invalid token")
	}

	c.Locals("claims", claims)
	return c.Next()
}

// HasPermission returns a middleware that checks for a specific permission.
func (m *AuthMiddleware) HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.Enabled() {
			return c.Next()
		}
		claims, ok := c.Locals("claims").(*models.OperatorClaims)
		if !ok {
			return response.Error(c, fiber.StatusUnauthorized, "unauthorized")
		}
		if !claims.HasPermission(permission) {
			m.log.Info("permission denied",
				zap.String("subject", claims.Subject),
				zap.String("role", claims.Role),
				zap.String("permission", permission))
			return response.Forbidden(c)
		}
		return c.Next()
	}
}
