package utils

import (
	"errors"

	"mcacrm/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SystemActor is recorded as created_by / deleted_by when no operator
// token is attached to the request.
const SystemActor = "system"

// GetOperatorClaims extracts the operator claims from the Fiber context.
// It returns an error if the claims are missing or of an invalid type.
func GetOperatorClaims(c *fiber.Ctx) (*models.OperatorClaims, error) {
	v := c.Locals("claims")
	if v == nil {
		return nil, errors.New("claims not found in context")
	}

	claims, ok := v.(*models.OperatorClaims)
	if !ok {
		return nil, errors.New("invalid claims type")
	}
	return claims, nil
}

// Actor returns the subject of the request's operator token, or SystemActor.
func Actor(c *fiber.Ctx) string {
	claims, err := GetOperatorClaims(c)
	if err != nil || claims.Subject == "" {
		return SystemActor
	}
	return claims.Subject
}
