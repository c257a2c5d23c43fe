package response

import (
	"mcacrm/internal/errors"
	"mcacrm/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *fiber.Ctx) error {
	return Error(c, fiber.StatusForbidden, "Insufficient permissions")
}

// ValidationError reports field level failures with 422.
func ValidationError(c *fiber.Ctx, message string, fields []errors.FieldError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error":  message,
		"fields": fields,
	})
}

// StatusFor maps a domain error kind onto an HTTP status.
func StatusFor(kind errors.Kind) int {
	switch kind {
	case errors.KindNotFound:
		return fiber.StatusNotFound
	case errors.KindConflict, errors.KindIntegrity:
		return fiber.StatusConflict
	case errors.KindInvalidState:
		return fiber.StatusBadRequest
	case errors.KindValidation:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// FromError renders err. Domain errors keep their message and code;
// anything else is logged and hidden behind a generic 500.
func FromError(c *fiber.Ctx, err error) error {
	de, ok := errors.As(err)
	if !ok {
		logger.Logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		return ServerError(c, "internal server error")
	}
	if de.Kind == errors.KindValidation {
		return ValidationError(c, de.Message, de.Fields)
	}
	return c.Status(StatusFor(de.Kind)).JSON(fiber.Map{
		"error": de.Message,
		"code":  de.Code,
	})
}
