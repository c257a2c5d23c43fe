package middleware

import (
	"mcacrm/internal/logger"
	"mcacrm/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recovery turns a handler panic into a 500 and logs it.
func Recovery() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Logger.Error("panic recovered",
					zap.Any("error", r),
					zap.String("path", c.Path()),
					zap.String("method", c.Method()),
					zap.Any("request_id", c.Locals(requestid.ConfigDefault.ContextKey)),
				)
				err = response.ServerError(c, "internal server error")
			}
		}()
		return c.Next()
	}
}

// RequestID tags each request with an X-Request-ID, reusing the caller's.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	})
}
