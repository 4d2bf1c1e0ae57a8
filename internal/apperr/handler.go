package apperr

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

type response struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ErrorHandler builds the Fiber error handler that converts application
// errors into the {error, message} envelope. Causes of 5xx failures are
// logged server-side and never serialized.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := As(err); ok {
			status := appErr.StatusCode()
			if status >= 500 {
				logger.Error("request failed",
					slog.String("category", string(appErr.Category)),
					slog.String("path", c.Path()),
					slog.Any("error", err),
				)
			}
			return c.Status(status).JSON(response{
				Error:   string(appErr.Category),
				Message: appErr.ClientMessage(),
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(response{Error: "error", Message: fiberErr.Message})
		}

		logger.Error("unhandled error", slog.String("path", c.Path()), slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(response{
			Error:   string(CategoryInternal),
			Message: "internal server error",
		})
	}
}
