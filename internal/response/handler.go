package response

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the wire shape for every failed request. Success bodies are
// endpoint-specific flat JSON, so only failures share a common envelope.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

func Error(c *fiber.Ctx, statusCode int, errName string, message string) error {
	return c.Status(statusCode).JSON(ErrorBody{
		StatusCode: statusCode,
		Error:      errName,
		Message:    message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, "Bad Request", message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized", message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, "Forbidden", message)
}

func NotFound(c *fiber.Ctx, resource string) error {
	return Error(c, fiber.StatusNotFound, "Not Found", resource+" not found")
}

func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, "Conflict", message)
}

func InternalError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, "Internal Server Error", message)
}
