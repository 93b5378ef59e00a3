package models

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Envelope status values.
const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// RespondWithError writes the error envelope. Wrapped causes are not exposed.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	response := ErrorResponse{Status: StatusError}

	var appErr *AppError
	if errors.As(err, &appErr) {
		response.Message = appErr.Message
		response.Code = appErr.Code
	} else {
		response.Message = "Internal server error"
		response.Code = CodeInternal
	}

	return c.Status(status).JSON(response)
}

// RespondOK writes a success envelope with the given status, message and payload.
// message may be empty.
func RespondOK(c *fiber.Ctx, status int, message string, payload fiber.Map) error {
	body := fiber.Map{"status": StatusOK}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}
