package server

import (
	"errors"
	"strconv"

	"scribe/internal/middleware"
	"scribe/internal/models"
	"scribe/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const msgInvalidBody = "invalid request body"

// parsePagination reads limit and offset. Non-integer or negative values are
// rejected with 422 and errResponseWritten.
func parsePagination(c *fiber.Ctx) (service.Page, error) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return service.Page{}, rejectPagination(c)
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return service.Page{}, rejectPagination(c)
	}

	page, err := service.NewPage(limit, offset)
	if err != nil {
		_ = respondError(c, err)
		return service.Page{}, errResponseWritten
	}
	return page, nil
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func rejectPagination(c *fiber.Ctx) error {
	_ = models.RespondWithError(c, fiber.StatusUnprocessableEntity,
		models.NewValidationError(service.MsgInvalidPagination))
	return errResponseWritten
}

// parseID extracts a route parameter as a positive uint.
// On failure it writes a 422 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 64)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondError writes err with its mapped status. Internal failures are logged
// with their cause; the client only sees the generic message.
func respondError(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status == fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
	}
	return models.RespondWithError(c, status, err)
}

// actingUserID returns the id AuthGate authenticated.
func actingUserID(c *fiber.Ctx) (uint, error) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		_ = models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError(middleware.MsgAuthRequired))
		return 0, errResponseWritten
	}
	return id, nil
}
