// Package middleware provides the HTTP middleware chain: logging, auth, rate limiting and tracing.
package middleware

import (
	"context"
	"strconv"
	"strings"

	"scribe/internal/models"
	"scribe/internal/observability"
	"scribe/internal/security"

	"github.com/gofiber/fiber/v2"
)

// Auth gate rejection messages.
const (
	MsgAuthRequired = "authorization required"
	MsgInvalidToken = "invalid token"
	MsgAccessDenied = "access denied"
)

// AuthGate verifies the bearer token and, on routes with an :id parameter,
// requires the token's user id to equal it. The authenticated id is stored in
// c.Locals("userID") and in the user context under UserIDKey.
func AuthGate(tokens *security.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			observability.AuthFailures.WithLabelValues("missing_token").Inc()
			return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthorizedError(MsgAuthRequired))
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			observability.AuthFailures.WithLabelValues("invalid_token").Inc()
			Logger.DebugContext(c.UserContext(), "token rejected", "error", err)
			return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthorizedError(MsgInvalidToken))
		}

		if param := c.Params("id"); param != "" {
			pathID, err := strconv.ParseUint(param, 10, 64)
			if err != nil || uint(pathID) != claims.UserID {
				observability.AuthFailures.WithLabelValues("id_mismatch").Inc()
				return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthorizedError(MsgAccessDenied))
			}
		}

		c.Locals("userID", claims.UserID)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, claims.UserID))
		return c.Next()
	}
}

// CurrentUserID returns the id stored by AuthGate.
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("userID").(uint)
	return id, ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
