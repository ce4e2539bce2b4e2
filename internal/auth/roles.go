package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sigma-platform/authentication/internal/domain"
	apperrors "github.com/sigma-platform/authentication/pkg/util/errorutil"
)

// RequireAdmin ensures an admin token was presented.
func RequireAdmin() fiber.Handler {
	return requireKind(domain.SubjectTypeAdmin, "admin token required")
}

// RequireTableSession ensures a table-session token was presented.
func RequireTableSession() fiber.Handler {
	return requireKind(domain.SubjectTypeTableSession, "table session token required")
}

func requireKind(kind domain.SubjectType, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("unauthenticated")
		}
		if principal.Kind != kind {
			return apperrors.NewForbidden(message)
		}
		return c.Next()
	}
}
