package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/order-service/pkg/util/errorutil"
)

// RequireStaff ensures the authenticated user carries the staff flag.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.User.IsStaff {
			return apperrors.NewForbidden("staff privileges required")
		}
		return c.Next()
	}
}
