package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinecritic/review-system/internal/core/domain"
)

// RequireRoles enforces role-based access control. Mount after Auth: by then
// the caller is authenticated, so a miss here is a 403, never a 401.
func RequireRoles(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := Identity(c)
			if _, ok := allowed[identity.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
