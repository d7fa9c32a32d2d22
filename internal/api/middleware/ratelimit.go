package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// RateCounter abstracts the fixed-window counter (Redis).
type RateCounter interface {
	Hit(ctx context.Context, scope, client string) (int64, error)
}

// RateLimit bounds requests per client IP for a named scope. Counter errors
// fail open: a degraded Redis must not take the credential endpoints down
// with it.
func RateLimit(counter RateCounter, scope string, max int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			n, err := counter.Hit(c.Request().Context(), scope, c.RealIP())
			if err != nil {
				return next(c)
			}

			remaining := max - n
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.FormatInt(max, 10))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if n > max {
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}
