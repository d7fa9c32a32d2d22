package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/cinecritic/review-system/internal/api/metrics"
	"github.com/cinecritic/review-system/internal/core/domain"
)

// identityKey is the echo context key the resolved caller is stored under.
const identityKey = "identity"

// Auth validates the bearer token and injects the resolved identity into the
// context. Requests without a valid token are rejected with 401; role checks
// come later, so authentication always precedes authorization.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := resolveIdentity(c, jwtSecret)
			if err != nil {
				return err
			}
			if !identity.Authenticated() {
				metrics.AuthDeniedTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// OptionalAuth resolves the identity when a token is presented and falls back
// to an anonymous identity when the header is absent. A present but invalid
// token still fails with 401: offering bad credentials is never anonymous
// access.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := resolveIdentity(c, jwtSecret)
			if err != nil {
				return err
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// Identity extracts the caller placed in the context by Auth or OptionalAuth.
// Absent middleware yields the anonymous identity.
func Identity(c echo.Context) domain.Identity {
	if identity, ok := c.Get(identityKey).(domain.Identity); ok {
		return identity
	}
	return domain.Identity{Role: domain.RoleAnonymous}
}

func resolveIdentity(c echo.Context, jwtSecret string) (domain.Identity, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return domain.Identity{Role: domain.RoleAnonymous}, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !isBearerScheme(parts[0]) {
		metrics.AuthDeniedTotal.WithLabelValues("bad_header").Inc()
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		metrics.AuthDeniedTotal.WithLabelValues("bad_token").Inc()
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		metrics.AuthDeniedTotal.WithLabelValues("bad_claims").Inc()
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}
	username, _ := claims["username"].(string)
	isStaff, _ := claims["is_staff"].(bool)
	isSuperuser, _ := claims["is_superuser"].(bool)

	// The role is derived exactly once, here at the authentication boundary.
	return domain.Identity{
		UserID:   int64(userID),
		Username: username,
		Role:     domain.RoleFromFlags(isStaff, isSuperuser),
	}, nil
}

// isBearerScheme accepts both "Bearer" and the legacy "Token" prefix.
func isBearerScheme(scheme string) bool {
	return strings.EqualFold(scheme, "bearer") || strings.EqualFold(scheme, "token")
}
