package middleware

import (
	"strings"

	"github.com/anonto42/inkstream/backend/internal/auth"
	"github.com/labstack/echo/v4"
)

// ViewerContext resolves an optional bearer token into a viewer id on the
// request context. Unlike a guard middleware it never rejects the request:
// the GraphQL layer decides per field whether identity is required, so an
// absent or invalid token simply leaves the request anonymous.
func ViewerContext(tokens *auth.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return next(c)
			}

			claims, err := tokens.Parse(parts[1])
			if err != nil {
				c.Logger().Warnf("token verification failed: %v", err)
				return next(c)
			}

			req := c.Request()
			c.SetRequest(req.WithContext(auth.WithViewer(req.Context(), claims.UserID)))
			return next(c)
		}
	}
}
