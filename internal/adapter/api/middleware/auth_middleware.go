package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"sokoni/internal/infrastructure/firebase"
	"sokoni/pkg/errors"
	"sokoni/pkg/response"
)

type AuthMiddleware struct {
	authClient *firebase.AuthClient
}

func NewAuthMiddleware(authClient *firebase.AuthClient) *AuthMiddleware {
	return &AuthMiddleware{authClient: authClient}
}

// Authenticate requires a valid bearer token and stores the caller's
// uid on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}

		decoded, err := m.authClient.VerifyToken(c.Request().Context(), token)
		if err != nil {
			return response.Error(c, err)
		}

		c.Set("uid", decoded.UID)
		return next(c)
	}
}

// OptionalAuth sets uid when a valid token is present and lets the
// request through either way. Search works signed out; signed-in
// searches additionally feed saved-search freshness.
func (m *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if token := bearerToken(c); token != "" {
			if decoded, err := m.authClient.VerifyToken(c.Request().Context(), token); err == nil {
				c.Set("uid", decoded.UID)
			}
		}
		return next(c)
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// WebSocket clients cannot set headers from the browser.
	return c.QueryParam("token")
}
