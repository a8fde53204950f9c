package middleware

import (
	"github.com/labstack/echo/v4"

	"sokoni/internal/domain/repository"
	"sokoni/pkg/errors"
	"sokoni/pkg/response"
)

type AdminMiddleware struct {
	userRepo repository.UserRepository
}

func NewAdminMiddleware(userRepo repository.UserRepository) *AdminMiddleware {
	return &AdminMiddleware{userRepo: userRepo}
}

func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok || uid == "" {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return response.Error(c, errors.Internal("Failed to verify admin privileges", err))
		}
		if user.Role != "admin" {
			return response.Error(c, errors.Forbidden("Admin privileges required", nil))
		}
		return next(c)
	}
}
