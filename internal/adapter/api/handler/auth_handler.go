package handler

import (
	"github.com/labstack/echo/v4"

	"sokoni/internal/usecase"
	"sokoni/pkg/errors"
	"sokoni/pkg/response"
)

type AuthHandler struct {
	authUC *usecase.AuthUseCase
}

func NewAuthHandler(authUC *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUC.Register(c.Request().Context(), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, result)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUC.Login(c.Request().Context(), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	uid := c.Get("uid").(string)
	if err := h.authUC.Logout(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Logged out"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	uid := c.Get("uid").(string)
	user, err := h.authUC.CurrentUser(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}
