package handler

import (
	"github.com/labstack/echo/v4"

	"sokoni/internal/usecase"
	"sokoni/pkg/errors"
	"sokoni/pkg/response"
	"sokoni/pkg/utils"
)

type SavedSearchHandler struct {
	savedSearchUC *usecase.SavedSearchUseCase
}

func NewSavedSearchHandler(savedSearchUC *usecase.SavedSearchUseCase) *SavedSearchHandler {
	return &SavedSearchHandler{savedSearchUC: savedSearchUC}
}

func (h *SavedSearchHandler) Save(c echo.Context) error {
	uid := c.Get("uid").(string)

	var input usecase.SaveSearchInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	search, err := h.savedSearchUC.Save(c.Request().Context(), uid, input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, search)
}

func (h *SavedSearchHandler) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	page, pageSize, offset := utils.GetPaginationParams(c)

	searches, total, err := h.savedSearchUC.List(c.Request().Context(), uid, pageSize, offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, searches, total, page, pageSize)
}

func (h *SavedSearchHandler) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)
	if err := h.savedSearchUC.Delete(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Saved search deleted"})
}
