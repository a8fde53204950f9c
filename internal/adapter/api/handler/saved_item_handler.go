package handler

import (
	"github.com/labstack/echo/v4"

	"sokoni/internal/usecase"
	"sokoni/pkg/response"
	"sokoni/pkg/utils"
)

// SavedItemHandler serves both /favorites and /bookmarks; the routers
// bind each to its own use case instance.
type SavedItemHandler struct {
	itemUC *usecase.SavedItemUseCase
}

func NewSavedItemHandler(itemUC *usecase.SavedItemUseCase) *SavedItemHandler {
	return &SavedItemHandler{itemUC: itemUC}
}

func (h *SavedItemHandler) Add(c echo.Context) error {
	uid := c.Get("uid").(string)
	item, err := h.itemUC.Add(c.Request().Context(), uid, c.Param("listingId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, item)
}

func (h *SavedItemHandler) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	page, pageSize, offset := utils.GetPaginationParams(c)

	items, total, err := h.itemUC.List(c.Request().Context(), uid, pageSize, offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, items, total, page, pageSize)
}

func (h *SavedItemHandler) Status(c echo.Context) error {
	uid := c.Get("uid").(string)
	saved, err := h.itemUC.IsSaved(c.Request().Context(), uid, c.Param("listingId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]bool{"saved": saved})
}

func (h *SavedItemHandler) Remove(c echo.Context) error {
	uid := c.Get("uid").(string)
	if err := h.itemUC.Remove(c.Request().Context(), uid, c.Param("listingId")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Removed"})
}
