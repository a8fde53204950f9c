package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sokoni/internal/usecase"
	"sokoni/pkg/errors"
	"sokoni/pkg/response"
	"sokoni/pkg/utils"
)

type ListingHandler struct {
	listingUC *usecase.ListingUseCase
	suggestUC *usecase.SuggestUseCase
}

func NewListingHandler(listingUC *usecase.ListingUseCase, suggestUC *usecase.SuggestUseCase) *ListingHandler {
	return &ListingHandler{
		listingUC: listingUC,
		suggestUC: suggestUC,
	}
}

// Search serves the browse feed and the search page. Signed-out
// requests work; a uid on the context only feeds the saved-search
// freshness side effect.
func (h *ListingHandler) Search(c echo.Context) error {
	page, pageSize, offset := utils.GetPaginationParams(c)

	uid, _ := c.Get("uid").(string)
	items, total, err := h.listingUC.Search(c.Request().Context(), usecase.SearchInput{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Sort:     c.QueryParam("sort"),
		Limit:    pageSize,
		Offset:   offset,
		UserID:   uid,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, items, total, page, pageSize)
}

// Suggest returns type-ahead suggestions. Replies superseded by a
// newer keystroke come back as 204 so the client drops them.
func (h *ListingHandler) Suggest(c echo.Context) error {
	clientID, _ := c.Get("uid").(string)
	if clientID == "" {
		clientID = c.RealIP()
	}

	suggestions, err := h.suggestUC.Suggest(c.Request().Context(), clientID, c.QueryParam("q"))
	if err != nil {
		if errors.Is(err, "SUPERSEDED") {
			return c.NoContent(http.StatusNoContent)
		}
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{"suggestions": suggestions})
}

func (h *ListingHandler) GetByID(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	detail, err := h.listingUC.GetDetail(c.Request().Context(), c.Param("id"), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, detail)
}

type updateListingRequest struct {
	Title       *string                `json:"title" validate:"omitempty,min=3,max=120"`
	Description *string                `json:"description" validate:"omitempty,min=10,max=4000"`
	Price       *float64               `json:"price" validate:"omitempty,gte=0"`
	Location    *string                `json:"location"`
	Specs       map[string]interface{} `json:"specs"`
}

func (h *ListingHandler) Update(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUC.Update(c.Request().Context(), uid, c.Param("id"), usecase.UpdateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Specs:       req.Specs,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ListingHandler) MarkSold(c echo.Context) error {
	uid := c.Get("uid").(string)
	listing, err := h.listingUC.MarkSold(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ListingHandler) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)
	if err := h.listingUC.Delete(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Listing deleted"})
}

func (h *ListingHandler) MyListings(c echo.Context) error {
	uid := c.Get("uid").(string)
	page, pageSize, offset := utils.GetPaginationParams(c)

	listings, total, err := h.listingUC.MyListings(c.Request().Context(), uid, c.QueryParam("status"), pageSize, offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, listings, total, page, pageSize)
}
