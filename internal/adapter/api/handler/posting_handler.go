package handler

import (
	"io"
	"strconv"

	"github.com/labstack/echo/v4"

	"sokoni/internal/usecase"
	"sokoni/pkg/errors"
	"sokoni/pkg/response"
)

type PostingHandler struct {
	postingUC *usecase.PostingUseCase
}

func NewPostingHandler(postingUC *usecase.PostingUseCase) *PostingHandler {
	return &PostingHandler{postingUC: postingUC}
}

func (h *PostingHandler) StartDraft(c echo.Context) error {
	uid := c.Get("uid").(string)
	return response.Created(c, h.postingUC.StartDraft(uid))
}

func (h *PostingHandler) GetDraft(c echo.Context) error {
	uid := c.Get("uid").(string)
	draft, err := h.postingUC.GetDraft(uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, draft)
}

type setCategoryRequest struct {
	Category string `json:"category" validate:"required"`
}

func (h *PostingHandler) SetCategory(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req setCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	draft, err := h.postingUC.SetCategory(uid, req.Category)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, draft)
}

func (h *PostingHandler) SetDetails(c echo.Context) error {
	uid := c.Get("uid").(string)

	var input usecase.DraftDetailsInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	draft, err := h.postingUC.SetDetails(uid, input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, draft)
}

// AddPhotos stages multipart files on the draft. The whole batch is
// validated before anything is staged.
func (h *PostingHandler) AddPhotos(c echo.Context) error {
	uid := c.Get("uid").(string)

	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, errors.BadRequest("Expected multipart form data", err))
	}
	files := form.File["photos"]
	if len(files) == 0 {
		return response.Error(c, errors.BadRequest("No photos in request", nil))
	}

	photos := make([]usecase.DraftImage, 0, len(files))
	for _, fileHeader := range files {
		if fileHeader.Size > usecase.MaxImageBytes {
			return response.Error(c, errors.BadRequest("Photo exceeds the size limit", nil))
		}

		src, err := fileHeader.Open()
		if err != nil {
			return response.Error(c, errors.Internal("Failed to read photo", err))
		}
		data, err := io.ReadAll(io.LimitReader(src, usecase.MaxImageBytes+1))
		src.Close()
		if err != nil {
			return response.Error(c, errors.Internal("Failed to read photo", err))
		}

		photos = append(photos, usecase.DraftImage{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	draft, err := h.postingUC.AddPhotos(uid, photos)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, draft)
}

func (h *PostingHandler) RemovePhoto(c echo.Context) error {
	uid := c.Get("uid").(string)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid photo index", err))
	}

	draft, err := h.postingUC.RemovePhoto(uid, index)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, draft)
}

func (h *PostingHandler) SetPriceLocation(c echo.Context) error {
	uid := c.Get("uid").(string)

	var input usecase.PriceLocationInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	draft, err := h.postingUC.SetPriceLocation(uid, input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, draft)
}

func (h *PostingHandler) Next(c echo.Context) error {
	uid := c.Get("uid").(string)
	draft, err := h.postingUC.Next(uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, draft)
}

func (h *PostingHandler) Back(c echo.Context) error {
	uid := c.Get("uid").(string)
	draft, err := h.postingUC.Back(uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, draft)
}

func (h *PostingHandler) Submit(c echo.Context) error {
	uid := c.Get("uid").(string)
	listing, err := h.postingUC.Submit(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, listing)
}

func (h *PostingHandler) DiscardDraft(c echo.Context) error {
	uid := c.Get("uid").(string)
	h.postingUC.DiscardDraft(uid)
	return response.Success(c, map[string]string{"message": "Draft discarded"})
}
