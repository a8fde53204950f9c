package handler

import (
	"io"

	"github.com/labstack/echo/v4"

	"sokoni/internal/usecase"
	"sokoni/pkg/errors"
	"sokoni/pkg/response"
	"sokoni/pkg/utils"
)

type VerificationHandler struct {
	verificationUC *usecase.VerificationUseCase
}

func NewVerificationHandler(verificationUC *usecase.VerificationUseCase) *VerificationHandler {
	return &VerificationHandler{verificationUC: verificationUC}
}

// Submit takes a multipart form: a "type" field plus "documents" files.
// The part name of each file doubles as its document kind when set via
// the form field "kinds".
func (h *VerificationHandler) Submit(c echo.Context) error {
	uid := c.Get("uid").(string)

	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, errors.BadRequest("Expected multipart form data", err))
	}

	vType := c.FormValue("type")
	files := form.File["documents"]
	kinds := form.Value["kinds"]

	docs := make([]usecase.VerificationDocInput, 0, len(files))
	for i, fileHeader := range files {
		src, err := fileHeader.Open()
		if err != nil {
			return response.Error(c, errors.Internal("Failed to read document", err))
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return response.Error(c, errors.Internal("Failed to read document", err))
		}

		kind := "identity"
		if i < len(kinds) {
			kind = kinds[i]
		}
		docs = append(docs, usecase.VerificationDocInput{
			Kind:        kind,
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	verification, err := h.verificationUC.Submit(c.Request().Context(), uid, vType, docs)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, verification)
}

func (h *VerificationHandler) MyVerification(c echo.Context) error {
	uid := c.Get("uid").(string)
	verification, err := h.verificationUC.MyVerification(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, verification)
}

func (h *VerificationHandler) ListPending(c echo.Context) error {
	page, pageSize, offset := utils.GetPaginationParams(c)

	verifications, total, err := h.verificationUC.ListPending(c.Request().Context(), pageSize, offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, verifications, total, page, pageSize)
}

func (h *VerificationHandler) Review(c echo.Context) error {
	uid := c.Get("uid").(string)

	var input usecase.ReviewInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&input); err != nil {
		return response.Error(c, err)
	}

	verification, err := h.verificationUC.Review(c.Request().Context(), uid, c.Param("id"), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, verification)
}
