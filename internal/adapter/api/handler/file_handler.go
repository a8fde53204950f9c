package handler

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/repository"
	"sokoni/internal/domain/service"
	"sokoni/pkg/errors"
	"sokoni/pkg/logger"
	"sokoni/pkg/response"
	"sokoni/pkg/utils"
)

// FileHandler serves standalone uploads: chat attachments and profile
// photos. Wizard photos go through the posting draft instead.
type FileHandler struct {
	fileService service.FileUploadService
	fileRepo    repository.FileMetadataRepository
	maxFileSize int64
}

var fileHandler *FileHandler

func SetupFileHandler(fileService service.FileUploadService, fileRepo repository.FileMetadataRepository) {
	fileHandler = &FileHandler{
		fileService: fileService,
		fileRepo:    fileRepo,
		maxFileSize: 5 * 1024 * 1024,
	}
}

func GetFileHandler() *FileHandler { return fileHandler }

func (h *FileHandler) Upload(c echo.Context) error {
	uid := c.Get("uid").(string)

	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}
	if file.Size > h.maxFileSize {
		return response.Error(c, errors.BadRequest(
			fmt.Sprintf("File exceeds the %dMB limit", h.maxFileSize/(1024*1024)), nil))
	}

	folder := sanitizeFolder(c.FormValue("folder"))

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	result, err := h.fileService.UploadFile(
		c.Request().Context(),
		io.LimitReader(src, h.maxFileSize),
		file.Filename,
		contentType,
		folder,
	)
	if err != nil {
		return response.Error(c, err)
	}

	metadata := &entity.FileMetadata{
		ID:         uuid.New().String(),
		UserID:     uid,
		Filename:   file.Filename,
		ObjectName: result.ObjectName,
		URL:        result.URL,
		FileType:   contentType,
		Size:       result.Size,
		EntityType: c.FormValue("entity_type"),
		EntityID:   c.FormValue("entity_id"),
		CreatedAt:  time.Now(),
	}
	if err := h.fileRepo.Create(c.Request().Context(), metadata); err != nil {
		// The binary is already in the bucket; the upload still counts.
		logger.Error("Failed to record file metadata for %s: %v", result.ObjectName, err)
	}

	return response.Created(c, metadata)
}

func (h *FileHandler) ListMine(c echo.Context) error {
	uid := c.Get("uid").(string)
	page, pageSize, offset := utils.GetPaginationParams(c)

	files, total, err := h.fileRepo.ListByUser(c.Request().Context(), uid, pageSize, offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, files, total, page, pageSize)
}

func (h *FileHandler) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)

	metadata, err := h.fileRepo.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	if metadata.UserID != uid {
		return response.Error(c, errors.Forbidden("You do not own this file", nil))
	}

	if err := h.fileService.DeleteFile(c.Request().Context(), metadata.ObjectName); err != nil {
		return response.Error(c, err)
	}
	if err := h.fileRepo.Delete(c.Request().Context(), metadata.ID); err != nil {
		logger.Error("Failed to delete file metadata %s: %v", metadata.ID, err)
	}

	return response.Success(c, map[string]string{"message": "File deleted"})
}

func sanitizeFolder(folder string) string {
	folder = filepath.Base(folder)
	clean := make([]rune, 0, len(folder))
	for _, r := range folder {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			clean = append(clean, r)
		}
	}
	if len(clean) == 0 {
		return "uploads"
	}
	return string(clean)
}
