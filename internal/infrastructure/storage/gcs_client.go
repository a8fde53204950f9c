package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"sokoni/internal/domain/service"
	"sokoni/pkg/errors"
	"sokoni/pkg/logger"
)

var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

const maxUploadAge = 30 * time.Second

type GCSClient struct {
	client *gcs.Client
	bucket string
}

func NewGCSClient(ctx context.Context, bucket, credentialsFile string) (*GCSClient, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	return &GCSClient{
		client: client,
		bucket: bucket,
	}, nil
}

// UploadFile streams the file into the bucket under
// <folder>/<uuid><ext> and returns its public URL.
func (c *GCSClient) UploadFile(ctx context.Context, file io.Reader, filename, contentType, folder string) (*service.UploadResult, error) {
	if !allowedContentTypes[contentType] {
		return nil, errors.BadRequest(fmt.Sprintf("Unsupported file type: %s", contentType), nil)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectName := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	uploadCtx, cancel := context.WithTimeout(ctx, maxUploadAge)
	defer cancel()

	writer := c.client.Bucket(c.bucket).Object(objectName).NewWriter(uploadCtx)
	writer.ContentType = contentType

	size, err := io.Copy(writer, file)
	if err != nil {
		writer.Close()
		return nil, errors.Internal("Failed to upload file", err)
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Internal("Failed to finalize upload", err)
	}

	logger.Debug("Uploaded %s (%d bytes) to %s", filename, size, objectName)

	return &service.UploadResult{
		URL:        fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucket, objectName),
		ObjectName: objectName,
		Size:       size,
	}, nil
}

func (c *GCSClient) DeleteFile(ctx context.Context, objectName string) error {
	err := c.client.Bucket(c.bucket).Object(objectName).Delete(ctx)
	if err != nil {
		if err == gcs.ErrObjectNotExist {
			return errors.NotFound("File", err)
		}
		return errors.Internal("Failed to delete file", err)
	}
	return nil
}

func (c *GCSClient) Close() error {
	return c.client.Close()
}
