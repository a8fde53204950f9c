package service

import (
	"context"
	"io"
)

type UploadResult struct {
	URL        string
	ObjectName string
	Size       int64
}

// FileUploadService abstracts the binary storage backend so use cases
// can be tested without a bucket.
type FileUploadService interface {
	UploadFile(ctx context.Context, file io.Reader, filename, contentType, folder string) (*UploadResult, error)
	DeleteFile(ctx context.Context, objectName string) error
	Close() error
}
