package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"playtube-backend/config"
)

type ResourceType string

const (
	ResourceImage ResourceType = "image"
	ResourceVideo ResourceType = "video"
)

type UploadOptions struct {
	ResourceType ResourceType
	ContentType  string
}

type UploadResult struct {
	URL        string
	ObjectName string
}

// MediaStore is the adapter in front of the object storage backend.
// Upload always removes the local temp file, success or failure. Destroy is
// best-effort: it logs failures and never returns them.
type MediaStore interface {
	Upload(ctx context.Context, localPath string, opts UploadOptions) (*UploadResult, error)
	Destroy(ctx context.Context, objectName string, opts UploadOptions)
	ObjectNameFromURL(rawURL string) (string, error)
}

func New(ctx context.Context, cfg *config.Config) (MediaStore, error) {
	switch cfg.MediaBackend {
	case "r2":
		return NewR2Store(ctx, cfg)
	default:
		return NewGCSStore(ctx, cfg)
	}
}

// SaveTemp writes an uploaded multipart file to the OS temp dir and returns
// its path. The caller owns the file until it is handed to Upload.
func SaveTemp(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	path := filepath.Join(os.TempDir(), uuid.New().String()+ext)
	if err := c.SaveUploadedFile(fh, path); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return path, nil
}

// RemoveTemp cleans up temp files on validation-failure exits, where Upload
// never ran.
func RemoveTemp(paths ...string) {
	for _, p := range paths {
		if p != "" {
			_ = os.Remove(p)
		}
	}
}

func objectName(resource ResourceType, localPath string) string {
	ext := strings.ToLower(filepath.Ext(localPath))
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("%ss/%d-%s%s", resource, time.Now().UTC().Unix(), uuid.New().String(), ext)
}
