// Package storage persists uploaded product attachments and returns the URL
// under which each one can be fetched.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/spec-kit/catalog-service/internal/config"
)

// Store saves uploaded content. Implementations return a StorageError
// (see errorutil) on any I/O failure.
type Store interface {
	Save(ctx context.Context, content io.Reader, originalName string) (string, error)
}

// New builds the store selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.StorageDriverLocal, "":
		return NewLocalStore(cfg.LocalDir, cfg.PublicPrefix), nil
	case config.StorageDriverS3:
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// objectName returns a random name that keeps the extension of originalName.
func objectName(originalName string) string {
	return uuid.NewString() + filepath.Ext(filepath.Base(originalName))
}
