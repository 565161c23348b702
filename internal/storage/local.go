package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
)

// LocalStore writes files under a directory served statically at PublicPrefix.
type LocalStore struct {
	Dir          string
	PublicPrefix string
}

// NewLocalStore constructs a LocalStore.
func NewLocalStore(dir, publicPrefix string) *LocalStore {
	if publicPrefix == "" {
		publicPrefix = "/uploads"
	}
	return &LocalStore{Dir: dir, PublicPrefix: "/" + strings.Trim(publicPrefix, "/")}
}

// Save writes content to a new file and returns its public path.
func (s *LocalStore) Save(ctx context.Context, content io.Reader, originalName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", apperrors.NewStorageError(err)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", apperrors.NewStorageError(fmt.Errorf("create upload dir: %w", err))
	}

	name := objectName(originalName)
	fullPath := filepath.Join(s.Dir, name)

	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", apperrors.NewStorageError(fmt.Errorf("create upload file: %w", err))
	}
	if _, err := io.Copy(f, content); err != nil {
		_ = f.Close()
		_ = os.Remove(fullPath)
		return "", apperrors.NewStorageError(fmt.Errorf("write upload file: %w", err))
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(fullPath)
		return "", apperrors.NewStorageError(fmt.Errorf("close upload file: %w", err))
	}

	return s.PublicPrefix + "/" + name, nil
}
