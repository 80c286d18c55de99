package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fedutinova/careerchat/internal/common"
)

type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	info, err := os.Stat(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage path is not a directory: %s", baseDir)
	}

	return &LocalStorage{baseDir: baseDir}, nil
}

func (s *LocalStorage) GetFile(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if key == "" || strings.Contains(key, "..") {
		return nil, "", fmt.Errorf("invalid file key: %q", key)
	}

	filePath := filepath.Join(s.baseDir, key)

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Error("file not found in local storage", "key", key, "path", filePath)
			return nil, "", fmt.Errorf("file %s: %w", filePath, common.ErrPromptNotFound)
		}
		return nil, "", fmt.Errorf("failed to stat file: %w", err)
	}

	if fileInfo.Size() == 0 {
		return nil, "", fmt.Errorf("file is empty: %s", key)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".tmpl", ".txt", ".md":
		contentType = "text/plain"
	case ".json":
		contentType = "application/json"
	}

	slog.Debug("file opened from local storage",
		"key", key,
		"path", filePath,
		"size", fileInfo.Size(),
		"content_type", contentType)

	return file, contentType, nil
}
