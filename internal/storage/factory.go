package storage

import (
	"context"
	"fmt"
	"path/filepath"

	appconfig "github.com/fedutinova/careerchat/internal/config"
)

// NewStorage builds the object reader backing the configured prompt source
// and returns it with the key the prompt lives under.
func NewStorage(ctx context.Context, cfg appconfig.Config) (Storage, string, error) {
	switch cfg.PromptSource {
	case "s3", "aws", "localstack":
		if cfg.PromptS3Bucket == "" {
			return nil, "", fmt.Errorf("PROMPT_S3_BUCKET is required for prompt source %q", cfg.PromptSource)
		}
		s, err := NewS3Storage(ctx, cfg)
		if err != nil {
			return nil, "", err
		}
		return s, cfg.PromptS3Key, nil
	case "file", "local", "filesystem":
		if cfg.PromptFile == "" {
			return nil, "", fmt.Errorf("PROMPT_FILE is required for prompt source %q", cfg.PromptSource)
		}
		s, err := NewLocalStorage(filepath.Dir(cfg.PromptFile))
		if err != nil {
			return nil, "", err
		}
		return s, filepath.Base(cfg.PromptFile), nil
	default:
		return nil, "", fmt.Errorf("prompt source %q is not backed by object storage", cfg.PromptSource)
	}
}

func GetStorageType(cfg appconfig.Config) string {
	switch cfg.PromptSource {
	case "s3", "aws", "localstack":
		if isLocalStack(cfg.S3Endpoint) {
			return "LocalStack S3"
		}
		if cfg.S3Endpoint != "" {
			return "S3-compatible"
		}
		return "AWS S3"
	case "file", "local", "filesystem":
		return "Local Filesystem"
	default:
		return "none"
	}
}
