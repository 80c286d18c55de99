package prompt

import (
	"context"
	_ "embed"
	"fmt"
	"io"

	appconfig "github.com/fedutinova/careerchat/internal/config"
	"github.com/fedutinova/careerchat/internal/redis"
	"github.com/fedutinova/careerchat/internal/storage"
)

//go:embed prompts/chat.tmpl
var defaultChatTemplate []byte

// Source fetches the raw template text.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]byte, error)
}

type embeddedSource struct{}

// Embedded returns the template compiled into the binary.
func Embedded() Source {
	return embeddedSource{}
}

func (embeddedSource) Name() string { return "embedded" }

func (embeddedSource) Load(context.Context) ([]byte, error) {
	return defaultChatTemplate, nil
}

type StorageSource struct {
	store storage.Storage
	key   string
	name  string
}

func NewStorageSource(store storage.Storage, key, name string) *StorageSource {
	return &StorageSource{store: store, key: key, name: name}
}

func (s *StorageSource) Name() string { return s.name }

func (s *StorageSource) Load(ctx context.Context) ([]byte, error) {
	rc, _, err := s.store.GetFile(ctx, s.key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxTemplateBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read prompt %s: %w", s.key, err)
	}
	return data, nil
}

type RedisSource struct {
	svc *redis.Service
	key string
}

func NewRedisSource(svc *redis.Service, key string) *RedisSource {
	return &RedisSource{svc: svc, key: key}
}

func (s *RedisSource) Name() string { return "redis:" + s.key }

func (s *RedisSource) Load(ctx context.Context) ([]byte, error) {
	text, err := s.svc.GetPrompt(ctx, s.key)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

// NewSource picks the template source named by PROMPT_SOURCE. rdb may be nil
// unless the source is redis.
func NewSource(ctx context.Context, cfg appconfig.Config, rdb *redis.Service) (Source, error) {
	switch cfg.PromptSource {
	case "", "embedded":
		return Embedded(), nil
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("prompt source redis requires REDIS_URL")
		}
		return NewRedisSource(rdb, cfg.PromptRedisKey), nil
	case "s3", "aws", "localstack", "file", "local", "filesystem":
		store, key, err := storage.NewStorage(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("prompt storage: %w", err)
		}
		return NewStorageSource(store, key, storage.GetStorageType(cfg)+":"+key), nil
	default:
		return nil, fmt.Errorf("unknown prompt source %q", cfg.PromptSource)
	}
}
