package redis

import (
	"context"
	"fmt"

	"github.com/fedutinova/careerchat/internal/common"
	"github.com/redis/go-redis/v9"
)

type Service struct {
	client *redis.Client
}

func New(ctx context.Context, redisURL string) (*Service, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Service{client: client}, nil
}

// NewFromClient wraps an existing client, e.g. one shared with other code.
func NewFromClient(client *redis.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Close() error {
	return s.client.Close()
}

// Client returns the underlying Redis client
func (s *Service) Client() *redis.Client {
	return s.client
}

func (s *Service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Service) GetPrompt(ctx context.Context, key string) (string, error) {
	text, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("redis key %q: %w", key, common.ErrPromptNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get prompt: %w", err)
	}
	return text, nil
}

// SetPrompt publishes a new template text; running services pick it up on
// their next reload.
func (s *Service) SetPrompt(ctx context.Context, key, text string) error {
	return s.client.Set(ctx, key, text, 0).Err()
}
