// Command seedprompt writes a chat prompt template into Redis so a server
// running with PROMPT_SOURCE=redis can pick it up on its next reload.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	appconfig "github.com/fedutinova/careerchat/internal/config"
	"github.com/fedutinova/careerchat/internal/prompt"
	"github.com/fedutinova/careerchat/internal/redis"
)

func main() {
	cfg := appconfig.Load()

	file := flag.String("file", "", "template file to upload (default: the built-in template)")
	key := flag.String("key", cfg.PromptRedisKey, "redis key to write")
	redisURL := flag.String("redis-url", cfg.RedisURL, "redis connection URL")
	flag.Parse()

	if *redisURL == "" {
		log.Fatal("redis URL is required (set REDIS_URL or -redis-url)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		data []byte
		err  error
	)
	if *file != "" {
		data, err = os.ReadFile(*file)
	} else {
		data, err = prompt.Embedded().Load(ctx)
	}
	if err != nil {
		log.Fatalf("Failed to read template: %v", err)
	}

	if _, err := prompt.Parse("seed", data); err != nil {
		log.Fatalf("Template rejected: %v", err)
	}

	svc, err := redis.New(ctx, *redisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer svc.Close()

	if err := svc.SetPrompt(ctx, *key, string(data)); err != nil {
		log.Fatalf("Failed to write template: %v", err)
	}

	fmt.Printf("Template (%d bytes) written to %s\n", len(data), *key)
}
