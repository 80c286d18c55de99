package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fedutinova/careerchat/internal/chat"
	appconfig "github.com/fedutinova/careerchat/internal/config"
	"github.com/fedutinova/careerchat/internal/gpt"
	"github.com/fedutinova/careerchat/internal/prompt"
	"github.com/fedutinova/careerchat/internal/redis"
	"github.com/fedutinova/careerchat/internal/server"
	"github.com/fedutinova/careerchat/internal/storage"
	httpapi "github.com/fedutinova/careerchat/internal/transport/http"
	"github.com/fedutinova/careerchat/internal/validation"
)

func main() {
	cfg := appconfig.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: appconfig.ParseLogLevel(cfg.LogLevel),
	})))
	slog.Info("starting careerchat", "addr", cfg.HTTPAddr, "model", cfg.OpenAIModel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var redisService *redis.Service
	if cfg.RedisURL != "" {
		var err error
		redisService, err = redis.New(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("failed to connect to Redis", "err", err)
			os.Exit(1)
		}
		defer redisService.Close()
	}

	source, err := prompt.NewSource(ctx, cfg, redisService)
	if err != nil {
		slog.Error("failed to initialize prompt source", "err", err)
		os.Exit(1)
	}
	tmpl, err := prompt.NewTemplate(ctx, source, cfg.PromptReloadInterval)
	if err != nil {
		slog.Error("failed to load prompt template", "source", source.Name(), "err", err)
		os.Exit(1)
	}
	slog.Info("prompt template loaded",
		"source", source.Name(),
		"storage", storage.GetStorageType(cfg),
		"reload_interval", cfg.PromptReloadInterval)

	if cfg.OpenAIAPIKey == "" {
		slog.Warn("OPENAI_API_KEY is not set, chat requests will fail upstream")
	}
	gptClient := gpt.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)

	handlers := &httpapi.Handlers{
		Chat:      chat.NewService(tmpl, gptClient),
		Validator: validation.New(cfg.MaxMessageLength),
		Prompt:    tmpl,
		Redis:     redisService,
		Config:    cfg,
	}
	r := server.NewRouter(handlers, cfg)

	// no WriteTimeout: a chat request lasts as long as the model takes
	srv := &http.Server{
		Addr:        cfg.HTTPAddr,
		Handler:     r,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 90 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()
	slog.Info("listening", "addr", cfg.HTTPAddr, "auth", cfg.AuthEnabled(), "rate_limit_per_minute", cfg.RateLimitPerMinute)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	<-ch
	slog.Info("shutting down")

	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	_ = srv.Shutdown(shCtx)
	cancel()
}
