package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/fedutinova/careerchat/internal/auth"
	"github.com/fedutinova/careerchat/internal/chat"
	"github.com/fedutinova/careerchat/internal/common"
	"github.com/fedutinova/careerchat/internal/config"
	"github.com/fedutinova/careerchat/internal/models"
	"github.com/fedutinova/careerchat/internal/redis"
	"github.com/fedutinova/careerchat/internal/validation"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

const maxChatBodyBytes = 1 << 20

// Error bodies returned by POST /api/chat.
const (
	msgInvalidRequest      = "Invalid request"
	msgUpstreamUnavailable = "Upstream model unavailable"
	msgUpstreamInvalid     = "Upstream model returned invalid content"
	msgInternal            = "Internal server error"
)

type ChatService interface {
	Recommend(ctx context.Context, req models.ChatRequest) (*chat.Result, error)
}

// PromptChecker verifies the prompt template source is usable.
type PromptChecker interface {
	Check(ctx context.Context) error
	Source() string
}

type Handlers struct {
	Chat      ChatService
	Validator *validation.Validator
	Prompt    PromptChecker
	Redis     *redis.Service // nil when REDIS_URL is unset
	Config    config.Config
}

func (h *Handlers) Routers(r chi.Router) {
	r.Get("/", h.hello)
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Group(func(r chi.Router) {
		if h.Config.AuthEnabled() {
			r.Use(auth.JWTMiddleware(h.Config.JWTSecret, h.Config.JWTIssuer))
		}
		if h.Config.RateLimitPerMinute > 0 {
			r.Use(httprate.Limit(
				h.Config.RateLimitPerMinute,
				time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByRealIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					writeError(w, http.StatusTooManyRequests, "Too many requests", nil)
				}),
			))
		}

		r.Post("/api/chat", h.chat)
	})
}

func (h *Handlers) hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hello World"})
}

func (h *Handlers) chat(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	var req models.ChatRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBodyBytes))
	if err := dec.Decode(&req); err != nil {
		slog.Warn("invalid chat request body", "request_id", reqID, "error", err)
		writeError(w, http.StatusBadRequest, msgInvalidRequest, []string{"body: must be a JSON object with message and jobsData"})
		return
	}

	if validationErrs := h.Validator.ValidateChatRequest(&req); len(validationErrs) > 0 {
		slog.Warn("chat request failed validation", "request_id", reqID, "error", validationErrs)
		writeError(w, http.StatusBadRequest, msgInvalidRequest, validationErrs.Messages())
		return
	}

	logger := slog.With("request_id", reqID)
	if claims, ok := auth.FromContext(r.Context()); ok {
		logger = logger.With("subject", claims.Subject)
	}

	result, err := h.Chat.Recommend(r.Context(), req)
	if err != nil {
		status, msg := statusForError(err)
		logger.Error("chat request failed", "status", status, "error", err)
		writeError(w, status, msg, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Chat-ID", result.ID.String())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Body); err != nil {
		logger.Warn("write chat response", "err", err)
		return
	}

	logger.Info("chat request served", "chat_id", result.ID)
}

func statusForError(err error) (int, string) {
	switch {
	case common.IsUpstream(err):
		return http.StatusServiceUnavailable, msgUpstreamUnavailable
	case common.IsUpstreamContent(err):
		return http.StatusBadGateway, msgUpstreamInvalid
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, details []string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg, Details: details})
}
