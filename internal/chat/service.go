package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"github.com/fedutinova/careerchat/internal/common"
	"github.com/fedutinova/careerchat/internal/gpt"
	"github.com/fedutinova/careerchat/internal/models"
	"github.com/fedutinova/careerchat/internal/prompt"
	"github.com/google/uuid"
)

// Completer sends one prompt to the completion API.
type Completer interface {
	Complete(ctx context.Context, prompt string) (*gpt.CompletionResult, error)
}

// Renderer builds the prompt text.
type Renderer interface {
	Render(ctx context.Context, data prompt.Data) (string, error)
}

type Service struct {
	renderer  Renderer
	completer Completer
}

func NewService(renderer Renderer, completer Completer) *Service {
	return &Service{
		renderer:  renderer,
		completer: completer,
	}
}

type Result struct {
	ID               uuid.UUID
	Body             json.RawMessage
	Recommendations  int
	Model            string
	TokensUsed       int
	ProcessingTimeMs int
}

// Recommend asks the model which of req.JobsData suit the user. The model's
// JSON object is returned untouched; its shape is requested by the prompt
// and not enforced here.
func (s *Service) Recommend(ctx context.Context, req models.ChatRequest) (*Result, error) {
	id := uuid.New()

	var jobs bytes.Buffer
	if err := json.Compact(&jobs, req.JobsData); err != nil {
		return nil, common.WrapInternal("serialize jobs", err)
	}

	text, err := s.renderer.Render(ctx, prompt.Data{
		Jobs:    jobs.String(),
		Message: req.Message,
	})
	if err != nil {
		return nil, common.WrapInternal("render prompt", err)
	}

	completion, err := s.completer.Complete(ctx, text)
	if err != nil {
		return nil, err
	}

	body, err := gpt.ParseContent(completion.Content)
	if err != nil {
		slog.Warn("model returned unparseable content",
			"chat_id", id,
			"model", completion.Model,
			"content_length", len(completion.Content))
		return nil, err
	}

	count := countRecommendations(id, body)

	slog.Info("chat recommendation completed",
		"chat_id", id,
		"model", completion.Model,
		"recommendations", count,
		"tokens_used", completion.TokensUsed,
		"processing_time_ms", completion.ProcessingTimeMs)

	return &Result{
		ID:               id,
		Body:             body,
		Recommendations:  count,
		Model:            completion.Model,
		TokensUsed:       completion.TokensUsed,
		ProcessingTimeMs: completion.ProcessingTimeMs,
	}, nil
}

// countRecommendations reads the typed view for logging only; a body that
// does not match it is still returned to the caller.
func countRecommendations(id uuid.UUID, body json.RawMessage) int {
	var view models.ChatResponse
	if err := json.Unmarshal(body, &view); err != nil {
		slog.Warn("model response does not match the requested shape", "chat_id", id, "error", err)
		return 0
	}
	if len(view.Recommendations) > models.MaxRecommendations {
		slog.Warn("model returned more recommendations than requested",
			"chat_id", id,
			"count", len(view.Recommendations),
			"max", models.MaxRecommendations)
	}
	return len(view.Recommendations)
}
