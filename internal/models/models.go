package models

import "encoding/json"

// ChatRequest is the body of POST /api/chat. Job records are opaque to the
// service and are forwarded to the model exactly as the caller sent them.
type ChatRequest struct {
	Message  string          `json:"message" validate:"notblank"`
	JobsData json.RawMessage `json:"jobsData" validate:"jsonarray"`
}

// ChatResponse is the shape the prompt asks the model to produce. The
// service never enforces it; it is decoded only to log what came back.
type ChatResponse struct {
	Response        string           `json:"response"`
	Recommendations []Recommendation `json:"recommendations"`
}

type Recommendation struct {
	ID      any    `json:"id"`
	Title   string `json:"title"`
	Company string `json:"company"`
	Type    string `json:"type"`
}

// MaxRecommendations is the upper bound the prompt asks the model to respect.
const MaxRecommendations = 3

type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}
