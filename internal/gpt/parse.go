package gpt

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/fedutinova/careerchat/internal/common"
)

// CleanJSON strips a Markdown code fence the model sometimes wraps its
// JSON in.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	} else {
		return clean
	}
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")

	return strings.TrimSpace(clean)
}

// ParseContent turns the model's text into the JSON object returned to the
// caller. Empty content yields an empty object.
func ParseContent(content string) (json.RawMessage, error) {
	clean := CleanJSON(content)
	if clean == "" {
		return json.RawMessage(`{}`), nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &obj); err != nil {
		return nil, common.WrapUpstreamContent("parse completion", err)
	}
	if obj == nil {
		return nil, common.WrapUpstreamContent("parse completion", errors.New("completion is null, want a JSON object"))
	}
	return json.RawMessage(clean), nil
}
