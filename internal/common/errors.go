package common

import (
	"errors"
	"fmt"
)

// Domain errors - use errors.Is() to check
var (
	// Generic errors
	ErrInternal = errors.New("internal error")
	ErrNotFound = errors.New("not found")

	// Completion API errors
	ErrUpstream        = errors.New("upstream unavailable")
	ErrUpstreamContent = errors.New("upstream returned invalid content")

	// Prompt template errors
	ErrPromptNotFound = fmt.Errorf("prompt template %w", ErrNotFound)
	ErrPromptInvalid  = errors.New("invalid prompt template")
)

// WrapInternal wraps an error as an internal error with context
func WrapInternal(operation string, err error) error {
	return fmt.Errorf("%s: %w", operation, errors.Join(ErrInternal, err))
}

// WrapUpstream marks a failed call to the completion API
func WrapUpstream(operation string, err error) error {
	return fmt.Errorf("%s: %w", operation, errors.Join(ErrUpstream, err))
}

// WrapUpstreamContent marks a completion that came back but could not be used
func WrapUpstreamContent(operation string, err error) error {
	return fmt.Errorf("%s: %w", operation, errors.Join(ErrUpstreamContent, err))
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUpstream checks if the completion API could not be reached or refused the call
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream)
}

// IsUpstreamContent checks if the completion API returned unusable content
func IsUpstreamContent(err error) bool {
	return errors.Is(err, ErrUpstreamContent)
}
