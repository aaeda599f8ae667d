package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// GenerateRequest holds the parameters for a generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	// Schema, when set, is a JSON schema the response text must conform to.
	// Nil requests free text.
	Schema      json.RawMessage
	Temperature *float64 // nil uses task default
	MaxTokens   *int     // nil uses task default
}

// GenerateResponse holds the result of a generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a text generation service.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the service is reachable.
	Available(ctx context.Context) bool
}

// errorCode maps a Generate error onto the short code reported to observers.
func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrServiceUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}

// disabledClient stands in when generation is switched off so that every
// advisory call takes its fallback path without touching the network.
type disabledClient struct{}

// NewDisabledClient returns an LLMClient whose calls always fail with
// ErrServiceUnavailable.
func NewDisabledClient() LLMClient {
	return disabledClient{}
}

func (disabledClient) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	return nil, ErrServiceUnavailable
}

func (disabledClient) Available(context.Context) bool { return false }
