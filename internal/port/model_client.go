package port

import (
	"context"

	"invana/internal/domain"
)

// GenerateInput carries everything a single model call needs. The prompt
// travels as the system instruction; the document is the only user part.
type GenerateInput struct {
	Document     []byte
	ContentType  string
	SystemPrompt string
	// JSONMode requests structured output (application/json) from the
	// provider. The orchestrator clears it when a raw prompt is active.
	JSONMode bool
}

// GenerateOutput is the model's answer plus its token telemetry.
type GenerateOutput struct {
	Text  string
	Usage domain.TokenUsage
}

// ModelClient abstracts the generative-model call. Implementations make
// exactly one provider request per Generate call and never retry.
type ModelClient interface {
	Generate(ctx context.Context, input GenerateInput) (*GenerateOutput, error)
}

// ModelClientFactory hands out (possibly cached) model clients keyed by
// credentials. Reset drops every cached client; tests and credential
// rotation rely on it.
type ModelClientFactory interface {
	Client(apiKey, model string) (ModelClient, error)
	Reset()
}
