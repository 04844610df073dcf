package ai

import "context"

// Runtime is the minimal interface implemented by chat backends, remote
// (OpenRouter) or local (Ollama).
type Runtime interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// Provider identifiers used across the CLI for selection.
const (
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
)
