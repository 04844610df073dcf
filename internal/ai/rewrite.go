package ai

import (
	"context"
	"errors"
	"strings"
)

// NarrativeRewriter adapts a Runtime into the rewrite callback consumed by
// the insight composer: one prompt in, one narrative out. The caller owns
// timeout policy via the context.
func NarrativeRewriter(rt Runtime, model string, maxTokens int, temperature float64) func(ctx context.Context, prompt string) (string, error) {
	return func(ctx context.Context, prompt string) (string, error) {
		resp, err := rt.Generate(ctx, GenerateRequest{
			Model:       model,
			Messages:    []Message{{Role: "user", Content: prompt}},
			MaxTokens:   maxTokens,
			Temperature: temperature,
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", errors.New("empty completion")
		}
		text := strings.TrimSpace(resp.Choices[0].Message.Content)
		if text == "" {
			return "", errors.New("empty completion")
		}
		return text, nil
	}
}
