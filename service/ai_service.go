package service

import "context"

// AIService is the generation capability: one system instruction, one user
// prompt, one generated text back.
type AIService interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}
