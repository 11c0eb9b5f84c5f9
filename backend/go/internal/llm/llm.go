package llm

import (
	"context"
	"fmt"

	"monastery360/backend/go/internal/config"
)

// LLM is the interface every text-generation client implements.
type LLM interface {
	// Generate produces a completion for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewClient creates an LLM client for the configured provider.
// An empty provider returns (nil, nil): generation is optional and the
// assistant degrades to answering with retrieved context directly.
func NewClient(cfg config.LLMConfig) (LLM, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "gemini":
		return NewGemini(context.Background(), cfg.Gemini.Model, cfg.Gemini.APIKey)
	case "openai":
		return NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	case "ollama":
		return NewOllama(cfg.Ollama.Model, cfg.Ollama.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
