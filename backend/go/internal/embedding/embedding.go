package embedding

import (
	"fmt"

	"monastery360/backend/go/internal/config"
)

// NewModel creates an Embedding client for the configured provider.
// An empty provider returns (nil, nil): embeddings are optional and the
// assistant falls back to lexical scoring when no model is available.
func NewModel(cfg config.EmbeddingConfig) (Embedding, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "gemini":
		return NewGoogleModel(cfg.Gemini.APIKey, cfg.Gemini.Model)
	case "openai":
		return NewOpenAIModel(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	case "ollama":
		return NewOllamaModel(cfg.Ollama.Model, cfg.Ollama.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
