package factory

import (
	"fmt"

	"github.com/Tigierre/contractguardian/pkg/llm"
	"github.com/Tigierre/contractguardian/pkg/llm/gemini"
	"github.com/Tigierre/contractguardian/pkg/llm/ollama"
)

func NewStructuredProvider(providerType, modelName, baseURL, geminiAPIKey string) (llm.StructuredProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "gemini":
		if geminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return gemini.NewGeminiProvider(geminiAPIKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
