package providers

import (
	"fmt"
	"time"

	"github.com/organai/organai/providers/contracts"
	"github.com/organai/organai/providers/grok"
	"github.com/organai/organai/providers/ollama"
	"github.com/organai/organai/providers/openai"
)

// SuggestionProviderFactory creates the provider selected in the
// configuration. It is the only place that knows the backend names.
func SuggestionProviderFactory(config *AIProviderConfig) (contracts.ISuggestionProvider, error) {
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	switch config.Provider {
	case "ollama":
		return ollama.NewOllamaSuggestionProvider(&ollama.OllamaConfig{
			BaseURL:     config.BaseURL,
			Model:       config.Model,
			Temperature: config.Temperature,
			MaxTokens:   config.MaxTokens,
		}, timeout), nil
	case "openai":
		return openai.NewOpenAISuggestionProvider(&openai.OpenAIConfig{
			BaseURL:     config.BaseURL,
			Model:       config.Model,
			ApiKey:      config.ApiKey,
			Temperature: config.Temperature,
			MaxTokens:   config.MaxTokens,
		}, timeout), nil
	case "grok":
		return grok.NewGrokSuggestionProvider(&grok.GrokConfig{
			BaseURL:     config.BaseURL,
			Model:       config.Model,
			ApiKey:      config.ApiKey,
			Temperature: config.Temperature,
			MaxTokens:   config.MaxTokens,
		}, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}
}
