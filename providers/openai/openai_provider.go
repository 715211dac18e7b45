package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/organai/organai/providers/contracts"
	"github.com/organai/organai/providers/models"
)

// OpenAIConfig implements the suggestion provider against the OpenAI chat
// completions API.
type OpenAIConfig struct {
	BaseURL     string
	Model       string
	ApiKey      string
	Temperature *float32
	MaxTokens   int
	client      *http.Client
}

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"

	systemPrompt = "You are a file organization expert. Respond only with folder paths for organizing files."
)

var stopTokens = []string{"\n\n", "Path:", "Folder:", "Response:"}

// NewOpenAISuggestionProvider initializes a new OpenAI provider.
func NewOpenAISuggestionProvider(config *OpenAIConfig, timeout time.Duration) contracts.ISuggestionProvider {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := config.Model
	if model == "" {
		model = defaultModel
	}
	return &OpenAIConfig{
		BaseURL:     baseURL,
		Model:       model,
		ApiKey:      config.ApiKey,
		Temperature: config.Temperature,
		MaxTokens:   config.MaxTokens,
		client:      &http.Client{Timeout: timeout},
	}
}

func (openAiProvider *OpenAIConfig) SuggestionRequest(ctx context.Context, prompt string) (string, error) {
	if openAiProvider.ApiKey == "" {
		return "", fmt.Errorf("openai api key is not set: %w", models.ErrInvalidCredentials)
	}

	maxTokens := openAiProvider.MaxTokens
	if maxTokens == 0 {
		maxTokens = 50
	}

	reqBody := models.ChatCompletionRequest{
		Model: openAiProvider.Model,
		Messages: []models.ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: openAiProvider.Temperature,
		Stop:        stopTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshalling request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/chat/completions", openAiProvider.BaseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+openAiProvider.ApiKey)

	resp, err := openAiProvider.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", models.ClassifyTransportError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var apiError models.AIError
		message := fmt.Sprintf("status code '%d'", resp.StatusCode)
		if err := json.Unmarshal(body, &apiError); err == nil && apiError.Error.Message != "" {
			message = fmt.Sprintf("%s - %s", message, apiError.Error.Message)
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return "", fmt.Errorf("openai request failed with %s: %w", message, models.ErrInvalidCredentials)
		}
		return "", fmt.Errorf("openai request failed with %s: %w", message, models.ErrBackendUnavailable)
	}

	var response models.ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("error unmarshalling response: %v", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response from openai: %w", models.ErrBackendUnavailable)
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
