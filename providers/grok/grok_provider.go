package grok

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

// GrokConfig implements the suggestion provider against the xAI chat
// completions API, which shares the OpenAI wire format.
type GrokConfig struct {
	BaseURL     string
	Model       string
	ApiKey      string
	Temperature *float32
	MaxTokens   int
	client      *http.Client
}

const (
	defaultBaseURL = "https://api.x.ai/v1"
	defaultModel   = "grok-2-mini"

	systemPrompt = "You are a file organization assistant. Provide only folder paths for file organization."
)

var stopTokens = []string{"\n\n", "Path:", "Folder:", "Response:"}

// NewGrokSuggestionProvider initializes a new Grok provider.
func NewGrokSuggestionProvider(config *GrokConfig, timeout time.Duration) contracts.ISuggestionProvider {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := config.Model
	if model == "" {
		model = defaultModel
	}
	return &GrokConfig{
		BaseURL:     baseURL,
		Model:       model,
		ApiKey:      config.ApiKey,
		Temperature: config.Temperature,
		MaxTokens:   config.MaxTokens,
		client:      &http.Client{Timeout: timeout},
	}
}

func (grokProvider *GrokConfig) SuggestionRequest(ctx context.Context, prompt string) (string, error) {
	if grokProvider.ApiKey == "" {
		return "", fmt.Errorf("grok api key is not set: %w", models.ErrInvalidCredentials)
	}

	maxTokens := grokProvider.MaxTokens
	if maxTokens == 0 {
		maxTokens = 50
	}

	reqBody := models.ChatCompletionRequest{
		Model: grokProvider.Model,
		Messages: []models.ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: grokProvider.Temperature,
		Stop:        stopTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshalling request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/chat/completions", grokProvider.BaseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+grokProvider.ApiKey)

	resp, err := grokProvider.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("grok request failed: %w", models.ClassifyTransportError(err))
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
			return "", fmt.Errorf("grok request failed with %s: %w", message, models.ErrInvalidCredentials)
		}
		return "", fmt.Errorf("grok request failed with %s: %w", message, models.ErrBackendUnavailable)
	}

	var response models.ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("error unmarshalling response: %v", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response from grok: %w", models.ErrBackendUnavailable)
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
