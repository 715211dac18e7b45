package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/organai/organai/providers/contracts"
	"github.com/organai/organai/providers/models"
	ollama_models "github.com/organai/organai/providers/ollama/models"
)

// OllamaConfig implements the suggestion provider against a local Ollama
// server.
type OllamaConfig struct {
	BaseURL     string
	Model       string
	Temperature *float32
	MaxTokens   int
	client      *http.Client
}

const (
	defaultBaseURL = "http://localhost:11434/api"
	defaultModel   = "llama3.1"
)

// stopTokens cut the completion off before the model drifts into prose.
var stopTokens = []string{"\n\n", "Path:", "Folder:", "Directory:", "Response:"}

// NewOllamaSuggestionProvider initializes a new Ollama provider.
func NewOllamaSuggestionProvider(config *OllamaConfig, timeout time.Duration) contracts.ISuggestionProvider {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := config.Model
	if model == "" {
		model = defaultModel
	}
	return &OllamaConfig{
		BaseURL:     baseURL,
		Model:       model,
		Temperature: config.Temperature,
		MaxTokens:   config.MaxTokens,
		client:      &http.Client{Timeout: timeout},
	}
}

func (ollamaProvider *OllamaConfig) SuggestionRequest(ctx context.Context, prompt string) (string, error) {
	maxTokens := ollamaProvider.MaxTokens
	if maxTokens == 0 {
		maxTokens = 50
	}

	reqBody := ollama_models.OllamaGenerateRequest{
		Model:  ollamaProvider.Model,
		Prompt: prompt,
		Stream: false,
		Options: ollama_models.OllamaOptions{
			Temperature: ollamaProvider.Temperature,
			TopP:        0.9,
			TopK:        40,
			NumPredict:  maxTokens,
			NumCtx:      2048,
			Stop:        stopTokens,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshalling request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/generate", ollamaProvider.BaseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ollamaProvider.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", models.ClassifyTransportError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var apiError models.AIError
		if err := json.Unmarshal(body, &apiError); err == nil && apiError.Error.Message != "" {
			return "", fmt.Errorf("ollama request failed with status code '%d' - %s: %w", resp.StatusCode, apiError.Error.Message, models.ErrBackendUnavailable)
		}
		return "", fmt.Errorf("ollama request failed with status code '%d': %w", resp.StatusCode, models.ErrBackendUnavailable)
	}

	var response ollama_models.OllamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("error unmarshalling response: %v", err)
	}

	return strings.TrimSpace(response.Response), nil
}

// ListModels returns the names of locally installed models, sorted.
func ListModels(ctx context.Context, baseURL string) ([]string, error) {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/tags", baseURL), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to ollama: %w", models.ClassifyTransportError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama tags request failed with status code '%d': %w", resp.StatusCode, models.ErrBackendUnavailable)
	}

	var tags ollama_models.OllamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("error unmarshalling tags response: %v", err)
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		if m.Name != "" {
			names = append(names, m.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}
