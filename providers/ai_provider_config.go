package providers

// AIProviderConfig holds the backend selection and connection settings shared
// by every provider implementation.
type AIProviderConfig struct {
	Provider       string   `mapstructure:"provider"`
	BaseURL        string   `mapstructure:"base_url"`
	Model          string   `mapstructure:"model"`
	ApiKey         string   `mapstructure:"api_key"`
	Temperature    *float32 `mapstructure:"temperature"`
	MaxTokens      int      `mapstructure:"max_tokens"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds"`
}
