package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestionProviderFactory_KnownBackends(t *testing.T) {
	for _, name := range []string{"ollama", "openai", "grok"} {
		provider, err := SuggestionProviderFactory(&AIProviderConfig{Provider: name})
		require.NoError(t, err, "provider=%s", name)
		assert.NotNil(t, provider, "provider=%s", name)
	}
}

func TestSuggestionProviderFactory_UnknownBackend(t *testing.T) {
	provider, err := SuggestionProviderFactory(&AIProviderConfig{Provider: "claude"})

	assert.Error(t, err)
	assert.Nil(t, provider)
	assert.Contains(t, err.Error(), "unsupported provider")
}
