package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "organai"}
	InitFlags(cmd)
	return cmd
}

// Without a config file every default applies
func TestLoadConfigs_Defaults(t *testing.T) {
	viper.Reset()
	cmd := newTestCommand()

	cfg := LoadConfigs(cmd, t.TempDir())

	require.NotNil(t, cfg)
	assert.True(t, cfg.EnableCache)
	assert.Equal(t, "ollama", cfg.AIProviderConfig.Provider)
	assert.Equal(t, "http://localhost:11434/api", cfg.AIProviderConfig.BaseURL)
	assert.Equal(t, "llama3.1", cfg.AIProviderConfig.Model)
	assert.Equal(t, 50, cfg.AIProviderConfig.MaxTokens)
	assert.True(t, cfg.Organizer.UseContext)
	assert.True(t, cfg.Organizer.StayUnderRoot)
	assert.False(t, cfg.Organizer.Refine)
	assert.Equal(t, 4, cfg.Organizer.MaxDepth)
}

// A yaml config file in the working directory overrides the defaults
func TestLoadConfigs_YamlFile(t *testing.T) {
	viper.Reset()
	tempDir := t.TempDir()

	content := `ai_provider_config:
  provider: openai
  model: gpt-4o-mini
  api_key: sk-test
organizer:
  refine: true
  workers: 8
enable_cache: false
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "organai-config.yaml"), []byte(content), 0644))

	cfg := LoadConfigs(newTestCommand(), tempDir)

	assert.Equal(t, "openai", cfg.AIProviderConfig.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.AIProviderConfig.Model)
	assert.Equal(t, "sk-test", cfg.AIProviderConfig.ApiKey)
	assert.True(t, cfg.Organizer.Refine)
	assert.Equal(t, 8, cfg.Organizer.Workers)
	assert.False(t, cfg.EnableCache)

	// Untouched keys keep their defaults
	assert.True(t, cfg.Organizer.UseContext)
}

func TestGetConfigFileType(t *testing.T) {
	assert.Equal(t, "yaml", GetConfigFileType("organai-config.yaml"))
	assert.Equal(t, "yaml", GetConfigFileType("organai-config.yml"))
	assert.Equal(t, "json", GetConfigFileType("organai-config.json"))
	assert.Equal(t, "", GetConfigFileType("organai-config.toml"))
}

// The mtime cache returns the same object until the file changes
func TestLoadConfigWithCache(t *testing.T) {
	viper.Reset()
	ClearConfigCache()
	tempDir := t.TempDir()

	path := filepath.Join(tempDir, "organai-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("enable_cache: false\n"), 0644))

	cmd := newTestCommand()
	first := LoadConfigWithCache(cmd, tempDir)
	second := LoadConfigWithCache(cmd, tempDir)

	assert.Same(t, first, second)
}
