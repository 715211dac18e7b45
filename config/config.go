package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/organai/organai/constants/lipgloss"
	"github.com/organai/organai/providers"
)

// configCacheEntry holds cached configuration with metadata
type configCacheEntry struct {
	config  *Config
	modTime time.Time
}

// Global cache for configuration files
var (
	configCache = make(map[string]*configCacheEntry)
	cacheMutex  sync.RWMutex
)

// OrganizerConfig controls how files are scanned, suggested, and moved.
type OrganizerConfig struct {
	UseContext        bool `mapstructure:"use_context"`
	ConsiderStructure bool `mapstructure:"consider_structure"`
	Refine            bool `mapstructure:"refine"`
	StayUnderRoot     bool `mapstructure:"stay_under_root"`
	MaxDepth          int  `mapstructure:"max_depth"`
	Workers           int  `mapstructure:"workers"`
}

// Config represents the structure of the configuration file
type Config struct {
	Version          string                      `mapstructure:"version"`
	EnableCache      bool                        `mapstructure:"enable_cache"`
	AIProviderConfig *providers.AIProviderConfig `mapstructure:"ai_provider_config"`
	Organizer        *OrganizerConfig            `mapstructure:"organizer"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:     "0.3.1",
	EnableCache: true,
	AIProviderConfig: &providers.AIProviderConfig{
		Provider:       "ollama",
		BaseURL:        "http://localhost:11434/api",
		Model:          "llama3.1",
		ApiKey:         "",
		Temperature:    nil,
		MaxTokens:      50,
		TimeoutSeconds: 60,
	},
	Organizer: &OrganizerConfig{
		UseContext:        true,
		ConsiderStructure: true,
		Refine:            false,
		StayUnderRoot:     true,
		MaxDepth:          4,
		Workers:           0,
	},
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	// Set default values using Viper
	setDefaults()

	// Automatically read environment variables
	viper.AutomaticEnv()

	// Explicitly bind environment variables to config keys
	bindEnv()

	// Check if the user provided a config file
	if cfgFile != "" {
		// Use the config file from the flag
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	} else {
		// Look for configuration files in the current directory
		viper.SetConfigName("organai-config")
		viper.AddConfigPath(cwd)

		// Support both JSON and YAML formats
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			viper.SetConfigType("json")
			if err := viper.ReadInConfig(); err != nil {
				fmt.Println(lipgloss.Yellow.Render("No configuration file found, using defaults"))
			}
		}
	}

	// Bind CLI flags to override config values
	bindFlags(rootCmd)

	// Unmarshal the configuration into the Config struct
	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	return config
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("enable_cache", DefaultConfig.EnableCache)
	viper.SetDefault("ai_provider_config.provider", DefaultConfig.AIProviderConfig.Provider)
	viper.SetDefault("ai_provider_config.base_url", DefaultConfig.AIProviderConfig.BaseURL)
	viper.SetDefault("ai_provider_config.model", DefaultConfig.AIProviderConfig.Model)
	viper.SetDefault("ai_provider_config.api_key", DefaultConfig.AIProviderConfig.ApiKey)
	viper.SetDefault("ai_provider_config.temperature", DefaultConfig.AIProviderConfig.Temperature)
	viper.SetDefault("ai_provider_config.max_tokens", DefaultConfig.AIProviderConfig.MaxTokens)
	viper.SetDefault("ai_provider_config.timeout_seconds", DefaultConfig.AIProviderConfig.TimeoutSeconds)
	viper.SetDefault("organizer.use_context", DefaultConfig.Organizer.UseContext)
	viper.SetDefault("organizer.consider_structure", DefaultConfig.Organizer.ConsiderStructure)
	viper.SetDefault("organizer.refine", DefaultConfig.Organizer.Refine)
	viper.SetDefault("organizer.stay_under_root", DefaultConfig.Organizer.StayUnderRoot)
	viper.SetDefault("organizer.max_depth", DefaultConfig.Organizer.MaxDepth)
	viper.SetDefault("organizer.workers", DefaultConfig.Organizer.Workers)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("enable_cache", "ENABLE_CACHE")
	_ = viper.BindEnv("ai_provider_config.provider", "PROVIDER")
	_ = viper.BindEnv("ai_provider_config.base_url", "BASE_URL")
	_ = viper.BindEnv("ai_provider_config.model", "MODEL")
	_ = viper.BindEnv("ai_provider_config.api_key", "API_KEY")
	_ = viper.BindEnv("ai_provider_config.temperature", "TEMPERATURE")
	_ = viper.BindEnv("ai_provider_config.max_tokens", "MAX_TOKENS")
	_ = viper.BindEnv("ai_provider_config.timeout_seconds", "TIMEOUT_SECONDS")
	_ = viper.BindEnv("organizer.use_context", "USE_CONTEXT")
	_ = viper.BindEnv("organizer.consider_structure", "CONSIDER_STRUCTURE")
	_ = viper.BindEnv("organizer.refine", "REFINE")
	_ = viper.BindEnv("organizer.stay_under_root", "STAY_UNDER_ROOT")
	_ = viper.BindEnv("organizer.workers", "WORKERS")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("enable_cache", rootCmd.PersistentFlags().Lookup("enable_cache"))
	_ = viper.BindPFlag("ai_provider_config.provider", rootCmd.PersistentFlags().Lookup("provider"))
	_ = viper.BindPFlag("ai_provider_config.base_url", rootCmd.PersistentFlags().Lookup("base_url"))
	_ = viper.BindPFlag("ai_provider_config.model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("ai_provider_config.api_key", rootCmd.PersistentFlags().Lookup("api_key"))
	_ = viper.BindPFlag("ai_provider_config.temperature", rootCmd.PersistentFlags().Lookup("temperature"))
	_ = viper.BindPFlag("ai_provider_config.max_tokens", rootCmd.PersistentFlags().Lookup("max_tokens"))
	_ = viper.BindPFlag("ai_provider_config.timeout_seconds", rootCmd.PersistentFlags().Lookup("timeout_seconds"))
	_ = viper.BindPFlag("organizer.use_context", rootCmd.PersistentFlags().Lookup("use_context"))
	_ = viper.BindPFlag("organizer.consider_structure", rootCmd.PersistentFlags().Lookup("consider_structure"))
	_ = viper.BindPFlag("organizer.refine", rootCmd.PersistentFlags().Lookup("refine"))
	_ = viper.BindPFlag("organizer.stay_under_root", rootCmd.PersistentFlags().Lookup("stay_under_root"))
	_ = viper.BindPFlag("organizer.workers", rootCmd.PersistentFlags().Lookup("workers"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	// Cache configuration
	rootCmd.PersistentFlags().Bool("enable_cache", DefaultConfig.EnableCache, "Enable or disable suggestion caching for repeated runs")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")

	// AI Provider configuration
	rootCmd.PersistentFlags().String("provider", DefaultConfig.AIProviderConfig.Provider, "The name of the AI backend (e.g., 'ollama', 'openai', 'grok')")
	rootCmd.PersistentFlags().String("base_url", DefaultConfig.AIProviderConfig.BaseURL, "The base URL of the AI backend (e.g., default is 'http://localhost:11434/api').")
	rootCmd.PersistentFlags().String("model", DefaultConfig.AIProviderConfig.Model, "The name of the model used for folder suggestions, such as 'llama3.1'.")
	rootCmd.PersistentFlags().String("api_key", DefaultConfig.AIProviderConfig.ApiKey, "The API key used to authenticate with the AI backend.")
	rootCmd.PersistentFlags().Float32("temperature", 0, "Adjusts the AI model's creativity (0-1, default 0.2).")
	rootCmd.PersistentFlags().Int("max_tokens", DefaultConfig.AIProviderConfig.MaxTokens, "Maximum number of tokens the backend may generate per suggestion.")
	rootCmd.PersistentFlags().Int("timeout_seconds", DefaultConfig.AIProviderConfig.TimeoutSeconds, "Timeout for a single backend request, in seconds.")

	// Organizer configuration
	rootCmd.PersistentFlags().Bool("use_context", DefaultConfig.Organizer.UseContext, "Include the project type and sibling files in each suggestion prompt.")
	rootCmd.PersistentFlags().Bool("consider_structure", DefaultConfig.Organizer.ConsiderStructure, "Include the existing folder taxonomy in each suggestion prompt.")
	rootCmd.PersistentFlags().Bool("refine", DefaultConfig.Organizer.Refine, "Run a second refinement pass on low-confidence suggestions.")
	rootCmd.PersistentFlags().Bool("stay_under_root", DefaultConfig.Organizer.StayUnderRoot, "Force every suggested path under the scanned folder's name.")
	rootCmd.PersistentFlags().Int("workers", DefaultConfig.Organizer.Workers, "Number of concurrent suggestion workers (0 means auto).")
}

// GetConfigFileType returns the type of the configuration file based on its extension
func GetConfigFileType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "json"
	} else if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return "yaml"
	}
	return ""
}

// LoadConfigWithCache loads configuration with caching support
func LoadConfigWithCache(rootCmd *cobra.Command, cwd string) *Config {
	var configFilePath string

	// Determine config file path
	if cfgFile != "" {
		configFilePath = cfgFile
	} else {
		// Check for default config files
		yamlPath := fmt.Sprintf("%s/organai-config.yaml", cwd)
		ymlPath := fmt.Sprintf("%s/organai-config.yml", cwd)
		jsonPath := fmt.Sprintf("%s/organai-config.json", cwd)

		if _, err := os.Stat(yamlPath); err == nil {
			configFilePath = yamlPath
		} else if _, err := os.Stat(ymlPath); err == nil {
			configFilePath = ymlPath
		} else if _, err := os.Stat(jsonPath); err == nil {
			configFilePath = jsonPath
		}
	}

	// If no config file exists, return default configuration loading
	if configFilePath == "" {
		return LoadConfigs(rootCmd, cwd)
	}

	// Check file modification time
	fileInfo, err := os.Stat(configFilePath)
	if err != nil {
		return LoadConfigs(rootCmd, cwd)
	}

	// Check cache first
	cacheMutex.RLock()
	if cached, exists := configCache[configFilePath]; exists {
		if fileInfo.ModTime().Equal(cached.modTime) {
			cacheMutex.RUnlock()
			return cached.config
		}
	}
	cacheMutex.RUnlock()

	// Load configuration normally
	config := LoadConfigs(rootCmd, cwd)

	// Update cache
	cacheMutex.Lock()
	configCache[configFilePath] = &configCacheEntry{
		config:  config,
		modTime: fileInfo.ModTime(),
	}
	cacheMutex.Unlock()

	return config
}

// ClearConfigCache clears all cached configuration files
func ClearConfigCache() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	configCache = make(map[string]*configCacheEntry)
}

// InvalidateConfigCache removes a specific config file from cache
func InvalidateConfigCache(configPath string) {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	delete(configCache, configPath)
}
