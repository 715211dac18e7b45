package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/organai/organai/config"
	"github.com/organai/organai/constants/lipgloss"
	"github.com/organai/organai/providers"
	"github.com/organai/organai/providers/contracts"
)

// RootDependencies holds the wired collaborators every subcommand needs:
// the resolved configuration, the active suggestion backend, and the
// working directory the command was launched from.
type RootDependencies struct {
	Config   *config.Config
	Provider contracts.ISuggestionProvider
	Cwd      string
}

// rootCmd: organai
var rootCmd = &cobra.Command{
	Use:   "organai",
	Short: "organai is an AI-assisted file organizer for your folders.",
	Long: `organai scans a folder, asks an AI backend where each file belongs,
and moves files into the suggested sub-folders. Suggestions respect the
project type and the folder structure that already exists.`,
	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Println(config.DefaultConfig.Version)
			return
		}
		_ = cmd.Help()
	},
}

// handleRootCommand loads configuration and constructs the suggestion
// provider used by the subcommands.
func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		return nil
	}

	cfg := config.LoadConfigWithCache(cmd, cwd)

	provider, err := providers.SuggestionProviderFactory(cfg.AIProviderConfig)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return nil
	}

	return &RootDependencies{
		Config:   cfg,
		Provider: provider,
		Cwd:      cwd,
	}
}

// Execute runs the root command of the CLI.
func Execute() {
	config.InitFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}
