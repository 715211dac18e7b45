package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/organai/organai/config"
	"github.com/organai/organai/constants/lipgloss"
	"github.com/organai/organai/organizer"
	"github.com/organai/organai/utils"
)

// resetCacheCmd represents the reset-cache command
var resetCacheCmd = &cobra.Command{
	Use:   "reset-cache",
	Short: "Remove the cached folder suggestions",
	Long: `The 'reset-cache' command removes the suggestion snapshot stored under the
'.cache' directory and clears the in-process configuration cache. Use it when
files were reorganized outside organai or old suggestions look stale.`,
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		handleResetCacheCommand(force)
	},
}

func init() {
	resetCacheCmd.Flags().BoolP("force", "f", false, "Force cache reset without confirmation")
	rootCmd.AddCommand(resetCacheCmd)
}

func handleResetCacheCommand(force bool) {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		return
	}

	if !force {
		confirmed, err := utils.ConfirmPrompt("Are you sure you want to reset the suggestion cache?", bufio.NewReader(os.Stdin))
		if err != nil || !confirmed {
			fmt.Println(lipgloss.Yellow.Render("Cache reset cancelled."))
			return
		}
	}

	if err := organizer.RemoveSnapshot(filepath.Join(cwd, ".cache")); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error resetting cache: %v", err)))
		return
	}
	config.ClearConfigCache()
	utils.ClearIgnoreCache()

	fmt.Println(lipgloss.Green.Render("✓ Suggestion cache has been successfully reset!"))
}
