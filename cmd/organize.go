package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/organai/organai/constants/lipgloss"
	"github.com/organai/organai/organizer"
	"github.com/organai/organai/utils"
)

// organizeCmd: organai organize
var organizeCmd = &cobra.Command{
	Use:   "organize [folder]",
	Short: "Scan a folder and move files into AI-suggested sub-folders.",
	Long: `The 'organize' subcommand scans the given folder like 'scan', shows the
suggestions, and after confirmation moves each file into its suggested
sub-folder. Existing files are never overwritten; conflicting names get a
numeric suffix.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			return
		}
		yes, _ := cmd.Flags().GetBool("yes")
		dryRun, _ := cmd.Flags().GetBool("dry_run")
		handleOrganizeCommand(rootDependencies, args[0], yes, dryRun)
	},
}

func init() {
	organizeCmd.Flags().BoolP("yes", "y", false, "Apply moves without asking for confirmation")
	organizeCmd.Flags().Bool("dry_run", false, "Plan target names but do not move any file")
	rootCmd.AddCommand(organizeCmd)
}

func handleOrganizeCommand(rootDependencies *RootDependencies, folder string, yes bool, dryRun bool) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root, err := filepath.Abs(folder)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}

	if !checkBackend(ctx, rootDependencies) {
		return
	}

	outcomes := runSuggestions(ctx, rootDependencies, root)
	if outcomes == nil {
		return
	}

	renderOutcomes(outcomes)

	if !yes {
		confirmed, err := utils.ConfirmPrompt(
			fmt.Sprintf("Move %d files into the suggested folders?", len(outcomes)),
			bufio.NewReader(os.Stdin))
		if err != nil || !confirmed {
			fmt.Println(lipgloss.Yellow.Render("Organize cancelled."))
			return
		}
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true)

	spinnerMove, _ := spinner.Start("Moving files...")

	results := organizer.ApplyMoves(root, outcomes, rootDependencies.Config.Organizer.Workers, dryRun)

	spinnerMove.Stop()
	fmt.Print("\r")

	var moved, failed int
	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Failed to move %s: %v", result.Source, result.Err)))
			continue
		}
		moved++
	}

	if dryRun {
		fmt.Println(lipgloss.Info.Render(fmt.Sprintf("Dry run: %d files would be moved, %d would fail", moved, failed)))
		return
	}
	if failed > 0 {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Moved %d files, %d failed", moved, failed)))
		return
	}
	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ Moved %d files", moved)))
}
