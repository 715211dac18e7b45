package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/organai/organai/constants/lipgloss"
	"github.com/organai/organai/organizer"
	"github.com/organai/organai/organizer/models"
	"github.com/organai/organai/providers/ollama"
)

// scanCmd: organai scan
var scanCmd = &cobra.Command{
	Use:   "scan [folder]",
	Short: "Scan a folder and preview AI folder suggestions without moving anything.",
	Long: `The 'scan' subcommand walks the given folder, asks the configured AI backend
for a destination for every file, and prints the suggestions. No file is moved;
use 'organize' to apply the suggestions.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			return
		}
		exportPath, _ := cmd.Flags().GetString("export")
		handleScanCommand(rootDependencies, args[0], exportPath)
	},
}

func init() {
	scanCmd.Flags().String("export", "", "Write the scan results to a CSV file at the given path")
	rootCmd.AddCommand(scanCmd)
}

func handleScanCommand(rootDependencies *RootDependencies, folder string, exportPath string) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root, err := filepath.Abs(folder)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}

	fmt.Println(lipgloss.BoxStyle.Render(fmt.Sprintf("organai scan  %s  [%s/%s]",
		root, rootDependencies.Config.AIProviderConfig.Provider, rootDependencies.Config.AIProviderConfig.Model)))

	if !checkBackend(ctx, rootDependencies) {
		return
	}

	outcomes := runSuggestions(ctx, rootDependencies, root)
	if outcomes == nil {
		return
	}

	renderOutcomes(outcomes)
	renderSummary(outcomes)

	if exportPath != "" {
		if err := organizer.ExportCSV(exportPath, outcomes); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
			return
		}
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ Results exported to %s", exportPath)))
	}
}

// runSuggestions scans the root and resolves a suggestion for every file.
// Shared by scan and organize.
func runSuggestions(ctx context.Context, rootDependencies *RootDependencies, root string) []models.FileOutcome {
	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true)

	spinnerScan, _ := spinner.Start("Scanning folder...")

	project := organizer.BuildProjectContext(root, rootDependencies.Config.Organizer.MaxDepth)
	records, err := organizer.ScanFiles(root)

	spinnerScan.Stop()
	fmt.Print("\r")

	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return nil
	}
	if len(records) == 0 {
		fmt.Println(lipgloss.Yellow.Render("No files to organize."))
		return nil
	}

	fmt.Println(lipgloss.Info.Render(fmt.Sprintf("Found %d files in %s project '%s'",
		len(records), project.Type, project.RootName)))

	session := organizer.NewSession(rootDependencies.Provider, project, organizer.SessionOptions{
		Provider:          rootDependencies.Config.AIProviderConfig.Provider,
		UseContext:        rootDependencies.Config.Organizer.UseContext,
		ConsiderStructure: rootDependencies.Config.Organizer.ConsiderStructure,
		Refine:            rootDependencies.Config.Organizer.Refine,
		StayUnderRoot:     rootDependencies.Config.Organizer.StayUnderRoot,
		EnableCache:       rootDependencies.Config.EnableCache,
		Workers:           rootDependencies.Config.Organizer.Workers,
		PerFileTimeout:    time.Duration(rootDependencies.Config.AIProviderConfig.TimeoutSeconds) * time.Second,
	})

	cacheDir := filepath.Join(rootDependencies.Cwd, ".cache")
	if rootDependencies.Config.EnableCache {
		if err := session.Cache().Load(cacheDir); err != nil {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: could not load suggestion cache: %v", err)))
		}
	}

	spinnerSuggest, _ := spinner.Start(fmt.Sprintf("Asking %s for suggestions...",
		rootDependencies.Config.AIProviderConfig.Provider))

	outcomes := session.Suggest(ctx, records)

	spinnerSuggest.Stop()
	fmt.Print("\r")

	if rootDependencies.Config.EnableCache {
		if err := session.Cache().Save(cacheDir); err != nil {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: could not save suggestion cache: %v", err)))
		}
	}

	return outcomes
}

// checkBackend verifies the backend is reachable before a long run. Only
// ollama exposes a model listing endpoint; other backends are checked by
// the first real request.
func checkBackend(ctx context.Context, rootDependencies *RootDependencies) bool {
	if rootDependencies.Config.AIProviderConfig.Provider != "ollama" {
		return true
	}

	namesCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	names, err := ollama.ListModels(namesCtx, rootDependencies.Config.AIProviderConfig.BaseURL)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Cannot reach ollama at %s: %v",
			rootDependencies.Config.AIProviderConfig.BaseURL, err)))
		return false
	}

	model := rootDependencies.Config.AIProviderConfig.Model
	for _, name := range names {
		if name == model {
			return true
		}
	}
	fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: model '%s' not found in local ollama models %v", model, names)))
	return true
}

func renderOutcomes(outcomes []models.FileOutcome) {
	tableData := pterm.TableData{{"File", "Suggested Folder", "Confidence", "Source"}}
	for _, outcome := range outcomes {
		tableData = append(tableData, []string{
			outcome.Record.RelativePath,
			outcome.Suggestion.Path,
			string(outcome.Suggestion.Confidence),
			string(outcome.Suggestion.Source),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

func renderSummary(outcomes []models.FileOutcome) {
	var accepted, fallbacks, failures, cached int
	for _, outcome := range outcomes {
		if outcome.Suggestion.Source == models.SourceCached {
			cached++
		}
		switch {
		case outcome.Err != nil:
			failures++
		case outcome.Suggestion.Source == models.SourceFallback:
			fallbacks++
		default:
			accepted++
		}
	}

	if cached > 0 {
		fmt.Println(lipgloss.Gray.Render(fmt.Sprintf("%d suggestions served from cache", cached)))
	}

	summary := fmt.Sprintf("%d suggested, %d fallback, %d failed", accepted, fallbacks, failures)
	if failures > 0 {
		fmt.Println(lipgloss.Yellow.Render(summary))
		return
	}
	fmt.Println(lipgloss.Green.Render(summary))
}
