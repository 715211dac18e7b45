package organizer

import (
	"fmt"
	"strings"

	"github.com/organai/organai/organizer/models"
)

// PromptOptions carries the configuration toggles that shape the rendered
// prompt.
type PromptOptions struct {
	Provider          string
	UseContext        bool
	ConsiderStructure bool
}

// maxTaxonomyFolders caps the existing-structure sample embedded in prompts.
const maxTaxonomyFolders = 12

// BuildSuggestionPrompt renders the first-pass prompt for one file. The body
// is backend-neutral; optimizeForBackend applies the local vs cloud phrasing.
func BuildSuggestionPrompt(record models.FileRecord, project models.ProjectContext, opts PromptOptions) string {
	var parts []string

	parts = append(parts,
		"You are an expert file organizer. Analyze the file and suggest the best folder path for organization.",
		"",
		fmt.Sprintf("FILE: %s", record.Name),
		fmt.Sprintf("EXTENSION: %s", record.Extension),
		fmt.Sprintf("CURRENT LOCATION: %s", record.ParentDir),
		fmt.Sprintf("CATEGORY: %s", record.Category),
		fmt.Sprintf("PROJECT TYPE: %s", project.Type),
	)

	if opts.UseContext {
		if len(record.Siblings) > 0 {
			limit := len(record.Siblings)
			if limit > 5 {
				limit = 5
			}
			parts = append(parts, fmt.Sprintf("SIBLING FILES: %s", strings.Join(record.Siblings[:limit], ", ")))
		}
		if project.Structure.Convention != models.ConventionUnknown {
			parts = append(parts, fmt.Sprintf("FOLDER PATTERN: %s", project.Structure.Convention))
		}
	}

	if opts.ConsiderStructure {
		if taxonomy := renderTaxonomy(project.Structure); taxonomy != "" {
			parts = append(parts, "EXISTING STRUCTURE:", taxonomy)
		}
	}

	if project.Guidelines != "" {
		parts = append(parts, "", "PROJECT GUIDELINES:", project.Guidelines)
	}

	parts = append(parts,
		"",
		"RESPONSE FORMAT:",
		"- Return ONLY the folder path (e.g., 'src/components' or 'docs/api')",
		"- Use forward slashes (/)",
		"- Keep paths concise (1-3 levels)",
		"- Prefer EXISTING folders; do not invent new top-level names when a close match exists",
		"- If uncertain, use 'Uncategorized'",
	)

	return optimizeForBackend(opts.Provider, strings.Join(parts, "\n"))
}

// BuildRefinePrompt renders the second-opinion prompt carrying the first-pass
// candidate.
func BuildRefinePrompt(record models.FileRecord, project models.ProjectContext, candidate string, opts PromptOptions) string {
	var parts []string

	parts = append(parts,
		"You are refining a file organization suggestion. Improve it ONLY if it conflicts with the existing structure; otherwise return it unchanged.",
		"",
		fmt.Sprintf("FILE: %s", record.Name),
		fmt.Sprintf("CURRENT SUGGESTION: %s", candidate),
		fmt.Sprintf("CONTEXT: %s file in %s project", record.Category, project.Type),
	)

	if opts.ConsiderStructure {
		if taxonomy := renderTaxonomy(project.Structure); taxonomy != "" {
			parts = append(parts, "EXISTING STRUCTURE:", taxonomy)
		}
	}

	parts = append(parts,
		"",
		"RULES:",
		"- Only improve if the suggestion can be made more specific or logical",
		"- Prefer existing folder names",
		"- Max depth 3",
		"- Return ONLY the improved path or the original if no improvement needed",
	)

	return optimizeForBackend(opts.Provider, strings.Join(parts, "\n"))
}

// renderTaxonomy produces a short sample of existing folders grouped by the
// category hints the structure analyzer collected.
func renderTaxonomy(structure models.ProjectStructure) string {
	if len(structure.FolderNames) == 0 {
		return "(no subfolders yet)"
	}

	limit := len(structure.FolderNames)
	if limit > maxTaxonomyFolders {
		limit = maxTaxonomyFolders
	}
	lines := make([]string, 0, limit)
	for _, name := range structure.FolderNames[:limit] {
		lines = append(lines, fmt.Sprintf("- %s/", name))
	}
	return strings.Join(lines, "\n")
}

// optimizeForBackend applies per-backend phrasing: local models respond best
// to a terse direct instruction, cloud models to an explicit closing marker.
func optimizeForBackend(provider string, base string) string {
	switch provider {
	case "ollama":
		return base + "\n\nRespond with only the folder path:"
	case "openai":
		return base + "\n\nFolder path:"
	case "grok":
		return base + "\n\nImportant: Respond with ONLY the folder path. Nothing else.\n\nFolder path:"
	default:
		return base
	}
}
