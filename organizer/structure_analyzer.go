package organizer

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/organai/organai/organizer/models"
	"github.com/organai/organai/utils"
)

// DefaultMaxDepth bounds the structure walk; deeper folders add noise
// without changing the naming-convention vote.
const DefaultMaxDepth = 4

var (
	kebabRe  = regexp.MustCompile(`^[a-z]+(-[a-z0-9]+)+$`)
	snakeRe  = regexp.MustCompile(`^[a-z]+(_[a-z0-9]+)+$`)
	pascalRe = regexp.MustCompile(`^[A-Z][a-z0-9]+([A-Z][a-z0-9]*)+$`)
)

// folderCategoryHints maps folder-name substrings to the category the folder
// most likely hosts.
var folderCategoryHints = []struct {
	patterns []string
	category string
}{
	{[]string{"src", "source", "lib", "app"}, "code"},
	{[]string{"doc", "docs", "readme", "manual"}, "docs"},
	{[]string{"test", "tests", "spec", "unit"}, "tests"},
	{[]string{"config", "conf", "settings"}, "config"},
	{[]string{"assets", "images", "media", "static"}, "images"},
}

// AnalyzeStructure walks the tree below root up to maxDepth, collecting
// existing folder names, the dominant naming convention, and a
// category-to-folders table for prompt construction. It never mutates the
// filesystem.
func AnalyzeStructure(root string, maxDepth int) models.ProjectStructure {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	structure := models.ProjectStructure{
		Convention:      models.ConventionUnknown,
		CategoryFolders: make(map[string][]string),
	}
	conventionVotes := make(map[models.NamingConvention]int)
	seen := make(map[string]bool)

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() || path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return filepath.SkipDir
		}
		rel = filepath.ToSlash(rel)
		if utils.IsDefaultIgnored(rel) {
			return filepath.SkipDir
		}
		if strings.Count(rel, "/")+1 > maxDepth {
			return filepath.SkipDir
		}

		name := d.Name()
		if !seen[strings.ToLower(name)] {
			seen[strings.ToLower(name)] = true
			structure.FolderNames = append(structure.FolderNames, name)
		}

		if convention := classifyFolderName(name); convention != models.ConventionUnknown {
			conventionVotes[convention]++
		}

		lower := strings.ToLower(name)
		for _, hint := range folderCategoryHints {
			for _, pattern := range hint.patterns {
				if strings.Contains(lower, pattern) {
					structure.CategoryFolders[hint.category] = append(structure.CategoryFolders[hint.category], rel)
					break
				}
			}
		}

		return nil
	})

	sort.Strings(structure.FolderNames)
	structure.Convention = majorityConvention(conventionVotes)
	return structure
}

// classifyFolderName reports which naming convention a single folder name
// follows, or unknown when it matches none (single lowercase words vote for
// nothing).
func classifyFolderName(name string) models.NamingConvention {
	switch {
	case kebabRe.MatchString(name):
		return models.ConventionKebab
	case snakeRe.MatchString(name):
		return models.ConventionSnake
	case pascalRe.MatchString(name):
		return models.ConventionPascal
	default:
		return models.ConventionUnknown
	}
}

func majorityConvention(votes map[models.NamingConvention]int) models.NamingConvention {
	winner := models.ConventionUnknown
	max := 0
	for convention, count := range votes {
		if count > max {
			max = count
			winner = convention
		}
	}
	return winner
}

// HasFolder reports whether name matches an existing folder,
// case-insensitively.
func HasFolder(structure models.ProjectStructure, name string) bool {
	for _, folder := range structure.FolderNames {
		if strings.EqualFold(folder, name) {
			return true
		}
	}
	return false
}
