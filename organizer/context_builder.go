package organizer

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/organai/organai/organizer/models"
	"github.com/organai/organai/utils"
)

// maxSiblings caps the sibling-name snapshot embedded into prompts.
const maxSiblings = 10

// BuildProjectContext runs the project detector and structure analyzer over
// the scan root and assembles their combined output.
func BuildProjectContext(root string, maxDepth int) models.ProjectContext {
	projectType, guidelines := DetectProjectType(root)
	return models.ProjectContext{
		RootName:   RootName(root),
		Type:       projectType,
		Guidelines: guidelines,
		Structure:  AnalyzeStructure(root, maxDepth),
	}
}

// ScanFiles walks the tree below root and returns a read-only snapshot per
// file. Default-ignored paths and user ignore patterns are skipped; the
// snapshot (size, mtime, siblings) is taken once at scan time.
func ScanFiles(root string) ([]models.FileRecord, error) {
	patterns, err := utils.GetIgnorePatterns(root)
	if err != nil {
		return nil, err
	}

	var records []models.FileRecord
	siblingCache := make(map[string][]string)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable subtrees are skipped, not fatal.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if utils.IsDefaultIgnored(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if utils.IsIgnored(rel, patterns) {
			return nil
		}

		info, statErr := d.Info()
		if statErr != nil {
			return nil
		}

		parent := filepath.Dir(path)
		siblings, ok := siblingCache[parent]
		if !ok {
			siblings = listSiblings(parent)
			siblingCache[parent] = siblings
		}

		records = append(records, buildFileRecord(path, rel, info, siblings))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func buildFileRecord(path, rel string, info fs.FileInfo, siblings []string) models.FileRecord {
	name := info.Name()
	ext := filepath.Ext(name)

	category := CategorizeFile(name, ext, "")
	if category == defaultCategory {
		category = CategorizeFile(name, ext, readFirstLine(path))
	}

	filtered := make([]string, 0, len(siblings))
	for _, sibling := range siblings {
		if sibling != name {
			filtered = append(filtered, sibling)
		}
		if len(filtered) == maxSiblings {
			break
		}
	}

	return models.FileRecord{
		Path:         path,
		RelativePath: rel,
		Name:         name,
		Extension:    strings.ToLower(ext),
		Size:         info.Size(),
		ModTime:      info.ModTime(),
		Category:     category,
		ParentDir:    filepath.Base(filepath.Dir(path)),
		Siblings:     filtered,
		Depth:        strings.Count(rel, "/") + 1,
	}
}

func listSiblings(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}

// readFirstLine sniffs the first line of a file for content-based
// classification of extension-less files.
func readFirstLine(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 4096), 4096)
	if scanner.Scan() {
		return scanner.Text()
	}
	return ""
}
