package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ignoreCacheEntry holds cached ignore patterns with metadata
type ignoreCacheEntry struct {
	patterns []string
	modTime  time.Time
}

var (
	ignoreCache = make(map[string]*ignoreCacheEntry)
	cacheMutex  sync.RWMutex
)

// GetIgnorePatterns reads and returns the patterns from the .organai-ignore
// file in the scan root. If the file does not exist, it returns an empty
// pattern list. Parsed patterns are cached per file and invalidated on
// modification.
func GetIgnorePatterns(root string) ([]string, error) {
	ignorePath := filepath.Join(root, ".organai-ignore")

	fileInfo, err := os.Stat(ignorePath)
	if os.IsNotExist(err) {
		return []string{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("error checking .organai-ignore: %w", err)
	}

	cacheMutex.RLock()
	if cached, exists := ignoreCache[ignorePath]; exists {
		if fileInfo.ModTime().Equal(cached.modTime) {
			cacheMutex.RUnlock()
			return cached.patterns, nil
		}
	}
	cacheMutex.RUnlock()

	patterns, err := readIgnoreFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .organai-ignore: %w", err)
	}

	cacheMutex.Lock()
	ignoreCache[ignorePath] = &ignoreCacheEntry{
		patterns: patterns,
		modTime:  fileInfo.ModTime(),
	}
	cacheMutex.Unlock()

	return patterns, nil
}

// defaultIgnoredNames are path components skipped regardless of user
// patterns: VCS metadata, IDE state, build output, and macOS noise. Matched
// exactly so dotfiles like .gitignore still flow into the scan.
var defaultIgnoredNames = map[string]bool{
	"organai-config.yml":  true,
	"organai-config.yaml": true,
	"organai-config.json": true,
	".organai-ignore":     true,
	".git":                true,
	".svn":                true,
	".idea":               true,
	".vscode":             true,
	".cache":              true,
	"node_modules":        true,
	"__pycache__":         true,
	".DS_Store":           true,
}

var defaultIgnoredSuffixes = []string{".tmp", ".bak"}

// IsDefaultIgnored reports whether any component of a relative path is on
// the built-in skip list.
func IsDefaultIgnored(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if defaultIgnoredNames[part] {
			return true
		}
		if strings.HasPrefix(part, "._") {
			return true
		}
		for _, suffix := range defaultIgnoredSuffixes {
			if strings.HasSuffix(strings.ToLower(part), suffix) {
				return true
			}
		}
	}
	return false
}

func readIgnoreFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	var patterns []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, line)
		}
	}
	return patterns, nil
}

// IsIgnored checks if a relative path matches any of the user patterns.
func IsIgnored(path string, patterns []string) bool {
	for _, pattern := range patterns {
		match, _ := filepath.Match(pattern, path)
		if match {
			return true
		}
		if strings.HasSuffix(pattern, "/") && strings.HasPrefix(path, pattern) {
			return true
		}
	}
	return false
}

// ClearIgnoreCache clears all cached ignore patterns.
func ClearIgnoreCache() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	ignoreCache = make(map[string]*ignoreCacheEntry)
}
