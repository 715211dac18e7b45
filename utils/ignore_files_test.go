package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A missing ignore file yields an empty pattern list, not an error
func TestGetIgnorePatterns_NoFile(t *testing.T) {
	patterns, err := GetIgnorePatterns(t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, patterns)
}

// Blank lines and comments are dropped while parsing
func TestGetIgnorePatterns_ParsesFile(t *testing.T) {
	tempDir := t.TempDir()
	content := "# build output\n*.log\n\ntmp/\n"
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, ".organai-ignore"), []byte(content), 0644))
	t.Cleanup(ClearIgnoreCache)

	patterns, err := GetIgnorePatterns(tempDir)

	require.NoError(t, err)
	assert.Equal(t, []string{"*.log", "tmp/"}, patterns)
}

func TestIsIgnored(t *testing.T) {
	patterns := []string{"*.log", "tmp/"}

	assert.True(t, IsIgnored("debug.log", patterns))
	assert.True(t, IsIgnored("tmp/scratch.txt", patterns))
	assert.False(t, IsIgnored("notes.md", patterns))
}

func TestIsDefaultIgnored(t *testing.T) {
	assert.True(t, IsDefaultIgnored(".git/HEAD"))
	assert.True(t, IsDefaultIgnored("node_modules/react/index.js"))
	assert.True(t, IsDefaultIgnored("build/cache.tmp"))
	assert.True(t, IsDefaultIgnored("organai-config.yaml"))
	assert.True(t, IsDefaultIgnored(".organai-ignore"))
	assert.True(t, IsDefaultIgnored(".DS_Store"))

	assert.False(t, IsDefaultIgnored("src/main.go"))
	assert.False(t, IsDefaultIgnored("docs/readme.md"))

	// Only the .git directory itself is skipped, not git dotfiles
	assert.False(t, IsDefaultIgnored(".gitignore"))
	assert.False(t, IsDefaultIgnored(".gitattributes"))
	assert.False(t, IsDefaultIgnored(".gitmodules"))
}
