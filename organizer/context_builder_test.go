package organizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organai/organai/organizer/models"
)

// Scanning collects one record per file with metadata and category
func TestScanFiles_Records(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, "main.py"), "print('hi')")
	writeFile(t, filepath.Join(tempDir, "docs", "readme.md"), "# readme")

	records, err := ScanFiles(tempDir)
	require.NoError(t, err)
	require.Len(t, records, 2)

	byName := make(map[string]models.FileRecord)
	for _, record := range records {
		byName[record.Name] = record
	}

	main := byName["main.py"]
	assert.Equal(t, "code", main.Category)
	assert.Equal(t, ".py", main.Extension)
	assert.Equal(t, "main.py", main.RelativePath)
	assert.Equal(t, 1, main.Depth)
	assert.Equal(t, int64(len("print('hi')")), main.Size)
	assert.False(t, main.ModTime.IsZero())

	readme := byName["readme.md"]
	assert.Equal(t, "docs", readme.Category)
	assert.Equal(t, "docs/readme.md", readme.RelativePath)
	assert.Equal(t, 2, readme.Depth)
	assert.Equal(t, "docs", readme.ParentDir)
}

// Default-ignored folders and user patterns are skipped
func TestScanFiles_Ignores(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, "keep.md"), "x")
	writeFile(t, filepath.Join(tempDir, "node_modules", "react.js"), "x")
	writeFile(t, filepath.Join(tempDir, ".git", "HEAD"), "x")
	writeFile(t, filepath.Join(tempDir, "skip.log"), "x")
	writeFile(t, filepath.Join(tempDir, ".organai-ignore"), "*.log\n")

	records, err := ScanFiles(tempDir)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "keep.md", records[0].Name)
}

// Siblings exclude the file itself and are capped
func TestScanFiles_Siblings(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, "a.txt"), "x")
	writeFile(t, filepath.Join(tempDir, "b.txt"), "x")
	writeFile(t, filepath.Join(tempDir, "c.txt"), "x")

	records, err := ScanFiles(tempDir)
	require.NoError(t, err)

	for _, record := range records {
		assert.NotContains(t, record.Siblings, record.Name)
		assert.Len(t, record.Siblings, 2)
	}
}

// Git dotfiles are scanned and classified, only the .git directory is skipped
func TestScanFiles_GitDotfiles(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, ".gitignore"), "*.log\n")
	writeFile(t, filepath.Join(tempDir, ".git", "HEAD"), "ref: refs/heads/main")

	records, err := ScanFiles(tempDir)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, ".gitignore", records[0].Name)
	assert.Equal(t, "git", records[0].Category)
}

// Extension-less shell scripts classify via the shebang sniff
func TestScanFiles_ContentSniff(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, "deploy"), "#!/bin/bash\necho hi\n")

	records, err := ScanFiles(tempDir)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "scripts", records[0].Category)
}

// The assembled context combines detector and analyzer output
func TestBuildProjectContext(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, "go.mod"), "module example.com/app")
	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "internal"), 0755))

	project := BuildProjectContext(tempDir, 0)

	assert.Equal(t, filepath.Base(tempDir), project.RootName)
	assert.Equal(t, "golang", project.Type)
	assert.NotEmpty(t, project.Guidelines)
	assert.Contains(t, project.Structure.FolderNames, "internal")
}
