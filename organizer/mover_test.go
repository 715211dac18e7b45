package organizer

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organai/organai/organizer/models"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// A simple move creates the destination tree and relocates the file
func TestMover_Move(t *testing.T) {
	tempDir := t.TempDir()
	source := filepath.Join(tempDir, "report.pdf")
	writeFile(t, source, "content")

	mover := NewMover(tempDir, false)
	result := mover.Move(source, "docs/reports")

	require.NoError(t, result.Err)
	assert.Equal(t, filepath.Join(tempDir, "docs", "reports", "report.pdf"), result.Target)
	assert.FileExists(t, result.Target)
	assert.NoFileExists(t, source)
}

// A taken name gets an incrementing suffix before the extension
func TestMover_ConflictSuffix(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, "docs", "report.pdf"), "old")
	writeFile(t, filepath.Join(tempDir, "docs", "report_1.pdf"), "older")

	source := filepath.Join(tempDir, "report.pdf")
	writeFile(t, source, "new")

	mover := NewMover(tempDir, false)
	result := mover.Move(source, "docs")

	require.NoError(t, result.Err)
	assert.Equal(t, filepath.Join(tempDir, "docs", "report_2.pdf"), result.Target)

	// The existing files are untouched
	old, err := os.ReadFile(filepath.Join(tempDir, "docs", "report.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(old))
}

// Extension-less names are suffixed at the end
func TestMover_ConflictSuffixNoExtension(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, "misc", "LICENSE"), "a")

	source := filepath.Join(tempDir, "LICENSE")
	writeFile(t, source, "b")

	mover := NewMover(tempDir, false)
	result := mover.Move(source, "misc")

	require.NoError(t, result.Err)
	assert.Equal(t, filepath.Join(tempDir, "misc", "LICENSE_1"), result.Target)
}

// Dry run plans the target but leaves the filesystem untouched
func TestMover_DryRun(t *testing.T) {
	tempDir := t.TempDir()
	source := filepath.Join(tempDir, "song.mp3")
	writeFile(t, source, "audio")

	mover := NewMover(tempDir, true)
	result := mover.Move(source, "audio/new")

	require.NoError(t, result.Err)
	assert.Equal(t, filepath.Join(tempDir, "audio", "new", "song.mp3"), result.Target)
	assert.FileExists(t, source)
	assert.NoFileExists(t, result.Target)

	// Planning must not create the destination tree either
	assert.NoDirExists(t, filepath.Join(tempDir, "audio"))
}

// Concurrent moves of same-named files into one folder never clobber each other
func TestMover_ConcurrentSameName(t *testing.T) {
	tempDir := t.TempDir()

	const n = 8
	sources := make([]string, n)
	for i := range sources {
		source := filepath.Join(tempDir, "in", string(rune('a'+i)), "data.csv")
		writeFile(t, source, "x")
		sources[i] = source
	}

	mover := NewMover(tempDir, false)
	results := make([]models.MoveResult, n)

	var wg sync.WaitGroup
	for i, source := range sources {
		i, source := i, source
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = mover.Move(source, "data")
		}()
	}
	wg.Wait()

	targets := make(map[string]bool)
	for _, result := range results {
		require.NoError(t, result.Err)
		assert.False(t, targets[result.Target], "duplicate target %s", result.Target)
		targets[result.Target] = true
		assert.FileExists(t, result.Target)
	}
	assert.Len(t, targets, n)
}
