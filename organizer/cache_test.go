package organizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organai/organai/organizer/models"
)

func recordFixture(name string, size int64, modTime time.Time) models.FileRecord {
	return models.FileRecord{Name: name, Size: size, ModTime: modTime}
}

// The fingerprint is stable for identical metadata and changes with any part
func TestFingerprint(t *testing.T) {
	now := time.Now()

	a := Fingerprint(recordFixture("report.pdf", 1024, now))
	b := Fingerprint(recordFixture("report.pdf", 1024, now))
	assert.Equal(t, a, b)

	assert.NotEqual(t, a, Fingerprint(recordFixture("report2.pdf", 1024, now)))
	assert.NotEqual(t, a, Fingerprint(recordFixture("report.pdf", 2048, now)))
	assert.NotEqual(t, a, Fingerprint(recordFixture("report.pdf", 1024, now.Add(time.Second))))
}

// A cache hit returns the entry as stored and is counted
func TestSuggestionCache_HitAndMiss(t *testing.T) {
	cache := NewSuggestionCache()
	fingerprint := Fingerprint(recordFixture("a.md", 1, time.Now()))

	_, ok := cache.Get(fingerprint)
	assert.False(t, ok)

	cache.Put(fingerprint, models.SuggestionResult{
		Path:       "docs/notes",
		Confidence: models.ConfidenceHigh,
		Source:     models.SourceFirstPass,
	})

	result, ok := cache.Get(fingerprint)
	require.True(t, ok)
	assert.Equal(t, "docs/notes", result.Path)
	assert.Equal(t, models.ConfidenceHigh, result.Confidence)
	assert.Equal(t, models.SourceFirstPass, result.Source)

	hits, misses := cache.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

// Clear drops entries and counters
func TestSuggestionCache_Clear(t *testing.T) {
	cache := NewSuggestionCache()
	cache.Put(1, models.SuggestionResult{Path: "x"})
	_, _ = cache.Get(1)
	_, _ = cache.Get(2)

	cache.Clear()

	assert.Equal(t, 0, cache.Len())
	hits, misses := cache.Stats()
	assert.Equal(t, 0, hits)
	assert.Equal(t, 0, misses)

	_, ok := cache.Get(1)
	assert.False(t, ok)
}

// A snapshot survives a save/load cycle
func TestSuggestionCache_Snapshot(t *testing.T) {
	tempDir := t.TempDir()

	cache := NewSuggestionCache()
	cache.Put(42, models.SuggestionResult{
		Path:       "images/icons",
		Confidence: models.ConfidenceMedium,
		Source:     models.SourceFirstPass,
	})
	require.NoError(t, cache.Save(tempDir))

	restored := NewSuggestionCache()
	require.NoError(t, restored.Load(tempDir))

	result, ok := restored.Get(42)
	require.True(t, ok)
	assert.Equal(t, "images/icons", result.Path)

	// Removing the snapshot twice is fine
	require.NoError(t, RemoveSnapshot(tempDir))
	require.NoError(t, RemoveSnapshot(tempDir))
}

// Loading with no snapshot present leaves the cache empty without error
func TestSuggestionCache_LoadMissingSnapshot(t *testing.T) {
	cache := NewSuggestionCache()
	require.NoError(t, cache.Load(t.TempDir()))
	assert.Equal(t, 0, cache.Len())
}
