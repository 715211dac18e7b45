package organizer

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/organai/organai/organizer/models"
)

const cacheSnapshotName = "organai-suggestions.gob"

// Fingerprint derives a stable cache key from a file's name, size, and
// modification time. Content is never read; a touched or resized file
// simply misses the cache.
func Fingerprint(record models.FileRecord) uint64 {
	key := record.Name + "|" + strconv.FormatInt(record.Size, 10) + "|" +
		strconv.FormatInt(record.ModTime.UnixNano(), 10)
	return xxh3.HashString(key)
}

// SuggestionCache memoizes validated suggestions per file fingerprint for
// the lifetime of a session, with an optional gob snapshot on disk.
type SuggestionCache struct {
	mu      sync.RWMutex
	entries map[uint64]models.SuggestionResult
	hits    int
	misses  int
}

func NewSuggestionCache() *SuggestionCache {
	return &SuggestionCache{entries: make(map[uint64]models.SuggestionResult)}
}

// Get returns the cached suggestion for a fingerprint, exactly as stored.
// Callers decide how to re-label a hit; the entry keeps its original source
// so a cached fallback is still recognizable as one.
func (c *SuggestionCache) Get(fingerprint uint64) (models.SuggestionResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, ok := c.entries[fingerprint]
	if !ok {
		c.misses++
		return models.SuggestionResult{}, false
	}
	c.hits++
	return result, true
}

func (c *SuggestionCache) Put(fingerprint uint64, result models.SuggestionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fingerprint] = result
}

// Stats returns hit and miss counters accumulated since creation or the
// last Clear.
func (c *SuggestionCache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

func (c *SuggestionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops all entries and resets the counters.
func (c *SuggestionCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]models.SuggestionResult)
	c.hits = 0
	c.misses = 0
}

// Save writes a gob snapshot of the entries into dir.
func (c *SuggestionCache) Save(dir string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	file, err := os.Create(filepath.Join(dir, cacheSnapshotName))
	if err != nil {
		return fmt.Errorf("failed to create cache snapshot: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache snapshot: %w", err)
	}
	return nil
}

// Load replaces the entries with a previously saved snapshot from dir. A
// missing snapshot is not an error; the cache simply starts empty.
func (c *SuggestionCache) Load(dir string) error {
	file, err := os.Open(filepath.Join(dir, cacheSnapshotName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open cache snapshot: %w", err)
	}
	defer file.Close()

	entries := make(map[uint64]models.SuggestionResult)
	if err := gob.NewDecoder(file).Decode(&entries); err != nil {
		return fmt.Errorf("failed to decode cache snapshot: %w", err)
	}

	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()
	return nil
}

// RemoveSnapshot deletes the on-disk snapshot in dir, if any.
func RemoveSnapshot(dir string) error {
	err := os.Remove(filepath.Join(dir, cacheSnapshotName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache snapshot: %w", err)
	}
	return nil
}
