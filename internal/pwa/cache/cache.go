package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Entry records the content hash of an artifact the last time it was written.
type Entry struct {
	ContentHash string `json:"contentHash"`
	Timestamp   string `json:"timestamp"`
}

// Hash returns the hex SHA-256 of content.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Read returns the cached entry for name, or nil if the cache file doesn't
// exist or is invalid.
func Read(cacheDir, name string) *Entry {
	if cacheDir == "" {
		return nil
	}
	data, err := os.ReadFile(entryPath(cacheDir, name))
	if err != nil {
		return nil
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil || entry.ContentHash == "" {
		return nil
	}
	return &entry
}

// Write records content's hash for name.
func Write(cacheDir, name string, content []byte) error {
	if cacheDir == "" {
		return nil
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return fmt.Errorf("creating cache dir %s: %w", cacheDir, err)
	}

	entry := Entry{
		ContentHash: Hash(content),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(entryPath(cacheDir, name), data, 0644); err != nil {
		return fmt.Errorf("writing cache entry for %s: %w", name, err)
	}
	return nil
}

// Unchanged reports whether content matches the cached hash for name.
func Unchanged(cacheDir, name string, content []byte) bool {
	entry := Read(cacheDir, name)
	return entry != nil && entry.ContentHash == Hash(content)
}

func entryPath(cacheDir, name string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	return filepath.Join(cacheDir, safe+".json")
}
