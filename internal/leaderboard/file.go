package leaderboard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// FileStore persists one JSON file per key under a data directory. Writes
// go through a temp file and rename so readers never observe a partial
// payload.
type FileStore struct {
	dir    string
	logger *log.Logger
}

// NewFileStore creates a store rooted at dir, creating it if needed.
func NewFileStore(dir string, logger *log.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load reads the entries stored under key. A missing file yields an empty
// board. Corrupt payloads are cleared and logged, never returned as errors.
// Entries saved before the email field existed are backfilled with the
// placeholder and the corrected collection is written back once.
func (s *FileStore) Load(key string) ([]Entry, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard %s: %w", key, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("Corrupt leaderboard payload, resetting", "key", key, "error", err)
		if clearErr := s.Clear(key); clearErr != nil {
			s.logger.Error("Failed to clear corrupt leaderboard", "key", key, "error", clearErr)
		}
		return nil, nil
	}

	migrated := false
	for i := range entries {
		if entries[i].Email == "" {
			entries[i].Email = PlaceholderEmail
			migrated = true
		}
	}
	if migrated {
		if err := s.Save(key, entries); err != nil {
			s.logger.Warn("Failed to persist migrated leaderboard", "key", key, "error", err)
		}
	}
	return entries, nil
}

// Save writes the entries atomically.
func (s *FileStore) Save(key string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode leaderboard %s: %w", key, err)
	}
	return writeFileAtomic(s.path(key), data, 0o644)
}

// Clear removes the stored value for key. Clearing a key that was never
// saved is not an error.
func (s *FileStore) Clear(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear leaderboard %s: %w", key, err)
	}
	return nil
}

// writeFileAtomic writes via a temp file in the same directory followed by a
// rename, so a crash mid-write leaves either the old file or the new one.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	tmp = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
