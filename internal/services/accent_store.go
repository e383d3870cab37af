package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DefaultAccentStoreFile is the store file name under the user's home directory.
const DefaultAccentStoreFile = ".kaya_theme.txt"

// AccentStore persists the last applied accent name as a single trimmed line.
// Callers treat every error as "no saved accent"; the store is a convenience cache.
type AccentStore struct {
	fs   afero.Fs
	path string
}

// NewAccentStore creates a store at path on fs.
func NewAccentStore(fs afero.Fs, path string) *AccentStore {
	return &AccentStore{fs: fs, path: path}
}

// DefaultAccentStorePath returns ~/.kaya_theme.txt, or a relative file name when
// the home directory is unknown.
func DefaultAccentStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultAccentStoreFile
	}
	return filepath.Join(home, DefaultAccentStoreFile)
}

// Path returns the store location.
func (s *AccentStore) Path() string {
	return s.path
}

// Load returns the saved accent name. A missing file or blank content yields
// an empty name and no error.
func (s *AccentStore) Load() (string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read accent store %s: %w", s.path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes name, trimmed, replacing previous content.
func (s *AccentStore) Save(name string) error {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create accent store directory: %w", err)
		}
	}
	if err := afero.WriteFile(s.fs, s.path, []byte(strings.TrimSpace(name)), 0644); err != nil {
		return fmt.Errorf("failed to write accent store %s: %w", s.path, err)
	}
	return nil
}

// Remove deletes the store file. Removing a missing file is not an error.
func (s *AccentStore) Remove() error {
	if err := s.fs.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove accent store %s: %w", s.path, err)
	}
	return nil
}
