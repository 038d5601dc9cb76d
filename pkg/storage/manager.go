package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Manager handles file writes for one album destination directory.
type Manager struct {
	dir      string
	existing []string
}

// NewManager creates the destination directory if needed and records its
// existing entries. Creation is idempotent: re-crawling an album reuses
// the directory.
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	m := &Manager{dir: dir}
	if err := m.scanExisting(); err != nil {
		return nil, fmt.Errorf("failed to scan destination directory: %w", err)
	}

	return m, nil
}

// scanExisting records the base names (extension stripped) of the files
// already present, used to seed slug collision resolution.
func (m *Manager) scanExisting() error {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		name = strings.TrimSuffix(name, filepath.Ext(name))
		m.existing = append(m.existing, name)
	}

	return nil
}

// Dir returns the destination directory path.
func (m *Manager) Dir() string {
	return m.dir
}

// Existing returns the base names present in the directory when the
// manager was created.
func (m *Manager) Existing() []string {
	return m.existing
}

// HasBase reports whether a file with this base name, under any
// extension, was already present when the manager was created.
func (m *Manager) HasBase(base string) bool {
	for _, name := range m.existing {
		if name == base {
			return true
		}
	}
	return false
}

// SaveStream streams the reader's bytes into the named file. The data
// goes to a temporary file first and is renamed into place, so a killed
// run never leaves a truncated file under its final name.
func (m *Manager) SaveStream(r io.Reader, name string) error {
	filename := filepath.Join(m.dir, name)

	tempFile := filename + ".tmp"
	out, err := os.Create(tempFile)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	_, err = io.Copy(out, r)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to save media data: %w", err)
	}

	if closeErr != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to close file: %w", closeErr)
	}

	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// WriteTextFile writes a small text file into the destination directory.
func (m *Manager) WriteTextFile(name, content string) error {
	filename := filepath.Join(m.dir, name)
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
