package navigation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Location stores the raw location token, e.g. "#about"
type Location interface {
	Read() (string, error)
	Write(token string) error
}

// MemoryLocation keeps the token in memory
type MemoryLocation struct {
	token string
}

// NewMemoryLocation creates a MemoryLocation holding token
func NewMemoryLocation(token string) *MemoryLocation {
	return &MemoryLocation{token: token}
}

func (m *MemoryLocation) Read() (string, error) { return m.token, nil }

func (m *MemoryLocation) Write(token string) error {
	m.token = token
	return nil
}

// FileLocation persists the token in a file so the last view survives restarts
type FileLocation struct {
	Path string
}

// Read returns the stored token, or "" when the file does not exist
func (f FileLocation) Read() (string, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read location: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Write stores token, creating the parent directory if needed
func (f FileLocation) Write(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create location directory: %w", err)
	}
	return os.WriteFile(f.Path, []byte(token+"\n"), 0o600)
}
