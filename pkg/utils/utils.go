package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SanitizeFilename reduces name to a bare file name safe to join onto a
// directory.
func SanitizeFilename(name string) string {
	safeName := filepath.Base(name)
	if safeName == "." || safeName == "/" || strings.TrimSpace(safeName) == "" {
		return "label"
	}
	return safeName
}

// UniquePath returns dir/name, or dir/<stem>-N<ext> for the first N that does
// not exist yet. Two labels decoded within the same second share a name.
func UniquePath(dir, name string) string {
	name = SanitizeFilename(name)
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		path = filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, i, ext))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
	}
}

// WriteFile writes data to a fresh path for name inside dir, creating dir.
func WriteFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := UniquePath(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// ConfigDir returns ~/.config/labeldrop, creating it if needed.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "labeldrop")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
