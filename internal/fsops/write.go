package fsops

import (
	"os"
	"path/filepath"
)

// WriteFile writes content to path, creating parent directories as needed.
// Existing files keep their permissions.
func WriteFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
