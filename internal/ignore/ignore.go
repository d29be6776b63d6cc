// Package ignore matches paths against exclusion patterns and extension
// allow-lists. Both the index and the watcher filter with it, so a path
// excluded from indexing also generates no change notifications.
package ignore

import (
	"path/filepath"
	"strings"
)

// Matches reports whether path matches any of the glob-style patterns.
// Patterns may use `**` to match across directory separators.
func Matches(patterns []string, path string) bool {
	path = filepath.ToSlash(path)

	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
			return true
		}

		if strings.Contains(pattern, "**") {
			parts := strings.Split(pattern, "**")
			if len(parts) == 2 {
				prefix := strings.TrimSuffix(parts[0], "/")
				suffix := strings.TrimPrefix(parts[1], "/")
				if (prefix == "" || path == prefix || strings.HasPrefix(path, prefix+"/")) &&
					(suffix == "" || strings.HasSuffix(path, suffix)) {
					return true
				}
			}
			continue
		}

		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
	}
	return false
}

// AllowedExtension reports whether path's extension appears in the
// allow-list. An empty allow-list permits everything.
func AllowedExtension(extensions []string, path string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range extensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}
