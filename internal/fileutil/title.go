package fileutil

import (
	"path/filepath"
	"strings"
)

// TitleFromPath derives a human-readable title from a file path or name.
// The extension is dropped and underscores and dashes become spaces.
func TitleFromPath(path string) string {
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return strings.TrimSpace(name)
}
