package util

import (
	"errors"
	"path/filepath"
	"strings"
)

// SanitizeFileName removes path separators and quotes, rejects traversal
// patterns, and forces the given extension.
func SanitizeFileName(name, ext string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, `"`, "")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	if ext != "" && !strings.EqualFold(filepath.Ext(s), ext) {
		s += ext
	}
	return s, nil
}
