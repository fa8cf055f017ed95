package fsutils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// CreateDir creates a directory (and parents) if it doesn't exist.
func CreateDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// FileExists checks if a path exists and is a regular file (not a directory).
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		// Missing or unreadable; either way not a usable file.
		return false
	}
	return !info.IsDir()
}

// WriteFileAtomic writes content to a temporary file in the same directory
// and renames it over path, so readers see either the old or the new content.
func WriteFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %q: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file %q: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp file %q: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file %q: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions on %q: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move %q to %q: %w", tmpPath, path, err)
	}
	return nil
}

// nonAlphanumericRegex matches any character that is NOT a lowercase letter, number, underscore, hyphen or period.
var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9_.-]+`)
var collapseUnderscoreRegex = regexp.MustCompile(`_+`)

// SanitizeFilename converts a string into a safe format suitable for filenames.
// It converts to lowercase, replaces spaces and disallowed characters with underscores,
// and collapses consecutive underscores. Leading periods are replaced so the
// result can never name a hidden file or a parent directory.
func SanitizeFilename(name string) string {
	trimmed := strings.TrimSpace(strings.ToLower(name))
	noSpaces := strings.ReplaceAll(trimmed, " ", "_")
	sanitized := nonAlphanumericRegex.ReplaceAllString(noSpaces, "_")
	if strings.HasPrefix(sanitized, ".") {
		sanitized = "_" + strings.TrimLeft(sanitized, ".")
	}
	collapsed := collapseUnderscoreRegex.ReplaceAllString(sanitized, "_")

	if collapsed == "" && name != "" {
		return "_"
	}
	return collapsed
}
