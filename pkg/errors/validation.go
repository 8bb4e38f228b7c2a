package errors

import (
	"strings"
	"unicode"
)

// ValidateSnapshotName validates a snapshot directory name.
// Snapshot names become a single path element under the output base
// directory, so they must not escape it.
//
// Validation rules:
//   - Name cannot be empty, "." or ".."
//   - No control characters or null bytes
//   - No path separators (forward or backslash)
//   - Maximum length of 255 characters
func ValidateSnapshotName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "snapshot name cannot be empty")
	}

	if len(name) > 255 {
		return New(ErrCodeInvalidPath, "snapshot name too long (max 255 characters)")
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidPath, "snapshot name cannot be %q", name)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "snapshot name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "snapshot name cannot contain path separators: %q", name)
	}

	return nil
}

// ValidateArtifactDir validates the name of an artifact subdirectory
// (e.g. "configs"). Nested relative paths are allowed, absolute paths and
// parent references are not.
func ValidateArtifactDir(dir string) error {
	if dir == "" {
		return New(ErrCodeInvalidPath, "artifact directory cannot be empty")
	}

	for _, r := range dir {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "artifact directory contains invalid characters")
		}
	}

	if strings.HasPrefix(dir, "/") {
		return New(ErrCodeInvalidPath, "artifact directory must be relative: %q", dir)
	}

	for _, part := range strings.Split(dir, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "artifact directory cannot contain path traversal sequences (..): %q", dir)
		}
	}

	if strings.Contains(dir, "\\") {
		return New(ErrCodeInvalidPath, "artifact directory cannot contain backslashes")
	}

	return nil
}
