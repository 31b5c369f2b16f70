package errors

import (
	"strings"
	"unicode"
)

// ValidateOutputName validates the base name used for the Lottie JSON file.
// It must be a plain file name: no directories, no control characters and no
// hidden files.
func ValidateOutputName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "output name cannot be empty")
	}

	if len(name) > 255 {
		return New(ErrCodeInvalidConfig, "output name too long (max 255 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "output name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidConfig, "output name cannot contain path separators")
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidConfig, "output name cannot be a hidden file")
	}

	return nil
}

// ValidatePath validates a keyframe or directory path from a build configuration.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
