// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	stderrors "errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// ErrInvalidDocument is wrapped by every error FormatError builds from CUE errors.
var ErrInvalidDocument = stderrors.New("invalid document")

// FormatError formats a CUE error with JSON path prefixes for clear error messages.
//
// Error format: <file-path>: <json-path>: <message>
//
// Examples:
//   - .travis.yml: env[1]: conflicting values "A=1" and int
//   - config.cue: script.validate: conflicting values true and "yes"
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	// errors.Errors promotes plain errors to a one-element list.
	var cueErr errors.Error
	if !stderrors.As(err, &cueErr) {
		return fmt.Errorf("%s: %w", filePath, err)
	}
	cueErrors := errors.Errors(err)

	var lines []string
	for _, e := range cueErrors {
		pathStr := formatPath(errors.Path(e))
		msg := e.Error()

		// CUE sometimes repeats the path in the message
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimPrefix(msg, pathStr)
			msg = strings.TrimPrefix(msg, ":")
			msg = strings.TrimSpace(msg)
		}

		if pathStr != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", pathStr, msg))
		} else {
			lines = append(lines, msg)
		}
	}

	if len(lines) == 1 {
		return fmt.Errorf("%w: %s: %s", ErrInvalidDocument, filePath, lines[0])
	}
	return fmt.Errorf("%w: %s: validation failed:\n  %s", ErrInvalidDocument, filePath, strings.Join(lines, "\n  "))
}

// formatPath converts a CUE error path such as ["install", "0"] to JSON-path
// notation ("install[0]").
func formatPath(path []string) string {
	if len(path) == 0 {
		return ""
	}

	var result strings.Builder
	for i, part := range path {
		isIndex := part != "" && strings.Trim(part, "0123456789") == ""
		if isIndex && i > 0 {
			result.WriteString("[")
			result.WriteString(part)
			result.WriteString("]")
		} else {
			if i > 0 {
				result.WriteString(".")
			}
			result.WriteString(part)
		}
	}

	return result.String()
}

// CheckFileSize verifies that data does not exceed maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), maxSize)
	}
	return nil
}
