// Package transcript writes finished transcripts to disk.
package transcript

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

// Format normalizes whitespace in text and wraps it at lineWidth columns.
// A lineWidth of zero or less only trims the text.
func Format(text string, lineWidth int) string {
	text = strings.TrimSpace(text)
	if lineWidth <= 0 || text == "" {
		return text
	}
	normalized := strings.Join(strings.Fields(text), " ")
	return wordwrap.WrapString(normalized, uint(lineWidth))
}

// Write replaces the contents of path with the formatted transcript,
// creating parent directories as needed.
func Write(path, text string, lineWidth int) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(Format(text, lineWidth)), 0o644)
}
