package downloader

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxFilenameBytes leaves room for an extension under the common 255-byte limit.
const maxFilenameBytes = 200

// SanitizeFilename turns a remote title into a filesystem-safe base name.
// Letters, digits, dots and underscores are kept; every other rune becomes an
// underscore except spaces, whose runs collapse into a single underscore.
func SanitizeFilename(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r), r == '.', r == '_', r == ' ':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	safe := strings.Join(strings.Fields(b.String()), "_")
	safe = truncateBytes(safe, maxFilenameBytes)
	if safe == "" {
		return "untitled"
	}
	return safe
}

func truncateBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	s = s[:limit]
	for !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
