package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"no wrap trims", "  hello world \n", 0, "hello world"},
		{"no wrap keeps inner newlines", "line one\nline two", 0, "line one\nline two"},
		{"wraps at width", "the quick brown fox jumps", 10, "the quick\nbrown fox\njumps"},
		{"normalizes whitespace", "a\n\nb\t c", 80, "a b c"},
		{"long word is kept whole", "supercalifragilistic ok", 5, "supercalifragilistic\nok"},
		{"empty", "   ", 80, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.text, tt.width))
		})
	}
}

func TestFormat_LinesFitWidth(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 40)
	for _, line := range strings.Split(Format(text, 80), "\n") {
		assert.LessOrEqual(t, len(line), 80)
	}
}

func TestWrite_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "transcript.txt")

	require.NoError(t, Write(path, "first version of the text", 0))
	require.NoError(t, Write(path, "hello world", 0))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(content))
}

func TestWrite_FilesystemError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := Write(filepath.Join(blocker, "transcript.txt"), "hello", 0)
	assert.Error(t, err)
}
