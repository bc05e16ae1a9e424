package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mp3", "a.mp3", "C.MP3", "a.txt", "notes"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d.mp3"), 0o755))

	tests := []struct {
		name string
		ext  string
		want []string
	}{
		{"with dot", ".mp3", []string{"C.MP3", "a.mp3", "b.mp3"}},
		{"without dot", "mp3", []string{"C.MP3", "a.mp3", "b.mp3"}},
		{"txt", "txt", []string{"a.txt"}},
		{"none", "wav", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ListFiles(dir, tt.ext)
			require.NoError(t, err)

			var want []string
			for _, name := range tt.want {
				want = append(want, filepath.Join(dir, name))
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestListFiles_MissingDir(t *testing.T) {
	_, err := ListFiles(filepath.Join(t.TempDir(), "missing"), "mp3")
	assert.Error(t, err)
}

func TestReadOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n  hello world \n\n"), 0o644))

	got, err := ReadOutputFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)

	_, err = ReadOutputFile(path + ".missing")
	assert.Error(t, err)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, EnsureDir(dir))
	assert.DirExists(t, dir)
	require.NoError(t, EnsureDir(dir), "existing directories are fine")
}

func TestGetAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	got, err := GetAbsolutePath("chunks/a.mp3")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "a.mp3", filepath.Base(got))

	got, err = GetAbsolutePath("/tmp/../tmp/x")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x", got)
}

func TestReplaceExt(t *testing.T) {
	assert.Equal(t, "/a/b.txt", ReplaceExt("/a/b.mp3", "txt"))
	assert.Equal(t, "noext.txt", ReplaceExt("noext", "txt"))
}

func TestCalculateFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	got, err := CalculateFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", got)

	_, err = CalculateFileHash(path + ".missing")
	assert.Error(t, err)
}
