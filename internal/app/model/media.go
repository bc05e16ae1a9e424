package model

import (
	"path/filepath"
	"strings"
)

// LocalMediaFile is a downloaded or converted media file on disk.
type LocalMediaFile struct {
	Path   string
	Format string
	// Title is the remote title the file was downloaded from, if known.
	Title string
}

// NewLocalMediaFile infers the format from the path's extension.
func NewLocalMediaFile(path string) LocalMediaFile {
	return LocalMediaFile{Path: path, Format: FormatOf(path)}
}

// FormatOf returns the lower-case extension of path without the leading dot.
func FormatOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// BaseName returns the file name without directory and extension.
func (f LocalMediaFile) BaseName() string {
	return strings.TrimSuffix(filepath.Base(f.Path), filepath.Ext(f.Path))
}
