package testutil

import (
	"context"
	"os"
	"path/filepath"

	"github.com/stretchr/testify/mock"

	"youtube-whisper/internal/app/model"
)

// MockFetcher is a testify mock of the download stage.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (model.LocalMediaFile, error) {
	args := m.Called(ctx, url)
	return args.Get(0).(model.LocalMediaFile), args.Error(1)
}

// FileFetcher writes a small placeholder file named like a real download.
type FileFetcher struct {
	Dir   string
	Title string
	Ext   string
	URLs  []string
}

func (f *FileFetcher) Fetch(ctx context.Context, url string) (model.LocalMediaFile, error) {
	f.URLs = append(f.URLs, url)
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return model.LocalMediaFile{}, err
	}
	path := filepath.Join(f.Dir, SanitizedName(f.Title)+"."+f.Ext)
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		return model.LocalMediaFile{}, err
	}
	file := model.NewLocalMediaFile(path)
	file.Title = f.Title
	return file, nil
}

// MockTranscoder is a testify mock of the conversion stage.
type MockTranscoder struct {
	mock.Mock
}

func (m *MockTranscoder) Transcode(ctx context.Context, in model.LocalMediaFile) (model.LocalMediaFile, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(model.LocalMediaFile), args.Error(1)
}

// RenamingTranscoder swaps the file's extension for Format and removes the
// original, like a real conversion.
type RenamingTranscoder struct {
	Format   string
	Duration float64
}

func (r *RenamingTranscoder) Transcode(ctx context.Context, in model.LocalMediaFile) (model.LocalMediaFile, error) {
	if in.Format == r.Format {
		return in, nil
	}
	out := in.Path[:len(in.Path)-len(filepath.Ext(in.Path))] + "." + r.Format
	if err := os.Rename(in.Path, out); err != nil {
		return model.LocalMediaFile{}, err
	}
	return model.LocalMediaFile{Path: out, Format: r.Format, Title: in.Title}, nil
}

func (r *RenamingTranscoder) GetAudioDuration(ctx context.Context, path string) (float64, error) {
	return r.Duration, nil
}

// SanitizedName mirrors the download naming for simple ASCII titles.
func SanitizedName(title string) string {
	out := []rune(title)
	for i, r := range out {
		if r == ' ' {
			out[i] = '_'
		}
	}
	return string(out)
}
