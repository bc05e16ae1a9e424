package repository

import "youtube-whisper/internal/app/model"

// RunDAO stores the history of pipeline runs.
type RunDAO interface {
	Close() error

	Insert(run model.Run) error

	// GetAll returns every run, newest first.
	GetAll() ([]model.Run, error)

	// CountSucceeded returns how many runs completed without error for url.
	CountSucceeded(url string) (int, error)
}
