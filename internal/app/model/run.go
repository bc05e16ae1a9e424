package model

import "time"

// Run is the history entry of a single pipeline execution.
type Run struct {
	ID             string
	URL            string
	Title          string
	MediaPath      string
	AudioPath      string
	TranscriptPath string
	AudioDuration  float64
	Transcript     string
	Model          string
	Language       string
	HasError       bool
	ErrorMessage   string
	CreatedAt      time.Time
}
