// Package pipeline runs download, conversion, transcription and persistence
// for one video at a time.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"youtube-whisper/internal/app/api"
	"youtube-whisper/internal/app/model"
	"youtube-whisper/internal/app/repository"
	"youtube-whisper/internal/app/transcript"
)

// Fetcher downloads the media behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (model.LocalMediaFile, error)
}

// Transcoder normalizes a media file to the target audio format.
type Transcoder interface {
	Transcode(ctx context.Context, in model.LocalMediaFile) (model.LocalMediaFile, error)
}

// durationProber is implemented by transcoders that can measure audio length.
type durationProber interface {
	GetAudioDuration(ctx context.Context, path string) (float64, error)
}

// Options are the per-run settings recorded alongside the history.
type Options struct {
	TranscriptPath string
	LineWidth      int
	Model          string
	Language       string
}

// Stage names the step of a run that failed.
type Stage string

const (
	StageDownload   Stage = "download"
	StageTranscode  Stage = "transcode"
	StageTranscribe Stage = "transcribe"
	StagePersist    Stage = "persist"
)

// StageError attributes a failure to the stage that produced it. It reads
// and matches like the wrapped error.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

// StageOf returns the stage recorded on err, or "" when err did not come out
// of a run.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

func failed(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}

// Pipeline runs one URL at a time through fetch, transcode, transcribe and
// transcript write. A single instance is reused for the whole process.
type Pipeline struct {
	fetcher     Fetcher
	transcoder  Transcoder
	transcriber api.Transcriber
	history     repository.RunDAO
	opts        Options
	logger      *zap.Logger

	now   func() time.Time
	newID func() string
}

// New wires the stages together. history may be nil to skip recording runs.
func New(fetcher Fetcher, transcoder Transcoder, transcriber api.Transcriber, history repository.RunDAO, opts Options, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		fetcher:     fetcher,
		transcoder:  transcoder,
		transcriber: transcriber,
		history:     history,
		opts:        opts,
		logger:      logger,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Close releases the run history.
func (p *Pipeline) Close() error {
	if p.history == nil {
		return nil
	}
	return p.history.Close()
}

// Run processes url through every stage in order and stops at the first
// failure. The stage's error is returned wrapped in a *StageError, so
// errors.Is and errors.As still see it. The returned Run describes the
// attempt either way.
func (p *Pipeline) Run(ctx context.Context, url string) (model.Run, error) {
	run := model.Run{
		ID:             p.newID(),
		URL:            url,
		TranscriptPath: p.opts.TranscriptPath,
		Model:          p.opts.Model,
		Language:       p.opts.Language,
		CreatedAt:      p.now(),
	}
	logger := p.logger.With(zap.String("run", run.ID))

	if p.history != nil {
		if count, err := p.history.CountSucceeded(url); err == nil && count > 0 {
			logger.Info("url was transcribed before, running again", zap.Int("previous_runs", count))
		}
	}

	err := p.process(ctx, &run, logger)
	if err != nil {
		run.HasError = true
		run.ErrorMessage = err.Error()
	}
	p.record(run, logger)
	return run, err
}

func (p *Pipeline) process(ctx context.Context, run *model.Run, logger *zap.Logger) error {
	media, err := p.fetcher.Fetch(ctx, run.URL)
	if err != nil {
		return failed(StageDownload, err)
	}
	run.Title = media.Title
	run.MediaPath = media.Path
	logger.Info("download complete", zap.String("path", media.Path))

	audio, err := p.transcoder.Transcode(ctx, media)
	if err != nil {
		return failed(StageTranscode, err)
	}
	run.AudioPath = audio.Path
	logger.Info("audio ready", zap.String("path", audio.Path), zap.String("format", audio.Format))

	if prober, ok := p.transcoder.(durationProber); ok {
		duration, err := prober.GetAudioDuration(ctx, audio.Path)
		if err != nil {
			logger.Warn("could not read audio duration", zap.String("path", audio.Path), zap.Error(err))
		} else {
			run.AudioDuration = duration
		}
	}

	text, err := p.transcriber.Transcript(ctx, audio.Path)
	if err != nil {
		return failed(StageTranscribe, err)
	}
	run.Transcript = text

	if err := transcript.Write(p.opts.TranscriptPath, text, p.opts.LineWidth); err != nil {
		return failed(StagePersist, err)
	}
	logger.Info("transcript saved", zap.String("path", p.opts.TranscriptPath), zap.Int("chars", len(text)))
	return nil
}

func (p *Pipeline) record(run model.Run, logger *zap.Logger) {
	if p.history == nil {
		return
	}
	if err := p.history.Insert(run); err != nil {
		logger.Warn("failed to record run history", zap.Error(err))
	}
}
