package transcribe

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"youtube-whisper/cmd/v2t/cmd/cli"
	"youtube-whisper/internal/app"
	apperrors "youtube-whisper/internal/app/errors"
	"youtube-whisper/internal/app/model"
	"youtube-whisper/internal/app/pipeline"
	"youtube-whisper/internal/config"
	"youtube-whisper/internal/downloader"
)

const (
	prompt    = "Enter the YouTube video URL: "
	separator = "================================================================================"
)

// runner is the part of *pipeline.Pipeline the command drives.
type runner interface {
	Run(ctx context.Context, url string) (model.Run, error)
	Close() error
}

var newRunner = func(cfg *config.Config, logger *zap.Logger) (runner, error) {
	p, err := app.InitializePipeline(cfg, logger)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe [url]",
	Short: "Download a YouTube video and transcribe its audio",
	Long: `Download a YouTube video and transcribe its audio

- Downloads the best audio stream into the downloads directory
- Converts it with ffmpeg to the configured audio format
- Transcribes it with the configured provider and writes the transcript file
- Prompts for the URL when none is given`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := cli.Load()
		if err != nil {
			return err
		}
		defer logger.Sync()

		raw, err := readURL(args, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			logger.Error("failed to read url", zap.Error(err))
			return cli.ErrReported
		}

		url, err := downloader.ValidateURL(raw)
		if err != nil {
			logger.Error("not a YouTube url", zap.String("input", raw), zap.Error(err))
			return cli.ErrReported
		}

		p, err := newRunner(cfg, logger)
		if err != nil {
			logger.Error("failed to set up pipeline", zap.Error(err))
			return cli.ErrReported
		}
		defer p.Close()

		run, err := p.Run(cmd.Context(), url)
		if err != nil {
			if errors.Is(err, context.Canceled) || cmd.Context().Err() != nil {
				logger.Warn("cancelled, stopping", zap.String("url", url))
				return nil
			}
			fields := []zap.Field{zap.String("stage", stageOf(err)), zap.Error(err)}
			if kind := apperrors.KindOf(err); kind != apperrors.KindGeneric {
				fields = append(fields, zap.String("kind", string(kind)))
			}
			if out := apperrors.OutputOf(err); out != "" {
				fields = append(fields, zap.String("output", out))
			}
			logger.Error("transcription failed", fields...)
			return cli.ErrReported
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, separator)
		fmt.Fprintln(out, run.Transcript)
		fmt.Fprintln(out, separator)
		logger.Info("done", zap.String("transcript_file", run.TranscriptPath))
		return nil
	},
}

// readURL returns the positional argument, or prompts on out and reads one
// line from in.
func readURL(args []string, in io.Reader, out io.Writer) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func stageOf(err error) string {
	if stage := pipeline.StageOf(err); stage != "" {
		return string(stage)
	}
	return "setup"
}
