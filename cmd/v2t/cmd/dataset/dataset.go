package dataset

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"youtube-whisper/cmd/v2t/cmd/cli"
	"youtube-whisper/internal/app"
	"youtube-whisper/internal/config"
	"youtube-whisper/internal/dataset"
	"youtube-whisper/internal/publish"
)

var (
	repoID string
	target string
)

// chunkTranscriber is the part of *dataset.Builder the transcribe command
// drives.
type chunkTranscriber interface {
	TranscribeChunks(ctx context.Context, chunksDir, transcriptsDir string) (dataset.TranscribeStats, error)
}

var newBuilder = func(cfg *config.Config, logger *zap.Logger) (chunkTranscriber, error) {
	b, err := app.InitializeDatasetBuilder(cfg, logger)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func init() {
	pushCmd.Flags().StringVar(&repoID, "repo", "", "dataset repository as owner/name (defaults to dataset.repo_id)")
	pushCmd.Flags().StringVar(&target, "target", "", "publish target: huggingface or minio (defaults to dataset.target)")

	Cmd.AddCommand(transcribeCmd, exportCmd, pushCmd)
}

// Cmd represents the dataset command
var Cmd = &cobra.Command{
	Use:   "dataset",
	Short: "Build and publish a dataset of audio chunks and transcripts",
	Long: `Build and publish a dataset of audio chunks and transcripts

- transcribe: write <name>.txt next to every untranscribed chunk
- export: pair chunks with transcripts and write the parquet file
- push: export, then upload to a dataset repository`,
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe every chunk that has no transcript yet",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := cli.Load()
		if err != nil {
			return err
		}
		defer logger.Sync()

		builder, err := newBuilder(cfg, logger)
		if err != nil {
			logger.Error("failed to set up transcriber", zap.Error(err))
			return cli.ErrReported
		}

		stats, err := builder.TranscribeChunks(cmd.Context(), cfg.Paths.ChunksDir, cfg.Paths.TranscriptsDir)
		if err != nil {
			if cancelled(cmd, err) {
				logger.Warn("cancelled, stopping", zap.Int("transcribed", stats.Transcribed))
				return nil
			}
			return report(logger, "chunk transcription failed", err)
		}
		logger.Info("chunk transcription finished",
			zap.Int("transcribed", stats.Transcribed),
			zap.Int("skipped", stats.Skipped),
			zap.Int("empty", stats.Empty))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Pair chunks with transcripts and write the parquet dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := cli.Load()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if _, err := export(cfg, logger); err != nil {
			return report(logger, "dataset export failed", err)
		}
		return nil
	},
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Export the dataset and upload it to a dataset repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := cli.Load()
		if err != nil {
			return err
		}
		defer logger.Sync()

		id := repoID
		if id == "" {
			id = cfg.Dataset.RepoID
		}
		dest := target
		if dest == "" {
			dest = cfg.Dataset.Target
		}

		repo, err := publish.ParseRepoID(id)
		if err != nil {
			return report(logger, "invalid repository", err)
		}

		publisher, err := publish.New(cfg, dest, logger)
		if err != nil {
			return report(logger, "cannot publish", err)
		}

		records, err := export(cfg, logger)
		if err != nil {
			return report(logger, "dataset export failed", err)
		}

		card := dataset.Card(repo, publish.DataPath, records, cfg.Dataset.SamplingRate)
		artifacts, err := publish.DatasetArtifacts(cfg.Paths.ParquetFile, card)
		if err != nil {
			return report(logger, "dataset export failed", err)
		}

		if err := publisher.Publish(cmd.Context(), repo, artifacts); err != nil {
			if cancelled(cmd, err) {
				logger.Warn("cancelled, stopping", zap.String("repo", repo.String()))
				return nil
			}
			return report(logger, "publish failed", err)
		}
		logger.Info("dataset published",
			zap.String("repo", repo.String()),
			zap.String("target", dest),
			zap.String("sha256", artifacts[0].SHA256))
		return nil
	},
}

// export assembles the dataset and writes the parquet file, returning the
// number of records.
func export(cfg *config.Config, logger *zap.Logger) (int, error) {
	records, err := dataset.Assemble(cfg.Paths.ChunksDir, cfg.Paths.TranscriptsDir)
	if err != nil {
		return 0, err
	}
	if err := dataset.WriteParquet(records, cfg.Paths.ParquetFile); err != nil {
		return 0, err
	}
	logger.Info("dataset exported", zap.Int("records", len(records)), zap.String("path", cfg.Paths.ParquetFile))
	return len(records), nil
}

// cancelled reports whether err stems from an interrupt. Killed subprocesses
// do not return context.Canceled, so the command context is checked too.
func cancelled(cmd *cobra.Command, err error) bool {
	return errors.Is(err, context.Canceled) || cmd.Context().Err() != nil
}

func report(logger *zap.Logger, msg string, err error) error {
	logger.Error(msg, zap.Error(err))
	return cli.ErrReported
}
