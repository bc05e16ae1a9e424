package export

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"youtube-whisper/cmd/v2t/cmd/cli"
	"youtube-whisper/internal/app/export"
	"youtube-whisper/internal/app/repository/sqlite"
)

var outputFilePath string

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")

	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the run history to excel",
	Long: `Export the run history to excel

- One row per transcription run, newest first, including failed runs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := cli.Load()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := sqlite.NewSQLiteDB(cfg.Paths.HistoryDB)
		if err != nil {
			logger.Error("failed to open history", zap.String("path", cfg.Paths.HistoryDB), zap.Error(err))
			return cli.ErrReported
		}
		defer db.Close()

		runs, err := db.GetAll()
		if err != nil {
			logger.Error("failed to read history", zap.Error(err))
			return cli.ErrReported
		}

		if err := export.ToExcel(runs, outputFilePath); err != nil {
			logger.Error("export failed", zap.Error(err))
			return cli.ErrReported
		}
		fmt.Fprintf(cmd.OutOrStdout(), "export finished, %d runs written to %v\n", len(runs), outputFilePath)
		return nil
	},
}
