package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"youtube-whisper/cmd/v2t/cmd/cli"
	"youtube-whisper/cmd/v2t/cmd/dataset"
	"youtube-whisper/cmd/v2t/cmd/export"
	"youtube-whisper/cmd/v2t/cmd/transcribe"
	"youtube-whisper/cmd/v2t/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "v2t",
	Short: "Transcribe YouTube videos and build speech datasets",
	Long: `Transcribe YouTube videos and build speech datasets.
- transcribe: download a video's audio, convert it with ffmpeg and transcribe it
- dataset: transcribe audio chunks, export them to parquet and publish the dataset
- Every run is recorded in a local sqlite history that can be exported to excel.`,
	TraverseChildren: true,
	SilenceUsage:     true,
	SilenceErrors:    true,
}

// Execute adds all child commands to the root command and runs it with ctx.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(dataset.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cli.Global.ConfigPath, "config", "", "config file (default is ./v2t.yaml when present)")
	flags.BoolVarP(&cli.Global.Verbose, "verbose", "V", false, "verbose output")
	flags.StringVar(&cli.Global.Model, "model", "", "model tier: tiny, base, small, medium or large")
	flags.StringVar(&cli.Global.Language, "language", "", "spoken language code, or auto to detect it")
	flags.StringVar(&cli.Global.Provider, "provider", "", "transcription provider: whisper_cpp or openai")
}
