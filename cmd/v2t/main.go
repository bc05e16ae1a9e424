package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"youtube-whisper/cmd/v2t/cmd"
	"youtube-whisper/cmd/v2t/cmd/cli"
	"youtube-whisper/internal/config"

	// Import providers to register them
	_ "youtube-whisper/internal/app/api/openai/whisper"
	_ "youtube-whisper/internal/app/api/whisper_cpp"
)

func main() {
	// A missing .env is fine; a broken one is reported but not fatal.
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		if err != cli.ErrReported {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}
