package whisper_cpp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"youtube-whisper/internal/app/api"
	"youtube-whisper/internal/app/audio"
	"youtube-whisper/internal/app/errors"
	"youtube-whisper/internal/app/util/files"
)

// modelFiles maps model tiers to the ggml file names published by whisper.cpp.
var modelFiles = map[api.ModelTier]string{
	api.ModelTiny:   "ggml-tiny.bin",
	api.ModelBase:   "ggml-base.bin",
	api.ModelSmall:  "ggml-small.bin",
	api.ModelMedium: "ggml-medium.bin",
	api.ModelLarge:  "ggml-large-v3.bin",
}

// LocalTranscriber implements local transcription, using local binary commands.
type LocalTranscriber struct {
	binaryPath string
	ffmpegPath string
	modelPath  string
	language   string
	threads    int
	timeout    time.Duration
	logger     *zap.Logger
}

// NewLocalTranscriber creates a new instance of LocalTranscriber. An empty
// language enables auto-detection.
func NewLocalTranscriber(binaryPath, modelDir string, tier api.ModelTier, language string, threads int, timeout time.Duration, logger *zap.Logger) (*LocalTranscriber, error) {
	file, ok := modelFiles[tier]
	if !ok {
		return nil, fmt.Errorf("unknown model tier %q", tier)
	}
	return &LocalTranscriber{
		binaryPath: binaryPath,
		ffmpegPath: "ffmpeg",
		modelPath:  filepath.Join(modelDir, file),
		language:   language,
		threads:    threads,
		timeout:    timeout,
		logger:     logger,
	}, nil
}

// WithFFmpeg sets the ffmpeg used to resample input; ffprobe is expected
// next to it.
func (lt *LocalTranscriber) WithFFmpeg(path string) *LocalTranscriber {
	if path != "" {
		lt.ffmpegPath = path
	}
	return lt
}

// Transcript runs whisper.cpp on inputFilePath and returns the plain text output.
func (lt *LocalTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	if _, err := os.Stat(lt.modelPath); err != nil {
		return "", errors.NotFound("whisper model", lt.modelPath)
	}

	binary, err := exec.LookPath(lt.binaryPath)
	if err != nil {
		return "", fmt.Errorf("whisper.cpp binary %s not found: %w", lt.binaryPath, err)
	}

	workDir, err := os.MkdirTemp("", "v2t-whisper-")
	if err != nil {
		return "", fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	is16kHzWav, err := audio.Is16kHzWavFile(ctx, lt.ffmpegPath, inputFilePath)
	if err != nil {
		return "", fmt.Errorf("error checking input file: %w", err)
	}
	if !is16kHzWav {
		lt.logger.Debug("resampling input to 16kHz wav", zap.String("path", inputFilePath))
		inputFilePath, err = audio.ConvertTo16kHzWav(ctx, lt.ffmpegPath, inputFilePath, workDir)
		if err != nil {
			return "", fmt.Errorf("error converting input file: %w", err)
		}
	}

	outputPrefix := filepath.Join(workDir, "transcript")
	args := lt.buildArgs(inputFilePath, outputPrefix)

	if lt.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, lt.timeout)
		defer cancel()
	}

	command := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	lt.logger.Debug("running whisper.cpp", zap.String("command", binary+" "+strings.Join(args, " ")))

	if err := command.Run(); err != nil {
		return "", fmt.Errorf("command execution error: %w, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	output, err := files.ReadOutputFile(outputPrefix + ".txt")
	if err != nil {
		return "", fmt.Errorf("failed to read output file: %w", err)
	}
	return output, nil
}

func (lt *LocalTranscriber) buildArgs(inputFilePath, outputPrefix string) []string {
	language := lt.language
	if language == "" {
		language = "auto"
	}
	args := []string{
		"-m", lt.modelPath,
		"-l", language,
		"-nt",
		"-otxt",
		"-f", inputFilePath,
		"-of", outputPrefix,
	}
	if lt.threads > 0 {
		args = append(args, "-t", strconv.Itoa(lt.threads))
	}
	return args
}
