package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"youtube-whisper/internal/app/errors"
	"youtube-whisper/internal/app/model"
	"youtube-whisper/internal/app/util/files"
	"youtube-whisper/internal/config"
)

// codecs maps a target container to the ffmpeg audio encoder.
var codecs = map[string]string{
	"mp3":  "libmp3lame",
	"wav":  "pcm_s16le",
	"m4a":  "aac",
	"flac": "flac",
}

// Transcoder converts media files to a single target audio format with ffmpeg.
type Transcoder struct {
	ffmpegPath   string
	targetFormat string
	quality      string
	logger       *zap.Logger
}

func NewTranscoder(cfg config.Transcoder, logger *zap.Logger) *Transcoder {
	return &Transcoder{
		ffmpegPath:   cfg.FFmpegPath,
		targetFormat: strings.ToLower(cfg.TargetFormat),
		quality:      cfg.Quality,
		logger:       logger,
	}
}

// Transcode converts in to the target format and removes in afterwards. Files
// already in the target format are returned unchanged without touching ffmpeg.
func (t *Transcoder) Transcode(ctx context.Context, in model.LocalMediaFile) (model.LocalMediaFile, error) {
	if in.Format == t.targetFormat {
		t.logger.Debug("already in target format, skipping conversion", zap.String("path", in.Path))
		return in, nil
	}

	if _, err := os.Stat(in.Path); err != nil {
		return model.LocalMediaFile{}, errors.NotFound("media file", in.Path)
	}

	binary, err := lookTool(t.ffmpegPath)
	if err != nil {
		return model.LocalMediaFile{}, err
	}

	outputPath := files.ReplaceExt(in.Path, t.targetFormat)
	args := t.buildArgs(in.Path, outputPath)

	t.logger.Info("converting audio",
		zap.String("input", in.Path),
		zap.String("output", outputPath),
		zap.String("command", binary+" "+strings.Join(args, " ")))

	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return model.LocalMediaFile{}, errors.Transcode(err, strings.TrimSpace(stderr.String()), "ffmpeg failed to convert %s", in.Path)
	}
	if _, err := os.Stat(outputPath); err != nil {
		return model.LocalMediaFile{}, errors.Transcode(err, strings.TrimSpace(stderr.String()), "ffmpeg produced no output for %s", in.Path)
	}

	if err := os.Remove(in.Path); err != nil {
		t.logger.Warn("could not remove original media file", zap.String("path", in.Path), zap.Error(err))
	}

	t.logger.Info("audio conversion completed", zap.String("output", outputPath))
	return model.LocalMediaFile{Path: outputPath, Format: t.targetFormat, Title: in.Title}, nil
}

func (t *Transcoder) buildArgs(input, output string) []string {
	codec, ok := codecs[t.targetFormat]
	if !ok {
		codec = "copy"
	}
	args := []string{"-y", "-i", input, "-vn", "-acodec", codec}
	if t.quality != "" && codec != "pcm_s16le" && codec != "flac" {
		args = append(args, "-q:a", t.quality)
	}
	return append(args, output)
}

// lookTool resolves a binary on PATH. Absence is a TranscodeError caused by
// ErrToolNotFound.
func lookTool(name string) (string, error) {
	binary, err := exec.LookPath(name)
	if err != nil {
		return "", errors.Transcode(errors.ErrToolNotFound, err.Error(), "%s is not available", name)
	}
	return binary, nil
}

// ffprobeFor returns the ffprobe binary that ships next to ffmpegPath.
func ffprobeFor(ffmpegPath string) string {
	dir := filepath.Dir(ffmpegPath)
	if dir == "." && !strings.ContainsRune(ffmpegPath, filepath.Separator) {
		return "ffprobe"
	}
	return filepath.Join(dir, "ffprobe")
}

// GetAudioDuration returns the duration of filePath in seconds.
func (t *Transcoder) GetAudioDuration(ctx context.Context, filePath string) (float64, error) {
	cmd := exec.CommandContext(ctx, ffprobeFor(t.ffmpegPath), "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
}

// Is16kHzWavFile reports whether filePath already holds 16 kHz PCM audio. It
// probes with the ffprobe that ships next to ffmpegPath.
func Is16kHzWavFile(ctx context.Context, ffmpegPath, filePath string) (bool, error) {
	ffprobe, err := lookTool(ffprobeFor(ffmpegPath))
	if err != nil {
		return false, err
	}
	cmd := exec.CommandContext(ctx, ffprobe, "-v", "quiet", "-print_format", "json", "-show_streams", filePath)
	output, err := cmd.Output()
	if err != nil {
		return false, err
	}

	var probeOutput model.FFProbeOutput
	err = json.Unmarshal(output, &probeOutput)
	if err != nil {
		return false, err
	}

	for _, stream := range probeOutput.Streams {
		if stream.CodecType == "audio" && stream.CodecName == "pcm_s16le" && stream.SampleRate == 16000 {
			return true, nil
		}
	}

	return false, nil
}

// ConvertTo16kHzWav writes a 16 kHz mono WAV copy of inputFilePath into dir with
// the ffmpeg at ffmpegPath and returns its path.
func ConvertTo16kHzWav(ctx context.Context, ffmpegPath, inputFilePath, dir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(inputFilePath))
	if ext != ".mp3" && ext != ".m4a" && ext != ".wav" && ext != ".flac" && ext != ".mp4" && ext != ".webm" {
		return "", fmt.Errorf("unsupported audio format not in [mp3,m4a,wav,flac,mp4,webm]: %s", ext)
	}

	ffmpeg, err := lookTool(ffmpegPath)
	if err != nil {
		return "", err
	}

	base := model.NewLocalMediaFile(inputFilePath).BaseName()
	outputWavPath := filepath.Join(dir, base+"_16khz.wav")

	cmd := exec.CommandContext(ctx, ffmpeg, "-y", "-i", inputFilePath, "-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1", outputWavPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errors.Transcode(err, strings.TrimSpace(stderr.String()), "ffmpeg failed to resample %s", inputFilePath)
	}

	return outputWavPath, nil
}
