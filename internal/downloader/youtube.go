package downloader

import (
	"context"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"

	apperrors "youtube-whisper/internal/app/errors"
	"youtube-whisper/internal/app/model"
)

// videoClient is the subset of *youtube.Client used by the fetcher.
type videoClient interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
	GetStreamContext(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error)
}

// YouTubeFetcher downloads the audio track of a YouTube video.
type YouTubeFetcher struct {
	client       videoClient
	downloadsDir string
	timeout      time.Duration
	progress     *ProgressManager
	logger       *zap.Logger
}

// NewYouTubeFetcher creates a fetcher writing into downloadsDir. A zero
// timeout disables the per-download deadline.
func NewYouTubeFetcher(downloadsDir string, timeout time.Duration, progress ProgressConfig, logger *zap.Logger) *YouTubeFetcher {
	return &YouTubeFetcher{
		client:       &youtube.Client{},
		downloadsDir: downloadsDir,
		timeout:      timeout,
		progress:     NewProgressManager(progress),
		logger:       logger,
	}
}

// Fetch resolves url, selects an audio stream and saves it under the
// downloads directory.
func (f *YouTubeFetcher) Fetch(ctx context.Context, url string) (model.LocalMediaFile, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	video, err := f.client.GetVideoContext(ctx, url)
	if err != nil {
		return model.LocalMediaFile{}, apperrors.Download(err, "cannot resolve video %s", url)
	}

	format, err := selectFormat(video.Formats)
	if err != nil {
		return model.LocalMediaFile{}, apperrors.Download(err, "no downloadable stream for %q", video.Title)
	}

	if err := os.MkdirAll(f.downloadsDir, os.ModePerm); err != nil {
		return model.LocalMediaFile{}, apperrors.Download(err, "cannot create downloads directory %s", f.downloadsDir)
	}

	filename := SanitizeFilename(video.Title) + "." + extensionFor(format.MimeType)
	outputPath := filepath.Join(f.downloadsDir, filename)

	f.logger.Info("downloading audio stream",
		zap.String("title", video.Title),
		zap.String("mime", format.MimeType),
		zap.Int("bitrate", format.Bitrate),
		zap.String("path", outputPath))

	if err := f.download(ctx, video, format, outputPath); err != nil {
		return model.LocalMediaFile{}, err
	}

	// The stream copy can return cleanly without leaving a file behind.
	if _, err := os.Stat(outputPath); err != nil {
		return model.LocalMediaFile{}, apperrors.Download(err, "expected output file is missing: %s", outputPath)
	}

	f.logger.Info("downloaded media", zap.String("path", outputPath))

	file := model.NewLocalMediaFile(outputPath)
	file.Title = video.Title
	return file, nil
}

func (f *YouTubeFetcher) download(ctx context.Context, video *youtube.Video, format *youtube.Format, outputPath string) error {
	stream, size, err := f.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return apperrors.Download(err, "cannot open stream for %q", video.Title)
	}
	defer stream.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return apperrors.Download(err, "cannot create %s", outputPath)
	}

	bar := f.progress.CreateByteBar(size, "downloading")
	_, copyErr := io.Copy(out, bar.ProxyReader(stream))
	closeErr := out.Close()
	if copyErr != nil {
		bar.Abort()
		f.progress.Wait()
		return apperrors.Download(copyErr, "stream copy failed for %q", video.Title)
	}
	bar.Complete()
	f.progress.Wait()
	if closeErr != nil {
		return apperrors.Download(closeErr, "cannot finalize %s", outputPath)
	}
	return nil
}

var errNoStream = apperrors.New("no audio stream available")

// selectFormat prefers audio-only formats, mp4 containers first, then the
// highest bitrate. Without audio-only formats it falls back to the best muxed
// format carrying audio.
func selectFormat(formats youtube.FormatList) (*youtube.Format, error) {
	candidates := lo.Filter(formats, func(f youtube.Format, _ int) bool {
		return strings.HasPrefix(f.MimeType, "audio/")
	})
	if len(candidates) == 0 {
		candidates = lo.Filter(formats, func(f youtube.Format, _ int) bool {
			return f.AudioChannels > 0
		})
	}
	if len(candidates) == 0 {
		return nil, errNoStream
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		mi := strings.HasSuffix(mediaType(candidates[i].MimeType), "/mp4")
		mj := strings.HasSuffix(mediaType(candidates[j].MimeType), "/mp4")
		if mi != mj {
			return mi
		}
		return candidates[i].Bitrate > candidates[j].Bitrate
	})
	return &candidates[0], nil
}

func mediaType(mimeType string) string {
	mt, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0])
	}
	return mt
}

// extensionFor maps "audio/mp4; codecs=..." to "mp4".
func extensionFor(mimeType string) string {
	mt := mediaType(mimeType)
	if i := strings.IndexByte(mt, '/'); i >= 0 && i < len(mt)-1 {
		return mt[i+1:]
	}
	return "bin"
}
