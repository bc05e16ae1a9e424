package downloader

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ProgressConfig controls download progress rendering. A nil Writer means
// stderr.
type ProgressConfig struct {
	Enabled bool
	Writer  io.Writer
}

// ProgressManager owns the mpb container bars are drawn in. A container lives
// from the first bar until Wait, so one manager serves any number of
// downloads.
type ProgressManager struct {
	writer    io.Writer
	container *mpb.Progress
	enabled   bool
	mu        sync.Mutex
}

// ProgressBar is a single bar, or a no-op when progress is disabled.
type ProgressBar struct {
	bar     *mpb.Bar
	enabled bool
}

func NewProgressManager(config ProgressConfig) *ProgressManager {
	if !config.Enabled {
		return &ProgressManager{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}
	return &ProgressManager{writer: writer, enabled: true}
}

// CreateByteBar adds a bar counting bytes. A total of zero or less means the
// size is unknown until Complete is called.
func (pm *ProgressManager) CreateByteBar(total int64, description string) *ProgressBar {
	if !pm.enabled {
		return &ProgressBar{enabled: false}
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.container == nil {
		pm.container = mpb.New(
			mpb.WithOutput(pm.writer),
			mpb.WithRefreshRate(120*time.Millisecond),
			mpb.WithWidth(40),
		)
	}

	if total < 0 {
		total = 0
	}
	bar := pm.container.AddBar(total,
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersKibiByte("% .1f / % .1f", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.OnComplete(
				decor.NewPercentage("%.1f", decor.WCSyncSpace), " ✓ ",
			),
			decor.OnComplete(
				decor.EwmaSpeed(decor.SizeB1024(0), "% .1f", 30, decor.WCSyncSpace), "",
			),
		),
	)

	return &ProgressBar{
		bar:     bar,
		enabled: true,
	}
}

// ProxyReader wraps r so reads advance the bar.
func (pb *ProgressBar) ProxyReader(r io.Reader) io.Reader {
	if pb.enabled && pb.bar != nil {
		return pb.bar.ProxyReader(r)
	}
	return r
}

// Complete marks the bar done at its current count.
func (pb *ProgressBar) Complete() {
	if pb.enabled && pb.bar != nil {
		pb.bar.SetTotal(pb.bar.Current(), true)
	}
}

// Abort stops the bar after a failed download, leaving it on screen.
func (pb *ProgressBar) Abort() {
	if pb.enabled && pb.bar != nil {
		pb.bar.Abort(false)
	}
}

// Wait blocks until every bar is complete or aborted and releases the
// container. The next CreateByteBar starts a fresh one.
func (pm *ProgressManager) Wait() {
	pm.mu.Lock()
	container := pm.container
	pm.container = nil
	pm.mu.Unlock()

	if container != nil {
		container.Wait()
	}
}

// IsTTY reports whether writer is a character device such as a terminal.
func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}
