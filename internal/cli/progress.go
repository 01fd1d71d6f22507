package cli

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/i18n-detect/internal/detect"
)

// CLIProgressReporter draws a progress bar on stderr so stdout stays free for the report.
// It is safe for the concurrent OnFileProcessed calls of a parallel run.
type CLIProgressReporter struct {
	mu             sync.Mutex
	fileBar        *progressbar.ProgressBar
	startTime      time.Time
	totalFiles     int
	processedFiles int
}

var _ detect.ProgressReporter = (*CLIProgressReporter)(nil)

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter() *CLIProgressReporter {
	return &CLIProgressReporter{
		startTime: time.Now(),
	}
}

func (c *CLIProgressReporter) OnFileProcessingStart(totalFiles int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalFiles = totalFiles
	c.processedFiles = 0
	if totalFiles == 0 {
		return
	}

	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Scanning files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(filePath string, segments int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.processedFiles++
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(stats detect.Stats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fileBar != nil {
		c.fileBar.Finish()
	}

	log.Info().
		Int("files", stats.FilesScanned).
		Int("files_with_text", stats.FilesWithText).
		Int("segments", stats.Segments).
		Int("failures", stats.Failures).
		Dur("elapsed", time.Since(c.startTime).Round(time.Millisecond)).
		Msg("Scan complete")
}
