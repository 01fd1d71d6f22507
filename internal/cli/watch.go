package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/i18n-detect/internal/detect"
	"github.com/mvp-joe/i18n-detect/internal/discovery"
	"github.com/mvp-joe/i18n-detect/internal/extract"
	"github.com/mvp-joe/i18n-detect/internal/report"
	"github.com/mvp-joe/i18n-detect/internal/watcher"
)

// sourceExtensions are the file types watch mode reacts to.
var sourceExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mts", ".cts", ".mjs", ".cjs"}

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-scan sources whenever they change",
	Long: `Scan a directory once, then keep watching it and print the findings
for every file that changes.

Unchanged files are served from an in-memory cache, so each re-scan only
parses what was edited. Files that fail to read or parse are reported as
failures and do not stop the watch.

Example:
  i18n-detect watch src`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	// A file mid-edit often fails to parse; that must not end the session.
	cfg.Detect.FailurePolicy = string(detect.PolicyCollect)

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve watch directory: %w", err)
	}

	fd, err := discovery.NewFileDiscovery(dir, cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return err
	}

	gateway, err := extract.NewCachedGateway(newGateway(cfg), cfg.Cache.MaxEntries)
	if err != nil {
		return err
	}
	defer gateway.Close()

	detector, err := newDetector(gateway, cfg, nil)
	if err != nil {
		return err
	}

	session := &watchSession{
		discovery: fd,
		detector:  detector,
		gateway:   gateway,
		format:    cfg.Output.Format,
		out:       cmd.OutOrStdout(),
	}

	if err := session.scanAll(ctx); err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher([]string{dir}, sourceExtensions,
		watcher.WithDebounce(time.Duration(cfg.Watch.DebounceMs)*time.Millisecond),
		watcher.WithSkipDir(fd.SkipDir),
	)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Stop()

	if err := fw.Start(ctx, func(files []string) {
		if err := session.rescan(ctx, files); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("Re-scan failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	log.Info().Str("dir", dir).Msg("Watching for changes (Ctrl+C to stop)")
	<-ctx.Done()
	log.Info().Msg("Stopping watch")
	return nil
}

// watchSession holds the state shared by the initial scan and every re-scan.
type watchSession struct {
	discovery *discovery.FileDiscovery
	detector  *detect.Detector
	gateway   *extract.CachedGateway
	format    string
	out       io.Writer
}

func (s *watchSession) scanAll(ctx context.Context) error {
	files, err := s.discovery.DiscoverFiles()
	if err != nil {
		return fmt.Errorf("failed to discover files: %w", err)
	}
	rep, err := s.detector.HandleReport(ctx, files)
	if err != nil {
		return err
	}
	log.Info().
		Int("files", len(files)).
		Int("segments", report.CountSegments(rep.Entries)).
		Int("failures", len(rep.Failures)).
		Msg("Initial scan complete")
	return writeReport(s.out, rep, s.format)
}

// rescan runs detection over the whole tree, reusing cached results for
// untouched files, and prints only the findings for changed files.
func (s *watchSession) rescan(ctx context.Context, changed []string) error {
	s.gateway.Invalidate(changed...)

	files, err := s.discovery.DiscoverFiles()
	if err != nil {
		return fmt.Errorf("failed to discover files: %w", err)
	}
	rep, err := s.detector.HandleReport(ctx, files)
	if err != nil {
		return err
	}

	changedRep := filterReport(rep, changed)
	log.Info().
		Int("changed", len(changed)).
		Int("segments", report.CountSegments(changedRep.Entries)).
		Int("total_segments", report.CountSegments(rep.Entries)).
		Int64("cache_hits", s.gateway.Hits()).
		Msg("Re-scan complete")

	return writeReport(s.out, changedRep, s.format)
}

// filterReport keeps the entries and failures of the given files, in report order.
func filterReport(rep *detect.Report, files []string) *detect.Report {
	keep := make(map[string]bool, len(files))
	for _, f := range files {
		keep[f] = true
	}

	filtered := &detect.Report{
		Entries:  []detect.TextEntry{},
		Failures: []detect.FileFailure{},
	}
	for _, entry := range rep.Entries {
		if keep[entry.FilePath] {
			filtered.Entries = append(filtered.Entries, entry)
		}
	}
	for _, failure := range rep.Failures {
		if keep[failure.FilePath] {
			filtered.Failures = append(filtered.Failures, failure)
		}
	}
	return filtered
}
