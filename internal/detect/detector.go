package detect

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FailurePolicy decides what a run does when the gateway fails for a file.
type FailurePolicy string

const (
	// PolicyAbort stops the run at the first failing file and returns its error.
	PolicyAbort FailurePolicy = "abort"

	// PolicyCollect records failing files in the report and keeps going.
	PolicyCollect FailurePolicy = "collect"
)

// ParseFailurePolicy converts a config value into a FailurePolicy.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(s) {
	case PolicyAbort, PolicyCollect:
		return FailurePolicy(s), nil
	case "":
		return PolicyAbort, nil
	}
	return "", fmt.Errorf("unknown failure policy %q (valid: abort, collect)", s)
}

// Option configures a Detector.
type Option func(*Detector)

// WithFailurePolicy sets the per-file failure policy. Default is PolicyAbort.
func WithFailurePolicy(p FailurePolicy) Option {
	return func(d *Detector) {
		d.policy = p
	}
}

// WithConcurrency sets how many files are extracted at once.
// Values below two keep processing strictly sequential.
func WithConcurrency(n int) Option {
	return func(d *Detector) {
		d.concurrency = n
	}
}

// WithProgress sets the progress reporter.
func WithProgress(p ProgressReporter) Option {
	return func(d *Detector) {
		if p != nil {
			d.progress = p
		}
	}
}

// Detector turns a list of file paths into a hardcoded-text report using a Gateway.
type Detector struct {
	gateway     Gateway
	policy      FailurePolicy
	concurrency int
	progress    ProgressReporter
}

// DetectTranslationsNeeds binds a gateway and returns a detector whose Handle
// method produces the report.
func DetectTranslationsNeeds(gateway Gateway, opts ...Option) *Detector {
	d := &Detector{
		gateway:     gateway,
		policy:      PolicyAbort,
		concurrency: 1,
		progress:    NoOpProgressReporter{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle returns one TextEntry per file with at least one segment, in input order.
// Under PolicyAbort the first gateway failure aborts the call. Under PolicyCollect
// failing files are skipped; use HandleReport to see them.
func (d *Detector) Handle(ctx context.Context, filePaths []string) ([]TextEntry, error) {
	report, err := d.HandleReport(ctx, filePaths)
	if err != nil {
		return nil, err
	}
	return report.Entries, nil
}

// fileResult is the outcome of extracting one input path.
type fileResult struct {
	segments []Segment
	err      error
}

// HandleReport runs detection and returns entries together with per-file failures.
func (d *Detector) HandleReport(ctx context.Context, filePaths []string) (*Report, error) {
	d.progress.OnFileProcessingStart(len(filePaths))

	var (
		results []fileResult
		err     error
	)
	if d.concurrency > 1 && len(filePaths) > 1 {
		results, err = d.extractConcurrent(ctx, filePaths)
	} else {
		results, err = d.extractSequential(ctx, filePaths)
	}
	if err != nil {
		return nil, err
	}

	report := &Report{
		Entries:  []TextEntry{},
		Failures: []FileFailure{},
	}
	stats := Stats{FilesScanned: len(filePaths)}
	for i, res := range results {
		if res.err != nil {
			report.Failures = append(report.Failures, failureFor(filePaths[i], res.err))
			continue
		}
		if len(res.segments) == 0 {
			continue
		}
		report.Entries = append(report.Entries, TextEntry{
			FilePath: filePaths[i],
			Segment:  res.segments,
		})
		stats.Segments += len(res.segments)
	}
	stats.FilesWithText = len(report.Entries)
	stats.Failures = len(report.Failures)

	d.progress.OnComplete(stats)
	return report, nil
}

func (d *Detector) extractSequential(ctx context.Context, filePaths []string) ([]fileResult, error) {
	results := make([]fileResult, len(filePaths))
	for i, path := range filePaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		segments, err := d.gateway.ExtractTextEntriesFromFile(ctx, path)
		d.progress.OnFileProcessed(path, len(segments))
		if err != nil && d.policy != PolicyCollect {
			return nil, err
		}
		results[i] = fileResult{segments: segments, err: err}
	}
	return results, nil
}

func (d *Detector) extractConcurrent(ctx context.Context, filePaths []string) ([]fileResult, error) {
	results := make([]fileResult, len(filePaths))
	tracker := newAbortTracker()

	var g errgroup.Group
	g.SetLimit(d.concurrency)

	for i, path := range filePaths {
		g.Go(func() error {
			fileCtx, ok := tracker.start(ctx, i)
			if !ok {
				return nil
			}
			defer tracker.finish(i)

			segments, err := d.gateway.ExtractTextEntriesFromFile(fileCtx, path)
			if tracker.superseded(i) {
				// An earlier file failed; this result can no longer matter.
				return nil
			}
			d.progress.OnFileProcessed(path, len(segments))
			results[i] = fileResult{segments: segments, err: err}
			if err != nil && d.policy != PolicyCollect {
				tracker.fail(i)
			}
			return nil
		})
	}

	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if failed := tracker.lowestFailure(); failed >= 0 {
		return nil, results[failed].err
	}
	return results, nil
}

// abortTracker remembers the lowest failing input index of a concurrent run.
// A failure cancels only files with a higher index, so every earlier file
// still completes and the reported error matches a sequential run.
type abortTracker struct {
	mu      sync.Mutex
	failed  int
	cancels map[int]context.CancelFunc
}

func newAbortTracker() *abortTracker {
	return &abortTracker{
		failed:  -1,
		cancels: make(map[int]context.CancelFunc),
	}
}

// start returns the context for file i, or false when i is past a failure.
func (a *abortTracker) start(ctx context.Context, i int) (context.Context, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failed >= 0 && i > a.failed {
		return nil, false
	}
	fileCtx, cancel := context.WithCancel(ctx)
	a.cancels[i] = cancel
	return fileCtx, true
}

func (a *abortTracker) finish(i int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if cancel, ok := a.cancels[i]; ok {
		cancel()
		delete(a.cancels, i)
	}
}

// fail records a failure at i and cancels in-flight files after it.
func (a *abortTracker) fail(i int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failed >= 0 && a.failed <= i {
		return
	}
	a.failed = i
	for j, cancel := range a.cancels {
		if j > i {
			cancel()
		}
	}
}

func (a *abortTracker) superseded(i int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.failed >= 0 && i > a.failed
}

func (a *abortTracker) lowestFailure() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.failed
}
