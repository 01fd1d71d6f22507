package detect

// ProgressReporter receives callbacks while a detection run progresses.
// With concurrency above one, OnFileProcessed may be called from several goroutines.
type ProgressReporter interface {
	// OnFileProcessingStart is called once before any file is extracted.
	OnFileProcessingStart(totalFiles int)

	// OnFileProcessed is called after each file, successful or not.
	OnFileProcessed(filePath string, segments int)

	// OnComplete is called when the run finishes without aborting.
	OnComplete(stats Stats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnFileProcessingStart(totalFiles int)          {}
func (NoOpProgressReporter) OnFileProcessed(filePath string, segments int) {}
func (NoOpProgressReporter) OnComplete(stats Stats)                        {}
