package detect

import (
	"context"
	"sync"
)

// FakeGateway is an in-memory Gateway keyed by file path, for tests and dry runs.
type FakeGateway struct {
	mu       sync.RWMutex
	segments map[string][]Segment
	failures map[string]error
	calls    []string
}

// NewFakeGateway creates an empty fake gateway.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		segments: make(map[string][]Segment),
		failures: make(map[string]error),
	}
}

// AddTextByFilePath registers the segments returned for filePath.
func (f *FakeGateway) AddTextByFilePath(filePath string, text []Segment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.segments[filePath] = text
}

// FailOn makes extraction of filePath return err.
func (f *FakeGateway) FailOn(filePath string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[filePath] = err
}

// ExtractTextEntriesFromFile returns the registered segments, or an empty slice.
func (f *FakeGateway) ExtractTextEntriesFromFile(ctx context.Context, filePath string) ([]Segment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, filePath)

	if err, ok := f.failures[filePath]; ok {
		return nil, err
	}
	if segments, ok := f.segments[filePath]; ok {
		return segments, nil
	}
	return []Segment{}, nil
}

// Calls returns the paths extracted so far, in call order.
func (f *FakeGateway) Calls() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.calls...)
}
