package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mvp-joe/i18n-detect/internal/detect"
)

// Format selects how a report is rendered.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Envelope is the serialized form of a detection report.
type Envelope struct {
	RunID       string               `json:"run_id"`
	GeneratedAt time.Time            `json:"generated_at"`
	Entries     []detect.TextEntry   `json:"entries"`
	Failures    []detect.FileFailure `json:"failures"`
}

// NewEnvelope wraps a report with a fresh run id and timestamp.
func NewEnvelope(r *detect.Report) *Envelope {
	env := &Envelope{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Entries:     []detect.TextEntry{},
		Failures:    []detect.FileFailure{},
	}
	if r != nil {
		if r.Entries != nil {
			env.Entries = r.Entries
		}
		if r.Failures != nil {
			env.Failures = r.Failures
		}
	}
	return env
}

// Write renders env to w in the given format.
func Write(w io.Writer, env *Envelope, format Format) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(env); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	case FormatText:
		return writeText(w, env)
	}
	return fmt.Errorf("unknown report format %q", format)
}

// writeText prints one line per segment as path:line:start-end followed by the
// quoted text, then one line per failure.
func writeText(w io.Writer, env *Envelope) error {
	for _, entry := range env.Entries {
		for _, seg := range entry.Segment {
			if _, err := fmt.Fprintf(w, "%s:%d:%d-%d\t%s\n",
				entry.FilePath, seg.LineNumber, seg.StartIndex, seg.EndIndex,
				strconv.Quote(seg.OriginalText)); err != nil {
				return err
			}
		}
	}
	for _, failure := range env.Failures {
		if _, err := fmt.Fprintf(w, "%s: %s error: %s\n", failure.FilePath, failure.Kind, failure.Message); err != nil {
			return err
		}
	}
	return nil
}

// CountSegments returns the total number of segments across entries.
func CountSegments(entries []detect.TextEntry) int {
	total := 0
	for _, e := range entries {
		total += len(e.Segment)
	}
	return total
}
