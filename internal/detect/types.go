package detect

import "context"

// Segment is one literal text occurrence found in a source file.
type Segment struct {
	// OriginalText is the literal as it appears in source. JSX text is kept
	// untrimmed; string literals hold their decoded value.
	OriginalText string `json:"originalText"`

	// LineNumber is the 1-based line where the occurrence starts.
	LineNumber int `json:"lineNumber"`

	// StartIndex and EndIndex are 0-based byte columns taken from the parser,
	// not UTF-16 units, so each non-ASCII character counts its UTF-8 length.
	// EndIndex is a column on the segment's last line, so a multi-line segment
	// can end before it starts.
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`

	// ProposedTranslation is never set during detection.
	ProposedTranslation *string `json:"proposedTranslation,omitempty"`
}

// TextEntry groups every segment found in one file, in discovery order.
type TextEntry struct {
	FilePath string    `json:"filePath"`
	Segment  []Segment `json:"segment"`
}

// Gateway turns a file path into the literal text segments it contains.
// Implementations return an empty slice, not an error, for files without literals.
type Gateway interface {
	ExtractTextEntriesFromFile(ctx context.Context, filePath string) ([]Segment, error)
}

// GatewayFunc adapts a plain function to the Gateway interface.
type GatewayFunc func(ctx context.Context, filePath string) ([]Segment, error)

// ExtractTextEntriesFromFile calls f.
func (f GatewayFunc) ExtractTextEntriesFromFile(ctx context.Context, filePath string) ([]Segment, error) {
	return f(ctx, filePath)
}

// FileFailure records a file the detector could not analyze.
type FileFailure struct {
	FilePath string    `json:"filePath"`
	Kind     ErrorKind `json:"kind"`
	Message  string    `json:"message"`
}

// Report is the full result of one detection run.
type Report struct {
	Entries  []TextEntry   `json:"entries"`
	Failures []FileFailure `json:"failures,omitempty"`
}

// Stats summarizes a detection run for progress reporting.
type Stats struct {
	FilesScanned  int
	FilesWithText int
	Segments      int
	Failures      int
}
