package detect

// SegmentBuilder builds Segments for tests with zero-valued defaults.
type SegmentBuilder struct {
	segment Segment
}

// NewSegmentBuilder starts a builder for an empty segment.
func NewSegmentBuilder() *SegmentBuilder {
	return &SegmentBuilder{}
}

func (b *SegmentBuilder) WithOriginalText(text string) *SegmentBuilder {
	b.segment.OriginalText = text
	return b
}

func (b *SegmentBuilder) WithLineNumber(line int) *SegmentBuilder {
	b.segment.LineNumber = line
	return b
}

func (b *SegmentBuilder) WithStartIndex(index int) *SegmentBuilder {
	b.segment.StartIndex = index
	return b
}

func (b *SegmentBuilder) WithEndIndex(index int) *SegmentBuilder {
	b.segment.EndIndex = index
	return b
}

// Build returns a copy of the configured segment.
func (b *SegmentBuilder) Build() Segment {
	return b.segment
}
