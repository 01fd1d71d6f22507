package extract

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/i18n-detect/internal/detect"
)

// literalKind is the closed set of node shapes the walk distinguishes.
type literalKind int

const (
	kindOther literalKind = iota
	kindStringLiteral
	kindTemplateLiteral
	kindMarkupText
)

// classify maps a tree-sitter node onto a literalKind. Anonymous tokens are
// always kindOther: the `string` keyword in a type annotation is an anonymous
// node with the same kind name as a string literal.
func classify(node *sitter.Node) literalKind {
	if !node.IsNamed() {
		return kindOther
	}
	switch node.Kind() {
	case "string":
		return kindStringLiteral
	case "template_string":
		if hasChildOfKind(node, "template_substitution") {
			return kindOther
		}
		return kindTemplateLiteral
	case "jsx_text":
		return kindMarkupText
	case "html_character_reference":
		// Entities inside attribute strings belong to the string.
		if parent := node.Parent(); parent != nil && parent.Kind() == "jsx_element" {
			return kindMarkupText
		}
	}
	return kindOther
}

// span locates a node: 1-based line of its start, 0-based start and end columns.
type span struct {
	line        int
	startColumn int
	endColumn   int
}

func spanOf(node *sitter.Node) span {
	start, end := node.StartPosition(), node.EndPosition()
	return span{
		line:        int(start.Row) + 1,
		startColumn: int(start.Column),
		endColumn:   int(end.Column),
	}
}

// spanKey is the dedup identity: start line, end column, start column.
type spanKey struct {
	line        int
	endColumn   int
	startColumn int
}

// segmentCollector accumulates segments for a single file, dropping repeated spans.
type segmentCollector struct {
	seen     map[spanKey]struct{}
	segments []detect.Segment
}

func newSegmentCollector() *segmentCollector {
	return &segmentCollector{
		seen:     make(map[spanKey]struct{}),
		segments: []detect.Segment{},
	}
}

// addLiteral records a string or template literal with its decoded value.
func (c *segmentCollector) addLiteral(text string, s span) {
	c.add(text, s)
}

// addMarkupText records JSX text unless it is only whitespace. The raw text is
// kept as is; trimming only decides whether it counts.
func (c *segmentCollector) addMarkupText(raw string, s span) {
	if strings.TrimSpace(raw) == "" {
		return
	}
	c.add(raw, s)
}

func (c *segmentCollector) add(text string, s span) {
	key := spanKey{line: s.line, endColumn: s.endColumn, startColumn: s.startColumn}
	if _, dup := c.seen[key]; dup {
		return
	}
	c.seen[key] = struct{}{}

	c.segments = append(c.segments, detect.Segment{
		OriginalText: text,
		LineNumber:   s.line,
		StartIndex:   s.startColumn,
		EndIndex:     s.endColumn,
	})
}

// visit handles one node of the walk. It always descends into children so
// literals nested in interpolations are found.
func (c *segmentCollector) visit(node *sitter.Node, source []byte) bool {
	switch classify(node) {
	case kindStringLiteral:
		c.addLiteral(stringLiteralValue(node, source), spanOf(node))
	case kindTemplateLiteral:
		c.addLiteral(decodeJSString(innerText(node, source)), spanOf(node))
	case kindMarkupText:
		if text, s, ok := markupRun(node, source); ok {
			c.addMarkupText(text, s)
		}
	}
	return true
}

// markupRun joins node and the markup siblings that directly follow it into
// one segment. The grammar splits JSX text at every character reference, so
// `Tom &amp; Jerry` arrives as three nodes. ok is false when node continues a
// run that an earlier sibling already emitted.
func markupRun(node *sitter.Node, source []byte) (string, span, bool) {
	if prev := node.PrevSibling(); prev != nil && classify(prev) == kindMarkupText {
		return "", span{}, false
	}

	last := node
	for next := last.NextSibling(); next != nil && classify(next) == kindMarkupText; next = last.NextSibling() {
		last = next
	}

	start, end := node.StartPosition(), last.EndPosition()
	s := span{
		line:        int(start.Row) + 1,
		startColumn: int(start.Column),
		endColumn:   int(end.Column),
	}
	return string(source[node.StartByte():last.EndByte()]), s, true
}

// stringLiteralValue returns the decoded value of a string node. JSX attribute
// values have no escape sequences, so they are taken verbatim.
func stringLiteralValue(node *sitter.Node, source []byte) string {
	body := innerText(node, source)
	if parent := node.Parent(); parent != nil && parent.Kind() == "jsx_attribute" {
		return body
	}
	return decodeJSString(body)
}
