package extract

import (
	"context"
	"errors"
	"fmt"
	"os"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/i18n-detect/internal/detect"
)

// errSyntax is wrapped in parse failures for trees containing ERROR or MISSING nodes.
var errSyntax = errors.New("source contains syntax errors")

// GatewayOption configures a TreeSitterGateway.
type GatewayOption func(*TreeSitterGateway)

// WithAllowSyntaxErrors makes the gateway extract from partially invalid files
// instead of failing them.
func WithAllowSyntaxErrors(allow bool) GatewayOption {
	return func(g *TreeSitterGateway) {
		g.allowSyntaxErrors = allow
	}
}

// TreeSitterGateway extracts string literals and JSX text from
// TypeScript/JavaScript sources using tree-sitter.
type TreeSitterGateway struct {
	languages         *languages
	allowSyntaxErrors bool
}

// NewTreeSitterGateway creates a gateway backed by the TypeScript and TSX grammars.
func NewTreeSitterGateway(opts ...GatewayOption) *TreeSitterGateway {
	g := &TreeSitterGateway{
		languages: newLanguages(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var _ detect.Gateway = (*TreeSitterGateway)(nil)

// ExtractTextEntriesFromFile reads and parses filePath and returns its literal
// text segments in document order.
func (g *TreeSitterGateway) ExtractTextEntriesFromFile(ctx context.Context, filePath string) ([]detect.Segment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, detect.NewReadError(filePath, err)
	}

	return g.extractFromSource(filePath, source)
}

// extractFromSource extracts segments from in-memory source. filePath only
// selects the grammar and labels errors.
func (g *TreeSitterGateway) extractFromSource(filePath string, source []byte) ([]detect.Segment, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(g.languages.get(grammarFor(filePath))); err != nil {
		return nil, detect.NewParseError(filePath, fmt.Errorf("failed to set language: %w", err))
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, detect.NewParseError(filePath, fmt.Errorf("failed to parse %s file", grammarFor(filePath)))
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() && !g.allowSyntaxErrors {
		return nil, detect.NewParseError(filePath, errSyntax)
	}

	collector := newSegmentCollector()
	walkTree(root, func(n *sitter.Node) bool {
		return collector.visit(n, source)
	})

	return collector.segments, nil
}
