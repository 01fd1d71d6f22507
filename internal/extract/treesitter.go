package extract

import (
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// grammar identifies which tree-sitter language a file is parsed with.
type grammar string

const (
	grammarTypeScript grammar = "typescript"
	grammarTSX        grammar = "tsx"
)

// grammarFor picks the grammar for a file extension. Plain TypeScript files
// cannot use the TSX grammar because `<T>expr` assertions conflict with JSX.
func grammarFor(filePath string) grammar {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ts", ".mts", ".cts":
		return grammarTypeScript
	default:
		return grammarTSX
	}
}

// languages holds the compiled tree-sitter languages, shared by all parsers.
type languages struct {
	typescript *sitter.Language
	tsx        *sitter.Language
}

func newLanguages() *languages {
	return &languages{
		typescript: sitter.NewLanguage(typescript.LanguageTypescript()),
		tsx:        sitter.NewLanguage(typescript.LanguageTSX()),
	}
}

func (l *languages) get(g grammar) *sitter.Language {
	if g == grammarTypeScript {
		return l.typescript
	}
	return l.tsx
}

// walkTree visits node and its descendants in pre-order, children in source order.
// Returning false from the visitor skips the node's children.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		walkTree(child, visitor)
	}
}

// hasChildOfKind reports whether node has a direct named child of the given kind.
func hasChildOfKind(node *sitter.Node, kind string) bool {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(uint(i)); child != nil && child.Kind() == kind {
			return true
		}
	}
	return false
}

// innerText returns the node's source text without its first and last byte
// (the quotes or backticks of a literal).
func innerText(node *sitter.Node, source []byte) string {
	start, end := node.StartByte(), node.EndByte()
	if end-start < 2 {
		return ""
	}
	return string(source[start+1 : end-1])
}
