package mdconvert

import (
	"bytes"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// validateMarkdown parses rendered markdown back into an AST and asserts it
// has at least one block node. This package never repairs or rejects
// heading structure (M7, M10 — multiple H1s and skipped heading levels
// both pass through untouched); the only failure this guards against is a
// conversion that silently produced nothing parseable at all.
func validateMarkdown(content []byte) *ConversionError {
	if len(bytes.TrimSpace(content)) == 0 {
		return &ConversionError{
			Message:   "converted markdown is empty",
			Retryable: false,
			Cause:     ErrCauseConversionFailure,
		}
	}

	p := parser.New()
	doc := markdown.Parse(content, p)

	hasBlock := false
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch node.(type) {
		case *ast.Paragraph, *ast.Heading, *ast.List, *ast.CodeBlock,
			*ast.Table, *ast.BlockQuote, *ast.HorizontalRule, *ast.HTMLBlock:
			hasBlock = true
			return ast.Terminate
		}
		return ast.GoToNext
	})

	if !hasBlock {
		return &ConversionError{
			Message:   "converted markdown has no block content",
			Retryable: false,
			Cause:     ErrCauseConversionFailure,
		}
	}
	return nil
}
