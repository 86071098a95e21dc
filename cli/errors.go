package cli

import (
	"bytes"
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/feledger/ast"
	"github.com/robinvdvleuten/feledger/formatter"
	"github.com/robinvdvleuten/feledger/parser"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	source []byte
}

// NewErrorRenderer creates a renderer with source content for context.
func NewErrorRenderer(source []byte) *ErrorRenderer {
	return &ErrorRenderer{source: source}
}

// Render formats a single error with styling and context.
//
// Parse errors point at the offending column in the source. Validation
// errors show the transaction they belong to, as the formatter prints it.
func (r *ErrorRenderer) Render(err error) string {
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) && r.source != nil {
		return r.renderWithSourceContext(parseErr.Pos, parseErr.Error(), r.source)
	}

	if e, ok := err.(interface {
		GetTransaction() *ast.Transaction
		Error() string
	}); ok && e.GetTransaction() != nil {
		return r.renderWithContext(e.Error(), e.GetTransaction())
	}

	if e, ok := err.(interface {
		GetPosition() ast.Position
		Error() string
	}); ok {
		if r.source != nil && !e.GetPosition().IsZero() {
			return r.renderWithSourceContext(e.GetPosition(), e.Error(), r.source)
		}
	}

	return err.Error()
}

// RenderAll formats multiple errors, separating them with blank lines.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf strings.Builder
	for i, err := range errs {
		buf.WriteString(r.Render(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

func (r *ErrorRenderer) renderWithSourceContext(pos ast.Position, message string, sourceContent []byte) string {
	var buf strings.Builder

	buf.WriteString(errorStyle.Render(message))
	buf.WriteString("\n\n")

	sourceLines := strings.Split(string(sourceContent), "\n")

	startLine := max(pos.Line-3, 0)
	endLine := min(pos.Line+1, len(sourceLines)-1)

	for i := startLine; i <= endLine; i++ {
		buf.WriteString("   ")
		buf.WriteString(errContextStyle.Render(sourceLines[i]))
		buf.WriteByte('\n')

		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", pos.Column-1))
			buf.WriteString(errCaretStyle.Render("^"))
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

func (r *ErrorRenderer) renderWithContext(message string, txn *ast.Transaction) string {
	var buf strings.Builder

	buf.WriteString(errorStyle.Render(message))
	buf.WriteString("\n\n")

	var txnBuf bytes.Buffer
	if err := formatter.New().FormatTransaction(txn, &txnBuf); err == nil {
		for _, line := range bytes.Split(txnBuf.Bytes(), []byte("\n")) {
			if len(line) > 0 {
				buf.WriteString("   ")
				buf.WriteString(errContextStyle.Render(string(line)))
				buf.WriteByte('\n')
			}
		}
	}

	return buf.String()
}
