// Package parser turns ledger source text into an ast.Ledger.
//
// The grammar is line oriented and whitespace sensitive:
//
//	2016/08/24 Comment text
//	  account:name  $-42.10
//	  other:account  $42.10
//	<blank line>
//
// Parsing is all or nothing. Any byte the grammar cannot place fails the
// whole file with a *ParseError, which matches ErrParse.
package parser

import (
	"context"
	"io"

	"github.com/robinvdvleuten/feledger/ast"
	"github.com/robinvdvleuten/feledger/telemetry"
)

// Parser walks the source once, building the AST and recording tokens as it goes.
type Parser struct {
	scanner
	tokens   []Token   // Recognized tokens, in source order
	interner *Interner // Pool for account labels and currency symbols
}

// NewParser creates a parser for the given source.
func NewParser(source []byte, filename string) *Parser {
	// Entry lines produce around six tokens per 25 bytes.
	estimatedTokens := len(source)/4 + 16

	internerCap := len(source) / 40
	if internerCap < 64 {
		internerCap = 64
	}

	return &Parser{
		scanner:  newScanner(source, filename),
		tokens:   make([]Token, 0, estimatedTokens),
		interner: NewInterner(internerCap),
	}
}

// Interner returns the string pool used for labels and symbols.
func (p *Parser) Interner() *Interner {
	return p.interner
}

// Tokens returns the tokens recognized so far.
func (p *Parser) Tokens() []Token {
	return p.tokens
}

// emit records a token spanning from start to the current cursor.
func (p *Parser) emit(typ TokenType, start cursor) {
	p.tokens = append(p.tokens, Token{
		Type:   typ,
		Start:  start.pos,
		End:    p.pos,
		Line:   start.line,
		Column: start.column,
	})
}

// Parse parses the whole source into a ledger.
func (p *Parser) Parse(ctx context.Context) (*ast.Ledger, error) {
	p.blankLines()

	if p.atEnd() {
		return nil, p.errorf("expected transaction, got end of input")
	}

	ledger := &ast.Ledger{
		Transactions: make([]*ast.Transaction, 0, len(p.source)/80+1),
	}

	for !p.atEnd() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		txn, err := p.parseTransaction()
		if err != nil {
			return nil, err
		}
		ledger.Transactions = append(ledger.Transactions, txn)
	}

	p.emit(EOF, p.mark())

	return ledger, nil
}

// ParseBytesWithFilename parses data, stamping filename into every position.
func ParseBytesWithFilename(ctx context.Context, filename string, data []byte) (*ast.Ledger, error) {
	timer := telemetry.FromContext(ctx).Start("parser.parse")
	defer timer.End()

	return NewParser(data, filename).Parse(ctx)
}

// ParseBytes parses a ledger from a byte buffer.
func ParseBytes(ctx context.Context, data []byte) (*ast.Ledger, error) {
	return ParseBytesWithFilename(ctx, "", data)
}

// ParseString parses a ledger from a string.
func ParseString(ctx context.Context, str string) (*ast.Ledger, error) {
	return ParseBytes(ctx, []byte(str))
}

// MustParseString is like ParseString but panics on error. Intended for
// tests and benchmarks with literal input.
func MustParseString(ctx context.Context, str string) *ast.Ledger {
	l, err := ParseString(ctx, str)
	if err != nil {
		panic(err)
	}
	return l
}

// Parse reads r to the end and parses the result.
func Parse(ctx context.Context, r io.Reader) (*ast.Ledger, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(ctx, data)
}

// Tokenize runs the grammar over data and returns the tokens it recognized.
// On failure the tokens up to the failing byte are returned with the error.
func Tokenize(data []byte, filename string) ([]Token, error) {
	p := NewParser(data, filename)
	_, err := p.Parse(context.Background())
	return p.tokens, err
}
