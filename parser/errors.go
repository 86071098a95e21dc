package parser

import (
	"errors"
	"fmt"

	"github.com/robinvdvleuten/feledger/ast"
)

// ErrParse is matched by every error the grammar returns. Callers that only
// need to know the input was rejected can test with errors.Is.
var ErrParse = errors.New("parse error")

// ParseError represents a syntax error during parsing.
type ParseError struct {
	Pos     ast.Position
	Message string
}

func (e *ParseError) Error() string {
	location := fmt.Sprintf("%s:%d:%d", e.Pos.Filename, e.Pos.Line, e.Pos.Column)
	if e.Pos.Filename == "" {
		location = fmt.Sprintf("line %d:%d", e.Pos.Line, e.Pos.Column)
	}

	return fmt.Sprintf("%s: %s", location, e.Message)
}

func (e *ParseError) GetPosition() ast.Position {
	return e.Pos
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

func newErrorf(pos ast.Position, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}
