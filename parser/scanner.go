package parser

import "github.com/robinvdvleuten/feledger/ast"

// scanner is a byte cursor over the source buffer. It never copies the
// input: tokens and values are sliced straight out of source.
type scanner struct {
	source   []byte // Source buffer
	filename string // Filename for error reporting
	pos      int    // Current byte position
	line     int    // Current line (1-indexed)
	column   int    // Current column (1-indexed)
}

func newScanner(source []byte, filename string) scanner {
	return scanner{
		source:   source,
		filename: filename,
		line:     1,
		column:   1,
	}
}

// cursor is a saved scanner position, used to start tokens and to backtrack.
type cursor struct {
	pos, line, column int
}

func (s *scanner) mark() cursor {
	return cursor{s.pos, s.line, s.column}
}

func (s *scanner) reset(m cursor) {
	s.pos, s.line, s.column = m.pos, m.line, m.column
}

func (s *scanner) atEnd() bool {
	return s.pos >= len(s.source)
}

func (s *scanner) peek() byte {
	if s.pos >= len(s.source) {
		return 0
	}
	return s.source[s.pos]
}

func (s *scanner) advance() byte {
	if s.pos >= len(s.source) {
		return 0
	}
	ch := s.source[s.pos]
	s.pos++
	if ch == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return ch
}

// position reports the current cursor as an ast.Position.
func (s *scanner) position() ast.Position {
	return ast.Position{
		Filename: s.filename,
		Offset:   s.pos,
		Line:     s.line,
		Column:   s.column,
	}
}

func (s *scanner) positionAt(m cursor) ast.Position {
	return ast.Position{
		Filename: s.filename,
		Offset:   m.pos,
		Line:     m.line,
		Column:   m.column,
	}
}

// errorf builds a ParseError at the current cursor.
func (s *scanner) errorf(format string, args ...interface{}) error {
	return newErrorf(s.position(), format, args...)
}

// describe renders the byte under the cursor for error messages.
func (s *scanner) describe() string {
	switch {
	case s.atEnd():
		return "end of input"
	case s.peek() == '\n':
		return "end of line"
	case s.peek() == '\r':
		return `"\r"`
	default:
		return "\"" + string(s.peek()) + "\""
	}
}
