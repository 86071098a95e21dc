package parser

import "github.com/robinvdvleuten/feledger/ast"

// Transaction parsing. A transaction is a header line followed by indented
// entry lines and closed by at least one blank line:
//
//	2016/08/24 A test transaction in a file
//	  expenses:time  $100
//	  assets:joy  $-100
//

// parseTransaction parses a full transaction including its blank-line terminator.
func (p *Parser) parseTransaction() (*ast.Transaction, error) {
	pos := p.position()

	date, err := p.parseDate()
	if err != nil {
		return nil, err
	}

	if err := p.separator(1, "space after date"); err != nil {
		return nil, err
	}

	txn := &ast.Transaction{
		Pos:     pos,
		Date:    date,
		Comment: p.restOfLine(COMMENT),
	}

	if err := p.newline("newline after transaction header"); err != nil {
		return nil, err
	}

	entries, err := p.parseEntries()
	if err != nil {
		return nil, err
	}
	txn.Entries = entries

	// Blank-line terminator: one or more newlines.
	if err := p.newline("blank line after transaction"); err != nil {
		return nil, err
	}
	p.blankLines()

	return txn, nil
}

// parseEntries parses one or more entry lines, each followed by a newline.
func (p *Parser) parseEntries() ([]ast.Entry, error) {
	entries := make([]ast.Entry, 0, 4)

	for p.peek() == ' ' {
		entry, err := p.parseEntry()
		if err != nil {
			return nil, err
		}
		if err := p.newline("newline after entry"); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, p.errorf("expected indented entry, got %s", p.describe())
	}

	return entries, nil
}

// parseEntry parses `  account  value` and drops anything after the value.
func (p *Parser) parseEntry() (ast.Entry, error) {
	indent := p.mark()
	if _, err := p.spaces(2, "at least two spaces before account"); err != nil {
		return ast.Entry{}, err
	}
	p.emit(INDENT, indent)

	pos := p.position()
	account, err := p.parseAccount()
	if err != nil {
		return ast.Entry{}, err
	}

	if err := p.separator(2, "at least two spaces between account and amount"); err != nil {
		return ast.Entry{}, err
	}

	value, err := p.parseValue()
	if err != nil {
		return ast.Entry{}, err
	}

	p.restOfLine(TRAILING)

	return ast.Entry{Pos: pos, Account: account, Value: value}, nil
}

// separator consumes a run of at least min spaces as a SEPARATOR token.
func (p *Parser) separator(min int, what string) error {
	start := p.mark()
	if _, err := p.spaces(min, what); err != nil {
		return err
	}
	p.emit(SEPARATOR, start)
	return nil
}

// blankLines consumes any run of newlines.
func (p *Parser) blankLines() {
	for p.peek() == '\n' && !p.atEnd() {
		start := p.mark()
		p.advance()
		p.emit(NEWLINE, start)
	}
}
