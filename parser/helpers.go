package parser

import (
	"strconv"

	"github.com/robinvdvleuten/feledger/ast"
)

// Grammar rules for the leaves of an entry line and a header. Each rule
// either consumes its input and records a token, or returns a ParseError with
// the cursor left at the offending byte.

// parseDate parses YYYY/MM/DD. Only the shape is checked.
func (p *Parser) parseDate() (ast.Date, error) {
	start := p.mark()

	ys, ye, err := p.takeDigits(4)
	if err != nil {
		return ast.Date{}, err
	}
	if err := p.expectByte('/', `"/" after year`); err != nil {
		return ast.Date{}, err
	}
	ms, me, err := p.takeDigits(2)
	if err != nil {
		return ast.Date{}, err
	}
	if err := p.expectByte('/', `"/" after month`); err != nil {
		return ast.Date{}, err
	}
	ds, de, err := p.takeDigits(2)
	if err != nil {
		return ast.Date{}, err
	}

	p.emit(DATE, start)

	return ast.Date{
		Year:  atoi(p.source[ys:ye]),
		Month: atoi(p.source[ms:me]),
		Day:   atoi(p.source[ds:de]),
	}, nil
}

// atoi converts a run of ASCII digits already validated by takeDigits.
func atoi(b []byte) int {
	n := 0
	for _, c := range b {
		n = n*10 + int(c-'0')
	}
	return n
}

// parseAccount parses one alphabetic run followed by any number of
// ":" + alphabetic run groups. A colon not followed by a letter is left
// unconsumed. The label is interned.
func (p *Parser) parseAccount() (ast.Account, error) {
	start := p.mark()

	if !ast.IsAlpha(p.peek()) {
		return ast.Account{}, p.errorf("expected account, got %s", p.describe())
	}
	p.alphaRun()

	for p.peek() == ':' && p.pos+1 < len(p.source) && ast.IsAlpha(p.source[p.pos+1]) {
		p.advance()
		p.alphaRun()
	}

	label := p.interner.InternBytes(p.source[start.pos:p.pos])
	p.emit(ACCOUNT, start)

	return ast.Account{Label: label}, nil
}

func (p *Parser) alphaRun() {
	for ast.IsAlpha(p.peek()) {
		p.advance()
	}
}

// parseValue parses a currency symbol followed by a signed decimal:
//
//	$100       → {100, "$"}
//	$-42.10    → {-42.1, "$"}
//	USD 12.5   → {12.5, "USD "}
//	100        → {100, ""}
//
// The symbol is every byte before the first digit, minus sign or dot. It may
// be empty but must not run into the end of the line.
func (p *Parser) parseValue() (ast.Value, error) {
	symStart := p.mark()
	for !p.atEnd() {
		ch := p.peek()
		if isDigit(ch) || ch == '-' || ch == '.' {
			break
		}
		if ch == '\n' {
			return ast.Value{}, p.errorf("expected amount, got end of line")
		}
		p.advance()
	}
	if p.atEnd() {
		return ast.Value{}, p.errorf("expected amount, got end of input")
	}

	symbol := p.interner.InternBytes(p.source[symStart.pos:p.pos])
	if p.pos > symStart.pos {
		p.emit(SYMBOL, symStart)
	}

	numStart := p.mark()
	sign := p.sign()
	magStart := p.pos
	digits := p.digitRun()
	if p.peek() == '.' {
		p.advance()
		digits += p.digitRun()
	}
	if digits == 0 {
		p.reset(numStart)
		return ast.Value{}, p.errorf("expected number, got %s", p.describe())
	}

	magnitude, err := strconv.ParseFloat(string(p.source[magStart:p.pos]), 64)
	if err != nil {
		return ast.Value{}, newErrorf(p.positionAt(numStart), "invalid number: %v", err)
	}
	p.emit(NUMBER, numStart)

	return ast.Value{
		Amount:   sign * magnitude,
		Currency: ast.Currency{Symbol: symbol},
	}, nil
}

// restOfLine consumes everything up to, but not including, the next newline
// and records it as a token of the given type when non-empty.
func (p *Parser) restOfLine(typ TokenType) string {
	start := p.mark()
	for !p.atEnd() && p.peek() != '\n' {
		p.advance()
	}
	if p.pos == start.pos {
		return ""
	}
	p.emit(typ, start)
	return string(p.source[start.pos:p.pos])
}

// newline consumes a single "\n".
func (p *Parser) newline(what string) error {
	start := p.mark()
	if err := p.expectByte('\n', what); err != nil {
		return err
	}
	p.emit(NEWLINE, start)
	return nil
}
