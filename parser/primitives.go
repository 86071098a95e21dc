package parser

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// takeDigits consumes exactly n ASCII digits and returns their span.
func (p *Parser) takeDigits(n int) (int, int, error) {
	start := p.pos
	for i := 0; i < n; i++ {
		if !isDigit(p.peek()) {
			return 0, 0, p.errorf("expected %d digits, got %s", n, p.describe())
		}
		p.advance()
	}
	return start, p.pos, nil
}

// digitRun greedily consumes zero or more ASCII digits.
func (p *Parser) digitRun() int {
	n := 0
	for isDigit(p.peek()) {
		p.advance()
		n++
	}
	return n
}

// sign consumes an optional minus and returns the multiplier it implies.
func (p *Parser) sign() float64 {
	if p.peek() == '-' {
		p.advance()
		return -1
	}
	return 1
}

// spaces consumes a run of at least min spaces and returns how many it took.
func (p *Parser) spaces(min int, what string) (int, error) {
	n := 0
	for p.peek() == ' ' {
		p.advance()
		n++
	}
	if n < min {
		return n, p.errorf("expected %s, got %s", what, p.describe())
	}
	return n, nil
}

// expectByte consumes b or fails.
func (p *Parser) expectByte(b byte, what string) error {
	if p.peek() != b || p.atEnd() {
		return p.errorf("expected %s, got %s", what, p.describe())
	}
	p.advance()
	return nil
}
