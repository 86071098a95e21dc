package parser

// TokenType represents the type of token recognized by the grammar.
type TokenType uint8

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Header line
	DATE    // 2016/08/24
	COMMENT // free-form text after the date

	// Entry line
	INDENT    // leading spaces before the account
	ACCOUNT   // expenses:food
	SEPARATOR // run of spaces
	SYMBOL    // currency symbol preceding the number
	NUMBER    // -42.10
	TRAILING  // ignored text after the number

	NEWLINE // \n
)

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	DATE:    "DATE",
	COMMENT: "COMMENT",

	INDENT:    "INDENT",
	ACCOUNT:   "ACCOUNT",
	SEPARATOR: "SEPARATOR",
	SYMBOL:    "SYMBOL",
	NUMBER:    "NUMBER",
	TRAILING:  "TRAILING",

	NEWLINE: "NEWLINE",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token represents a lexical token with zero-copy semantics.
// Instead of storing the token text as a string (which would allocate),
// we store byte offsets into the original source buffer.
type Token struct {
	Type   TokenType
	Start  int // Byte offset into source buffer
	End    int // End offset (exclusive)
	Line   int // Line number (1-indexed)
	Column int // Column number (1-indexed)
}

// String materializes the token text from the source buffer.
func (t Token) String(source []byte) string {
	if t.Start > len(source) || t.End > len(source) || t.Start > t.End {
		return ""
	}
	return string(source[t.Start:t.End])
}

// Bytes returns a zero-copy view of the token text.
func (t Token) Bytes(source []byte) []byte {
	if t.Start > len(source) || t.End > len(source) || t.Start > t.End {
		return nil
	}
	return source[t.Start:t.End]
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}
