package feledger

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/feledger/ast"
	"github.com/robinvdvleuten/feledger/parser"
)

func TestParseFile(t *testing.T) {
	txns, err := ParseFile("testdata/testfile.feledger")
	assert.NoError(t, err)

	assert.Equal(t, 1, len(txns))
	txn := txns[0]
	assert.Equal(t, ast.Date{Year: 2016, Month: 8, Day: 24}, txn.Date)
	assert.Equal(t, "A test transaction in a file", txn.Comment)
	assert.Equal(t, []ast.Entry{
		{
			Pos:     ast.Position{Filename: "testdata/testfile.feledger", Offset: 42, Line: 2, Column: 3},
			Account: ast.Account{Label: "expenses:time"},
			Value:   ast.NewValue(100, "$"),
		},
		{
			Pos:     ast.Position{Filename: "testdata/testfile.feledger", Offset: 64, Line: 3, Column: 3},
			Account: ast.Account{Label: "assets:joy"},
			Value:   ast.NewValue(-100, "$"),
		},
	}, txn.Entries)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.feledger"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestParseFileSyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.feledger")
	assert.NoError(t, os.WriteFile(path, []byte("2016/08/24 x\n  a  $1"), 0600))

	_, err := ParseFile(path)

	var parseErr *parser.ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 2, parseErr.Pos.Line)
	assert.Equal(t, 8, parseErr.Pos.Column)
	assert.True(t, errors.Is(err, parser.ErrParse))
}
