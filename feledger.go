// Package feledger parses plain-text ledger files.
//
// A ledger file is a sequence of transactions, each a dated header line
// followed by indented entries and a blank line:
//
//	2016/08/24 A test transaction in a file
//	  expenses:time  $100
//	  assets:joy  $-100
//
// ParseFile is the single-call entry point. The parser, ledger and formatter
// packages expose the individual stages.
package feledger

import (
	"context"
	"os"

	"github.com/robinvdvleuten/feledger/ast"
	"github.com/robinvdvleuten/feledger/parser"
)

// ParseFile reads filename and returns its transactions in file order.
// Read errors and *parser.ParseError values are returned unchanged.
func ParseFile(filename string) ([]*ast.Transaction, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	l, err := parser.ParseBytesWithFilename(context.Background(), filename, data)
	if err != nil {
		return nil, err
	}

	return l.Transactions, nil
}
