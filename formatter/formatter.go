// Package formatter writes ledgers back out in canonical form.
//
// Entry values are right-aligned on a common column so that amounts line up:
//
//	2016/08/24 Groceries
//	  expenses:food:groceries  $42.1
//	  assets:cash             $-42.1
//
// Output always parses back to an equal ledger.
package formatter

import (
	"context"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/feledger/ast"
	"github.com/robinvdvleuten/feledger/telemetry"
)

const (
	// DefaultIndentation is the default indentation for entry lines.
	DefaultIndentation = 2

	// MinimumSpacing is the minimum number of spaces the grammar accepts
	// before an account and between an account and its value.
	MinimumSpacing = 2
)

// Formatter handles formatting of ledger files with aligned values.
type Formatter struct {
	// Indentation is the number of spaces before each account.
	// Values below MinimumSpacing are raised to it.
	Indentation int

	// ValueColumn is the display column at which values end.
	// If 0, it is computed from the widest entry in the ledger.
	ValueColumn int

	// Separator is the minimum run of spaces between account and value.
	Separator int
}

// Option is a functional option for configuring a Formatter.
type Option func(*Formatter)

// WithIndentation sets the number of spaces before each account.
func WithIndentation(n int) Option {
	return func(f *Formatter) {
		f.Indentation = n
	}
}

// WithValueColumn sets the column values are right-aligned to.
func WithValueColumn(col int) Option {
	return func(f *Formatter) {
		f.ValueColumn = col
	}
}

// WithSeparator sets the minimum spacing between account and value.
func WithSeparator(n int) Option {
	return func(f *Formatter) {
		f.Separator = n
	}
}

// New creates a new Formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		Indentation: DefaultIndentation,
		Separator:   MinimumSpacing,
	}

	for _, opt := range opts {
		opt(f)
	}

	f.Indentation = max(f.Indentation, MinimumSpacing)
	f.Separator = max(f.Separator, MinimumSpacing)

	return f
}

// Format writes every transaction of l to w.
func (f *Formatter) Format(ctx context.Context, l *ast.Ledger, w io.Writer) error {
	timer := telemetry.StartTimer(ctx, "formatter.format")
	defer timer.End()

	column := f.ValueColumn
	if column == 0 {
		column = f.valueColumn(l.Transactions...)
	}

	var buf strings.Builder
	buf.Grow(l.Entries()*48 + l.Len()*32)

	for _, txn := range l.Transactions {
		f.formatTransaction(txn, column, &buf)
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

// FormatTransaction writes a single transaction, aligned on its own entries
// unless a value column is configured.
func (f *Formatter) FormatTransaction(txn *ast.Transaction, w io.Writer) error {
	column := f.ValueColumn
	if column == 0 {
		column = f.valueColumn(txn)
	}

	var buf strings.Builder
	f.formatTransaction(txn, column, &buf)

	_, err := io.WriteString(w, buf.String())
	return err
}

// valueColumn finds the narrowest column that fits every entry.
func (f *Formatter) valueColumn(txns ...*ast.Transaction) int {
	column := 0
	for _, txn := range txns {
		for _, e := range txn.Entries {
			width := f.Indentation + runewidth.StringWidth(e.Account.Label) + f.Separator +
				runewidth.StringWidth(FormatValue(e.Value))
			column = max(column, width)
		}
	}
	return column
}

func (f *Formatter) formatTransaction(txn *ast.Transaction, column int, buf *strings.Builder) {
	buf.WriteString(txn.Date.String())
	buf.WriteByte(' ')
	buf.WriteString(txn.Comment)
	buf.WriteByte('\n')

	for _, e := range txn.Entries {
		f.formatEntry(e, column, buf)
	}

	// Blank-line terminator.
	buf.WriteByte('\n')
}

func (f *Formatter) formatEntry(e ast.Entry, column int, buf *strings.Builder) {
	value := FormatValue(e.Value)

	buf.WriteString(strings.Repeat(" ", f.Indentation))
	buf.WriteString(e.Account.Label)

	used := f.Indentation + runewidth.StringWidth(e.Account.Label) + runewidth.StringWidth(value)
	padding := max(column-used, f.Separator)
	buf.WriteString(strings.Repeat(" ", padding))

	buf.WriteString(value)
	buf.WriteByte('\n')
}

// FormatValue renders a value as symbol followed by its amount.
func FormatValue(v ast.Value) string {
	return v.Currency.Symbol + FormatAmount(v.Amount)
}

// FormatAmount renders an amount in plain decimal notation. Amounts
// are shown with the shortest digits that read back as the same float.
func FormatAmount(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}
	return decimal.NewFromFloat(amount).String()
}
