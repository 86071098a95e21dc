package formatter

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/feledger/ast"
	"github.com/robinvdvleuten/feledger/parser"
)

func format(t *testing.T, source string, opts ...Option) string {
	t.Helper()
	tree, err := parser.ParseString(context.Background(), source)
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, New(opts...).Format(context.Background(), tree, &buf))
	return buf.String()
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		opts     []Option
		expected string
	}{
		{
			name:   "AlignsValues",
			source: "2016/08/03 Groceries\n  expenses:food:groceries  $42.10\n  assets:cash  $-42.10\n\n",
			expected: "2016/08/03 Groceries\n" +
				"  expenses:food:groceries  $42.1\n" +
				"  assets:cash" + strings.Repeat(" ", 13) + "$-42.1\n" +
				"\n",
		},
		{
			name:   "CollapsesBlankLines",
			source: "\n\n2016/08/24 a\n      x      $1\n      y  $-1\n\n\n\n2016/08/25 b\n  z  $0\n\n",
			expected: "2016/08/24 a\n" +
				"  x   $1\n" +
				"  y  $-1\n" +
				"\n" +
				"2016/08/25 b\n" +
				"  z   $0\n" +
				"\n",
		},
		{
			name:     "DropsTrailingText",
			source:   "2016/08/24 a\n  x  $1 extra\n\n",
			expected: "2016/08/24 a\n  x  $1\n\n",
		},
		{
			name:     "EmptyComment",
			source:   "2016/08/24 \n  x  1\n\n",
			expected: "2016/08/24 \n  x  1\n\n",
		},
		{
			name:     "NormalizesNumbers",
			source:   "2016/08/24 a\n  x  $100.\n  y  $-.50\n\n",
			expected: "2016/08/24 a\n  x   $100\n  y  $-0.5\n\n",
		},
		{
			name:     "ValueColumn",
			source:   "2016/08/24 a\n  x  $1\n\n",
			opts:     []Option{WithValueColumn(12)},
			expected: "2016/08/24 a\n  x" + strings.Repeat(" ", 7) + "$1\n\n",
		},
		{
			name:     "ValueColumnTooNarrow",
			source:   "2016/08/24 a\n  expenses  $1\n\n",
			opts:     []Option{WithValueColumn(4)},
			expected: "2016/08/24 a\n  expenses  $1\n\n",
		},
		{
			name:     "Indentation",
			source:   "2016/08/24 a\n  x  $1\n\n",
			opts:     []Option{WithIndentation(4), WithSeparator(3)},
			expected: "2016/08/24 a\n    x   $1\n\n",
		},
		{
			name:     "IndentationBelowMinimum",
			source:   "2016/08/24 a\n  x  $1\n\n",
			opts:     []Option{WithIndentation(0), WithSeparator(1)},
			expected: "2016/08/24 a\n  x  $1\n\n",
		},
		{
			name:   "WideSymbols",
			source: "2016/08/24 a\n  x  ¥1\n  yy  円-1\n\n",
			// "円" is two display columns wide, "¥" is one.
			expected: "2016/08/24 a\n  x     ¥1\n  yy  円-1\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, format(t, tt.source, tt.opts...))
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	data, err := os.ReadFile("../testdata/example.feledger")
	assert.NoError(t, err)

	ctx := context.Background()
	original, err := parser.ParseBytes(ctx, data)
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, New().Format(ctx, original, &buf))

	reparsed, err := parser.ParseBytes(ctx, buf.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, original.Len(), reparsed.Len())
	for i, txn := range original.Transactions {
		other := reparsed.Transactions[i]
		assert.Equal(t, txn.Date, other.Date)
		assert.Equal(t, txn.Comment, other.Comment)
		assert.Equal(t, len(txn.Entries), len(other.Entries))
		for j, e := range txn.Entries {
			assert.Equal(t, e.Account, other.Entries[j].Account)
			assert.Equal(t, e.Value, other.Entries[j].Value)
		}
	}

	// Formatting is idempotent.
	var again bytes.Buffer
	assert.NoError(t, New().Format(ctx, reparsed, &again))
	assert.Equal(t, buf.String(), again.String())
}

func TestFormatTransaction(t *testing.T) {
	txn := ast.NewTransaction(ast.MustDate("2016/08/24"), "A test transaction",
		ast.WithEntries(
			ast.NewEntry("expenses:time", ast.NewValue(100, "$")),
			ast.NewEntry("assets:joy", ast.NewValue(-100, "$")),
		),
	)

	var buf bytes.Buffer
	assert.NoError(t, New().FormatTransaction(txn, &buf))
	assert.Equal(t, "2016/08/24 A test transaction\n"+
		"  expenses:time  $100\n"+
		"  assets:joy    $-100\n"+
		"\n", buf.String())
}

func TestFormatAmount(t *testing.T) {
	a, b := 0.1, 0.2
	tests := []struct {
		amount float64
		want   string
	}{
		{100, "100"},
		{-100, "-100"},
		{42.1, "42.1"},
		{a + b, "0.30000000000000004"},
		{1e21, "1000000000000000000000"},
		{1e-7, "0.0000001"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount))
		})
	}
}
