package ledger

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/feledger/ast"
)

func txn(comment string, entries ...ast.Entry) *ast.Transaction {
	return ast.NewTransaction(ast.Date{Year: 2016, Month: 8, Day: 13}, comment, ast.WithEntries(entries...))
}

func entry(account string, amount float64, symbol string) ast.Entry {
	return ast.NewEntry(account, ast.NewValue(amount, symbol))
}

func TestCheckBalance(t *testing.T) {
	tests := []struct {
		name     string
		entries  []ast.Entry
		balanced bool
	}{
		{
			name:     "Simple",
			entries:  []ast.Entry{entry("left", 100, "$"), entry("right", -100, "$")},
			balanced: true,
		},
		{
			name:     "SimpleBad",
			entries:  []ast.Entry{entry("left", 101, "$"), entry("right", -100, "$")},
			balanced: false,
		},
		{
			name: "MultiCurrency",
			entries: []ast.Entry{
				entry("left", 100, "$"), entry("right", -100, "$"),
				entry("left", 50, "€"), entry("right", -50, "€"),
			},
			balanced: true,
		},
		{
			name: "MultiCurrencyBad",
			entries: []ast.Entry{
				entry("left", 100, "$"), entry("right", -100, "$"),
				entry("left", 50, "€"), entry("right", -49, "€"),
			},
			balanced: false,
		},
		{
			// Negative residue is as unbalanced as a positive one.
			name:     "NegativeResidue",
			entries:  []ast.Entry{entry("left", 99, "$"), entry("right", -100, "$")},
			balanced: false,
		},
		{
			name:     "CrossCurrencyDoesNotNet",
			entries:  []ast.Entry{entry("left", 100, "$"), entry("right", -100, "€")},
			balanced: false,
		},
		{
			name:     "SingleZeroEntry",
			entries:  []ast.Entry{entry("left", 0, "$")},
			balanced: true,
		},
		{
			name:     "NoEntries",
			entries:  nil,
			balanced: true,
		},
		{
			name:     "ThreeWaySplit",
			entries:  []ast.Entry{entry("food", 64, "$"), entry("bank", -40, "$"), entry("cash", -24, "$")},
			balanced: true,
		},
		{
			// Exact comparison: 0.1 + 0.2 - 0.3 leaves a rounding residue.
			name:     "FloatResidue",
			entries:  []ast.Entry{entry("a", 0.1, "$"), entry("b", 0.2, "$"), entry("c", -0.3, "$")},
			balanced: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckBalance(txn("Test Transaction", tt.entries...))
			if tt.balanced {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrUnbalanced))

			var uerr *UnbalancedError
			assert.True(t, errors.As(err, &uerr))
			assert.Equal(t, "Test Transaction", uerr.GetTransaction().Comment)
		})
	}
}

func TestAggregate(t *testing.T) {
	t.Run("CreatesAndAccumulates", func(t *testing.T) {
		balances := Balances{}
		assert.NoError(t, Aggregate(txn("a", entry("x", 100, "$"), entry("y", -100, "$")), balances))
		assert.NoError(t, Aggregate(txn("b", entry("x", 50, "$"), entry("y", -50, "$")), balances))

		assert.Equal(t, Balances{
			{Label: "x"}: ast.NewValue(150, "$"),
			{Label: "y"}: ast.NewValue(-150, "$"),
		}, balances)
	})

	t.Run("SameTransactionTwice", func(t *testing.T) {
		balances := Balances{}
		same := txn("a", entry("left", 100, "$"), entry("right", -100, "$"))
		assert.NoError(t, Aggregate(same, balances))
		assert.NoError(t, Aggregate(same, balances))

		assert.Equal(t, Balances{
			{Label: "left"}:  ast.NewValue(200, "$"),
			{Label: "right"}: ast.NewValue(-200, "$"),
		}, balances)
	})

	t.Run("SameAccountTwiceInOneTransaction", func(t *testing.T) {
		balances := Balances{}
		assert.NoError(t, Aggregate(txn("a", entry("x", 1, "$"), entry("x", 2, "$")), balances))
		assert.Equal(t, ast.NewValue(3, "$"), balances[ast.Account{Label: "x"}])
	})

	t.Run("ReachesZero", func(t *testing.T) {
		balances := Balances{}
		assert.NoError(t, Aggregate(txn("a", entry("x", 5, "$"), entry("x", -5, "$")), balances))
		assert.Equal(t, ast.NewValue(0, "$"), balances[ast.Account{Label: "x"}])
	})

	t.Run("DoesNotCheckBalance", func(t *testing.T) {
		balances := Balances{}
		assert.NoError(t, Aggregate(txn("a", entry("x", 5, "$")), balances))
		assert.Equal(t, 1, len(balances))
	})

	t.Run("CurrencyMismatchKeepsEarlierEntries", func(t *testing.T) {
		balances := Balances{
			{Label: "x"}: ast.NewValue(10, "$"),
		}
		bad := txn("bad",
			entry("y", 1, "$"),
			entry("x", 1, "€"),
			entry("z", -2, "$"),
		)

		err := Aggregate(bad, balances)
		assert.True(t, errors.Is(err, ErrCurrencyMismatch))

		var merr *CurrencyMismatchError
		assert.True(t, errors.As(err, &merr))
		assert.Equal(t, ast.Account{Label: "x"}, merr.Account)
		assert.Equal(t, ast.Currency{Symbol: "$"}, merr.Held)
		assert.Equal(t, ast.Currency{Symbol: "€"}, merr.Got)
		assert.Equal(t, bad, merr.GetTransaction())

		assert.Equal(t, Balances{
			{Label: "x"}: ast.NewValue(10, "$"),
			{Label: "y"}: ast.NewValue(1, "$"),
		}, balances)
	})
}

func TestBalancesAccountsSorted(t *testing.T) {
	balances := Balances{
		{Label: "expenses:food"}: ast.NewValue(1, "$"),
		{Label: "assets:cash"}:   ast.NewValue(-1, "$"),
		{Label: "assets"}:        ast.NewValue(0, "$"),
	}
	assert.Equal(t, []ast.Account{
		{Label: "assets"},
		{Label: "assets:cash"},
		{Label: "expenses:food"},
	}, balances.Accounts())
}
