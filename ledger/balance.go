package ledger

import (
	"strings"

	"github.com/robinvdvleuten/feledger/ast"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// CheckBalance reports whether every currency in txn nets to exactly zero.
// The comparison is exact: amounts that only cancel up to float rounding are
// unbalanced. A transaction with no entries is balanced.
func CheckBalance(txn *ast.Transaction) error {
	sums := make(map[ast.Currency]float64, 2)
	for _, e := range txn.Entries {
		sums[e.Value.Currency] += e.Value.Amount
	}

	for _, sum := range sums {
		if sum != 0 {
			return &UnbalancedError{Transaction: txn}
		}
	}

	return nil
}

// Balances is a running per-account balance table. Each account is bound to
// the currency of the first entry that touched it. The table is owned by the
// caller and may be reused across any number of Aggregate calls.
type Balances map[ast.Account]ast.Value

// Aggregate adds every entry of txn to its account's bucket, creating
// buckets as needed. Entries are applied in order; on a currency mismatch the
// entries before the offending one stay applied and the rest are skipped.
// Aggregate does not check that txn balances.
func Aggregate(txn *ast.Transaction, balances Balances) error {
	for _, e := range txn.Entries {
		bucket, ok := balances[e.Account]
		if !ok {
			bucket = ast.Value{Currency: e.Value.Currency}
		}

		if bucket.Currency != e.Value.Currency {
			return &CurrencyMismatchError{
				Account:     e.Account,
				Held:        bucket.Currency,
				Got:         e.Value.Currency,
				Pos:         e.Pos,
				Transaction: txn,
			}
		}

		bucket.Amount += e.Value.Amount
		balances[e.Account] = bucket
	}

	return nil
}

// Accounts returns the accounts in the table sorted by label.
func (b Balances) Accounts() []ast.Account {
	accounts := maps.Keys(b)
	slices.SortFunc(accounts, func(a, b ast.Account) int {
		return strings.Compare(a.Label, b.Label)
	})
	return accounts
}
