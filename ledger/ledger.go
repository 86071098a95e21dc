// Package ledger validates parsed transactions and accumulates them into
// per-account balances.
//
// Every transaction must net to zero in each currency it uses. Balanced
// transactions are added to a running balance table in which each account is
// bound to a single currency.
//
// Example usage:
//
//	tree, err := parser.ParseBytes(ctx, source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	l := ledger.New()
//	if err := l.Process(ctx, tree); err != nil {
//	    var verr *ledger.ValidationErrors
//	    if errors.As(err, &verr) {
//	        for _, e := range verr.Errors {
//	            fmt.Println(e)
//	        }
//	    }
//	}
//
//	for _, row := range l.TrialBalance() {
//	    fmt.Println(row.Account, row.Value)
//	}
package ledger

import (
	"context"

	"github.com/robinvdvleuten/feledger/ast"
	"github.com/robinvdvleuten/feledger/telemetry"
)

// Ledger holds the balances built from every transaction processed so far,
// along with the errors raised on the way. A Ledger is not safe for
// concurrent use.
type Ledger struct {
	balances     Balances
	transactions []*ast.Transaction
	errors       []error
	stopOnError  bool
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithStopOnError makes Process return at the first failing transaction
// instead of recording the failure and moving on.
func WithStopOnError() Option {
	return func(l *Ledger) {
		l.stopOnError = true
	}
}

// New creates a new empty ledger
func New(opts ...Option) *Ledger {
	l := &Ledger{
		balances: make(Balances),
		errors:   make([]error, 0),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Process validates and aggregates every transaction in tree, in order.
//
// Unbalanced transactions are recorded and skipped. A currency mismatch is
// recorded and leaves the entries applied before it in place. Processing the
// same ledger twice adds its entries twice.
//
// The returned error is a *ValidationErrors holding everything recorded so
// far, or the context's error if ctx is cancelled.
func (l *Ledger) Process(ctx context.Context, tree *ast.Ledger) error {
	timer := telemetry.StartTimer(ctx, "ledger.process")
	defer timer.End()

	for _, txn := range tree.Transactions {
		// Check for cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := l.processTransaction(txn); err != nil && l.stopOnError {
			break
		}
	}

	// Return collected errors
	if len(l.errors) > 0 {
		return &ValidationErrors{Errors: l.errors}
	}

	return nil
}

// processTransaction validates then applies a single transaction.
func (l *Ledger) processTransaction(txn *ast.Transaction) error {
	if err := CheckBalance(txn); err != nil {
		l.errors = append(l.errors, err)
		return err
	}

	if err := Aggregate(txn, l.balances); err != nil {
		l.errors = append(l.errors, err)
		return err
	}

	l.transactions = append(l.transactions, txn)
	return nil
}

// Errors returns all collected errors
func (l *Ledger) Errors() []error {
	return l.errors
}

// Balances returns the running balance table. Callers must not modify it.
func (l *Ledger) Balances() Balances {
	return l.balances
}

// Balance returns the balance of a single account.
func (l *Ledger) Balance(account ast.Account) (ast.Value, bool) {
	v, ok := l.balances[account]
	return v, ok
}

// Accounts returns every account with a balance, sorted by label.
func (l *Ledger) Accounts() []ast.Account {
	return l.balances.Accounts()
}

// Transactions returns the transactions that were fully applied, in the
// order they were processed.
func (l *Ledger) Transactions() []*ast.Transaction {
	return l.transactions
}
