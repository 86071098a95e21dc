// Package ast declares the types used to represent a parsed feledger file.
//
// A ledger file is a sequence of transactions. Each transaction has a dated
// header with a free-form comment, followed by indented entry lines that pair
// an account with a currency-tagged value:
//
//	2016/08/24 A test transaction in a file
//	  expenses:time  $100
//	  assets:joy  $-100
//
// The types can be produced by the parser package or constructed directly,
// for example in tests or importers. All values are treated as immutable once
// built.
package ast

// Ledger is the ordered collection of transactions parsed from a source file.
type Ledger struct {
	Transactions []*Transaction
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Transactions)
}

// Entries returns the total number of entries across all transactions.
func (l *Ledger) Entries() int {
	if l == nil {
		return 0
	}
	n := 0
	for _, txn := range l.Transactions {
		n += len(txn.Entries)
	}
	return n
}
