package ast

// Transaction is a dated, commented group of entries that is expected to net
// to zero in every currency it touches.
//
// Example:
//
//	2016/08/24 Groceries
//	  expenses:food  $42.10
//	  assets:cash  $-42.10
type Transaction struct {
	Pos     Position
	Date    Date
	Comment string
	Entries []Entry
}

// Currencies returns the distinct currencies used by the entries, in order of
// first appearance.
func (t *Transaction) Currencies() []Currency {
	seen := make(map[Currency]bool, 2)
	out := make([]Currency, 0, 2)
	for _, e := range t.Entries {
		if !seen[e.Value.Currency] {
			seen[e.Value.Currency] = true
			out = append(out, e.Value.Currency)
		}
	}
	return out
}

// Accounts returns the distinct accounts referenced by the entries, in order of
// first appearance.
func (t *Transaction) Accounts() []Account {
	seen := make(map[Account]bool, len(t.Entries))
	out := make([]Account, 0, len(t.Entries))
	for _, e := range t.Entries {
		if !seen[e.Account] {
			seen[e.Account] = true
			out = append(out, e.Account)
		}
	}
	return out
}
