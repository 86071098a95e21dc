package ledger

import (
	"strings"

	"github.com/robinvdvleuten/feledger/ast"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// TrialBalanceRow is one account line of a trial balance.
type TrialBalanceRow struct {
	Account ast.Account
	Value   ast.Value
}

// TrialBalance lists every account with its balance, sorted by account label.
func (l *Ledger) TrialBalance() []TrialBalanceRow {
	accounts := l.balances.Accounts()
	rows := make([]TrialBalanceRow, len(accounts))
	for i, account := range accounts {
		rows[i] = TrialBalanceRow{Account: account, Value: l.balances[account]}
	}
	return rows
}

// Totals sums all balances per currency. For a ledger built only from
// balanced transactions every total is zero, up to float rounding.
func (l *Ledger) Totals() map[ast.Currency]float64 {
	totals := make(map[ast.Currency]float64)
	for _, v := range l.balances {
		totals[v.Currency] += v.Amount
	}
	return totals
}

// BalanceTree represents a hierarchical view of account balances.
//
// The tree follows the colon-separated account segments. Balances are
// aggregated bottom-up so parent nodes include the sum of all their
// descendants, per currency.
type BalanceTree struct {
	// Roots contains the top-level nodes, one per first account segment.
	Roots []*BalanceNode

	// Currencies lists all currencies present in the tree, sorted by symbol.
	Currencies []ast.Currency
}

// BalanceNode represents a single node in the balance tree hierarchy.
type BalanceNode struct {
	// Name is the last segment of the account path, e.g. "food".
	Name string

	// Account is the full account path up to this node, e.g. "expenses:food".
	Account ast.Account

	// Depth indicates the nesting level (0 for roots).
	Depth int

	// Posted is true when the account itself holds a balance, not only its
	// descendants.
	Posted bool

	// Balance is the aggregated balance for this node and all descendants.
	Balance map[ast.Currency]float64

	// Children are sorted by name.
	Children []*BalanceNode
}

// BalanceTree builds the account hierarchy of the current balances.
func (l *Ledger) BalanceTree() *BalanceTree {
	tree := &BalanceTree{}
	nodes := make(map[ast.Account]*BalanceNode)
	currencies := make(map[ast.Currency]struct{})

	var nodeFor func(account ast.Account) *BalanceNode
	nodeFor = func(account ast.Account) *BalanceNode {
		if n, ok := nodes[account]; ok {
			return n
		}
		segments := account.Segments()
		if len(segments) == 0 {
			segments = []string{""}
		}
		n := &BalanceNode{
			Name:    segments[len(segments)-1],
			Account: account,
			Depth:   len(segments) - 1,
			Balance: make(map[ast.Currency]float64, 1),
		}
		nodes[account] = n

		if parent, ok := account.Parent(); ok {
			p := nodeFor(parent)
			p.Children = append(p.Children, n)
		} else {
			tree.Roots = append(tree.Roots, n)
		}
		return n
	}

	for account, value := range l.balances {
		currencies[value.Currency] = struct{}{}

		n := nodeFor(account)
		n.Posted = true
		for cur := n; cur != nil; cur = parentNode(nodes, cur) {
			cur.Balance[value.Currency] += value.Amount
		}
	}

	sortNodes(tree.Roots)

	tree.Currencies = maps.Keys(currencies)
	slices.SortFunc(tree.Currencies, func(a, b ast.Currency) int {
		return strings.Compare(a.Symbol, b.Symbol)
	})

	return tree
}

func parentNode(nodes map[ast.Account]*BalanceNode, n *BalanceNode) *BalanceNode {
	parent, ok := n.Account.Parent()
	if !ok {
		return nil
	}
	return nodes[parent]
}

func sortNodes(nodes []*BalanceNode) {
	slices.SortFunc(nodes, func(a, b *BalanceNode) int {
		return strings.Compare(a.Name, b.Name)
	})
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}

// Walk visits every node depth-first in sorted order.
func (t *BalanceTree) Walk(fn func(n *BalanceNode)) {
	var walk func(nodes []*BalanceNode)
	walk = func(nodes []*BalanceNode) {
		for _, n := range nodes {
			fn(n)
			walk(n.Children)
		}
	}
	walk(t.Roots)
}
