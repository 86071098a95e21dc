package web

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/feledger/ast"
	"github.com/robinvdvleuten/feledger/ledger"
)

// BalancesResponse is the JSON response for the trial balance.
type BalancesResponse struct {
	Rows   []BalanceRowResponse       `json:"rows"`
	Totals map[string]decimal.NullDecimal `json:"totals"`
}

// BalanceRowResponse is one account of the trial balance.
type BalanceRowResponse struct {
	Account  string          `json:"account"`
	Amount   decimal.NullDecimal `json:"amount"`
	Currency string          `json:"currency"`
}

// BalanceTreeResponse is the JSON response for the hierarchical view.
type BalanceTreeResponse struct {
	Roots      []*BalanceNodeResponse `json:"roots"`
	Currencies []string               `json:"currencies"`
}

// BalanceNodeResponse represents a node in the balance tree for JSON serialization.
type BalanceNodeResponse struct {
	Name     string                     `json:"name"`
	Account  string                     `json:"account"`
	Depth    int                        `json:"depth"`
	Balance  map[string]decimal.NullDecimal `json:"balance"`
	Children []*BalanceNodeResponse     `json:"children,omitempty"`
}

// handleGetBalances handles GET requests to /api/balances.
//
// Query parameters:
//   - tree: when true, returns the balances rolled up along the account
//     hierarchy instead of the flat trial balance.
func (s *Server) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	asTree := false
	if param := r.URL.Query().Get("tree"); param != "" {
		v, err := strconv.ParseBool(param)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		asTree = v
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if asTree {
		writeJSONResponse(w, http.StatusOK, convertBalanceTree(s.ledger.BalanceTree()))
		return
	}

	rows := s.ledger.TrialBalance()
	response := &BalancesResponse{
		Rows:   make([]BalanceRowResponse, len(rows)),
		Totals: convertAmounts(s.ledger.Totals()),
	}
	for i, row := range rows {
		response.Rows[i] = BalanceRowResponse{
			Account:  row.Account.Label,
			Amount:   amountJSON(row.Value.Amount),
			Currency: row.Value.Currency.Symbol,
		}
	}

	writeJSONResponse(w, http.StatusOK, response)
}

// convertBalanceTree converts a ledger.BalanceTree to a BalanceTreeResponse.
func convertBalanceTree(tree *ledger.BalanceTree) *BalanceTreeResponse {
	roots := make([]*BalanceNodeResponse, len(tree.Roots))
	for i, root := range tree.Roots {
		roots[i] = convertBalanceNode(root)
	}

	currencies := make([]string, len(tree.Currencies))
	for i, c := range tree.Currencies {
		currencies[i] = c.Symbol
	}

	return &BalanceTreeResponse{
		Roots:      roots,
		Currencies: currencies,
	}
}

// convertBalanceNode recursively converts a ledger.BalanceNode to a BalanceNodeResponse.
func convertBalanceNode(node *ledger.BalanceNode) *BalanceNodeResponse {
	var children []*BalanceNodeResponse
	if len(node.Children) > 0 {
		children = make([]*BalanceNodeResponse, len(node.Children))
		for i, child := range node.Children {
			children[i] = convertBalanceNode(child)
		}
	}

	return &BalanceNodeResponse{
		Name:     node.Name,
		Account:  node.Account.Label,
		Depth:    node.Depth,
		Balance:  convertAmounts(node.Balance),
		Children: children,
	}
}

func convertAmounts(amounts map[ast.Currency]float64) map[string]decimal.NullDecimal {
	out := make(map[string]decimal.NullDecimal, len(amounts))
	for c, amount := range amounts {
		out[c.Symbol] = amountJSON(amount)
	}
	return out
}
