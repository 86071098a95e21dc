package web

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/feledger/ast"
)

// TransactionsResponse is the JSON response for the transactions endpoint.
type TransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// TransactionResponse is a parsed transaction. Valid is false when the
// transaction was rejected by the balance validator or the aggregator.
type TransactionResponse struct {
	Date    string          `json:"date"`
	Comment string          `json:"comment"`
	Line    int             `json:"line,omitempty"`
	Valid   bool            `json:"valid"`
	Entries []EntryResponse `json:"entries"`
}

// EntryResponse is one account line of a transaction.
type EntryResponse struct {
	Account  string          `json:"account"`
	Amount   decimal.NullDecimal `json:"amount"`
	Currency string          `json:"currency"`
}

type transactionError interface {
	GetTransaction() *ast.Transaction
}

// handleGetTransactions handles GET requests to /api/transactions.
// Returns every parsed transaction in file order.
func (s *Server) handleGetTransactions(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rejected := make(map[*ast.Transaction]struct{})
	for _, err := range s.ledger.Errors() {
		if te, ok := err.(transactionError); ok {
			rejected[te.GetTransaction()] = struct{}{}
		}
	}

	txns := make([]TransactionResponse, 0, s.tree.Len())
	for _, txn := range s.tree.Transactions {
		_, bad := rejected[txn]
		txns = append(txns, convertTransaction(txn, !bad))
	}

	writeJSONResponse(w, http.StatusOK, &TransactionsResponse{Transactions: txns})
}

func convertTransaction(txn *ast.Transaction, valid bool) TransactionResponse {
	entries := make([]EntryResponse, len(txn.Entries))
	for i, e := range txn.Entries {
		entries[i] = EntryResponse{
			Account:  e.Account.Label,
			Amount:   amountJSON(e.Value.Amount),
			Currency: e.Value.Currency.Symbol,
		}
	}

	return TransactionResponse{
		Date:    txn.Date.String(),
		Comment: txn.Comment,
		Line:    txn.Pos.Line,
		Valid:   valid,
		Entries: entries,
	}
}
