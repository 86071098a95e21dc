package web

import (
	"net/http"
)

// AccountInfo represents basic information about a ledger account.
type AccountInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Currency string `json:"currency"`
}

// AccountsResponse is the JSON response structure for the accounts endpoint.
type AccountsResponse struct {
	Accounts []AccountInfo `json:"accounts"`
}

// handleGetAccounts handles GET requests to /api/accounts.
// Returns every account holding a balance, sorted by name. The type is the
// first segment of the account label.
func (s *Server) handleGetAccounts(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := s.ledger.Accounts()
	accounts := make([]AccountInfo, 0, len(names))

	for _, account := range names {
		value, _ := s.ledger.Balance(account)

		var typ string
		if segments := account.Segments(); len(segments) > 0 {
			typ = segments[0]
		}

		accounts = append(accounts, AccountInfo{
			Name:     account.Label,
			Type:     typ,
			Currency: value.Currency.Symbol,
		})
	}

	writeJSONResponse(w, http.StatusOK, &AccountsResponse{Accounts: accounts})
}
