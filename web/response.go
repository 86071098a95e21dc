package web

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/feledger/ast"
)

// ErrorResponse is the JSON form of any error reported by the API.
type ErrorResponse struct {
	Message  string            `json:"message"`
	Position *PositionResponse `json:"position,omitempty"`
}

// PositionResponse locates an error in the ledger source.
type PositionResponse struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

type positioned interface {
	GetPosition() ast.Position
}

// newErrorResponse converts err, attaching its source position when it
// carries one.
func newErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Message: err.Error()}
	if p, ok := err.(positioned); ok {
		if pos := p.GetPosition(); !pos.IsZero() {
			resp.Position = &PositionResponse{
				Filename: pos.Filename,
				Line:     pos.Line,
				Column:   pos.Column,
			}
		}
	}
	return resp
}

func newErrorResponses(errs []error) []ErrorResponse {
	out := make([]ErrorResponse, len(errs))
	for i, err := range errs {
		out[i] = newErrorResponse(err)
	}
	return out
}

// writeJSONResponse writes data as JSON with the given status code.
func writeJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := newErrorResponse(err)
	writeJSONResponse(w, status, &resp)
}

// amountJSON encodes an amount as a JSON decimal. Overflowed sums have no
// decimal form and are sent as null.
func amountJSON(amount float64) decimal.NullDecimal {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(amount))
}
