// Transaction handlers: posting, fetching, listing and reversal.
package httpapi

import (
	"encoding/json"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/khatabase/khata/ledger"
)

func (s *Server) postTransaction(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	b := ledger.NewTransaction(id, date, req.Description)
	for k, v := range req.Metadata {
		b.Meta(k, v)
	}
	for _, e := range req.Entries {
		switch ledger.Side(e.Side) {
		case ledger.SideDebit:
			b.Debit(e.AccountID, e.Amount, e.Memo)
		case ledger.SideCredit:
			b.Credit(e.AccountID, e.Amount, e.Memo)
		default:
			unprocessable(w, "entry side must be debit or credit", "validation_error")
			return
		}
	}
	tx, err := b.Build()
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	if err := s.led.RecordTransaction(r.Context(), tx); err != nil {
		writeLedgerErr(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.led.Transaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toTransactionResponse(tx))
}

// listTransactions handles GET /v1/transactions with optional inclusive
// ?from= and ?to= date bounds.
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateParam(r.URL.Query().Get("from"))
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	to, err := parseDateParam(r.URL.Query().Get("to"))
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	txs, err := s.led.Transactions(r.Context(), from, to)
	if err != nil {
		internalErr(w, "could not fetch transactions")
		return
	}
	out := make([]transactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionResponse(t))
	}
	toJSON(w, http.StatusOK, out)
}

// reverseTransaction posts a new transaction that mirrors an existing one
// with every side flipped. The original stays untouched.
func (s *Server) reverseTransaction(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var req reverseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	orig, err := s.led.Transaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	desc := req.Description
	if desc == "" {
		desc = "reversal of " + orig.ID
	}
	rev := orig.Reversed(id, date, desc)
	if err := s.led.RecordTransaction(r.Context(), rev); err != nil {
		writeLedgerErr(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toTransactionResponse(rev))
}
