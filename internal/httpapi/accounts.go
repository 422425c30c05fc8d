// Account handlers: create, list, fetch, update, balance and history.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/khatabase/khata/internal/slug"
	"github.com/khatabase/khata/ledger"
)

func (s *Server) postAccount(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}
	id := req.ID
	if id == "" {
		id = slug.Slugify(req.Name)
	}
	if !slug.IsSlug(id) {
		badRequest(w, "account id must be a lowercase slug")
		return
	}
	acc, err := s.led.CreateAccount(r.Context(), id, req.Name, ledger.AccountType(req.Type), req.ParentID)
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	if len(req.Metadata) > 0 {
		acc.Metadata = req.Metadata.Clone()
		if acc, err = s.led.UpdateAccount(r.Context(), acc); err != nil {
			writeLedgerErr(w, err)
			return
		}
	}
	toJSON(w, http.StatusCreated, toAccountResponse(acc))
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	var types []ledger.AccountType
	if t := r.URL.Query().Get("type"); t != "" {
		at := ledger.AccountType(t)
		if !at.Valid() {
			badRequest(w, "unknown account type")
			return
		}
		types = append(types, at)
	}
	accs, err := s.led.ListAccounts(r.Context(), types...)
	if err != nil {
		internalErr(w, "could not fetch accounts")
		return
	}
	out := make([]accountResponse, 0, len(accs))
	for _, a := range accs {
		out = append(out, toAccountResponse(a))
	}
	toJSON(w, http.StatusOK, out)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	acc, err := s.led.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponse(acc))
}

func (s *Server) updateAccount(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var req accountUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}
	acc, err := s.led.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	if req.Name != nil {
		acc.Name = *req.Name
	}
	if req.ParentID != nil {
		acc.ParentID = *req.ParentID
	}
	if req.Metadata != nil {
		acc.Metadata = req.Metadata.Clone()
	}
	acc, err = s.led.UpdateAccount(r.Context(), acc)
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponse(acc))
}

// getAccountBalance handles GET /v1/accounts/{id}/balance?as_of=YYYY-MM-DD.
// as_of defaults to today; the whole day is included.
func (s *Server) getAccountBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	asOf := time.Now().UTC()
	if v := r.URL.Query().Get("as_of"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		asOf = t
	}
	bal, err := s.led.AccountBalance(r.Context(), id, asOf)
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, balanceResponse{
		AccountID: id,
		AsOf:      ledger.Day(asOf).Format(dateLayout),
		Balance:   bal,
	})
}

// getAccountTransactions handles GET /v1/accounts/{id}/transactions with
// optional inclusive ?from= and ?to= date bounds.
func (s *Server) getAccountTransactions(w http.ResponseWriter, r *http.Request) {
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
	txs, err := s.led.AccountTransactions(r.Context(), chi.URLParam(r, "id"), from, to)
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	out := make([]transactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionResponse(t))
	}
	toJSON(w, http.StatusOK, out)
}
