package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/khatabase/khata/storage/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type errResp struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func setup(t *testing.T) http.Handler {
	t.Helper()
	return New(memory.New(), testLogger()).Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, rec.Body.String())
	}
	return v
}

func mustCreateAccount(t *testing.T, h http.Handler, id, name, typ string) {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/v1/accounts", map[string]any{"id": id, "name": name, "type": typ})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create account %s: status %d body %s", id, rec.Code, rec.Body.String())
	}
}

func TestPostAccount(t *testing.T) {
	h := setup(t)

	rec := doJSON(t, h, http.MethodPost, "/v1/accounts", map[string]any{"name": "Petty Cash", "type": "asset"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	acc := decode[accountResponse](t, rec)
	if acc.ID != "petty_cash" {
		t.Fatalf("id = %q, want slug petty_cash", acc.ID)
	}

	// duplicate id conflicts
	rec = doJSON(t, h, http.MethodPost, "/v1/accounts", map[string]any{"id": "petty_cash", "name": "Another", "type": "asset"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", rec.Code)
	}

	// bad type rejected
	rec = doJSON(t, h, http.MethodPost, "/v1/accounts", map[string]any{"name": "Weird", "type": "gold"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad type status = %d, want 422", rec.Code)
	}

	// missing content type
	req := httptest.NewRequest(http.MethodPost, "/v1/accounts", bytes.NewReader([]byte("{}")))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("no content-type status = %d, want 415", rr.Code)
	}
}

func TestPostTransactionAndBalance(t *testing.T) {
	h := setup(t)
	mustCreateAccount(t, h, "cash", "Cash", "asset")
	mustCreateAccount(t, h, "sales", "Sales", "income")

	body := map[string]any{
		"id":          "tx-1",
		"date":        "2024-01-01",
		"description": "cash sale",
		"entries": []map[string]any{
			{"account_id": "cash", "side": "debit", "amount": "1000.00"},
			{"account_id": "sales", "side": "credit", "amount": "1000.00"},
		},
	}
	rec := doJSON(t, h, http.MethodPost, "/v1/transactions", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("post tx status = %d body %s", rec.Code, rec.Body.String())
	}

	// same id again conflicts
	rec = doJSON(t, h, http.MethodPost, "/v1/transactions", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate tx status = %d, want 409", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/v1/accounts/cash/balance?as_of=2024-01-31", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("balance status = %d body %s", rec.Code, rec.Body.String())
	}
	bal := decode[balanceResponse](t, rec)
	if bal.Balance.StringFixed(2) != "1000.00" {
		t.Fatalf("cash balance = %s, want 1000.00", bal.Balance)
	}

	// before the posting date the balance is zero
	rec = doJSON(t, h, http.MethodGet, "/v1/accounts/cash/balance?as_of=2023-12-31", nil)
	bal = decode[balanceResponse](t, rec)
	if !bal.Balance.IsZero() {
		t.Fatalf("pre-date balance = %s, want 0", bal.Balance)
	}
}

func TestPostTransactionRejections(t *testing.T) {
	h := setup(t)
	mustCreateAccount(t, h, "cash", "Cash", "asset")
	mustCreateAccount(t, h, "sales", "Sales", "income")

	cases := []struct {
		name     string
		entries  []map[string]any
		wantCode string
	}{
		{"unbalanced", []map[string]any{
			{"account_id": "cash", "side": "debit", "amount": "100"},
			{"account_id": "sales", "side": "credit", "amount": "90"},
		}, "unbalanced"},
		{"one sided", []map[string]any{
			{"account_id": "cash", "side": "debit", "amount": "100"},
			{"account_id": "sales", "side": "debit", "amount": "100"},
		}, "one_sided"},
		{"zero amount", []map[string]any{
			{"account_id": "cash", "side": "debit", "amount": "0"},
			{"account_id": "sales", "side": "credit", "amount": "0"},
		}, "invalid_amount"},
	}
	for _, tc := range cases {
		body := map[string]any{"date": "2024-01-01", "description": tc.name, "entries": tc.entries}
		rec := doJSON(t, h, http.MethodPost, "/v1/transactions", body)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: status = %d, want 422 (body %s)", tc.name, rec.Code, rec.Body.String())
		}
		er := decode[errResp](t, rec)
		if er.Code != tc.wantCode {
			t.Fatalf("%s: code = %q, want %q", tc.name, er.Code, tc.wantCode)
		}
	}

	// unknown account is 404
	body := map[string]any{"date": "2024-01-01", "description": "ghost", "entries": []map[string]any{
		{"account_id": "ghost", "side": "debit", "amount": "10"},
		{"account_id": "sales", "side": "credit", "amount": "10"},
	}}
	rec := doJSON(t, h, http.MethodPost, "/v1/transactions", body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown account status = %d, want 404", rec.Code)
	}
}

func TestReverseTransaction(t *testing.T) {
	h := setup(t)
	mustCreateAccount(t, h, "cash", "Cash", "asset")
	mustCreateAccount(t, h, "sales", "Sales", "income")

	body := map[string]any{
		"id": "tx-1", "date": "2024-01-01", "description": "cash sale",
		"entries": []map[string]any{
			{"account_id": "cash", "side": "debit", "amount": "250.00"},
			{"account_id": "sales", "side": "credit", "amount": "250.00"},
		},
	}
	if rec := doJSON(t, h, http.MethodPost, "/v1/transactions", body); rec.Code != http.StatusCreated {
		t.Fatalf("post tx status = %d", rec.Code)
	}

	rec := doJSON(t, h, http.MethodPost, "/v1/transactions/tx-1/reverse", map[string]any{"date": "2024-01-02"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("reverse status = %d body %s", rec.Code, rec.Body.String())
	}
	rev := decode[transactionResponse](t, rec)
	if len(rev.Entries) != 2 {
		t.Fatalf("reversal entries = %d, want 2", len(rev.Entries))
	}
	for _, e := range rev.Entries {
		if e.AccountID == "cash" && e.Side != "credit" {
			t.Fatalf("cash side = %s, want credit", e.Side)
		}
	}

	// net balance is back to zero
	rec = doJSON(t, h, http.MethodGet, "/v1/accounts/cash/balance?as_of=2024-01-02", nil)
	bal := decode[balanceResponse](t, rec)
	if !bal.Balance.IsZero() {
		t.Fatalf("post-reversal balance = %s, want 0", bal.Balance)
	}
}

func TestTrialBalanceEndpoint(t *testing.T) {
	h := setup(t)
	mustCreateAccount(t, h, "cash", "Cash", "asset")
	mustCreateAccount(t, h, "sales", "Sales", "income")

	body := map[string]any{
		"date": "2024-01-01", "description": "cash sale",
		"entries": []map[string]any{
			{"account_id": "cash", "side": "debit", "amount": "1000.00"},
			{"account_id": "sales", "side": "credit", "amount": "1000.00"},
		},
	}
	if rec := doJSON(t, h, http.MethodPost, "/v1/transactions", body); rec.Code != http.StatusCreated {
		t.Fatalf("post tx status = %d", rec.Code)
	}

	rec := doJSON(t, h, http.MethodGet, "/v1/reports/trial-balance?as_of=2024-01-31", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("trial balance status = %d body %s", rec.Code, rec.Body.String())
	}
	tb := decode[trialBalanceResponse](t, rec)
	if !tb.TotalDebit.Equal(tb.TotalCredit) {
		t.Fatalf("trial balance does not tie: %s vs %s", tb.TotalDebit, tb.TotalCredit)
	}
	if tb.TotalDebit.StringFixed(2) != "1000.00" {
		t.Fatalf("total debit = %s, want 1000.00", tb.TotalDebit)
	}
}

func TestGSTEndpoints(t *testing.T) {
	h := setup(t)

	rec := doJSON(t, h, http.MethodPost, "/v1/gst/calculate", map[string]any{
		"amount": "10000", "category": "higher",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("gst calculate status = %d body %s", rec.Code, rec.Body.String())
	}
	out := decode[gstCalculationResponse](t, rec)
	if out.CGST.StringFixed(2) != "900.00" || out.SGST.StringFixed(2) != "900.00" {
		t.Fatalf("cgst/sgst = %s/%s, want 900.00 each", out.CGST, out.SGST)
	}
	if out.TotalAmount.StringFixed(2) != "11800.00" {
		t.Fatalf("total = %s, want 11800.00", out.TotalAmount)
	}

	// inter-state supplies land in IGST
	rec = doJSON(t, h, http.MethodPost, "/v1/gst/calculate", map[string]any{
		"amount": "10000", "category": "higher", "inter_state": true,
	})
	out = decode[gstCalculationResponse](t, rec)
	if !out.CGST.IsZero() || !out.SGST.IsZero() {
		t.Fatalf("inter-state cgst/sgst = %s/%s, want 0", out.CGST, out.SGST)
	}
	if out.IGST.StringFixed(2) != "1800.00" {
		t.Fatalf("igst = %s, want 1800.00", out.IGST)
	}

	// reverse round-trips the forward result
	rec = doJSON(t, h, http.MethodPost, "/v1/gst/reverse", map[string]any{
		"amount": "11800", "category": "higher",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("gst reverse status = %d body %s", rec.Code, rec.Body.String())
	}
	out = decode[gstCalculationResponse](t, rec)
	if out.BaseAmount.StringFixed(2) != "10000.00" {
		t.Fatalf("reverse base = %s, want 10000.00", out.BaseAmount)
	}

	// unknown category rejected
	rec = doJSON(t, h, http.MethodPost, "/v1/gst/calculate", map[string]any{
		"amount": "100", "category": "super_luxury",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad category status = %d, want 422", rec.Code)
	}

	// invoice aggregation
	rec = doJSON(t, h, http.MethodPost, "/v1/gst/invoice", map[string]any{
		"items": []map[string]any{
			{"description": "laptop", "amount": "50000", "category": "higher"},
			{"description": "rice", "amount": "1000", "category": "nil"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("gst invoice status = %d body %s", rec.Code, rec.Body.String())
	}
	inv := decode[gstInvoiceResponse](t, rec)
	if len(inv.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(inv.Lines))
	}
	if inv.GrandTotal.StringFixed(2) != "60000.00" {
		t.Fatalf("grand total = %s, want 60000.00", inv.GrandTotal)
	}
}

func TestHealthAndDictionary(t *testing.T) {
	h := setup(t)

	if rec := doJSON(t, h, http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodGet, "/readyz", nil); rec.Code != http.StatusOK {
		t.Fatalf("readyz status = %d", rec.Code)
	}

	rec := doJSON(t, h, http.MethodGet, "/v1/dictionary/accounts?type=liability", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dictionary status = %d", rec.Code)
	}
	defs := decode[[]dictionaryEntryResponse](t, rec)
	if len(defs) == 0 {
		t.Fatalf("expected liability definitions, got none")
	}
	for _, d := range defs {
		if d.Type != "liability" {
			t.Fatalf("definition %s has type %s, want liability", d.ID, d.Type)
		}
	}
}
