// Report handlers: trial balance, balance sheet and income statement.
package httpapi

import (
	"net/http"
	"time"
)

func (s *Server) trialBalance(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now().UTC()
	if v := r.URL.Query().Get("as_of"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		asOf = t
	}
	tb, err := s.led.GenerateTrialBalance(r.Context(), asOf)
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	resp := trialBalanceResponse{
		AsOf:        tb.AsOf.Format(dateLayout),
		Rows:        make([]trialBalanceRowResponse, 0, len(tb.Rows)),
		TotalDebit:  tb.TotalDebit,
		TotalCredit: tb.TotalCredit,
	}
	for _, row := range tb.Rows {
		resp.Rows = append(resp.Rows, trialBalanceRowResponse{
			Account: toAccountResponse(row.Account),
			Debit:   row.Debit,
			Credit:  row.Credit,
		})
	}
	toJSON(w, http.StatusOK, resp)
}

func (s *Server) balanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now().UTC()
	if v := r.URL.Query().Get("as_of"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		asOf = t
	}
	bs, err := s.led.GenerateBalanceSheet(r.Context(), asOf)
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, balanceSheetResponse{
		AsOf:             bs.AsOf.Format(dateLayout),
		Assets:           toBalanceLines(bs.Assets),
		Liabilities:      toBalanceLines(bs.Liabilities),
		Equity:           toBalanceLines(bs.Equity),
		RetainedEarnings: bs.RetainedEarnings,
		TotalAssets:      bs.TotalAssets,
		TotalLiabilities: bs.TotalLiabilities,
		TotalEquity:      bs.TotalEquity,
	})
}

// incomeStatement requires both ?start= and ?end=; the range is inclusive.
func (s *Server) incomeStatement(w http.ResponseWriter, r *http.Request) {
	start, err := parseDate(r.URL.Query().Get("start"))
	if err != nil {
		badRequest(w, "start: "+err.Error())
		return
	}
	end, err := parseDate(r.URL.Query().Get("end"))
	if err != nil {
		badRequest(w, "end: "+err.Error())
		return
	}
	is, err := s.led.GenerateIncomeStatement(r.Context(), start, end)
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, incomeStatementResponse{
		Start:         is.Start.Format(dateLayout),
		End:           is.End.Format(dateLayout),
		Revenue:       toBalanceLines(is.Revenue),
		Expenses:      toBalanceLines(is.Expenses),
		TotalRevenue:  is.TotalRevenue,
		TotalExpenses: is.TotalExpenses,
		NetIncome:     is.NetIncome,
	})
}
