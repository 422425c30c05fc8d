// Request and response shapes for the HTTP API. Amounts travel as decimal
// strings (shopspring encodes them quoted) and dates as YYYY-MM-DD.
package httpapi

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/khatabase/khata/gst"
	"github.com/khatabase/khata/internal/meta"
	"github.com/khatabase/khata/ledger"
)

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD value into a UTC calendar date.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

// parseDateParam parses an optional query parameter; empty means unset.
func parseDateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type accountRequest struct {
	ID       string        `json:"id,omitempty"`
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	ParentID string        `json:"parent_id,omitempty"`
	Metadata meta.Metadata `json:"metadata,omitempty"`
}

type accountUpdateRequest struct {
	Name     *string        `json:"name,omitempty"`
	ParentID *string        `json:"parent_id,omitempty"`
	Metadata *meta.Metadata `json:"metadata,omitempty"`
}

type accountResponse struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	ParentID string        `json:"parent_id,omitempty"`
	Metadata meta.Metadata `json:"metadata,omitempty"`
}

func toAccountResponse(a ledger.Account) accountResponse {
	return accountResponse{
		ID:       a.ID,
		Name:     a.Name,
		Type:     string(a.Type),
		ParentID: a.ParentID,
		Metadata: a.Metadata,
	}
}

type balanceResponse struct {
	AccountID string          `json:"account_id"`
	AsOf      string          `json:"as_of"`
	Balance   decimal.Decimal `json:"balance"`
}

type entryRequest struct {
	AccountID string          `json:"account_id"`
	Side      string          `json:"side"`
	Amount    decimal.Decimal `json:"amount"`
	Memo      string          `json:"memo,omitempty"`
}

type transactionRequest struct {
	ID          string         `json:"id,omitempty"`
	Date        string         `json:"date"`
	Description string         `json:"description"`
	Entries     []entryRequest `json:"entries"`
	Metadata    meta.Metadata  `json:"metadata,omitempty"`
}

type entryResponse struct {
	AccountID string          `json:"account_id"`
	Side      string          `json:"side"`
	Amount    decimal.Decimal `json:"amount"`
	Memo      string          `json:"memo,omitempty"`
}

type transactionResponse struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Entries     []entryResponse `json:"entries"`
	Metadata    meta.Metadata   `json:"metadata,omitempty"`
}

func toTransactionResponse(t ledger.Transaction) transactionResponse {
	out := transactionResponse{
		ID:          t.ID,
		Date:        t.Date.Format(dateLayout),
		Description: t.Description,
		Entries:     make([]entryResponse, 0, len(t.Entries)),
		Metadata:    t.Metadata,
	}
	for _, e := range t.Entries {
		out.Entries = append(out.Entries, entryResponse{
			AccountID: e.AccountID,
			Side:      string(e.Side),
			Amount:    e.Amount,
			Memo:      e.Memo,
		})
	}
	return out
}

type reverseRequest struct {
	ID          string `json:"id,omitempty"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
}

type gstCalculateRequest struct {
	Amount     decimal.Decimal  `json:"amount"`
	Rate       *decimal.Decimal `json:"rate,omitempty"`
	Category   string           `json:"category,omitempty"`
	InterState bool             `json:"inter_state"`
}

type gstCalculationResponse struct {
	BaseAmount  decimal.Decimal `json:"base_amount"`
	Rate        decimal.Decimal `json:"rate"`
	CGST        decimal.Decimal `json:"cgst"`
	SGST        decimal.Decimal `json:"sgst"`
	IGST        decimal.Decimal `json:"igst"`
	TotalTax    decimal.Decimal `json:"total_tax"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func toGSTCalculationResponse(c gst.Calculation) gstCalculationResponse {
	return gstCalculationResponse{
		BaseAmount:  c.BaseAmount,
		Rate:        c.Rate,
		CGST:        c.CGST,
		SGST:        c.SGST,
		IGST:        c.IGST,
		TotalTax:    c.TotalTax,
		TotalAmount: c.TotalAmount,
	}
}

type gstLineItemRequest struct {
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	Category    string           `json:"category,omitempty"`
	Rate        *decimal.Decimal `json:"rate,omitempty"`
}

type gstInvoiceRequest struct {
	InterState bool                 `json:"inter_state"`
	Items      []gstLineItemRequest `json:"items"`
}

type gstInvoiceLineResponse struct {
	Description string                 `json:"description"`
	Calculation gstCalculationResponse `json:"calculation"`
}

type gstInvoiceResponse struct {
	Lines      []gstInvoiceLineResponse `json:"lines"`
	TotalBase  decimal.Decimal          `json:"total_base"`
	TotalCGST  decimal.Decimal          `json:"total_cgst"`
	TotalSGST  decimal.Decimal          `json:"total_sgst"`
	TotalIGST  decimal.Decimal          `json:"total_igst"`
	TotalTax   decimal.Decimal          `json:"total_tax"`
	GrandTotal decimal.Decimal          `json:"grand_total"`
}

func toGSTInvoiceResponse(inv gst.Invoice) gstInvoiceResponse {
	out := gstInvoiceResponse{
		Lines:      make([]gstInvoiceLineResponse, 0, len(inv.Lines)),
		TotalBase:  inv.TotalBase,
		TotalCGST:  inv.TotalCGST,
		TotalSGST:  inv.TotalSGST,
		TotalIGST:  inv.TotalIGST,
		TotalTax:   inv.TotalTax,
		GrandTotal: inv.GrandTotal,
	}
	for _, ln := range inv.Lines {
		out.Lines = append(out.Lines, gstInvoiceLineResponse{
			Description: ln.Description,
			Calculation: toGSTCalculationResponse(ln.Calculation),
		})
	}
	return out
}

type trialBalanceRowResponse struct {
	Account accountResponse `json:"account"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

type trialBalanceResponse struct {
	AsOf        string                    `json:"as_of"`
	Rows        []trialBalanceRowResponse `json:"rows"`
	TotalDebit  decimal.Decimal           `json:"total_debit"`
	TotalCredit decimal.Decimal           `json:"total_credit"`
}

type balanceLineResponse struct {
	Account accountResponse `json:"account"`
	Balance decimal.Decimal `json:"balance"`
}

func toBalanceLines(lines []ledger.AccountBalanceLine) []balanceLineResponse {
	out := make([]balanceLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, balanceLineResponse{Account: toAccountResponse(l.Account), Balance: l.Balance})
	}
	return out
}

type balanceSheetResponse struct {
	AsOf             string                `json:"as_of"`
	Assets           []balanceLineResponse `json:"assets"`
	Liabilities      []balanceLineResponse `json:"liabilities"`
	Equity           []balanceLineResponse `json:"equity"`
	RetainedEarnings decimal.Decimal       `json:"retained_earnings"`
	TotalAssets      decimal.Decimal       `json:"total_assets"`
	TotalLiabilities decimal.Decimal       `json:"total_liabilities"`
	TotalEquity      decimal.Decimal       `json:"total_equity"`
}

type incomeStatementResponse struct {
	Start         string                `json:"start"`
	End           string                `json:"end"`
	Revenue       []balanceLineResponse `json:"revenue"`
	Expenses      []balanceLineResponse `json:"expenses"`
	TotalRevenue  decimal.Decimal       `json:"total_revenue"`
	TotalExpenses decimal.Decimal       `json:"total_expenses"`
	NetIncome     decimal.Decimal       `json:"net_income"`
}
