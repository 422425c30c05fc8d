// Package dictionary carries the curated starter chart of accounts offered
// by the API and used by the dev seed. It is advice, not enforcement: the
// registry accepts any id the caller supplies.
package dictionary

import "github.com/khatabase/khata/ledger"

// AccountDef describes one suggested account.
type AccountDef struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Type   ledger.AccountType `json:"type"`
	Parent string             `json:"parent,omitempty"`
}

var curated = []AccountDef{
	{ID: "cash", Name: "Cash", Type: ledger.AccountTypeAsset},
	{ID: "bank", Name: "Bank", Type: ledger.AccountTypeAsset},
	{ID: "accounts_receivable", Name: "Accounts Receivable", Type: ledger.AccountTypeAsset},
	{ID: "gst_recoverable", Name: "GST Recoverable", Type: ledger.AccountTypeAsset},
	{ID: "inventory", Name: "Inventory", Type: ledger.AccountTypeAsset},

	{ID: "accounts_payable", Name: "Accounts Payable", Type: ledger.AccountTypeLiability},
	{ID: "gst_payable", Name: "GST Payable", Type: ledger.AccountTypeLiability},
	{ID: "loans", Name: "Loans", Type: ledger.AccountTypeLiability},

	{ID: "owner_capital", Name: "Owner Capital", Type: ledger.AccountTypeEquity},
	{ID: "opening_balances", Name: "Opening Balances", Type: ledger.AccountTypeEquity},

	{ID: "sales", Name: "Sales Revenue", Type: ledger.AccountTypeIncome},
	{ID: "interest_income", Name: "Interest Income", Type: ledger.AccountTypeIncome},

	{ID: "purchases", Name: "Purchases", Type: ledger.AccountTypeExpense},
	{ID: "rent", Name: "Rent", Type: ledger.AccountTypeExpense},
	{ID: "salaries", Name: "Salaries", Type: ledger.AccountTypeExpense},
	{ID: "utilities", Name: "Utilities", Type: ledger.AccountTypeExpense},
}

// Defaults returns the full starter chart in posting order (parents never
// come after children).
func Defaults() []AccountDef {
	out := make([]AccountDef, len(curated))
	copy(out, curated)
	return out
}

// ByType returns the starter accounts of one type, preserving order.
func ByType(t ledger.AccountType) []AccountDef {
	out := make([]AccountDef, 0, 4)
	for _, d := range curated {
		if d.Type == t {
			out = append(out, d)
		}
	}
	return out
}
