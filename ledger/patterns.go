package ledger

// Posting helpers for common GST-bearing business transactions. They only
// assemble balanced transactions through the builder; the caller records the
// result via Ledger.RecordTransaction. Tax amounts are computed upstream
// (see the gst package) and passed in ready-split.

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesInvoiceParams describes a sales invoice posting: receivables are
// debited for the gross amount, revenue is credited for the base, and the
// GST collected is credited to a payable account.
type SalesInvoiceParams struct {
	ID          string
	Date        time.Time
	Description string

	ReceivableAccountID string
	RevenueAccountID    string
	GSTPayableAccountID string

	BaseAmount decimal.Decimal
	GSTAmount  decimal.Decimal
}

// SalesInvoiceWithGST builds the standard sales invoice transaction. A zero
// GSTAmount produces a plain two-entry invoice.
func SalesInvoiceWithGST(p SalesInvoiceParams) (Transaction, error) {
	b := NewTransaction(p.ID, p.Date, p.Description).
		Debit(p.ReceivableAccountID, p.BaseAmount.Add(p.GSTAmount), "").
		Credit(p.RevenueAccountID, p.BaseAmount, "")
	if p.GSTAmount.IsPositive() {
		b.Credit(p.GSTPayableAccountID, p.GSTAmount, "gst collected")
	}
	return b.Build()
}

// PurchaseParams describes a bill payment posting: the expense is debited
// for the base, recoverable GST is debited as input tax credit, and cash or
// payables are credited for the gross amount.
type PurchaseParams struct {
	ID          string
	Date        time.Time
	Description string

	ExpenseAccountID        string
	GSTRecoverableAccountID string
	PaymentAccountID        string

	BaseAmount decimal.Decimal
	GSTAmount  decimal.Decimal
}

// PurchaseWithGST builds the standard bill payment transaction. A zero
// GSTAmount produces a plain two-entry purchase.
func PurchaseWithGST(p PurchaseParams) (Transaction, error) {
	b := NewTransaction(p.ID, p.Date, p.Description).
		Debit(p.ExpenseAccountID, p.BaseAmount, "")
	if p.GSTAmount.IsPositive() {
		b.Debit(p.GSTRecoverableAccountID, p.GSTAmount, "input tax credit")
	}
	b.Credit(p.PaymentAccountID, p.BaseAmount.Add(p.GSTAmount), "")
	return b.Build()
}
