package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/khatabase/khata/gst"
	"github.com/khatabase/khata/ledger"
)

func TestSalesInvoiceWithGST(t *testing.T) {
	tx, err := ledger.SalesInvoiceWithGST(ledger.SalesInvoiceParams{
		ID:                  "inv-1",
		Date:                day(2024, time.April, 1),
		Description:         "invoice 42",
		ReceivableAccountID: "accounts_receivable",
		RevenueAccountID:    "sales",
		GSTPayableAccountID: "gst_payable",
		BaseAmount:          d("10000"),
		GSTAmount:           d("1800"),
	})
	require.NoError(t, err)
	require.Len(t, tx.Entries, 3)
	require.True(t, tx.TotalDebits().Equal(d("11800")))

	byAccount := map[string]ledger.Entry{}
	for _, e := range tx.Entries {
		byAccount[e.AccountID] = e
	}
	require.Equal(t, ledger.SideDebit, byAccount["accounts_receivable"].Side)
	require.Equal(t, "11800", byAccount["accounts_receivable"].Amount.String())
	require.Equal(t, ledger.SideCredit, byAccount["sales"].Side)
	require.Equal(t, "10000", byAccount["sales"].Amount.String())
	require.Equal(t, ledger.SideCredit, byAccount["gst_payable"].Side)
	require.Equal(t, "1800", byAccount["gst_payable"].Amount.String())
}

func TestSalesInvoiceWithoutGST(t *testing.T) {
	tx, err := ledger.SalesInvoiceWithGST(ledger.SalesInvoiceParams{
		ID:                  "inv-2",
		Date:                day(2024, time.April, 1),
		Description:         "exempt supply",
		ReceivableAccountID: "accounts_receivable",
		RevenueAccountID:    "sales",
		BaseAmount:          d("500"),
		GSTAmount:           d("0"),
	})
	require.NoError(t, err)
	require.Len(t, tx.Entries, 2)
}

func TestPurchaseWithGST(t *testing.T) {
	tx, err := ledger.PurchaseWithGST(ledger.PurchaseParams{
		ID:                      "bill-1",
		Date:                    day(2024, time.April, 2),
		Description:             "office chairs",
		ExpenseAccountID:        "purchases",
		GSTRecoverableAccountID: "gst_recoverable",
		PaymentAccountID:        "bank",
		BaseAmount:              d("2000"),
		GSTAmount:               d("360"),
	})
	require.NoError(t, err)
	require.Len(t, tx.Entries, 3)
	require.True(t, tx.TotalDebits().Equal(d("2360")))

	byAccount := map[string]ledger.Entry{}
	for _, e := range tx.Entries {
		byAccount[e.AccountID] = e
	}
	require.Equal(t, ledger.SideDebit, byAccount["purchases"].Side)
	require.Equal(t, ledger.SideDebit, byAccount["gst_recoverable"].Side)
	require.Equal(t, ledger.SideCredit, byAccount["bank"].Side)
	require.Equal(t, "2360", byAccount["bank"].Amount.String())
}

// The helpers compose with the gst package: a computed split posts cleanly
// and the GST control accounts carry the tax.
func TestInvoicePostingRoundTrip(t *testing.T) {
	led, _ := newLedger(t)
	ctx := context.Background()
	mustAccount(t, led, "accounts_receivable", "Accounts Receivable", ledger.AccountTypeAsset)
	mustAccount(t, led, "sales", "Sales", ledger.AccountTypeIncome)
	mustAccount(t, led, "gst_payable", "GST Payable", ledger.AccountTypeLiability)

	calc, err := gst.New(false).CalculateByCategory(d("10000"), gst.CategoryHigher, nil)
	require.NoError(t, err)

	tx, err := ledger.SalesInvoiceWithGST(ledger.SalesInvoiceParams{
		ID:                  "inv-1",
		Date:                day(2024, time.April, 1),
		Description:         "taxable sale",
		ReceivableAccountID: "accounts_receivable",
		RevenueAccountID:    "sales",
		GSTPayableAccountID: "gst_payable",
		BaseAmount:          calc.BaseAmount,
		GSTAmount:           calc.TotalTax,
	})
	require.NoError(t, err)
	require.NoError(t, led.RecordTransaction(ctx, tx))

	gstBal, err := led.AccountBalance(ctx, "gst_payable", day(2024, time.April, 30))
	require.NoError(t, err)
	require.True(t, gstBal.Equal(d("1800")))

	ar, err := led.AccountBalance(ctx, "accounts_receivable", day(2024, time.April, 30))
	require.NoError(t, err)
	require.True(t, ar.Equal(d("11800")))
}
