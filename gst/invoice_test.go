package gst_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khatabase/khata/gst"
)

func TestCalculateInvoice(t *testing.T) {
	inv, err := gst.New(false).CalculateInvoice([]gst.LineItem{
		{Description: "laptop", BaseAmount: d("50000"), Category: gst.CategoryHigher},
		{Description: "rice", BaseAmount: d("1200"), Category: gst.CategoryNil},
		{Description: "medicine", BaseAmount: d("800"), Category: gst.CategoryLower},
	})
	require.NoError(t, err)
	require.Len(t, inv.Lines, 3)

	// 50000*0.18 + 0 + 800*0.05
	require.True(t, inv.TotalBase.Equal(d("52000")))
	require.True(t, inv.TotalTax.Equal(d("9040")), "tax = %s", inv.TotalTax)
	require.True(t, inv.TotalCGST.Equal(d("4520")))
	require.True(t, inv.TotalSGST.Equal(d("4520")))
	require.True(t, inv.TotalIGST.IsZero())
	require.True(t, inv.GrandTotal.Equal(d("61040")))
}

func TestCalculateInvoiceInterState(t *testing.T) {
	inv, err := gst.New(true).CalculateInvoice([]gst.LineItem{
		{Description: "consulting", BaseAmount: d("10000"), Category: gst.CategoryHigher},
	})
	require.NoError(t, err)
	require.True(t, inv.TotalCGST.IsZero())
	require.True(t, inv.TotalSGST.IsZero())
	require.True(t, inv.TotalIGST.Equal(d("1800")))
}

func TestCalculateInvoicePerLineRateOverride(t *testing.T) {
	special := d("0.015")
	inv, err := gst.New(false).CalculateInvoice([]gst.LineItem{
		{Description: "standard item", BaseAmount: d("1000"), Category: gst.CategoryStandard},
		{Description: "concessional item", BaseAmount: d("1000"), Rate: &special},
	})
	require.NoError(t, err)
	require.True(t, inv.Lines[0].Calculation.TotalTax.Equal(d("120")))
	require.True(t, inv.Lines[1].Calculation.TotalTax.Equal(d("15")))
	require.True(t, inv.TotalTax.Equal(d("135")))
}

func TestCalculateInvoiceFailsFast(t *testing.T) {
	_, err := gst.New(false).CalculateInvoice([]gst.LineItem{
		{Description: "fine", BaseAmount: d("100"), Category: gst.CategoryLower},
		{Description: "broken", BaseAmount: d("-5"), Category: gst.CategoryLower},
		{Description: "never reached", BaseAmount: d("100"), Category: gst.CategoryLower},
	})
	require.ErrorIs(t, err, gst.ErrNonPositiveAmount)
	require.Contains(t, err.Error(), "line 1 (broken)")
}

func TestCalculateInvoiceEmpty(t *testing.T) {
	inv, err := gst.New(false).CalculateInvoice(nil)
	require.NoError(t, err)
	require.Empty(t, inv.Lines)
	require.True(t, inv.GrandTotal.IsZero())
}

func TestInvoiceRounded(t *testing.T) {
	inv, err := gst.New(false).CalculateInvoice([]gst.LineItem{
		{Description: "a", BaseAmount: d("33.33"), Category: gst.CategoryHigher},
		{Description: "b", BaseAmount: d("66.67"), Category: gst.CategoryHigher},
	})
	require.NoError(t, err)

	r := inv.Rounded()
	require.True(t, r.TotalTax.Equal(r.TotalCGST.Add(r.TotalSGST).Add(r.TotalIGST)))
	require.True(t, r.GrandTotal.Equal(r.TotalBase.Add(r.TotalTax)))
	for _, ln := range r.Lines {
		require.True(t, ln.Calculation.CGST.Exponent() >= -2, "line %s cgst %s", ln.Description, ln.Calculation.CGST)
	}
}
