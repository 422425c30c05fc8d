package gst

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LineItem is one invoice line before tax: a description, a base amount and
// either a slab category or an explicit rate. A non-nil Rate wins over
// Category.
type LineItem struct {
	Description string
	BaseAmount  decimal.Decimal
	Category    Category
	Rate        *decimal.Decimal
}

// InvoiceLine pairs a line item's description with its computed breakdown.
type InvoiceLine struct {
	Description string
	Calculation Calculation
}

// Invoice aggregates per-line calculations into invoice-level totals.
type Invoice struct {
	Lines      []InvoiceLine
	TotalBase  decimal.Decimal
	TotalCGST  decimal.Decimal
	TotalSGST  decimal.Decimal
	TotalIGST  decimal.Decimal
	TotalTax   decimal.Decimal
	GrandTotal decimal.Decimal
}

// CalculateInvoice computes every line and the invoice aggregate. The first
// failing line aborts the whole invoice; there is no partial result.
func (c *Calculator) CalculateInvoice(items []LineItem) (Invoice, error) {
	inv := Invoice{
		Lines:     make([]InvoiceLine, 0, len(items)),
		TotalBase: decimal.Zero,
		TotalCGST: decimal.Zero,
		TotalSGST: decimal.Zero,
		TotalIGST: decimal.Zero,
	}
	for i, item := range items {
		calc, err := c.CalculateByCategory(item.BaseAmount, item.Category, item.Rate)
		if err != nil {
			return Invoice{}, fmt.Errorf("line %d (%s): %w", i, item.Description, err)
		}
		inv.Lines = append(inv.Lines, InvoiceLine{Description: item.Description, Calculation: calc})
		inv.TotalBase = inv.TotalBase.Add(calc.BaseAmount)
		inv.TotalCGST = inv.TotalCGST.Add(calc.CGST)
		inv.TotalSGST = inv.TotalSGST.Add(calc.SGST)
		inv.TotalIGST = inv.TotalIGST.Add(calc.IGST)
	}
	inv.TotalTax = inv.TotalCGST.Add(inv.TotalSGST).Add(inv.TotalIGST)
	inv.GrandTotal = inv.TotalBase.Add(inv.TotalTax)
	return inv, nil
}

// Rounded returns the invoice with every line and total rounded to
// DisplayScale. Totals are re-summed from the rounded lines so the printed
// invoice is internally consistent.
func (inv Invoice) Rounded() Invoice {
	out := Invoice{
		Lines:     make([]InvoiceLine, 0, len(inv.Lines)),
		TotalBase: decimal.Zero,
		TotalCGST: decimal.Zero,
		TotalSGST: decimal.Zero,
		TotalIGST: decimal.Zero,
	}
	for _, ln := range inv.Lines {
		r := ln.Calculation.Rounded()
		out.Lines = append(out.Lines, InvoiceLine{Description: ln.Description, Calculation: r})
		out.TotalBase = out.TotalBase.Add(r.BaseAmount)
		out.TotalCGST = out.TotalCGST.Add(r.CGST)
		out.TotalSGST = out.TotalSGST.Add(r.SGST)
		out.TotalIGST = out.TotalIGST.Add(r.IGST)
	}
	out.TotalTax = out.TotalCGST.Add(out.TotalSGST).Add(out.TotalIGST)
	out.GrandTotal = out.TotalBase.Add(out.TotalTax)
	return out
}
