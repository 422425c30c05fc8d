// Package gst computes Indian GST breakdowns: CGST/SGST for intra-state
// supplies, IGST for inter-state, forward and reverse, per line and per
// invoice. It is pure arithmetic over exact decimals; nothing is persisted
// and every result is recomputed from scratch.
package gst

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors surfaced by the calculator.
var (
	ErrInvalidRate       = errors.New("gst rate cannot be negative")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrInvalidCategory   = errors.New("unknown gst category")
)

// Category is a GST rate slab. The set is closed; Rate fails only if a
// caller fabricates a value outside it.
type Category string

const (
	// CategoryNil covers exempt supplies, 0%.
	CategoryNil Category = "nil"
	// CategoryLower covers essential goods, 5%.
	CategoryLower Category = "lower"
	// CategoryStandard covers most goods, 12%.
	CategoryStandard Category = "standard"
	// CategoryHigher covers most services, 18%.
	CategoryHigher Category = "higher"
	// CategoryLuxury covers luxury and sin goods, 28%.
	CategoryLuxury Category = "luxury"
)

// categoryRates maps each slab to its rate as a decimal fraction.
var categoryRates = map[Category]decimal.Decimal{
	CategoryNil:      decimal.Zero,
	CategoryLower:    decimal.New(5, -2),
	CategoryStandard: decimal.New(12, -2),
	CategoryHigher:   decimal.New(18, -2),
	CategoryLuxury:   decimal.New(28, -2),
}

// Rate returns the slab's rate as a fraction (CategoryHigher -> 0.18).
func (c Category) Rate() (decimal.Decimal, error) {
	r, ok := categoryRates[c]
	if !ok {
		return decimal.Zero, fmt.Errorf("%q: %w", c, ErrInvalidCategory)
	}
	return r, nil
}

// Valid reports whether c is one of the five known slabs.
func (c Category) Valid() bool {
	_, ok := categoryRates[c]
	return ok
}

// DisplayScale is the minor-unit precision applied by Rounded. Intermediate
// arithmetic always runs at full precision; rounding happens only at the
// display boundary.
const DisplayScale = 2

// Calculation is the tax breakdown of a single taxable amount. All fields
// are derived values; recompute rather than mutate.
type Calculation struct {
	BaseAmount  decimal.Decimal
	Rate        decimal.Decimal
	CGST        decimal.Decimal
	SGST        decimal.Decimal
	IGST        decimal.Decimal
	TotalTax    decimal.Decimal
	TotalAmount decimal.Decimal
}

// Rounded returns the calculation with every component rounded to
// DisplayScale using banker's rounding. The totals are re-derived from the
// rounded components so the printed figures still add up.
func (c Calculation) Rounded() Calculation {
	out := Calculation{
		BaseAmount: c.BaseAmount.RoundBank(DisplayScale),
		Rate:       c.Rate,
		CGST:       c.CGST.RoundBank(DisplayScale),
		SGST:       c.SGST.RoundBank(DisplayScale),
		IGST:       c.IGST.RoundBank(DisplayScale),
	}
	out.TotalTax = out.CGST.Add(out.SGST).Add(out.IGST)
	out.TotalAmount = out.BaseAmount.Add(out.TotalTax)
	return out
}

// Calculator splits tax for one supply flavour. Inter-state supplies incur
// IGST for the full rate; intra-state supplies split the rate evenly
// between CGST and SGST.
type Calculator struct {
	interState bool
}

// New returns a Calculator. interState selects IGST over the CGST/SGST split.
func New(interState bool) *Calculator {
	return &Calculator{interState: interState}
}

// InterState reports which split the calculator applies.
func (c *Calculator) InterState() bool { return c.interState }

var (
	one = decimal.New(1, 0)
	two = decimal.New(2, 0)
)

// Calculate splits base by rate, where rate is a fraction (0.18 for 18%).
// It fails with ErrInvalidRate for a negative rate and ErrNonPositiveAmount
// for base <= 0.
func (c *Calculator) Calculate(base, rate decimal.Decimal) (Calculation, error) {
	if rate.IsNegative() {
		return Calculation{}, fmt.Errorf("rate %s: %w", rate, ErrInvalidRate)
	}
	if !base.IsPositive() {
		return Calculation{}, fmt.Errorf("base %s: %w", base, ErrNonPositiveAmount)
	}
	out := Calculation{
		BaseAmount: base,
		Rate:       rate,
		CGST:       decimal.Zero,
		SGST:       decimal.Zero,
		IGST:       decimal.Zero,
	}
	tax := base.Mul(rate)
	if c.interState {
		out.IGST = tax
	} else {
		half := tax.Div(two)
		out.CGST, out.SGST = half, half
	}
	out.TotalTax = out.CGST.Add(out.SGST).Add(out.IGST)
	out.TotalAmount = base.Add(out.TotalTax)
	return out, nil
}

// CalculateByCategory resolves the slab rate and computes the split. A
// non-nil overrideRate wins over the category table.
func (c *Calculator) CalculateByCategory(base decimal.Decimal, category Category, overrideRate *decimal.Decimal) (Calculation, error) {
	if overrideRate != nil {
		return c.Calculate(base, *overrideRate)
	}
	rate, err := category.Rate()
	if err != nil {
		return Calculation{}, err
	}
	return c.Calculate(base, rate)
}

// ReverseCalculate derives the base from a GST-inclusive total and
// recomputes the forward split from it, so that a forward calculation of
// the returned base reproduces the total within DisplayScale rounding.
func (c *Calculator) ReverseCalculate(total, rate decimal.Decimal) (Calculation, error) {
	if rate.IsNegative() {
		return Calculation{}, fmt.Errorf("rate %s: %w", rate, ErrInvalidRate)
	}
	if !total.IsPositive() {
		return Calculation{}, fmt.Errorf("total %s: %w", total, ErrNonPositiveAmount)
	}
	// Extra precision on the division keeps the round trip inside the
	// display scale even for non-terminating ratios.
	base := total.DivRound(one.Add(rate), DisplayScale+6)
	return c.Calculate(base, rate)
}
