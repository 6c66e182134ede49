package cart

import "github.com/shopspring/decimal"

// Pricing rules.
var (
	// FreeShippingThreshold must be strictly exceeded for free shipping.
	FreeShippingThreshold = decimal.NewFromInt(100)
	FlatShippingCost      = decimal.RequireFromString("9.99")
	TaxRate               = decimal.RequireFromString("0.08")
)

// Totals are the monetary values derived from a cart, kept at full precision.
type Totals struct {
	ItemCount  int // sum of quantities
	LineCount  int // distinct products
	Subtotal   decimal.Decimal
	Shipping   decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
}

// DeriveTotals computes the totals of a cart.
func DeriveTotals(state CartState) Totals {
	t := Totals{LineCount: state.Len(), Subtotal: decimal.Zero}
	for _, item := range state.items {
		t.ItemCount += item.Quantity
		t.Subtotal = t.Subtotal.Add(item.LineTotal())
	}

	t.Shipping = FlatShippingCost
	if t.Subtotal.GreaterThan(FreeShippingThreshold) {
		t.Shipping = decimal.Zero
	}
	t.Tax = t.Subtotal.Mul(TaxRate)
	t.GrandTotal = t.Subtotal.Add(t.Shipping).Add(t.Tax)
	return t
}

// FreeShipping reports whether no shipping is charged.
func (t Totals) FreeShipping() bool {
	return t.Shipping.IsZero()
}

// FreeShippingRemainder returns how much more must be spent to reach the
// threshold. ok is false when shipping is already free or nothing remains.
func (t Totals) FreeShippingRemainder() (remainder decimal.Decimal, ok bool) {
	if t.FreeShipping() {
		return decimal.Zero, false
	}
	remainder = FreeShippingThreshold.Sub(t.Subtotal)
	if !remainder.IsPositive() {
		return decimal.Zero, false
	}
	return remainder, true
}

// FormatMoney renders an amount as dollars rounded to cents.
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// ShippingLabel renders shipping the way the order summary shows it.
func (t Totals) ShippingLabel() string {
	if t.FreeShipping() {
		return "Free"
	}
	return FormatMoney(t.Shipping)
}
