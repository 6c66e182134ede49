// Package cart implements the cart ledger: ordered line items, the checkout
// state machine, and the monetary totals derived from them.
package cart

import (
	"slices"

	"github.com/shopspring/decimal"

	"storefront/catalog"
)

// CheckoutPhase is the tagged checkout state: Idle -> Pending -> Completed.
type CheckoutPhase int

const (
	PhaseIdle CheckoutPhase = iota
	PhasePending
	PhaseCompleted
)

func (p CheckoutPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// CartItem is one line of the cart.
type CartItem struct {
	Product  catalog.Product
	Quantity int
}

// LineTotal returns price * quantity at full precision.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartState is an immutable cart snapshot. It only changes by applying
// events through the state builder, which always replaces the item slice.
type CartState struct {
	items []CartItem
	phase CheckoutPhase
}

// EmptyState returns an empty, idle cart.
func EmptyState() CartState {
	return CartState{}
}

// Items returns the lines in first-add order. The slice is a copy.
func (s CartState) Items() []CartItem {
	return slices.Clone(s.items)
}

// Len returns the number of distinct lines.
func (s CartState) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the cart has no lines.
func (s CartState) IsEmpty() bool {
	return len(s.items) == 0
}

// Find returns the line for productID.
func (s CartState) Find(productID string) (CartItem, bool) {
	i := s.indexOf(productID)
	if i < 0 {
		return CartItem{}, false
	}
	return s.items[i], true
}

// Quantity returns the quantity of productID, zero when absent.
func (s CartState) Quantity(productID string) int {
	item, _ := s.Find(productID)
	return item.Quantity
}

// Phase returns the checkout phase.
func (s CartState) Phase() CheckoutPhase {
	return s.phase
}

// CheckoutPending reports whether checkout has been requested and not completed.
func (s CartState) CheckoutPending() bool {
	return s.phase == PhasePending
}

func (s CartState) indexOf(productID string) int {
	return slices.IndexFunc(s.items, func(item CartItem) bool {
		return item.Product.ID == productID
	})
}
