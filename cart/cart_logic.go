package cart

import (
	"math"

	"storefront/catalog"
	"storefront/eventsource"
)

// MaxQuantity is the largest line quantity that survives the int32 wire
// encoding and the float64 event payload unchanged.
const MaxQuantity = math.MaxInt32

// CartLogic decides which event, if any, an operation produces.
//
// Every handler is pure: it inspects the state and returns the event to
// record, or nil when the operation is a no-op. Handlers never fail.
type CartLogic interface {
	HandleAddToCart(state CartState, product catalog.Product) eventsource.Event
	HandleRemoveFromCart(state CartState, productID string) eventsource.Event
	HandleUpdateQuantity(state CartState, productID string, newQuantity int) eventsource.Event
	HandleClearCart(state CartState) eventsource.Event
	HandleRequestCheckout(state CartState) eventsource.Event
	HandleCompleteCheckout(state CartState) eventsource.Event
}

// DefaultCartLogic is the default implementation of CartLogic.
type DefaultCartLogic struct{}

// NewCartLogic creates a new CartLogic instance.
func NewCartLogic() CartLogic {
	return &DefaultCartLogic{}
}

// HandleAddToCart adds one unit of an in-stock product.
func (l *DefaultCartLogic) HandleAddToCart(state CartState, product catalog.Product) eventsource.Event {
	if !product.InStock || state.Quantity(product.ID) >= MaxQuantity {
		return nil
	}
	return ItemAdded{
		Product:     product,
		NewQuantity: state.Quantity(product.ID) + 1,
	}
}

// HandleRemoveFromCart drops the line for productID if present.
func (l *DefaultCartLogic) HandleRemoveFromCart(state CartState, productID string) eventsource.Event {
	item, ok := state.Find(productID)
	if !ok {
		return nil
	}
	return ItemRemoved{ProductID: productID, Quantity: item.Quantity}
}

// HandleUpdateQuantity sets an absolute quantity. Anything below one removes the line.
func (l *DefaultCartLogic) HandleUpdateQuantity(state CartState, productID string, newQuantity int) eventsource.Event {
	if newQuantity < 1 {
		return l.HandleRemoveFromCart(state, productID)
	}
	if newQuantity > MaxQuantity {
		return nil
	}
	item, ok := state.Find(productID)
	if !ok || item.Quantity == newQuantity {
		return nil
	}
	return QuantityUpdated{
		ProductID:   productID,
		OldQuantity: item.Quantity,
		NewQuantity: newQuantity,
	}
}

// HandleClearCart empties the cart. The checkout phase is left alone.
func (l *DefaultCartLogic) HandleClearCart(state CartState) eventsource.Event {
	if state.IsEmpty() {
		return nil
	}
	return CartCleared{LineCount: state.Len()}
}

// HandleRequestCheckout moves to Pending when the cart has items.
func (l *DefaultCartLogic) HandleRequestCheckout(state CartState) eventsource.Event {
	if state.IsEmpty() || state.CheckoutPending() {
		return nil
	}
	totals := DeriveTotals(state)
	return CheckoutRequested{ItemCount: totals.ItemCount, GrandTotal: totals.GrandTotal}
}

// HandleCompleteCheckout finishes checkout and clears the cart.
func (l *DefaultCartLogic) HandleCompleteCheckout(state CartState) eventsource.Event {
	totals := DeriveTotals(state)
	return CheckoutCompleted{ItemCount: totals.ItemCount, GrandTotal: totals.GrandTotal}
}
