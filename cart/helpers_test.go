package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"storefront/catalog"
	"storefront/eventsource"
)

var testBuilder = NewStateBuilder()

func testProduct(id, price string, inStock bool) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    decimal.RequireFromString(price),
		Category: "Tops",
		InStock:  inStock,
	}
}

// apply packs the event the same way a session journal does and applies it.
func apply(t *testing.T, state CartState, event eventsource.Event) CartState {
	t.Helper()
	if event == nil {
		return state
	}
	packed, err := eventsource.PackEvent(event)
	if err != nil {
		t.Fatalf("pack %s: %v", event.EventType(), err)
	}
	next := state
	if !testBuilder.Apply(&next, packed) {
		t.Fatalf("event %s was not applied", event.EventType())
	}
	return next
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
