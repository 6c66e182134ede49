package cart

import (
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/structpb"

	"storefront/catalog"
	"storefront/eventsource"
)

// Event type names.
const (
	EventItemAdded         = "ItemAdded"
	EventQuantityUpdated   = "QuantityUpdated"
	EventItemRemoved       = "ItemRemoved"
	EventCartCleared       = "CartCleared"
	EventCheckoutRequested = "CheckoutRequested"
	EventCheckoutCompleted = "CheckoutCompleted"
)

// ItemAdded records one unit of a product added to the cart. NewQuantity is
// the line quantity after the add.
type ItemAdded struct {
	Product     catalog.Product
	NewQuantity int
}

func (e ItemAdded) EventType() string { return EventItemAdded }

func (e ItemAdded) Payload() (*structpb.Struct, error) {
	return eventsource.NewPayload(map[string]any{
		"product":      productFields(e.Product),
		"new_quantity": e.NewQuantity,
	})
}

// QuantityUpdated records an absolute quantity change of an existing line.
type QuantityUpdated struct {
	ProductID   string
	OldQuantity int
	NewQuantity int
}

func (e QuantityUpdated) EventType() string { return EventQuantityUpdated }

func (e QuantityUpdated) Payload() (*structpb.Struct, error) {
	return eventsource.NewPayload(map[string]any{
		"product_id":   e.ProductID,
		"old_quantity": e.OldQuantity,
		"new_quantity": e.NewQuantity,
	})
}

// ItemRemoved records a line leaving the cart.
type ItemRemoved struct {
	ProductID string
	Quantity  int
}

func (e ItemRemoved) EventType() string { return EventItemRemoved }

func (e ItemRemoved) Payload() (*structpb.Struct, error) {
	return eventsource.NewPayload(map[string]any{
		"product_id": e.ProductID,
		"quantity":   e.Quantity,
	})
}

// CartCleared records every line being dropped.
type CartCleared struct {
	LineCount int
}

func (e CartCleared) EventType() string { return EventCartCleared }

func (e CartCleared) Payload() (*structpb.Struct, error) {
	return eventsource.NewPayload(map[string]any{
		"line_count": e.LineCount,
	})
}

// CheckoutRequested records the Idle -> Pending transition.
type CheckoutRequested struct {
	ItemCount  int
	GrandTotal decimal.Decimal
}

func (e CheckoutRequested) EventType() string { return EventCheckoutRequested }

func (e CheckoutRequested) Payload() (*structpb.Struct, error) {
	return eventsource.NewPayload(map[string]any{
		"item_count":  e.ItemCount,
		"grand_total": e.GrandTotal.String(),
	})
}

// CheckoutCompleted records the Pending -> Completed transition. Applying it
// clears the cart in the same step.
type CheckoutCompleted struct {
	ItemCount  int
	GrandTotal decimal.Decimal
}

func (e CheckoutCompleted) EventType() string { return EventCheckoutCompleted }

func (e CheckoutCompleted) Payload() (*structpb.Struct, error) {
	return eventsource.NewPayload(map[string]any{
		"item_count":  e.ItemCount,
		"grand_total": e.GrandTotal.String(),
	})
}

func productFields(p catalog.Product) map[string]any {
	var rating any
	if p.Rating.Valid {
		rating = p.Rating.Decimal.String()
	}
	return map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.String(),
		"image":       p.Image,
		"category":    p.Category,
		"rating":      rating,
		"reviews":     p.Reviews,
		"in_stock":    p.InStock,
	}
}

func productFromStruct(s *structpb.Struct) (catalog.Product, bool) {
	f := s.GetFields()
	price, err := decimal.NewFromString(f["price"].GetStringValue())
	if err != nil {
		return catalog.Product{}, false
	}
	p := catalog.Product{
		ID:          f["id"].GetStringValue(),
		Name:        f["name"].GetStringValue(),
		Description: f["description"].GetStringValue(),
		Price:       price,
		Image:       f["image"].GetStringValue(),
		Category:    f["category"].GetStringValue(),
		Reviews:     int(f["reviews"].GetNumberValue()),
		InStock:     f["in_stock"].GetBoolValue(),
	}
	if raw := f["rating"].GetStringValue(); raw != "" {
		rating, err := decimal.NewFromString(raw)
		if err != nil {
			return catalog.Product{}, false
		}
		p.Rating = decimal.NewNullDecimal(rating)
	}
	return p, p.ID != ""
}
