package server

import (
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"

	"storefront/cart"
	"storefront/catalog"
	"storefront/eventsource"
	"storefront/session"
)

// encodeView renders a session view as a Struct. Amounts are carried both as
// exact decimal strings and as display labels rounded to cents.
func encodeView(id uuid.UUID, view session.View) (*structpb.Struct, error) {
	products := make([]any, len(view.Products))
	for i, p := range view.Products {
		products[i] = productFields(p)
	}

	categories := make([]any, len(view.Categories))
	for i, c := range view.Categories {
		categories[i] = c
	}

	return structpb.NewStruct(map[string]any{
		keySessionID: id.String(),
		"filter": map[string]any{
			"search_term": view.Filter.SearchTerm,
			"category":    view.Filter.Category,
			"sort_field":  view.Filter.SortField.String(),
			"sort_order":  view.Filter.SortOrder.String(),
		},
		"products":       products,
		"result_count":   view.ResultCount,
		"categories":     categories,
		"cart":           cartFields(view.Lines, view.Totals),
		"checkout_phase": view.Phase.String(),
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
		"price_label": cart.FormatMoney(p.Price),
		"image":       p.Image,
		"category":    p.Category,
		"rating":      rating,
		"reviews":     p.Reviews,
		"in_stock":    p.InStock,
	}
}

func cartFields(lines []session.Line, totals cart.Totals) map[string]any {
	encoded := make([]any, len(lines))
	for i, line := range lines {
		encoded[i] = map[string]any{
			keyProductID:       line.Item.Product.ID,
			"name":             line.Item.Product.Name,
			"unit_price":       line.Item.Product.Price.String(),
			keyQuantity:        line.Item.Quantity,
			"line_total":       line.LineTotal.String(),
			"line_total_label": cart.FormatMoney(line.LineTotal),
		}
	}

	fields := map[string]any{
		"lines":             encoded,
		"item_count":        totals.ItemCount,
		"line_count":        totals.LineCount,
		"subtotal":          totals.Subtotal.String(),
		"subtotal_label":    cart.FormatMoney(totals.Subtotal),
		"shipping":          totals.Shipping.String(),
		"shipping_label":    totals.ShippingLabel(),
		"tax":               totals.Tax.String(),
		"tax_label":         cart.FormatMoney(totals.Tax),
		"grand_total":       totals.GrandTotal.String(),
		"grand_total_label": cart.FormatMoney(totals.GrandTotal),
	}
	if remainder, ok := totals.FreeShippingRemainder(); ok {
		fields["free_shipping_remainder"] = remainder.String()
		fields["free_shipping_remainder_label"] = cart.FormatMoney(remainder)
	}
	return fields
}

func encodeJournal(book *eventsource.Book) (*structpb.Struct, error) {
	events := make([]any, 0, len(book.Pages))
	for _, page := range book.Pages {
		entry := map[string]any{
			"seq":  page.Sequence,
			"type": page.Type(),
		}
		if page.CreatedAt != nil {
			entry["created_at"] = page.CreatedAt.AsTime().Format(time.RFC3339Nano)
		}
		if payload, err := eventsource.UnpackPayload(page.Event); err == nil {
			entry["payload"] = payload.AsMap()
		}
		events = append(events, entry)
	}
	return structpb.NewStruct(map[string]any{
		keySessionID: book.Root.String(),
		"events":     events,
	})
}
