package cart

import (
	"slices"

	"google.golang.org/protobuf/types/known/structpb"

	"storefront/eventsource"
)

// NewStateBuilder returns the builder that applies cart events to CartState.
//
// Appliers never write through the existing item slice, so a CartState value
// held elsewhere is unaffected when a copy of it is advanced.
func NewStateBuilder() *eventsource.StateBuilder[CartState] {
	return eventsource.NewStateBuilder(EmptyState).
		On(EventItemAdded, applyItemAdded).
		On(EventQuantityUpdated, applyQuantityUpdated).
		On(EventItemRemoved, applyItemRemoved).
		On(EventCartCleared, applyCartCleared).
		On(EventCheckoutRequested, applyCheckoutRequested).
		On(EventCheckoutCompleted, applyCheckoutCompleted)
}

func applyItemAdded(state *CartState, p *structpb.Struct) {
	product, ok := productFromStruct(p.GetFields()["product"].GetStructValue())
	if !ok {
		return
	}
	qty := int(p.GetFields()["new_quantity"].GetNumberValue())
	if qty < 1 {
		return
	}
	items := slices.Clone(state.items)
	if i := state.indexOf(product.ID); i >= 0 {
		items[i].Quantity = qty
	} else {
		items = append(items, CartItem{Product: product, Quantity: qty})
	}
	state.items = items
}

func applyQuantityUpdated(state *CartState, p *structpb.Struct) {
	id := p.GetFields()["product_id"].GetStringValue()
	qty := int(p.GetFields()["new_quantity"].GetNumberValue())
	i := state.indexOf(id)
	if i < 0 || qty < 1 {
		return
	}
	items := slices.Clone(state.items)
	items[i].Quantity = qty
	state.items = items
}

func applyItemRemoved(state *CartState, p *structpb.Struct) {
	id := p.GetFields()["product_id"].GetStringValue()
	i := state.indexOf(id)
	if i < 0 {
		return
	}
	items := make([]CartItem, 0, len(state.items)-1)
	items = append(items, state.items[:i]...)
	items = append(items, state.items[i+1:]...)
	state.items = items
}

func applyCartCleared(state *CartState, _ *structpb.Struct) {
	state.items = nil
}

func applyCheckoutRequested(state *CartState, _ *structpb.Struct) {
	state.phase = PhasePending
}

func applyCheckoutCompleted(state *CartState, _ *structpb.Struct) {
	state.items = nil
	state.phase = PhaseCompleted
}
