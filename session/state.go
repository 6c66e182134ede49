// Package session holds one shopper's storefront state: the catalog filter
// and the cart. State only moves forward through named operations, each of
// which is journaled so a session can be audited and replayed.
package session

import (
	"google.golang.org/protobuf/types/known/anypb"

	"storefront/cart"
	"storefront/catalog"
	"storefront/eventsource"
)

// State is the complete, immutable state of a session.
type State struct {
	Filter catalog.FilterSortSpec
	Cart   cart.CartState
}

// InitialState is the state of a freshly opened session.
func InitialState() State {
	return State{Filter: catalog.DefaultSpec(), Cart: cart.EmptyState()}
}

// stateBuilder routes each event to the filter or cart builder.
type stateBuilder struct {
	filter *eventsource.StateBuilder[catalog.FilterSortSpec]
	cart   *eventsource.StateBuilder[cart.CartState]
}

var builder = &stateBuilder{
	filter: newFilterBuilder(),
	cart:   cart.NewStateBuilder(),
}

func (b *stateBuilder) apply(state *State, event *anypb.Any) bool {
	if b.filter.Handles(event.GetTypeUrl()) {
		return b.filter.Apply(&state.Filter, event)
	}
	return b.cart.Apply(&state.Cart, event)
}

// Replay rebuilds a session state from its journal. Unknown events are skipped.
func Replay(book *eventsource.Book) State {
	state := InitialState()
	if book == nil {
		return state
	}
	for _, page := range book.Pages {
		if page == nil || page.Event == nil {
			continue
		}
		builder.apply(&state, page.Event)
	}
	return state
}
