// StateBuilder provides declarative event handler registration for state reconstruction.
//
// Mirrors CommandRouter's pattern of registering handlers by type suffix.
package eventsource

import (
	"strings"

	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// StateApplier applies a decoded event payload to state.
type StateApplier[S any] func(state *S, payload *structpb.Struct)

type applierEntry[S any] struct {
	suffix string
	apply  StateApplier[S]
}

// StateBuilder builds state from events with registered handlers.
//
// Example:
//
//	builder := eventsource.NewStateBuilder(cart.EmptyState).
//	    On("ItemAdded", applyItemAdded).
//	    On("CartCleared", applyCartCleared)
//
//	state := builder.Rebuild(book)
type StateBuilder[S any] struct {
	newState func() S
	appliers []applierEntry[S]
}

// NewStateBuilder creates a StateBuilder for state type S.
//
// The newState function creates a default/zero state.
func NewStateBuilder[S any](newState func() S) *StateBuilder[S] {
	return &StateBuilder[S]{
		newState: newState,
		appliers: make([]applierEntry[S], 0),
	}
}

// On registers an event applier for a type_url suffix.
func (sb *StateBuilder[S]) On(typeSuffix string, apply StateApplier[S]) *StateBuilder[S] {
	sb.appliers = append(sb.appliers, applierEntry[S]{
		suffix: typeSuffix,
		apply:  apply,
	})
	return sb
}

// Handles reports whether an applier is registered for the type URL.
func (sb *StateBuilder[S]) Handles(typeURL string) bool {
	return sb.find(typeURL) != nil
}

func (sb *StateBuilder[S]) find(typeURL string) StateApplier[S] {
	for _, applier := range sb.appliers {
		if strings.HasSuffix(typeURL, applier.suffix) {
			return applier.apply
		}
	}
	return nil
}

// Apply applies a single event to state using registered handlers.
//
// Returns false when the event type is unknown or its payload cannot be
// decoded; the state is left untouched in that case.
func (sb *StateBuilder[S]) Apply(state *S, event *anypb.Any) bool {
	if event == nil {
		return false
	}
	apply := sb.find(event.TypeUrl)
	if apply == nil {
		return false
	}
	payload, err := UnpackPayload(event)
	if err != nil {
		return false
	}
	apply(state, payload)
	return true
}

// Rebuild reconstructs state from a Book. Unknown event types are silently ignored.
func (sb *StateBuilder[S]) Rebuild(book *Book) S {
	state := sb.newState()

	if book == nil {
		return state
	}

	for _, page := range book.Pages {
		if page == nil || page.Event == nil {
			continue
		}
		sb.Apply(&state, page.Event)
	}

	return state
}
