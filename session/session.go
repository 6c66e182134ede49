package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/cart"
	"storefront/catalog"
	"storefront/eventsource"
)

// Session is a single shopper's storefront. Operations are serialized; each
// one either records exactly one event or is a no-op.
type Session struct {
	id      uuid.UUID
	catalog *catalog.Catalog
	engine  *catalog.Engine
	logic   cart.CartLogic
	logger  *zap.Logger

	mu      sync.Mutex
	state   State
	journal *eventsource.Book
	memo    viewMemo
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger journaled events are written to.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEngine sets the engine deriving the product view.
func WithEngine(engine *catalog.Engine) Option {
	return func(s *Session) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithCartLogic replaces the cart decision logic.
func WithCartLogic(logic cart.CartLogic) Option {
	return func(s *Session) {
		if logic != nil {
			s.logic = logic
		}
	}
}

// ErrMsgQuantityTooLarge rejects quantities the event payload cannot carry.
const ErrMsgQuantityTooLarge = "quantity exceeds maximum"

// New opens an empty session over the catalog.
func New(id uuid.UUID, c *catalog.Catalog, opts ...Option) *Session {
	return Restore(&eventsource.Book{Root: id}, c, opts...)
}

// Restore rebuilds a session from a journal. The session keeps appending to
// a copy of the book. A nil book opens a fresh session under a new root.
func Restore(book *eventsource.Book, c *catalog.Catalog, opts ...Option) *Session {
	if book == nil {
		book = &eventsource.Book{Root: eventsource.NewRoot()}
	}
	s := &Session{
		id:      book.Root,
		catalog: c,
		engine:  catalog.NewEngine(defaultCollation),
		logic:   cart.NewCartLogic(),
		logger:  zap.NewNop(),
		journal: book.Clone(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("session", s.id.String()))
	s.state = Replay(s.journal)
	return s
}

// ID returns the session id, which is also the journal root.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Journal returns a copy of the event journal.
func (s *Session) Journal() *eventsource.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journal.Clone()
}

// SetSearchTerm changes the free-text product search.
func (s *Session) SetSearchTerm(term string) error {
	return s.transition(func(state State) eventsource.Event {
		if state.Filter.SearchTerm == term {
			return nil
		}
		return SearchTermChanged{Term: term}
	})
}

// SelectCategory restricts the view to one category, or none with "All".
func (s *Session) SelectCategory(category string) error {
	return s.transition(func(state State) eventsource.Event {
		if state.Filter.Category == category {
			return nil
		}
		return CategorySelected{Category: category}
	})
}

func (s *Session) SetSortField(field catalog.SortField) error {
	return s.transition(func(state State) eventsource.Event {
		if state.Filter.SortField == field {
			return nil
		}
		return SortFieldSelected{Field: field}
	})
}

func (s *Session) SetSortOrder(order catalog.SortOrder) error {
	return s.transition(func(state State) eventsource.Event {
		if state.Filter.SortOrder == order {
			return nil
		}
		return SortOrderSelected{Order: order}
	})
}

// AddToCart adds one unit of the product. Unknown and out-of-stock products
// are ignored.
func (s *Session) AddToCart(productID string) error {
	product, ok := s.catalog.Lookup(productID)
	if !ok {
		s.logger.Debug("add ignored, unknown product", zap.String("product_id", productID))
		return nil
	}
	return s.transition(func(state State) eventsource.Event {
		return s.logic.HandleAddToCart(state.Cart, product)
	})
}

func (s *Session) RemoveFromCart(productID string) error {
	return s.transition(func(state State) eventsource.Event {
		return s.logic.HandleRemoveFromCart(state.Cart, productID)
	})
}

// UpdateQuantity sets the line quantity; below one removes the line.
func (s *Session) UpdateQuantity(productID string, quantity int) error {
	if quantity > cart.MaxQuantity {
		return eventsource.NewInvalidArgumentf("%s: %d", ErrMsgQuantityTooLarge, quantity)
	}
	return s.transition(func(state State) eventsource.Event {
		return s.logic.HandleUpdateQuantity(state.Cart, productID, quantity)
	})
}

func (s *Session) ClearCart() error {
	return s.transition(func(state State) eventsource.Event {
		return s.logic.HandleClearCart(state.Cart)
	})
}

func (s *Session) RequestCheckout() error {
	return s.transition(func(state State) eventsource.Event {
		return s.logic.HandleRequestCheckout(state.Cart)
	})
}

// CompleteCheckout marks checkout completed and empties the cart in one event.
func (s *Session) CompleteCheckout() error {
	return s.transition(func(state State) eventsource.Event {
		return s.logic.HandleCompleteCheckout(state.Cart)
	})
}

// transition decides on an event against the current state, journals it and
// applies the journaled page. The state is replaced only after both succeed.
func (s *Session) transition(decide func(State) eventsource.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := decide(s.state)
	if event == nil {
		return nil
	}

	page, err := s.journal.Append(event)
	if err != nil {
		return fmt.Errorf("record %s: %w", event.EventType(), err)
	}

	next := s.state
	if !builder.apply(&next, page.Event) {
		s.journal.Pages = s.journal.Pages[:len(s.journal.Pages)-1]
		return fmt.Errorf("apply %s: no applier registered", event.EventType())
	}
	s.state = next

	eventsource.LogEvent(s.logger, s.journal, page)
	return nil
}
