package session

import (
	"slices"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"storefront/cart"
	"storefront/catalog"
)

var defaultCollation = language.English

// Line is a cart line together with its total.
type Line struct {
	Item      cart.CartItem
	LineTotal decimal.Decimal
}

// View is everything a storefront page renders, derived from the current state.
type View struct {
	Filter      catalog.FilterSortSpec
	Products    []catalog.Product
	ResultCount int
	Categories  []string
	Lines       []Line
	Totals      cart.Totals
	Phase       cart.CheckoutPhase
}

// viewMemo caches the last derived product list. The catalog is fixed for
// the process lifetime, so the filter alone identifies the result.
type viewMemo struct {
	valid    bool
	spec     catalog.FilterSortSpec
	products []catalog.Product
}

func (m *viewMemo) derive(engine *catalog.Engine, c *catalog.Catalog, spec catalog.FilterSortSpec) []catalog.Product {
	if !m.valid || m.spec != spec {
		m.products = engine.Derive(c.Products(), spec)
		m.spec = spec
		m.valid = true
	}
	return slices.Clone(m.products)
}

// View derives the current storefront view.
func (s *Session) View() View {
	s.mu.Lock()
	state := s.state
	products := s.memo.derive(s.engine, s.catalog, state.Filter)
	s.mu.Unlock()

	items := state.Cart.Items()
	lines := make([]Line, len(items))
	for i, item := range items {
		lines[i] = Line{Item: item, LineTotal: item.LineTotal()}
	}

	return View{
		Filter:      state.Filter,
		Products:    products,
		ResultCount: len(products),
		Categories:  s.catalog.Categories(),
		Lines:       lines,
		Totals:      cart.DeriveTotals(state.Cart),
		Phase:       state.Cart.Phase(),
	}
}
