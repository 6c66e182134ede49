package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AllCategories is the sentinel category that disables category filtering.
const AllCategories = "All"

var maxRating = decimal.NewFromInt(5)

// Catalog is the read-only, ordered product set of a process.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// New validates the products and builds a catalog preserving their order.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	copy(c.products, products)

	for i, p := range c.products {
		if p.ID == "" {
			return nil, fmt.Errorf("product at index %d has no id", i)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("product %q has negative price %s", p.ID, p.Price)
		}
		if p.Rating.Valid && (p.Rating.Decimal.IsNegative() || p.Rating.Decimal.GreaterThan(maxRating)) {
			return nil, fmt.Errorf("product %q has rating %s outside 0-5", p.ID, p.Rating.Decimal)
		}
		if p.Reviews < 0 {
			return nil, fmt.Errorf("product %q has negative review count", p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// Products returns the products in catalog order. The slice is a copy.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Lookup finds a product by id.
func (c *Catalog) Lookup(id string) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Categories returns "All" followed by the distinct categories in order of
// first appearance.
func (c *Catalog) Categories() []string {
	return Categories(c.products)
}

// Categories returns "All" followed by the distinct categories of products in
// order of first appearance.
func Categories(products []Product) []string {
	seen := map[string]struct{}{AllCategories: {}}
	out := []string{AllCategories}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
