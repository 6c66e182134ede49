package catalog

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField selects the product attribute the view is ordered by.
type SortField int

const (
	SortByName SortField = iota
	SortByPrice
	SortByRating
)

func (f SortField) String() string {
	switch f {
	case SortByName:
		return "name"
	case SortByPrice:
		return "price"
	case SortByRating:
		return "rating"
	default:
		return "unknown"
	}
}

// ParseSortField parses "name", "price" or "rating".
func ParseSortField(s string) (SortField, error) {
	switch s {
	case "name":
		return SortByName, nil
	case "price":
		return SortByPrice, nil
	case "rating":
		return SortByRating, nil
	}
	return 0, fmt.Errorf("unknown sort field %q", s)
}

// SortOrder is the direction of the sort.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

func (o SortOrder) String() string {
	switch o {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "unknown"
	}
}

// ParseSortOrder parses "asc" or "desc".
func ParseSortOrder(s string) (SortOrder, error) {
	switch s {
	case "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	}
	return 0, fmt.Errorf("unknown sort order %q", s)
}

// FilterSortSpec drives the displayed subset and order of the catalog.
type FilterSortSpec struct {
	SearchTerm string
	Category   string
	SortField  SortField
	SortOrder  SortOrder
}

// DefaultSpec shows every product sorted by name ascending.
func DefaultSpec() FilterSortSpec {
	return FilterSortSpec{Category: AllCategories, SortField: SortByName, SortOrder: Ascending}
}

// Engine derives filtered and sorted product views. Names are compared with
// the collation rules of a language. An Engine is safe for concurrent use.
type Engine struct {
	collation language.Tag
}

// NewEngine returns an engine collating names by tag.
func NewEngine(collation language.Tag) *Engine {
	return &Engine{collation: collation}
}

var defaultEngine = NewEngine(language.English)

// DeriveView filters and sorts the catalog with English collation.
func DeriveView(c *Catalog, spec FilterSortSpec) []Product {
	return defaultEngine.Derive(c.Products(), spec)
}

// Derive returns the products matching spec, stably sorted. The input slice
// is not modified; the result is never nil.
func (e *Engine) Derive(products []Product, spec FilterSortSpec) []Product {
	folder := cases.Fold()
	term := folder.String(spec.SearchTerm)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !matchesCategory(p, spec.Category) {
			continue
		}
		if term != "" &&
			!strings.Contains(folder.String(p.Name), term) &&
			!strings.Contains(folder.String(p.Description), term) {
			continue
		}
		out = append(out, p)
	}

	compare := e.comparator(spec.SortField)
	if spec.SortOrder == Descending {
		asc := compare
		compare = func(a, b Product) int { return -asc(a, b) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

func matchesCategory(p Product, category string) bool {
	return category == AllCategories || p.Category == category
}

func (e *Engine) comparator(field SortField) func(a, b Product) int {
	switch field {
	case SortByPrice:
		return func(a, b Product) int { return a.Price.Cmp(b.Price) }
	case SortByRating:
		return func(a, b Product) int { return a.RatingOrZero().Cmp(b.RatingOrZero()) }
	default:
		collator := collate.New(e.collation)
		return func(a, b Product) int { return collator.CompareString(a.Name, b.Name) }
	}
}
