// Package catalog holds the static product catalog and the pure
// filter/sort derivation over it.
package catalog

import "github.com/shopspring/decimal"

// Product is an immutable catalog record.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Category    string
	Rating      decimal.NullDecimal // 0-5, optional
	Reviews     int
	InStock     bool
}

// RatingOrZero returns the rating, treating a missing rating as zero.
func (p Product) RatingOrZero() decimal.Decimal {
	if !p.Rating.Valid {
		return decimal.Zero
	}
	return p.Rating.Decimal
}
