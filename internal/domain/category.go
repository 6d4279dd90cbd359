package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Category string

const (
	Merch       Category = "MERCH"
	Stationery  Category = "STATIONERY"
	Clothes     Category = "CLOTHES"
	Book        Category = "BOOK"
	Electronics Category = "ELECTRONICS"
)

var categoryRates = map[Category]decimal.Decimal{
	Merch:       decimal.Zero,
	Stationery:  decimal.NewFromFloat(0.05),
	Clothes:     decimal.NewFromFloat(0.07),
	Book:        decimal.NewFromFloat(0.10),
	Electronics: decimal.NewFromFloat(0.03),
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := categoryRates[c]; !ok {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalid, s)
	}
	return c, nil
}

// DiscountRate is the per-category rate applied when a ticket holds at least
// two units of the category.
func (c Category) DiscountRate() decimal.Decimal {
	return categoryRates[c]
}
