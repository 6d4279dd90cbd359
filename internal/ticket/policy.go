package ticket

import (
	"fmt"

	"github.com/shopspring/decimal"

	"posline/internal/domain"
)

// Totals is everything a formatter needs to render the money section.
type Totals struct {
	Gross    decimal.Decimal
	Discount decimal.Decimal
	Final    decimal.Decimal

	// PerLine is set by the category policy, parallel to the rendered lines.
	PerLine []decimal.Decimal

	// Company-policy breakdown.
	GoodsTotal   decimal.Decimal
	ServiceTotal decimal.Decimal
	ServiceRate  decimal.Decimal
}

// DiscountPolicy decides which products a ticket variant accepts and how its
// totals are computed.
type DiscountPolicy interface {
	Accepts(p domain.Product) error
	Totals(lines []*Line) Totals
}

// CompositionRule constrains what a ticket may contain, checked at print.
type CompositionRule interface {
	Validate(lines []*Line) error
}

// categoryPolicy: individual clients, standard products only. A category
// qualifies for its rate once the ticket holds at least two units of it;
// every line of a qualifying category then discounts at that rate.
type categoryPolicy struct{}

func (categoryPolicy) Accepts(p domain.Product) error {
	if _, ok := p.(*domain.Standard); !ok {
		return fmt.Errorf("%w: individual tickets accept only standard products", domain.ErrRule)
	}
	return nil
}

func (categoryPolicy) Totals(lines []*Line) Totals {
	units := make(map[domain.Category]int)
	for _, l := range lines {
		units[l.Product.(domain.Categorized).Category()] += l.Qty
	}

	tot := Totals{PerLine: make([]decimal.Decimal, len(lines))}
	for i, l := range lines {
		lineTotal := l.Total()
		tot.Gross = tot.Gross.Add(lineTotal)
		cat := l.Product.(domain.Categorized).Category()
		if units[cat] >= 2 {
			d := lineTotal.Mul(cat.DiscountRate())
			tot.PerLine[i] = d
			tot.Discount = tot.Discount.Add(d)
		}
	}
	tot.Final = tot.Gross.Sub(tot.Discount)
	return tot
}

// servicePolicy: company clients, any product. Every service unit knocks 15%
// off the goods subtotal, capped at 100%.
type servicePolicy struct{}

var (
	serviceRateStep = decimal.NewFromFloat(0.15)
	one             = decimal.NewFromInt(1)
	hundred         = decimal.NewFromInt(100)
)

func (servicePolicy) Accepts(domain.Product) error { return nil }

func (servicePolicy) Totals(lines []*Line) Totals {
	var tot Totals
	serviceUnits := 0
	for _, l := range lines {
		lineTotal := l.Total()
		if l.Product.IsService() {
			tot.ServiceTotal = tot.ServiceTotal.Add(lineTotal)
			serviceUnits += l.Qty
		} else {
			tot.GoodsTotal = tot.GoodsTotal.Add(lineTotal)
		}
	}

	rate := serviceRateStep.Mul(decimal.NewFromInt(int64(serviceUnits)))
	if rate.GreaterThan(one) {
		rate = one
	}
	tot.ServiceRate = rate
	tot.Gross = tot.GoodsTotal.Add(tot.ServiceTotal)
	tot.Discount = tot.GoodsTotal.Mul(rate)
	tot.Final = tot.Gross.Sub(tot.Discount)
	return tot
}

type nonEmptyRule struct{}

func (nonEmptyRule) Validate(lines []*Line) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: cannot print an empty ticket", domain.ErrRule)
	}
	return nil
}

func splitCounts(lines []*Line) (goods, services int) {
	for _, l := range lines {
		if l.Product.IsService() {
			services++
		} else {
			goods++
		}
	}
	return goods, services
}

type goodsOnlyRule struct{}

func (goodsOnlyRule) Validate(lines []*Line) error {
	goods, services := splitCounts(lines)
	if services > 0 || goods == 0 {
		return fmt.Errorf("%w: goods-only ticket needs at least one good and no services", domain.ErrRule)
	}
	return nil
}

type servicesOnlyRule struct{}

func (servicesOnlyRule) Validate(lines []*Line) error {
	goods, services := splitCounts(lines)
	if goods > 0 || services == 0 {
		return fmt.Errorf("%w: services-only ticket needs at least one service and no goods", domain.ErrRule)
	}
	return nil
}

type mixedRule struct{}

func (mixedRule) Validate(lines []*Line) error {
	goods, services := splitCounts(lines)
	if goods == 0 || services == 0 {
		return fmt.Errorf("%w: mixed ticket needs at least one good and one service", domain.ErrRule)
	}
	return nil
}
