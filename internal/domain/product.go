package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MaxNameLen bounds product names.
	MaxNameLen = 100
	// priceTolerance absorbs float noise on prices coming from parsed input;
	// anything above it is treated as non-negative.
	priceTolerance = -0.001
)

// Product is the shared behavior of every sellable item. Variant-specific
// capabilities (categories, custom texts, event instants) live in the optional
// interfaces below; callers type-assert for them.
type Product interface {
	ID() string
	Name() string
	Price() decimal.Decimal
	// Kind is the display class name used on receipts.
	Kind() string
	// LineTotal prices a ticket line holding qty units with the given custom
	// texts attached.
	LineTotal(qty int, texts []string) decimal.Decimal
	// ValidateOnAdd re-checks the product's own domain rules (lead time,
	// expiry) at the moment it is added to a ticket.
	ValidateOnAdd(now time.Time) error
	IsService() bool

	SetName(string) error
	SetPrice(float64) error
}

// Categorized is implemented by products that belong to a discount category.
type Categorized interface {
	Category() Category
	SetCategory(Category)
}

// Customizer is implemented by products that accept per-line custom texts.
type Customizer interface {
	MaxCustomTexts() int
	CustomTexts() []string
	AddCustomText(string) error
}

// Booked is implemented by products tied to a future event instant. A ticket
// holds at most one line per booked product id.
type Booked interface {
	EventAt() time.Time
}

type base struct {
	id    string
	name  string
	price decimal.Decimal
}

func newBase(id, name string, price float64) (base, error) {
	b := base{id: id}
	if err := b.SetName(name); err != nil {
		return base{}, err
	}
	if err := b.SetPrice(price); err != nil {
		return base{}, err
	}
	return b, nil
}

func (b *base) ID() string             { return b.id }
func (b *base) Name() string           { return b.name }
func (b *base) Price() decimal.Decimal { return b.price }

func (b *base) SetName(name string) error {
	if name == "" || len(name) > MaxNameLen {
		return fmt.Errorf("%w: product name must be 1-%d characters", ErrInvalid, MaxNameLen)
	}
	b.name = name
	return nil
}

func (b *base) SetPrice(price float64) error {
	if price <= priceTolerance {
		return fmt.Errorf("%w: price must not be negative", ErrInvalid)
	}
	b.price = decimal.NewFromFloat(price)
	return nil
}

// Standard is a plain catalog product: a category, a price, nothing else.
type Standard struct {
	base
	category Category
}

func NewStandard(id, name string, price float64, category Category) (*Standard, error) {
	if _, err := ParseCategory(string(category)); err != nil {
		return nil, err
	}
	b, err := newBase(id, name, price)
	if err != nil {
		return nil, err
	}
	return &Standard{base: b, category: category}, nil
}

func (p *Standard) Kind() string                  { return "Product" }
func (p *Standard) Category() Category            { return p.category }
func (p *Standard) SetCategory(c Category)        { p.category = c }
func (p *Standard) IsService() bool               { return false }
func (p *Standard) ValidateOnAdd(time.Time) error { return nil }

func (p *Standard) LineTotal(qty int, _ []string) decimal.Decimal {
	return p.price.Mul(decimal.NewFromInt(int64(qty)))
}

// Customizable carries up to maxTexts custom texts; each text attached to a
// line adds a 10% surcharge on the base price, per unit of quantity.
type Customizable struct {
	base
	category Category
	maxTexts int
	texts    []string
}

var surchargeRate = decimal.NewFromFloat(0.1)

func NewCustomizable(id, name string, price float64, category Category, maxTexts int) (*Customizable, error) {
	if _, err := ParseCategory(string(category)); err != nil {
		return nil, err
	}
	if maxTexts < 0 {
		return nil, fmt.Errorf("%w: custom text cap must not be negative", ErrInvalid)
	}
	b, err := newBase(id, name, price)
	if err != nil {
		return nil, err
	}
	return &Customizable{base: b, category: category, maxTexts: maxTexts}, nil
}

func (p *Customizable) Kind() string                  { return "CustomizableProduct" }
func (p *Customizable) Category() Category            { return p.category }
func (p *Customizable) SetCategory(c Category)        { p.category = c }
func (p *Customizable) IsService() bool               { return false }
func (p *Customizable) ValidateOnAdd(time.Time) error { return nil }
func (p *Customizable) MaxCustomTexts() int           { return p.maxTexts }

func (p *Customizable) CustomTexts() []string {
	out := make([]string, len(p.texts))
	copy(out, p.texts)
	return out
}

func (p *Customizable) AddCustomText(text string) error {
	if len(p.texts) >= p.maxTexts {
		return fmt.Errorf("%w: product %s holds at most %d custom texts", ErrCapacity, p.id, p.maxTexts)
	}
	p.texts = append(p.texts, text)
	return nil
}

// LineTotal = price x (1 + 0.1 x texts) x qty.
func (p *Customizable) LineTotal(qty int, texts []string) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(surchargeRate.Mul(decimal.NewFromInt(int64(len(texts)))))
	return p.price.Mul(factor).Mul(decimal.NewFromInt(int64(qty)))
}
