// Package catalog holds the bounded product collection. Ids are unique, the
// catalog never exceeds 200 products, and every mutation validates before it
// touches state.
package catalog

import (
	"fmt"
	"strings"

	"posline/internal/domain"
	"posline/internal/validate"
)

// MaxProducts caps the catalog size.
const MaxProducts = 200

type Catalog struct {
	products map[string]domain.Product
}

func New() *Catalog {
	return &Catalog{products: make(map[string]domain.Product)}
}

func (c *Catalog) Len() int { return len(c.products) }

func (c *Catalog) Has(id string) bool {
	_, ok := c.products[id]
	return ok
}

func (c *Catalog) Add(p domain.Product) error {
	if _, ok := c.products[p.ID()]; ok {
		return fmt.Errorf("%w: product %s already in catalog", domain.ErrDuplicateID, p.ID())
	}
	if len(c.products) >= MaxProducts {
		return fmt.Errorf("%w: catalog holds at most %d products", domain.ErrCapacity, MaxProducts)
	}
	c.products[p.ID()] = p
	return nil
}

func (c *Catalog) Get(id string) (domain.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	return p, nil
}

// Remove deletes and returns the product.
func (c *Catalog) Remove(id string) (domain.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	delete(c.products, id)
	return p, nil
}

// List returns a snapshot of the products. No ordering contract.
func (c *Catalog) List() []domain.Product {
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	return out
}

// Update mutates one field of a product in place. Fields: name, category,
// price. Values arrive as strings and are validated before the product is
// touched.
func (c *Catalog) Update(id, field, value string) error {
	p, ok := c.products[id]
	if !ok {
		return fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "name":
		name, ok := validate.Name(value)
		if !ok {
			return fmt.Errorf("%w: bad product name %q", domain.ErrInvalid, value)
		}
		return p.SetName(name)
	case "category":
		cat, err := domain.ParseCategory(value)
		if err != nil {
			return err
		}
		cp, ok := p.(domain.Categorized)
		if !ok {
			return fmt.Errorf("%w: product %s has no category", domain.ErrInvalid, id)
		}
		cp.SetCategory(cat)
		return nil
	case "price":
		price, ok := validate.Price(value)
		if !ok {
			return fmt.Errorf("%w: bad price %q", domain.ErrInvalid, value)
		}
		return p.SetPrice(price)
	default:
		return fmt.Errorf("%w: unknown field %q", domain.ErrInvalid, field)
	}
}
