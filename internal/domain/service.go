package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Service is a sellable service: a type tag, an expiry instant, ids in their
// own "S"-suffixed namespace. Its price is hidden on standard output.
type Service struct {
	base
	serviceType string
	expiresAt   time.Time
}

func NewService(id, name string, price float64, serviceType string, expiresAt time.Time) (*Service, error) {
	if serviceType == "" {
		return nil, fmt.Errorf("%w: service type must not be empty", ErrInvalid)
	}
	b, err := newBase(id, name, price)
	if err != nil {
		return nil, err
	}
	return &Service{base: b, serviceType: serviceType, expiresAt: expiresAt}, nil
}

func (p *Service) Kind() string         { return "Service" }
func (p *Service) ServiceType() string  { return p.serviceType }
func (p *Service) ExpiresAt() time.Time { return p.expiresAt }
func (p *Service) IsService() bool      { return true }

func (p *Service) LineTotal(qty int, _ []string) decimal.Decimal {
	return p.price.Mul(decimal.NewFromInt(int64(qty)))
}

func (p *Service) ValidateOnAdd(now time.Time) error {
	if now.After(p.expiresAt) {
		return fmt.Errorf("%w: service %s expired at %s", ErrRule, p.name, p.expiresAt.Format(time.RFC3339))
	}
	return nil
}
