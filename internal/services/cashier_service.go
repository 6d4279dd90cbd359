package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"posline/internal/domain"
	"posline/internal/ident"
	"posline/internal/validate"
)

// CashierService assigns cashier ids and checks their PINs. PINs are stored
// only as bcrypt hashes.
type CashierService struct {
	IDs   *ident.CashierIDs
	creds map[string]string // cashier id -> pin hash
}

func NewCashierService() *CashierService {
	return &CashierService{
		IDs:   ident.NewCashierIDs(),
		creds: make(map[string]string),
	}
}

// Register allocates a fresh UW id for the given PIN.
func (s *CashierService) Register(pin string) (string, error) {
	if !validate.PIN(pin) {
		return "", fmt.Errorf("%w: PIN must be 4-8 digits", domain.ErrInvalid)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	id := s.IDs.Next()
	s.creds[id] = string(hash)
	return id, nil
}

// Login verifies a cashier id/PIN pair.
func (s *CashierService) Login(id, pin string) error {
	hash, ok := s.creds[id]
	if !ok {
		return fmt.Errorf("%w: cashier %s", domain.ErrNotFound, id)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) != nil {
		return fmt.Errorf("%w: wrong PIN for cashier %s", domain.ErrInvalid, id)
	}
	return nil
}

// Known reports whether a cashier id has been assigned.
func (s *CashierService) Known(id string) bool {
	_, ok := s.creds[id]
	return ok
}

func (s *CashierService) credentials() map[string]string {
	out := make(map[string]string, len(s.creds))
	for id, hash := range s.creds {
		out[id] = hash
	}
	return out
}

func (s *CashierService) restore(id, hash string) {
	s.creds[id] = hash
	s.IDs.Claim(id)
}
