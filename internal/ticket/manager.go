package ticket

import (
	"fmt"
	"time"

	"posline/internal/domain"
	"posline/internal/ident"
)

// ClientKind selects the ticket variant.
type ClientKind string

const (
	ClientIndividual ClientKind = "individual"
	ClientCompany    ClientKind = "company"
)

// Composition names the print-strategy rule of a company ticket. Individual
// tickets leave it empty and only require a non-empty ticket at print.
type Composition string

const (
	CompNone     Composition = ""
	CompGoods    Composition = "goods"
	CompServices Composition = "services"
	CompMixed    Composition = "mixed"
)

func companyRule(comp Composition) (CompositionRule, error) {
	switch comp {
	case CompGoods:
		return goodsOnlyRule{}, nil
	case CompServices:
		return servicesOnlyRule{}, nil
	case CompMixed:
		return mixedRule{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown composition %q", domain.ErrInvalid, comp)
	}
}

// NewIndividual builds an individual-client ticket: standard products only,
// category-threshold discounts, standard receipt layout.
func NewIndividual(id, cashierID, clientID string) *Ticket {
	return &Ticket{
		id:        id,
		cashierID: cashierID,
		clientID:  clientID,
		state:     StateEmpty,
		client:    ClientIndividual,
		comp:      CompNone,
		policy:    categoryPolicy{},
		rule:      nonEmptyRule{},
		formatter: standardFormatter{},
		now:       time.Now,
	}
}

// NewCompany builds a company-client ticket: any product, per-service-unit
// discount on the goods subtotal, composition checked at print.
func NewCompany(id, cashierID, clientID string, comp Composition) (*Ticket, error) {
	rule, err := companyRule(comp)
	if err != nil {
		return nil, err
	}
	return &Ticket{
		id:        id,
		cashierID: cashierID,
		clientID:  clientID,
		state:     StateEmpty,
		client:    ClientCompany,
		comp:      comp,
		policy:    servicePolicy{},
		rule:      rule,
		formatter: companyFormatter{},
		now:       time.Now,
	}, nil
}

// Manager owns the live tickets and their id allocator.
type Manager struct {
	tickets map[string]*Ticket
	ids     *ident.TicketIDs
	now     func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		tickets: make(map[string]*Ticket),
		ids:     ident.NewTicketIDs(),
		now:     time.Now,
	}
}

// WithClock injects a deterministic clock used for ticket ids and lead-time
// checks of tickets created afterwards.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Create registers a new ticket. An empty id draws a generated one; explicit
// ids must be unique among live tickets.
func (m *Manager) Create(id, cashierID, clientID string, kind ClientKind, comp Composition) (*Ticket, error) {
	if id == "" {
		for {
			id = m.ids.Next(m.now())
			if _, ok := m.tickets[id]; !ok {
				break
			}
		}
	} else if _, ok := m.tickets[id]; ok {
		return nil, fmt.Errorf("%w: ticket %s already exists", domain.ErrDuplicateID, id)
	}

	var t *Ticket
	switch kind {
	case ClientIndividual:
		t = NewIndividual(id, cashierID, clientID)
	case ClientCompany:
		ct, err := NewCompany(id, cashierID, clientID, comp)
		if err != nil {
			return nil, err
		}
		t = ct
	default:
		return nil, fmt.Errorf("%w: unknown client kind %q", domain.ErrInvalid, kind)
	}
	t.now = m.now
	m.tickets[id] = t
	return t, nil
}

func (m *Manager) Get(id string) (*Ticket, error) {
	t, ok := m.tickets[id]
	if !ok {
		return nil, fmt.Errorf("%w: ticket %s", domain.ErrNotFound, id)
	}
	return t, nil
}

// Print closes (or re-prints) a ticket and re-keys it under its closed id.
func (m *Manager) Print(id string) (string, error) {
	t, err := m.Get(id)
	if err != nil {
		return "", err
	}
	receipt, err := t.Print()
	if err != nil {
		return "", err
	}
	if t.ID() != id {
		delete(m.tickets, id)
		m.tickets[t.ID()] = t
	}
	return receipt, nil
}

func (m *Manager) List() []*Ticket {
	out := make([]*Ticket, 0, len(m.tickets))
	for _, t := range m.tickets {
		out = append(out, t)
	}
	return out
}

// Blueprint rebuilds a ticket from persisted state, bypassing add-time
// validation; lines reference live catalog products.
type Blueprint struct {
	ID        string
	CashierID string
	ClientID  string
	Client    ClientKind
	Comp      Composition
	State     State
	Receipt   string
	Lines     []*Line
}

func (m *Manager) Restore(bp Blueprint) (*Ticket, error) {
	if _, ok := m.tickets[bp.ID]; ok {
		return nil, fmt.Errorf("%w: ticket %s already exists", domain.ErrDuplicateID, bp.ID)
	}
	var t *Ticket
	switch bp.Client {
	case ClientIndividual:
		t = NewIndividual(bp.ID, bp.CashierID, bp.ClientID)
	case ClientCompany:
		ct, err := NewCompany(bp.ID, bp.CashierID, bp.ClientID, bp.Comp)
		if err != nil {
			return nil, err
		}
		t = ct
	default:
		return nil, fmt.Errorf("%w: unknown client kind %q", domain.ErrInvalid, bp.Client)
	}
	switch bp.State {
	case StateEmpty, StateActive, StateClosed:
		t.state = bp.State
	default:
		return nil, fmt.Errorf("%w: unknown ticket state %q", domain.ErrInvalid, bp.State)
	}
	t.lines = bp.Lines
	t.receipt = bp.Receipt
	t.now = m.now
	m.tickets[bp.ID] = t
	return t, nil
}
