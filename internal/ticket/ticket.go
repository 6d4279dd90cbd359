// Package ticket implements the sales receipt state machine: lines accumulate
// on an open ticket, the variant's discount policy prices it, and printing
// closes it for good.
package ticket

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"posline/internal/domain"
	"posline/internal/ident"
)

type State string

const (
	StateEmpty  State = "EMPTY"
	StateActive State = "ACTIVE"
	StateClosed State = "CLOSED"
)

// MaxLines caps distinct lines per ticket.
const MaxLines = 100

// Line is one (product, quantity, custom texts) entry. The product reference
// is live: catalog edits show up in open tickets.
type Line struct {
	Product domain.Product
	Qty     int
	Texts   []string
}

func (l *Line) Total() decimal.Decimal {
	return l.Product.LineTotal(l.Qty, l.Texts)
}

// Ticket is parameterized by a policy/rule/formatter triple chosen at
// construction; see manager.go.
type Ticket struct {
	id        string
	cashierID string
	clientID  string
	state     State
	lines     []*Line
	receipt   string

	client    ClientKind
	comp      Composition
	policy    DiscountPolicy
	rule      CompositionRule
	formatter Formatter
	now       func() time.Time
}

func (t *Ticket) ID() string               { return t.id }
func (t *Ticket) CashierID() string        { return t.cashierID }
func (t *Ticket) ClientID() string         { return t.clientID }
func (t *Ticket) State() State             { return t.state }
func (t *Ticket) Client() ClientKind       { return t.client }
func (t *Ticket) Composition() Composition { return t.comp }

// Receipt is the rendered text cached at close time; empty while open.
func (t *Ticket) Receipt() string { return t.receipt }

// Totals prices the ticket as it stands, without closing it.
func (t *Ticket) Totals() Totals { return t.policy.Totals(t.lines) }

func (t *Ticket) Lines() []*Line {
	out := make([]*Line, len(t.lines))
	copy(out, t.lines)
	return out
}

// WithClock injects a deterministic clock.
func (t *Ticket) WithClock(now func() time.Time) *Ticket {
	t.now = now
	return t
}

// AddProduct validates and then either merges into an existing line or
// appends a new one. First success moves EMPTY to ACTIVE.
func (t *Ticket) AddProduct(p domain.Product, qty int, texts []string) error {
	if t.state == StateClosed {
		return fmt.Errorf("%w: ticket %s is closed", domain.ErrRule, t.id)
	}
	if qty < 1 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalid)
	}
	if err := t.policy.Accepts(p); err != nil {
		return err
	}

	var attach []string
	if len(texts) > 0 {
		cz, ok := p.(domain.Customizer)
		if !ok {
			return fmt.Errorf("%w: product %s does not take custom texts", domain.ErrInvalid, p.ID())
		}
		attach = texts
		if len(attach) > cz.MaxCustomTexts() {
			attach = attach[:cz.MaxCustomTexts()]
		}
	}

	if _, booked := p.(domain.Booked); booked {
		for _, l := range t.lines {
			if l.Product.ID() == p.ID() {
				return fmt.Errorf("%w: event product %s already on ticket", domain.ErrRule, p.ID())
			}
		}
	}
	if err := p.ValidateOnAdd(t.now()); err != nil {
		return err
	}

	for _, l := range t.lines {
		if l.Product.ID() == p.ID() && equalTexts(l.Texts, attach) {
			l.Qty += qty
			t.activate()
			return nil
		}
	}

	if len(t.lines) >= MaxLines {
		return fmt.Errorf("%w: ticket holds at most %d lines", domain.ErrCapacity, MaxLines)
	}
	line := &Line{Product: p, Qty: qty, Texts: append([]string(nil), attach...)}
	t.lines = append(t.lines, line)
	t.activate()
	return nil
}

// RemoveProduct drops the most recently added line matching the id. Reports
// whether anything was removed.
func (t *Ticket) RemoveProduct(productID string) (bool, error) {
	if t.state == StateClosed {
		return false, fmt.Errorf("%w: ticket %s is closed", domain.ErrRule, t.id)
	}
	for i := len(t.lines) - 1; i >= 0; i-- {
		if t.lines[i].Product.ID() == productID {
			t.lines = append(t.lines[:i], t.lines[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Print closes the ticket: the composition rule is checked, totals computed,
// the receipt rendered, and a closing timestamp appended to the id. Printing
// an already closed ticket re-emits the cached receipt unchanged.
func (t *Ticket) Print() (string, error) {
	if t.state == StateClosed {
		return t.receipt, nil
	}
	if err := t.rule.Validate(t.lines); err != nil {
		return "", err
	}

	// Sorted copy for rendering only; the line list keeps insertion order.
	sorted := t.Lines()
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Product.Name()) < strings.ToLower(sorted[j].Product.Name())
	})

	totals := t.policy.Totals(sorted)
	t.receipt = t.formatter.Render(t, sorted, totals)
	t.id += ident.CloseSuffix(t.now())
	t.state = StateClosed
	return t.receipt, nil
}

func (t *Ticket) activate() {
	if t.state == StateEmpty {
		t.state = StateActive
	}
}

func equalTexts(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
