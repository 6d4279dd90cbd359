package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EventType selects the minimum planning lead time for a bookable product.
type EventType string

const (
	EventFood    EventType = "FOOD"
	EventMeeting EventType = "MEETING"
)

const (
	foodLeadTime    = 3 * 24 * time.Hour
	meetingLeadTime = 12 * time.Hour

	// MaxFoodParticipants caps catering events.
	MaxFoodParticipants = 100
)

func (t EventType) LeadTime() time.Duration {
	if t == EventMeeting {
		return meetingLeadTime
	}
	return foodLeadTime
}

// bookable is the shared shape of event-bound products. No category, no
// custom texts; the lead-time rule is checked at construction and again when
// the product joins a ticket.
type bookable struct {
	base
	eventType       EventType
	eventAt         time.Time
	maxParticipants int
}

func (p *bookable) EventAt() time.Time { return p.eventAt }
func (p *bookable) Participants() int  { return p.maxParticipants }
func (p *bookable) Type() EventType    { return p.eventType }
func (p *bookable) IsService() bool    { return false }

func (p *bookable) LineTotal(qty int, _ []string) decimal.Decimal {
	return p.price.Mul(decimal.NewFromInt(int64(qty)))
}

func (p *bookable) ValidateOnAdd(now time.Time) error {
	if p.eventAt.Before(now.Add(p.eventType.LeadTime())) {
		return fmt.Errorf("%w: event %s needs at least %s of planning time", ErrRule, p.name, p.eventType.LeadTime())
	}
	return nil
}

// Validate re-runs the lead-time check against the wall clock.
func (p *bookable) Validate() error { return p.ValidateOnAdd(time.Now()) }

// Food is a catered event product, at most 100 participants and three days of
// planning lead time.
type Food struct {
	bookable
}

func NewFood(id, name string, price float64, eventAt time.Time, maxParticipants int) (*Food, error) {
	if maxParticipants > MaxFoodParticipants {
		return nil, fmt.Errorf("%w: food events hold at most %d participants", ErrCapacity, MaxFoodParticipants)
	}
	b, err := newBase(id, name, price)
	if err != nil {
		return nil, err
	}
	return &Food{bookable{base: b, eventType: EventFood, eventAt: eventAt, maxParticipants: maxParticipants}}, nil
}

func (p *Food) Kind() string { return "Food" }

// Meeting is a scheduled event product with a 12-hour planning lead time.
type Meeting struct {
	bookable
}

func NewMeeting(id, name string, price float64, eventAt time.Time, maxParticipants int) (*Meeting, error) {
	b, err := newBase(id, name, price)
	if err != nil {
		return nil, err
	}
	return &Meeting{bookable{base: b, eventType: EventMeeting, eventAt: eventAt, maxParticipants: maxParticipants}}, nil
}

func (p *Meeting) Kind() string { return "Meeting" }
