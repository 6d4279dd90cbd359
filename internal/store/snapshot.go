package store

import (
	"fmt"
	"time"

	"posline/internal/domain"
)

// Snapshot is the whole session as opaque-to-the-caller data: products,
// tickets and cashier credentials. It round-trips through one JSON blob.
type Snapshot struct {
	Products []ProductRec `json:"products"`
	Tickets  []TicketRec  `json:"tickets"`
	Cashiers []CashierRec `json:"cashiers"`
}

// ProductRec carries any product variant, tagged by its display kind.
type ProductRec struct {
	Kind         string    `json:"kind"`
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Category     string    `json:"category,omitempty"`
	MaxTexts     int       `json:"max_texts,omitempty"`
	Texts        []string  `json:"texts,omitempty"`
	EventAt      time.Time `json:"event_at,omitempty"`
	Participants int       `json:"participants,omitempty"`
	ServiceType  string    `json:"service_type,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
}

type TicketRec struct {
	ID        string    `json:"id"`
	CashierID string    `json:"cashier_id"`
	ClientID  string    `json:"client_id"`
	Client    string    `json:"client"`
	Comp      string    `json:"comp,omitempty"`
	State     string    `json:"state"`
	Receipt   string    `json:"receipt,omitempty"`
	Lines     []LineRec `json:"lines"`
}

type LineRec struct {
	ProductID string `json:"product_id"`
	// Product is the full record, used to rebuild lines whose product is no
	// longer in the catalog.
	Product ProductRec `json:"product"`
	Qty     int        `json:"qty"`
	Texts   []string   `json:"texts,omitempty"`
}

type CashierRec struct {
	ID      string `json:"id"`
	PINHash string `json:"pin_hash"`
}

// EncodeProduct flattens a product variant into its record.
func EncodeProduct(p domain.Product) ProductRec {
	rec := ProductRec{
		Kind:  p.Kind(),
		ID:    p.ID(),
		Name:  p.Name(),
		Price: p.Price().InexactFloat64(),
	}
	if cp, ok := p.(domain.Categorized); ok {
		rec.Category = string(cp.Category())
	}
	switch v := p.(type) {
	case *domain.Customizable:
		rec.MaxTexts = v.MaxCustomTexts()
		rec.Texts = v.CustomTexts()
	case *domain.Food:
		rec.EventAt = v.EventAt()
		rec.Participants = v.Participants()
	case *domain.Meeting:
		rec.EventAt = v.EventAt()
		rec.Participants = v.Participants()
	case *domain.Service:
		rec.ServiceType = v.ServiceType()
		rec.ExpiresAt = v.ExpiresAt()
	}
	return rec
}

// DecodeProduct rebuilds the variant named by the record's kind tag.
func DecodeProduct(rec ProductRec) (domain.Product, error) {
	switch rec.Kind {
	case "Product":
		return domain.NewStandard(rec.ID, rec.Name, rec.Price, domain.Category(rec.Category))
	case "CustomizableProduct":
		p, err := domain.NewCustomizable(rec.ID, rec.Name, rec.Price, domain.Category(rec.Category), rec.MaxTexts)
		if err != nil {
			return nil, err
		}
		for _, text := range rec.Texts {
			if err := p.AddCustomText(text); err != nil {
				return nil, err
			}
		}
		return p, nil
	case "Food":
		return domain.NewFood(rec.ID, rec.Name, rec.Price, rec.EventAt, rec.Participants)
	case "Meeting":
		return domain.NewMeeting(rec.ID, rec.Name, rec.Price, rec.EventAt, rec.Participants)
	case "Service":
		return domain.NewService(rec.ID, rec.Name, rec.Price, rec.ServiceType, rec.ExpiresAt)
	default:
		return nil, fmt.Errorf("%w: unknown product kind %q", domain.ErrInvalid, rec.Kind)
	}
}
