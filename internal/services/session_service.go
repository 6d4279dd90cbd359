package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"posline/internal/catalog"
	"posline/internal/domain"
	"posline/internal/ident"
	"posline/internal/store"
	"posline/internal/ticket"
)

// SessionService owns the in-memory session: the catalog, the live tickets,
// the cashier registry and the id allocators. The command layer talks only to
// this surface.
type SessionService struct {
	Catalog    *catalog.Catalog
	Tickets    *ticket.Manager
	Cashiers   *CashierService
	ProductIDs *ident.ProductIDs
	Store      *store.Store // nil disables persistence
}

func NewSessionService(st *store.Store) *SessionService {
	return &SessionService{
		Catalog:    catalog.New(),
		Tickets:    ticket.NewManager(),
		Cashiers:   NewCashierService(),
		ProductIDs: ident.NewProductIDs(),
		Store:      st,
	}
}

func (s *SessionService) productID(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return s.ProductIDs.Next(s.Catalog.Has)
}

// AddStandard creates and catalogs a plain product. An empty id draws a
// generated one.
func (s *SessionService) AddStandard(id, name string, price float64, category string) (domain.Product, error) {
	cat, err := domain.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	p, err := domain.NewStandard(s.productID(id), name, price, cat)
	if err != nil {
		return nil, err
	}
	if err := s.Catalog.Add(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *SessionService) AddCustomizable(id, name string, price float64, category string, maxTexts int) (domain.Product, error) {
	cat, err := domain.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	p, err := domain.NewCustomizable(s.productID(id), name, price, cat, maxTexts)
	if err != nil {
		return nil, err
	}
	if err := s.Catalog.Add(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *SessionService) AddFood(id, name string, price float64, eventAt time.Time, participants int) (domain.Product, error) {
	p, err := domain.NewFood(s.productID(id), name, price, eventAt, participants)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.Catalog.Add(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *SessionService) AddMeeting(id, name string, price float64, eventAt time.Time, participants int) (domain.Product, error) {
	p, err := domain.NewMeeting(s.productID(id), name, price, eventAt, participants)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.Catalog.Add(p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddService creates a service product; ids come from the "S" namespace.
func (s *SessionService) AddService(id, name string, price float64, serviceType string, expiresAt time.Time) (domain.Product, error) {
	if id == "" {
		id = s.ProductIDs.NextService(s.Catalog.Has)
	}
	p, err := domain.NewService(id, name, price, serviceType, expiresAt)
	if err != nil {
		return nil, err
	}
	if err := s.Catalog.Add(p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddCustomText attaches a product-level custom text, capped by the product.
func (s *SessionService) AddCustomText(productID, text string) error {
	p, err := s.Catalog.Get(productID)
	if err != nil {
		return err
	}
	cz, ok := p.(domain.Customizer)
	if !ok {
		return fmt.Errorf("%w: product %s does not take custom texts", domain.ErrInvalid, productID)
	}
	return cz.AddCustomText(text)
}

// CreateTicket builds a ticket of the requested variant. A blank client id is
// filled with a generated one.
func (s *SessionService) CreateTicket(id, cashierID, clientID string, kind ticket.ClientKind, comp ticket.Composition) (*ticket.Ticket, error) {
	if clientID == "" {
		clientID = uuid.NewString()
	}
	return s.Tickets.Create(id, cashierID, clientID, kind, comp)
}

// AddLine resolves the product in the catalog and adds it to the ticket.
func (s *SessionService) AddLine(ticketID, productID string, qty int, texts []string) error {
	t, err := s.Tickets.Get(ticketID)
	if err != nil {
		return err
	}
	p, err := s.Catalog.Get(productID)
	if err != nil {
		return err
	}
	return t.AddProduct(p, qty, texts)
}

func (s *SessionService) RemoveLine(ticketID, productID string) (bool, error) {
	t, err := s.Tickets.Get(ticketID)
	if err != nil {
		return false, err
	}
	return t.RemoveProduct(productID)
}

func (s *SessionService) Print(ticketID string) (string, error) {
	return s.Tickets.Print(ticketID)
}

var errNoStore = errors.New("persistence is not configured")

// Save snapshots the whole session. A failure leaves the session untouched.
func (s *SessionService) Save() (string, error) {
	if s.Store == nil {
		return "", errNoStore
	}
	return s.Store.Save(s.snapshot())
}

// Load replaces the session with a stored snapshot and replays the restored
// ids into the allocators so later generation cannot collide.
func (s *SessionService) Load(snapshotID string) error {
	if s.Store == nil {
		return errNoStore
	}
	snap, err := s.Store.Load(snapshotID)
	if err != nil {
		return err
	}
	return s.restore(snap)
}

func (s *SessionService) snapshot() store.Snapshot {
	var snap store.Snapshot
	for _, p := range s.Catalog.List() {
		snap.Products = append(snap.Products, store.EncodeProduct(p))
	}
	for _, t := range s.Tickets.List() {
		rec := store.TicketRec{
			ID:        t.ID(),
			CashierID: t.CashierID(),
			ClientID:  t.ClientID(),
			Client:    string(t.Client()),
			Comp:      string(t.Composition()),
			State:     string(t.State()),
			Receipt:   t.Receipt(),
		}
		for _, l := range t.Lines() {
			rec.Lines = append(rec.Lines, store.LineRec{
				ProductID: l.Product.ID(),
				Product:   store.EncodeProduct(l.Product),
				Qty:       l.Qty,
				Texts:     l.Texts,
			})
		}
		snap.Tickets = append(snap.Tickets, rec)
	}
	for id, hash := range s.Cashiers.credentials() {
		snap.Cashiers = append(snap.Cashiers, store.CashierRec{ID: id, PINHash: hash})
	}
	return snap
}

func (s *SessionService) restore(snap store.Snapshot) error {
	cat := catalog.New()
	ids := ident.NewProductIDs()
	for _, rec := range snap.Products {
		p, err := store.DecodeProduct(rec)
		if err != nil {
			return err
		}
		if err := cat.Add(p); err != nil {
			return err
		}
		ids.AdvancePast(p.ID())
	}

	mgr := ticket.NewManager()
	for _, rec := range snap.Tickets {
		bp := ticket.Blueprint{
			ID:        rec.ID,
			CashierID: rec.CashierID,
			ClientID:  rec.ClientID,
			Client:    ticket.ClientKind(rec.Client),
			Comp:      ticket.Composition(rec.Comp),
			State:     ticket.State(rec.State),
			Receipt:   rec.Receipt,
		}
		for _, lr := range rec.Lines {
			p, err := cat.Get(lr.ProductID)
			if err != nil {
				// the product left the catalog after joining the ticket;
				// rebuild the line from its embedded record
				p, err = store.DecodeProduct(lr.Product)
				if err != nil {
					return err
				}
			}
			bp.Lines = append(bp.Lines, &ticket.Line{Product: p, Qty: lr.Qty, Texts: lr.Texts})
		}
		if _, err := mgr.Restore(bp); err != nil {
			return err
		}
	}

	cashiers := NewCashierService()
	for _, rec := range snap.Cashiers {
		cashiers.restore(rec.ID, rec.PINHash)
	}

	s.Catalog = cat
	s.Tickets = mgr
	s.Cashiers = cashiers
	s.ProductIDs = ids
	return nil
}
