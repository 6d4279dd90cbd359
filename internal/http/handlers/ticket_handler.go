package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"posline/internal/domain"
	"posline/internal/log"
	"posline/internal/services"
	"posline/internal/ticket"
	"posline/internal/validate"
)

type TicketHandler struct {
	Session *services.SessionService
}

type ticketReq struct {
	ID          string `json:"id"`
	CashierID   string `json:"cashier_id"`
	ClientID    string `json:"client_id"`
	Client      string `json:"client"` // individual | company
	Composition string `json:"composition"`
}

type lineView struct {
	Product productView `json:"product"`
	Qty     int         `json:"qty"`
	Texts   []string    `json:"texts,omitempty"`
	Total   float64     `json:"total"`
}

type ticketView struct {
	ID        string     `json:"id"`
	CashierID string     `json:"cashier_id"`
	ClientID  string     `json:"client_id"`
	Client    string     `json:"client"`
	State     string     `json:"state"`
	Lines     []lineView `json:"lines"`
	Total     float64    `json:"total"`
}

func ticketViewOf(t *ticket.Ticket) ticketView {
	v := ticketView{
		ID:        t.ID(),
		CashierID: t.CashierID(),
		ClientID:  t.ClientID(),
		Client:    string(t.Client()),
		State:     string(t.State()),
		Lines:     []lineView{},
	}
	for _, l := range t.Lines() {
		v.Lines = append(v.Lines, lineView{
			Product: viewOf(l.Product),
			Qty:     l.Qty,
			Texts:   l.Texts,
			Total:   l.Total().InexactFloat64(),
		})
	}
	v.Total = t.Totals().Final.InexactFloat64()
	return v
}

func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var req ticketReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrInvalid, err))
	}
	if !h.Session.Cashiers.Known(req.CashierID) {
		return fail(c, fmt.Errorf("%w: cashier %s", domain.ErrNotFound, req.CashierID))
	}
	t, err := h.Session.CreateTicket(req.ID, req.CashierID, req.ClientID,
		ticket.ClientKind(req.Client), ticket.Composition(req.Composition))
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, "ticket.create", map[string]any{"id": t.ID(), "client": req.Client})
	return c.Status(fiber.StatusCreated).JSON(ticketViewOf(t))
}

func (h *TicketHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fmt.Errorf("%w: bad ticket id", domain.ErrInvalid))
	}
	t, err := h.Session.Tickets.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ticketViewOf(t))
}

type lineReq struct {
	ProductID string   `json:"product_id"`
	Qty       int      `json:"qty"`
	Texts     []string `json:"texts"`
}

func (h *TicketHandler) AddLine(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fmt.Errorf("%w: bad ticket id", domain.ErrInvalid))
	}
	var req lineReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrInvalid, err))
	}
	if err := h.Session.AddLine(id, req.ProductID, req.Qty, req.Texts); err != nil {
		return fail(c, err)
	}
	t, err := h.Session.Tickets.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ticketViewOf(t))
}

func (h *TicketHandler) RemoveLine(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fmt.Errorf("%w: bad ticket id", domain.ErrInvalid))
	}
	productID, ok := validate.ID(c.Params("productID"))
	if !ok {
		return fail(c, fmt.Errorf("%w: bad product id", domain.ErrInvalid))
	}
	removed, err := h.Session.RemoveLine(id, productID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"removed": removed})
}

// Print closes the ticket and returns the receipt as plain text.
func (h *TicketHandler) Print(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fmt.Errorf("%w: bad ticket id", domain.ErrInvalid))
	}
	receipt, err := h.Session.Print(id)
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, "ticket.print", map[string]any{"id": id})
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(receipt)
}
