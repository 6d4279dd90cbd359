package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"posline/internal/domain"
	"posline/internal/log"
	"posline/internal/services"
	"posline/internal/validate"
)

type CatalogHandler struct {
	Session *services.SessionService
}

type productReq struct {
	Kind         string    `json:"kind"` // standard | customizable | food | meeting | service
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Category     string    `json:"category"`
	MaxTexts     int       `json:"max_texts"`
	EventAt      time.Time `json:"event_at"`
	Participants int       `json:"participants"`
	ServiceType  string    `json:"service_type"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type productView struct {
	ID       string  `json:"id"`
	Kind     string  `json:"kind"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category,omitempty"`
}

func viewOf(p domain.Product) productView {
	v := productView{ID: p.ID(), Kind: p.Kind(), Name: p.Name(), Price: p.Price().InexactFloat64()}
	if cp, ok := p.(domain.Categorized); ok {
		v.Category = string(cp.Category())
	}
	return v
}

func (h *CatalogHandler) Add(c *fiber.Ctx) error {
	var req productReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrInvalid, err))
	}

	var (
		p   domain.Product
		err error
	)
	switch req.Kind {
	case "standard", "":
		p, err = h.Session.AddStandard(req.ID, req.Name, req.Price, req.Category)
	case "customizable":
		p, err = h.Session.AddCustomizable(req.ID, req.Name, req.Price, req.Category, req.MaxTexts)
	case "food":
		p, err = h.Session.AddFood(req.ID, req.Name, req.Price, req.EventAt, req.Participants)
	case "meeting":
		p, err = h.Session.AddMeeting(req.ID, req.Name, req.Price, req.EventAt, req.Participants)
	case "service":
		p, err = h.Session.AddService(req.ID, req.Name, req.Price, req.ServiceType, req.ExpiresAt)
	default:
		err = fmt.Errorf("%w: unknown product kind %q", domain.ErrInvalid, req.Kind)
	}
	if err != nil {
		return fail(c, err)
	}

	log.Audit(c, "catalog.add", map[string]any{"id": p.ID(), "kind": p.Kind()})
	return c.Status(fiber.StatusCreated).JSON(viewOf(p))
}

func (h *CatalogHandler) List(c *fiber.Ctx) error {
	products := h.Session.Catalog.List()
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, viewOf(p))
	}
	return c.JSON(views)
}

func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fmt.Errorf("%w: bad product id", domain.ErrInvalid))
	}
	p, err := h.Session.Catalog.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(viewOf(p))
}

func (h *CatalogHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fmt.Errorf("%w: bad product id", domain.ErrInvalid))
	}
	p, err := h.Session.Catalog.Remove(id)
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, "catalog.remove", map[string]any{"id": id})
	return c.JSON(viewOf(p))
}

type updateReq struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fmt.Errorf("%w: bad product id", domain.ErrInvalid))
	}
	var req updateReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrInvalid, err))
	}
	if err := h.Session.Catalog.Update(id, req.Field, req.Value); err != nil {
		return fail(c, err)
	}
	log.Audit(c, "catalog.update", map[string]any{"id": id, "field": req.Field})
	p, err := h.Session.Catalog.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(viewOf(p))
}

type customTextReq struct {
	Text string `json:"text"`
}

func (h *CatalogHandler) AddCustomText(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fmt.Errorf("%w: bad product id", domain.ErrInvalid))
	}
	var req customTextReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrInvalid, err))
	}
	if err := h.Session.AddCustomText(id, req.Text); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
