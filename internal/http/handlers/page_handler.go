package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"

	"posline/internal/services"
	"posline/internal/ticket"
	"posline/internal/validate"
)

// PageHandler serves the read-only HTML views.
type PageHandler struct {
	Session *services.SessionService
}

func (h *PageHandler) Home(c *fiber.Ctx) error {
	products := h.Session.Catalog.List()
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, viewOf(p))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Name < views[j].Name })
	return render(c, "index", fiber.Map{"Products": views})
}

func (h *PageHandler) Receipt(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "No such ticket"})
	}
	t, err := h.Session.Tickets.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "No such ticket"})
	}
	if t.State() != ticket.StateClosed {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Ticket is not printed yet"})
	}
	return render(c, "receipt", fiber.Map{"ID": t.ID(), "Receipt": t.Receipt()})
}
