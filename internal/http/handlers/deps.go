package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"posline/internal/domain"
	"posline/internal/services"
)

type Deps struct {
	CatalogHandler *CatalogHandler
	TicketHandler  *TicketHandler
	CashierHandler *CashierHandler
	AdminHandler   *AdminHandler
	PageHandler    *PageHandler
}

func NewDeps(session *services.SessionService) *Deps {
	return &Deps{
		CatalogHandler: &CatalogHandler{Session: session},
		TicketHandler:  &TicketHandler{Session: session},
		CashierHandler: &CashierHandler{Session: session},
		AdminHandler:   &AdminHandler{Session: session},
		PageHandler:    &PageHandler{Session: session},
	}
}

// fail maps the error taxonomy onto HTTP statuses and reports the message.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateID):
		status = fiber.StatusConflict
	case errors.Is(err, domain.ErrCapacity):
		status = fiber.StatusConflict
	case errors.Is(err, domain.ErrRule):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalid):
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
