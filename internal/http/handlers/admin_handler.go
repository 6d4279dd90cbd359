package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"posline/internal/domain"
	"posline/internal/log"
	"posline/internal/services"
	"posline/internal/validate"
)

// AdminHandler exposes the snapshot save/load boundary. Store failures are
// reported but never take down the in-memory session.
type AdminHandler struct {
	Session *services.SessionService
}

func (h *AdminHandler) Save(c *fiber.Ctx) error {
	id, err := h.Session.Save()
	if err != nil {
		log.Error(c, "snapshot.save", err, nil)
		return fail(c, err)
	}
	log.Audit(c, "snapshot.save", map[string]any{"id": id})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *AdminHandler) Load(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fmt.Errorf("%w: bad snapshot id", domain.ErrInvalid))
	}
	if err := h.Session.Load(id); err != nil {
		log.Error(c, "snapshot.load", err, nil)
		return fail(c, err)
	}
	log.Audit(c, "snapshot.load", map[string]any{"id": id})
	return c.JSON(fiber.Map{"ok": true})
}
