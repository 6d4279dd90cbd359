package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"posline/internal/domain"
	"posline/internal/log"
	"posline/internal/services"
)

type CashierHandler struct {
	Session *services.SessionService
}

type cashierReq struct {
	ID  string `json:"id"`
	PIN string `json:"pin"`
}

func (h *CashierHandler) Register(c *fiber.Ctx) error {
	var req cashierReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrInvalid, err))
	}
	id, err := h.Session.Cashiers.Register(req.PIN)
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, "cashier.register", map[string]any{"id": id})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *CashierHandler) Login(c *fiber.Ctx) error {
	var req cashierReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fmt.Errorf("%w: %v", domain.ErrInvalid, err))
	}
	if err := h.Session.Cashiers.Login(req.ID, req.PIN); err != nil {
		log.Security(c, "cashier.login.fail", map[string]any{"id": req.ID})
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
