package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"posline/internal/config"
	"posline/internal/http/handlers"
	applog "posline/internal/log"
	"posline/internal/services"
	"posline/internal/store"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	// Snapshot store; the session keeps working in memory if it fails to open.
	st, err := store.Open(cfg.DBDSN)
	if err != nil {
		log.Printf("[warn] snapshot store unavailable: %v", err)
		st = nil
	}

	session := services.NewSessionService(st)
	deps := handlers.NewDeps(session)

	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// Pages
	app.Get("/", deps.PageHandler.Home)
	app.Get("/receipt/:id", deps.PageHandler.Receipt)

	// API
	api := app.Group("/api/v1")

	api.Post("/catalog", deps.CatalogHandler.Add)
	api.Get("/catalog", deps.CatalogHandler.List)
	api.Get("/catalog/:id", deps.CatalogHandler.Get)
	api.Delete("/catalog/:id", deps.CatalogHandler.Remove)
	api.Patch("/catalog/:id", deps.CatalogHandler.Update)
	api.Post("/catalog/:id/texts", deps.CatalogHandler.AddCustomText)

	api.Post("/tickets", deps.TicketHandler.Create)
	api.Get("/tickets/:id", deps.TicketHandler.Get)
	api.Post("/tickets/:id/lines", deps.TicketHandler.AddLine)
	api.Delete("/tickets/:id/lines/:productID", deps.TicketHandler.RemoveLine)
	api.Post("/tickets/:id/print", deps.TicketHandler.Print)

	api.Post("/cashiers", deps.CashierHandler.Register)
	api.Post("/cashiers/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts"})
		},
	}), deps.CashierHandler.Login)

	api.Post("/snapshots", deps.AdminHandler.Save)
	api.Post("/snapshots/:id/load", deps.AdminHandler.Load)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
