package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"posline/internal/http/handlers"
	"posline/internal/services"
	"posline/internal/store"
)

func newApp(t *testing.T) (*fiber.App, *services.SessionService) {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	session := services.NewSessionService(st)
	deps := handlers.NewDeps(session)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Post("/catalog", deps.CatalogHandler.Add)
	api.Get("/catalog/:id", deps.CatalogHandler.Get)
	api.Patch("/catalog/:id", deps.CatalogHandler.Update)
	api.Post("/tickets", deps.TicketHandler.Create)
	api.Post("/tickets/:id/lines", deps.TicketHandler.AddLine)
	api.Post("/tickets/:id/print", deps.TicketHandler.Print)
	api.Post("/cashiers", deps.CashierHandler.Register)
	api.Post("/cashiers/login", deps.CashierHandler.Login)
	return app, session
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, []byte) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out
}

func TestCheckoutOverHTTP(t *testing.T) {
	app, _ := newApp(t)

	status, body := postJSON(t, app, "/api/v1/cashiers", map[string]any{"pin": "4242"})
	if status != 201 {
		t.Fatalf("register cashier: %d %s", status, body)
	}
	var reg struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &reg); err != nil {
		t.Fatal(err)
	}

	for _, p := range []map[string]any{
		{"id": "1", "name": "Dune", "price": 20.0, "category": "BOOK"},
		{"id": "2", "name": "Emma", "price": 20.0, "category": "BOOK"},
		{"id": "3", "name": "Sticker", "price": 5.0, "category": "MERCH"},
	} {
		if status, body := postJSON(t, app, "/api/v1/catalog", p); status != 201 {
			t.Fatalf("add product: %d %s", status, body)
		}
	}

	status, body = postJSON(t, app, "/api/v1/tickets", map[string]any{
		"id": "T1", "cashier_id": reg.ID, "client_id": "C1", "client": "individual",
	})
	if status != 201 {
		t.Fatalf("create ticket: %d %s", status, body)
	}

	for _, id := range []string{"1", "2", "3"} {
		status, body = postJSON(t, app, "/api/v1/tickets/T1/lines", map[string]any{"product_id": id, "qty": 1})
		if status != 200 {
			t.Fatalf("add line %s: %d %s", id, status, body)
		}
	}

	req := httptest.NewRequest("POST", "/api/v1/tickets/T1/print", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	receipt, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		t.Fatalf("print: %d %s", resp.StatusCode, receipt)
	}
	if !bytes.HasSuffix(receipt, []byte("Final Price: 41.00\n")) {
		t.Fatalf("bad receipt:\n%s", receipt)
	}
}

func TestErrorStatuses(t *testing.T) {
	app, _ := newApp(t)

	// unknown cashier on ticket creation
	status, _ := postJSON(t, app, "/api/v1/tickets", map[string]any{
		"id": "T1", "cashier_id": "UW0000000", "client_id": "C1", "client": "individual",
	})
	if status != 404 {
		t.Fatalf("unknown cashier: want 404, got %d", status)
	}

	// duplicate product id
	p := map[string]any{"id": "1", "name": "Pen", "price": 2.0, "category": "MERCH"}
	if status, body := postJSON(t, app, "/api/v1/catalog", p); status != 201 {
		t.Fatalf("add: %d %s", status, body)
	}
	if status, _ := postJSON(t, app, "/api/v1/catalog", p); status != 409 {
		t.Fatalf("duplicate: want 409, got %d", status)
	}

	// malformed update
	req := httptest.NewRequest("PATCH", "/api/v1/catalog/1", bytes.NewReader([]byte(`{"field":"price","value":"cheap"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != 400 {
		t.Fatalf("bad update: want 400, got %d", resp.StatusCode)
	}

	// bad login
	if status, _ := postJSON(t, app, "/api/v1/cashiers/login", map[string]any{"id": "UW1111111", "pin": "0000"}); status != 404 {
		t.Fatalf("bad login: want 404, got %d", status)
	}
}
