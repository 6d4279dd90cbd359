package services_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"posline/internal/domain"
	"posline/internal/services"
	"posline/internal/store"
	"posline/internal/ticket"
)

func session(t *testing.T) *services.SessionService {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return services.NewSessionService(st)
}

func TestCheckoutFlow(t *testing.T) {
	s := session(t)

	cashier, err := s.Cashiers.Register("4242")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(cashier, "UW") {
		t.Fatalf("bad cashier id %s", cashier)
	}

	if _, err := s.AddStandard("1", "Dune", 20, "BOOK"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddStandard("2", "Emma", 20, "BOOK"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddStandard("3", "Sticker", 5, "MERCH"); err != nil {
		t.Fatal(err)
	}

	tk, err := s.CreateTicket("T1", cashier, "C1", ticket.ClientIndividual, ticket.CompNone)
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"1", "2", "3"} {
		if err := s.AddLine("T1", id, 1, nil); err != nil {
			t.Fatal(err)
		}
	}

	receipt, err := s.Print("T1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(receipt, "Total price: 45.00\nTotal discount: 4.00\nFinal Price: 41.00\n") {
		t.Fatalf("bad receipt:\n%s", receipt)
	}
	if tk.State() != ticket.StateClosed {
		t.Fatalf("want CLOSED, got %s", tk.State())
	}
}

func TestGeneratedIDs(t *testing.T) {
	s := session(t)

	p, err := s.AddStandard("", "Pen", 2, "STATIONERY")
	if err != nil {
		t.Fatal(err)
	}
	if p.ID() == "" {
		t.Fatal("generated product id expected")
	}

	svc, err := s.AddService("", "Cleaning", 0, "cleaning", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if svc.ID() != "1S" {
		t.Fatalf("want first service id 1S, got %s", svc.ID())
	}

	// blank client id gets filled
	tk, err := s.CreateTicket("", "UW0000001", "", ticket.ClientIndividual, ticket.CompNone)
	if err != nil {
		t.Fatal(err)
	}
	if tk.ClientID() == "" {
		t.Fatal("generated client id expected")
	}
}

func TestCashierLogin(t *testing.T) {
	s := session(t)
	id, err := s.Cashiers.Register("123456")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Cashiers.Login(id, "123456"); err != nil {
		t.Fatal(err)
	}
	if err := s.Cashiers.Login(id, "654321"); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("wrong PIN: want ErrInvalid, got %v", err)
	}
	if err := s.Cashiers.Login("UW9999999", "123456"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown cashier: want ErrNotFound, got %v", err)
	}
	if _, err := s.Cashiers.Register("12ab"); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("bad PIN: want ErrInvalid, got %v", err)
	}
}

func TestBookableAddedOnceThroughSession(t *testing.T) {
	s := session(t)
	eventAt := time.Now().Add(5 * 24 * time.Hour)
	if _, err := s.AddFood("7", "Banquet", 500, eventAt, 50); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateTicket("T1", "UW0000001", "ACME", ticket.ClientCompany, ticket.CompGoods); err != nil {
		t.Fatal(err)
	}
	if err := s.AddLine("T1", "7", 1, nil); err != nil {
		t.Fatal(err)
	}
	if err := s.AddLine("T1", "7", 1, nil); !errors.Is(err, domain.ErrRule) {
		t.Fatalf("second add: want ErrRule, got %v", err)
	}
}

func TestSnapshotRoundTripRefreshesCounters(t *testing.T) {
	s := session(t)

	cashier, err := s.Cashiers.Register("4242")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddStandard("1", "Pen", 2.5, "STATIONERY"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddService("", "Cleaning", 0, "cleaning", time.Now().Add(24*time.Hour)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddService("", "Setup", 0, "setup", time.Now().Add(24*time.Hour)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateTicket("T1", cashier, "C1", ticket.ClientIndividual, ticket.CompNone); err != nil {
		t.Fatal(err)
	}
	if err := s.AddLine("T1", "1", 2, nil); err != nil {
		t.Fatal(err)
	}

	snapID, err := s.Save()
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Load(snapID); err != nil {
		t.Fatal(err)
	}

	// catalog and ticket state survived
	if s.Catalog.Len() != 3 {
		t.Fatalf("want 3 products, got %d", s.Catalog.Len())
	}
	tk, err := s.Tickets.Get("T1")
	if err != nil {
		t.Fatal(err)
	}
	if tk.State() != ticket.StateActive || len(tk.Lines()) != 1 || tk.Lines()[0].Qty != 2 {
		t.Fatalf("ticket state lost: %s %d", tk.State(), len(tk.Lines()))
	}

	// cashier credentials survived
	if err := s.Cashiers.Login(cashier, "4242"); err != nil {
		t.Fatalf("cashier lost after load: %v", err)
	}

	// service id counter was replayed past 2S
	svc, err := s.AddService("", "Catering", 0, "catering", time.Now().Add(24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if svc.ID() != "3S" {
		t.Fatalf("counter not refreshed: want 3S, got %s", svc.ID())
	}
}

func TestClosedTicketSurvivesSnapshot(t *testing.T) {
	s := session(t)
	if _, err := s.AddStandard("1", "Pen", 2.5, "STATIONERY"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateTicket("T1", "UW0000001", "C1", ticket.ClientIndividual, ticket.CompNone); err != nil {
		t.Fatal(err)
	}
	if err := s.AddLine("T1", "1", 1, nil); err != nil {
		t.Fatal(err)
	}
	receipt, err := s.Print("T1")
	if err != nil {
		t.Fatal(err)
	}

	snapID, err := s.Save()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Load(snapID); err != nil {
		t.Fatal(err)
	}

	var closedID string
	for _, tk := range s.Tickets.List() {
		closedID = tk.ID()
	}
	again, err := s.Print(closedID)
	if err != nil {
		t.Fatal(err)
	}
	if again != receipt {
		t.Fatal("restored closed ticket must re-emit the cached receipt")
	}
}
