package domain_test

import (
	"errors"
	"testing"
	"time"

	"posline/internal/domain"
)

func TestCustomizableSurcharge(t *testing.T) {
	p, err := domain.NewCustomizable("42", "Mug", 10.0, domain.Merch, 3)
	if err != nil {
		t.Fatal(err)
	}

	// two texts, quantity 4: 10 * (1 + 0.2) * 4 = 48
	total := p.LineTotal(4, []string{"hello", "world"})
	if total.StringFixed(2) != "48.00" {
		t.Fatalf("want 48.00, got %s", total.StringFixed(2))
	}

	// no texts: plain price * qty
	total = p.LineTotal(2, nil)
	if total.StringFixed(2) != "20.00" {
		t.Fatalf("want 20.00, got %s", total.StringFixed(2))
	}
}

func TestCustomizableTextCap(t *testing.T) {
	p, err := domain.NewCustomizable("42", "Mug", 10.0, domain.Merch, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.AddCustomText("a"); err != nil {
		t.Fatal(err)
	}
	if err := p.AddCustomText("b"); err != nil {
		t.Fatal(err)
	}
	err = p.AddCustomText("c")
	if !errors.Is(err, domain.ErrCapacity) {
		t.Fatalf("want ErrCapacity, got %v", err)
	}
	if got := len(p.CustomTexts()); got != 2 {
		t.Fatalf("want 2 texts, got %d", got)
	}
}

func TestFoodParticipantCap(t *testing.T) {
	eventAt := time.Now().Add(10 * 24 * time.Hour)
	if _, err := domain.NewFood("7", "Banquet", 500, eventAt, 101); !errors.Is(err, domain.ErrCapacity) {
		t.Fatalf("want ErrCapacity, got %v", err)
	}
	if _, err := domain.NewFood("7", "Banquet", 500, eventAt, 100); err != nil {
		t.Fatal(err)
	}
}

func TestBookableLeadTimes(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	food, err := domain.NewFood("7", "Banquet", 500, now.Add(2*24*time.Hour), 50)
	if err != nil {
		t.Fatal(err)
	}
	if err := food.ValidateOnAdd(now); !errors.Is(err, domain.ErrRule) {
		t.Fatalf("food two days out should miss the 3-day lead time, got %v", err)
	}

	food, err = domain.NewFood("7", "Banquet", 500, now.Add(4*24*time.Hour), 50)
	if err != nil {
		t.Fatal(err)
	}
	if err := food.ValidateOnAdd(now); err != nil {
		t.Fatalf("food four days out should pass: %v", err)
	}

	meet, err := domain.NewMeeting("8", "Standup", 0, now.Add(6*time.Hour), 10)
	if err != nil {
		t.Fatal(err)
	}
	if err := meet.ValidateOnAdd(now); !errors.Is(err, domain.ErrRule) {
		t.Fatalf("meeting six hours out should miss the 12h lead time, got %v", err)
	}

	meet, err = domain.NewMeeting("8", "Standup", 0, now.Add(13*time.Hour), 10)
	if err != nil {
		t.Fatal(err)
	}
	if err := meet.ValidateOnAdd(now); err != nil {
		t.Fatalf("meeting thirteen hours out should pass: %v", err)
	}
}

func TestServiceExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, err := domain.NewService("1S", "Cleaning", 0, "cleaning", now.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.ValidateOnAdd(now); err != nil {
		t.Fatalf("service before expiry should pass: %v", err)
	}
	if err := svc.ValidateOnAdd(now.Add(2 * time.Hour)); !errors.Is(err, domain.ErrRule) {
		t.Fatalf("want ErrRule after expiry, got %v", err)
	}
	if !svc.IsService() {
		t.Fatal("IsService should be true")
	}
}

func TestProductFieldValidation(t *testing.T) {
	if _, err := domain.NewStandard("1", "", 5, domain.Book); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("empty name: want ErrInvalid, got %v", err)
	}
	if _, err := domain.NewStandard("1", "Pen", -1, domain.Book); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("negative price: want ErrInvalid, got %v", err)
	}
	if _, err := domain.NewStandard("1", "Pen", 5, domain.Category("TOYS")); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("bad category: want ErrInvalid, got %v", err)
	}
	// float noise just below zero is tolerated
	if _, err := domain.NewStandard("1", "Pen", -0.0004, domain.Book); err != nil {
		t.Fatalf("price inside tolerance should pass: %v", err)
	}
}

func TestCategoryRates(t *testing.T) {
	cases := map[domain.Category]string{
		domain.Merch:       "0",
		domain.Stationery:  "0.05",
		domain.Clothes:     "0.07",
		domain.Book:        "0.1",
		domain.Electronics: "0.03",
	}
	for cat, want := range cases {
		if got := cat.DiscountRate().String(); got != want {
			t.Fatalf("%s: want rate %s, got %s", cat, want, got)
		}
	}
	if _, err := domain.ParseCategory("book"); err != nil {
		t.Fatalf("lowercase category should parse: %v", err)
	}
}
