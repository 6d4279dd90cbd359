// Package ident owns id generation. Allocators are explicit values injected
// into the components they number; after a snapshot load, AdvancePast replays
// the restored ids so fresh ones cannot collide.
package ident

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const (
	cashierDigits = 7
	maxProductID  = 100000
	ticketRandMax = 100000 // 5-digit suffix

	// TimestampLayout is the yy-MM-dd-HH:mm layout used in ticket ids.
	TimestampLayout = "06-01-02-15:04"
)

// CashierIDs hands out UW-prefixed seven-digit ids, unique among the ids it
// has already assigned.
type CashierIDs struct {
	rnd  *rand.Rand
	used map[string]bool
}

func NewCashierIDs() *CashierIDs {
	return &CashierIDs{
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
		used: make(map[string]bool),
	}
}

func (g *CashierIDs) Next() string {
	for {
		id := fmt.Sprintf("UW%07d", g.rnd.Intn(10000000))
		if !g.used[id] {
			g.used[id] = true
			return id
		}
	}
}

// Claim records an externally supplied or restored id as taken.
func (g *CashierIDs) Claim(id string) {
	g.used[id] = true
}

// ProductIDs generates random numeric ids for goods and counter-based
// "S"-suffixed ids for services.
type ProductIDs struct {
	rnd        *rand.Rand
	serviceSeq int
}

func NewProductIDs() *ProductIDs {
	return &ProductIDs{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Next returns a random positive id up to 100000 that taken reports as free.
func (g *ProductIDs) Next(taken func(string) bool) string {
	for {
		id := strconv.Itoa(g.rnd.Intn(maxProductID) + 1)
		if !taken(id) {
			return id
		}
	}
}

// NextService returns the next id in the service namespace, e.g. "3S".
func (g *ProductIDs) NextService(taken func(string) bool) string {
	for {
		g.serviceSeq++
		id := strconv.Itoa(g.serviceSeq) + "S"
		if !taken(id) {
			return id
		}
	}
}

// AdvancePast moves the service counter beyond a restored id so future
// service ids cannot collide. Non-service ids are ignored; they are random
// and re-checked against the catalog on every draw.
func (g *ProductIDs) AdvancePast(id string) {
	num, ok := strings.CutSuffix(id, "S")
	if !ok {
		return
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return
	}
	if n > g.serviceSeq {
		g.serviceSeq = n
	}
}

// TicketIDs generates timestamped ticket ids: yy-MM-dd-HH:mm plus a five
// digit random suffix.
type TicketIDs struct {
	rnd *rand.Rand
}

func NewTicketIDs() *TicketIDs {
	return &TicketIDs{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (g *TicketIDs) Next(now time.Time) string {
	return fmt.Sprintf("%s-%05d", now.Format(TimestampLayout), g.rnd.Intn(ticketRandMax))
}

// CloseSuffix is appended to a ticket id when the ticket closes.
func CloseSuffix(now time.Time) string {
	return "-" + now.Format(TimestampLayout)
}
