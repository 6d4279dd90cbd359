package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reID  = regexp.MustCompile(`^[A-Za-z0-9:_-]{1,64}$`)
	rePIN = regexp.MustCompile(`^[0-9]{4,8}$`)
)

// Name validates a displayable product name (trimmed, at most 100 chars).
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Price parses a price string; valid when it parses and is non-negative
// within float tolerance.
func Price(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= -0.001 {
		return 0, false
	}
	return v, true
}

// Qty parses a strictly positive quantity.
func Qty(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// ID validates a simple resource identifier (product/ticket/cashier ids).
// Ticket ids embed ":" from their timestamp portion.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// PIN validates a cashier PIN: 4-8 digits.
func PIN(s string) bool {
	return rePIN.MatchString(s)
}
