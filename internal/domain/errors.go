package domain

import "errors"

// One sentinel per failure kind. Callers branch with errors.Is; the wrapped
// message carries the human-readable detail.
var (
	ErrDuplicateID = errors.New("duplicate id")
	ErrNotFound    = errors.New("not found")
	ErrCapacity    = errors.New("capacity exceeded")
	ErrRule        = errors.New("rule violation")
	ErrInvalid     = errors.New("invalid data")
)
