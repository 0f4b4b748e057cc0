package domain

import "errors"

// Sentinel error kinds for engine operations. Services wrap these with
// fmt.Errorf("%w: ...") so callers can match with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrInvalidState       = errors.New("invalid negotiation state")
)
