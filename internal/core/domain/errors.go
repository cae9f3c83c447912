package domain

import "errors"

// Business outcomes. Callers recover from these locally: the store is left
// unchanged and the operation reports a normal failure.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrReferenceNotFound = errors.New("referenced record not found")
	ErrBadCredentials    = errors.New("bad credentials")
	ErrNotFound          = errors.New("record not found")
)

// Infrastructure failures. Fatal to the enclosing operation; they propagate
// to the top level, which closes the store and exits.
var (
	ErrConstraint  = errors.New("constraint violation")
	ErrSyntax      = errors.New("malformed statement")
	ErrConnClosed  = errors.New("store connection closed")
	ErrScript      = errors.New("script unreadable")
	ErrTransaction = errors.New("transaction failed")
)
