package usecase

import "errors"

// Upstream failures are classified into exactly one of the last three.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrRateLimited  = errors.New("rate limited by upstream")
	ErrTransient    = errors.New("upstream temporarily unavailable")
)
