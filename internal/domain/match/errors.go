package match

import (
	"errors"
	"fmt"
)

var ErrMalformedMatch = errors.New("malformed match")

const (
	// FreeForAllQueueID selects the arena output shape.
	FreeForAllQueueID = 1700
	DefaultWardItemID = 2052
	teamSize          = 5
)

func malformed(matchID, format string, args ...any) error {
	return fmt.Errorf("%w: match %s: %s", ErrMalformedMatch, matchID, fmt.Sprintf(format, args...))
}
