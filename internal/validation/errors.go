package validation

import (
	"errors"
	"fmt"
	"strings"
)

var ErrValidationFailed = errors.New("validation failed")

// Violation is one contract breach at a dotted field path such as "info.participants[3].kills".
type Violation struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (v Violation) String() string {
	path := v.Path
	if path == "" {
		path = "(root)"
	}
	return path + ": " + v.Reason
}

// Error carries every violation found in one pass over a payload.
type Error struct {
	Kind       Kind
	Violations []Violation
}

func (e *Error) Error() string {
	if e == nil {
		return ErrValidationFailed.Error()
	}

	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("%s: %s payload has %d violation(s): %s",
		ErrValidationFailed.Error(), e.Kind, len(e.Violations), strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error {
	return ErrValidationFailed
}

// Violations extracts the violation list from err, or nil when err is not a validation error.
func Violations(err error) []Violation {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Violations
	}
	return nil
}
