package catalog

import (
	"errors"
	"fmt"
)

var ErrConfigurationGap = errors.New("configuration gap")

// GapError names the catalog and id that could not be resolved.
type GapError struct {
	Catalog string
	ID      string
}

func (e *GapError) Error() string {
	return fmt.Sprintf("%s: %s id %s is missing from the catalog", ErrConfigurationGap, e.Catalog, e.ID)
}

func (e *GapError) Unwrap() error {
	return ErrConfigurationGap
}

func gap(catalog string, id any) error {
	return &GapError{Catalog: catalog, ID: fmt.Sprint(id)}
}
