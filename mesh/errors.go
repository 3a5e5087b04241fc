package mesh

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingReference is wrapped by every MissingReferenceError
	ErrMissingReference = errors.New("missing reference")
	ErrUnknownFormat    = errors.New("unknown output format")
)

// MissingReferenceError reports an id that an element refers to but the named
// table does not contain. ElementID is -1 when the lookup was not made on
// behalf of a particular element.
type MissingReferenceError struct {
	Table     string // "coordinates", "displacements" or "stresses"
	ID        int
	Kind      ElementKind
	ElementID int
}

func (e *MissingReferenceError) Error() string {
	if e.ElementID < 0 {
		return fmt.Sprintf("%v: id %d not found in %s", ErrMissingReference, e.ID, e.Table)
	}
	return fmt.Sprintf("%v: %s element %d refers to id %d, not found in %s",
		ErrMissingReference, e.Kind, e.ElementID, e.ID, e.Table)
}

func (e *MissingReferenceError) Unwrap() error { return ErrMissingReference }
