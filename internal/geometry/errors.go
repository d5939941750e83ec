// internal/geometry/errors.go
package geometry

import "fmt"

// InvalidReferenceError reports that a relative-measurement reference could
// not be resolved to a boundable element. It is fatal to the measurement call
// that raised it; there is no retry path.
type InvalidReferenceError struct {
	Reason string
}

// Error implements the error interface.
func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid measurement reference: %s", e.Reason)
}

// NewInvalidReferenceError creates a new InvalidReferenceError.
func NewInvalidReferenceError(reason string) *InvalidReferenceError {
	return &InvalidReferenceError{Reason: reason}
}
