// internal/browser/errors.go
package browser

import "fmt"

// ElementNotFoundError is a typed error for a selector that matches no node.
// Callers classify it with errors.As instead of string matching; the
// placement engine treats it as the "requested before attachment" state and
// soft-fails.
type ElementNotFoundError struct {
	Selector string
}

// Error implements the error interface.
func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("element not found matching selector '%s'", e.Selector)
}

// NewElementNotFoundError creates a new ElementNotFoundError.
func NewElementNotFoundError(selector string) *ElementNotFoundError {
	return &ElementNotFoundError{Selector: selector}
}
