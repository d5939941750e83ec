// internal/style/style.go

// Package style models inline-style patches produced by the placement engine
// and the contract for applying them to a live element. A patch is built
// fresh on every placement pass and never retained.
package style

import (
	"context"
	"strconv"
)

// Value is a single CSS declaration value. Exactly one of the concrete
// variants below is used per property; the placement engine never emits
// free-form strings for lengths.
type Value interface {
	// CSS renders the value. ok is false when the value is falsy and the
	// property must be skipped rather than written.
	CSS() (s string, ok bool)
}

// Px is a numeric length. Positive values render with a "px" suffix;
// zero and negative values are coerced to the plain numeric string (a
// zero margin becomes "0", not "0px").
type Px float64

// CSS implements Value.
func (p Px) CSS() (string, bool) {
	f := float64(p)
	if f > 0 {
		return strconv.FormatFloat(f, 'f', -1, 64) + "px", true
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

// Raw is a verbatim CSS value ("translate3d(0, -50%, 0)", "-50%"). The empty
// string is falsy and is skipped on application.
type Raw string

// CSS implements Value.
func (r Raw) CSS() (string, bool) {
	if r == "" {
		return "", false
	}
	return string(r), true
}

// Patch maps CSS property names to values. Iteration order is not
// significant; each placement pass sets disjoint properties.
type Patch map[string]Value

// Render flattens the patch to property -> rendered string, dropping falsy
// values. The result is what an applier actually writes.
func (p Patch) Render() map[string]string {
	out := make(map[string]string, len(p))
	for prop, v := range p {
		if s, ok := v.CSS(); ok {
			out[prop] = s
		}
	}
	return out
}

// Handle is an opaque reference to a styleable element, owned by the
// collaborator that implements Applier.
type Handle any

// Applier writes style patches and marker classes to elements. The core
// engine never touches elements directly; it hands the applier a description
// of what to write.
type Applier interface {
	// Apply writes the patch to el's inline style. When reset is true all
	// prior inline styling is cleared first. Falsy values are skipped.
	Apply(ctx context.Context, el Handle, patch Patch, reset bool) error
	// AddClasses adds marker classes to el for external styling hooks.
	AddClasses(ctx context.Context, el Handle, classes ...string) error
}
