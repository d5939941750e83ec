// internal/browser/element.go
package browser

import (
	"context"
	"fmt"

	"github.com/xkilldash9x/anchorpop/internal/geometry"
	"github.com/xkilldash9x/anchorpop/internal/placement"
)

// Element is a selector-addressed handle to a node in the session's page.
// It carries no node state of its own; every call re-resolves the selector
// against the current DOM, which is what makes placement a pure function of
// the page's geometry at call time.
type Element struct {
	sess     *Session
	selector string
	// nodeExpr is the JS expression that resolves this handle to a node.
	// Derived handles (parents) extend it rather than holding CDP node IDs,
	// so a stale ID can never be dereferenced.
	nodeExpr string
}

var _ placement.Node = (*Element)(nil)
var _ geometry.Measurable = (*Element)(nil)

// Selector returns the selector (or derived expression description) this
// handle was created from.
func (el *Element) Selector() string { return el.selector }

// Exists implements placement.Node.
func (el *Element) Exists(ctx context.Context) (bool, error) {
	var ok bool
	if err := el.sess.eval(ctx, existsScript(el.nodeExpr), &ok); err != nil {
		return false, fmt.Errorf("failed to resolve '%s': %w", el.selector, err)
	}
	return ok, nil
}

// BoundingClientRect implements geometry.Measurable.
func (el *Element) BoundingClientRect(ctx context.Context) (geometry.RawRect, error) {
	var rect geometry.RawRect
	found, err := el.sess.evalNullable(ctx, boundingRectScript(el.nodeExpr), &rect)
	if err != nil {
		return geometry.RawRect{}, fmt.Errorf("failed to measure '%s': %w", el.selector, err)
	}
	if !found {
		return geometry.RawRect{}, NewElementNotFoundError(el.selector)
	}
	return rect, nil
}

// ClientRects implements geometry.Measurable. The result is empty (not an
// error) for an element that exists but is not rendered.
func (el *Element) ClientRects(ctx context.Context) ([]geometry.RawRect, error) {
	var rects []geometry.RawRect
	found, err := el.sess.evalNullable(ctx, clientRectsScript(el.nodeExpr), &rects)
	if err != nil {
		return nil, fmt.Errorf("failed to measure fragments of '%s': %w", el.selector, err)
	}
	if !found {
		return nil, NewElementNotFoundError(el.selector)
	}
	return rects, nil
}

// Parent implements geometry.Measurable. It returns nil (with no error) when
// the node has no parent element, letting the measurement layer raise its
// own InvalidReferenceError.
func (el *Element) Parent(ctx context.Context) (geometry.Measurable, error) {
	var ok bool
	if err := el.sess.eval(ctx, hasParentScript(el.nodeExpr), &ok); err != nil {
		return nil, fmt.Errorf("failed to resolve parent of '%s': %w", el.selector, err)
	}
	if !ok {
		return nil, nil
	}
	return &Element{
		sess:     el.sess,
		selector: el.selector + " (parent)",
		nodeExpr: fmt.Sprintf("((%s) || {}).parentElement", el.nodeExpr),
	}, nil
}
