// internal/browser/apply.go
package browser

import (
	"context"
	"fmt"

	"github.com/xkilldash9x/anchorpop/internal/style"
)

// Styler implements style.Applier by rewriting the element's inline style
// attribute in the page. The px-suffix and falsy-skip rules are resolved
// Go-side via Patch.Render; the page script only writes strings.
type Styler struct {
	sess *Session
}

var _ style.Applier = (*Styler)(nil)

// Styler returns the session's style applier.
func (s *Session) Styler() *Styler {
	return &Styler{sess: s}
}

// Apply implements style.Applier.
func (a *Styler) Apply(ctx context.Context, el style.Handle, patch style.Patch, reset bool) error {
	handle, err := asElement(el)
	if err != nil {
		return err
	}
	props := patch.Render()
	var ok bool
	if err := a.sess.eval(ctx, applyStylesScript(handle.nodeExpr, props, reset), &ok); err != nil {
		return fmt.Errorf("failed to apply styles to '%s': %w", handle.selector, err)
	}
	if !ok {
		return NewElementNotFoundError(handle.selector)
	}
	return nil
}

// AddClasses implements style.Applier.
func (a *Styler) AddClasses(ctx context.Context, el style.Handle, classes ...string) error {
	if len(classes) == 0 {
		return nil
	}
	handle, err := asElement(el)
	if err != nil {
		return err
	}
	var ok bool
	if err := a.sess.eval(ctx, addClassesScript(handle.nodeExpr, classes), &ok); err != nil {
		return fmt.Errorf("failed to add classes to '%s': %w", handle.selector, err)
	}
	if !ok {
		return NewElementNotFoundError(handle.selector)
	}
	return nil
}

func asElement(h any) (*Element, error) {
	el, ok := h.(*Element)
	if !ok || el == nil {
		return nil, fmt.Errorf("handle %T is not a browser element", h)
	}
	return el, nil
}
