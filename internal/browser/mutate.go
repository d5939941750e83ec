// internal/browser/mutate.go
package browser

import (
	"context"
	"fmt"

	"github.com/xkilldash9x/anchorpop/internal/placement"
)

// Mover implements placement.Mutator with page-side reparenting. Origins of
// moved nodes live in a WeakMap inside the page, so restoring survives
// multiple Go-side handles pointing at the same node.
type Mover struct {
	sess *Session
}

var _ placement.Mutator = (*Mover)(nil)

// Mover returns the session's DOM mutation collaborator.
func (s *Session) Mover() *Mover {
	return &Mover{sess: s}
}

// MoveInto implements placement.Mutator. A target selector that resolves to
// nothing falls back to the document root.
func (m *Mover) MoveInto(ctx context.Context, el placement.Node, target placement.Target) error {
	return m.reparent(ctx, el, target, true)
}

// Append implements placement.Mutator.
func (m *Mover) Append(ctx context.Context, el placement.Node, target placement.Target) error {
	return m.reparent(ctx, el, target, false)
}

// Restore implements placement.Mutator. A node that was never moved is left
// alone.
func (m *Mover) Restore(ctx context.Context, el placement.Node) error {
	handle, err := asElement(el)
	if err != nil {
		return err
	}
	var ok bool
	if err := m.sess.eval(ctx, restoreScript(handle.nodeExpr), &ok); err != nil {
		return fmt.Errorf("failed to restore '%s': %w", handle.selector, err)
	}
	return nil
}

func (m *Mover) reparent(ctx context.Context, el placement.Node, target placement.Target, remember bool) error {
	handle, err := asElement(el)
	if err != nil {
		return err
	}
	targetExpr, err := m.targetExpr(target)
	if err != nil {
		return err
	}
	var ok bool
	if err := m.sess.eval(ctx, moveScript(handle.nodeExpr, targetExpr, remember), &ok); err != nil {
		return fmt.Errorf("failed to move '%s': %w", handle.selector, err)
	}
	if !ok {
		return NewElementNotFoundError(handle.selector)
	}
	return nil
}

// targetExpr resolves a Target to a JS expression. An empty target means the
// document root.
func (m *Mover) targetExpr(target placement.Target) (string, error) {
	if target.Node != nil {
		handle, err := asElement(target.Node)
		if err != nil {
			return "", err
		}
		return handle.nodeExpr, nil
	}
	if target.Selector != "" {
		return fmt.Sprintf("document.querySelector(%s)", jsString(target.Selector)), nil
	}
	return "null", nil
}
