// internal/placement/engine.go

// Package placement turns a desired horizontal/vertical direction plus
// overflow checks into concrete CSS box offsets, margins and a translation
// vector, swapping direction when the preferred side would not fit the
// viewport. The decision logic itself is the pure Compute function; Engine
// wires it to the measurement and styling collaborators.
package placement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/anchorpop/internal/geometry"
	"github.com/xkilldash9x/anchorpop/internal/style"
)

// Node is an element handle the engine can measure and hand to the styling
// and mutation collaborators. Implementations live in the browser backend
// (or in mocks for tests).
type Node interface {
	geometry.Measurable
	// Exists reports whether the handle currently resolves to a real node.
	// Popups are frequently requested speculatively before DOM attachment,
	// so a false result is an expected state, not an error.
	Exists(ctx context.Context) (bool, error)
}

// Target addresses a container for the reparenting operations: either a
// query selector or a direct node. When the selector resolves to nothing the
// mutator falls back to appending at the document root.
type Target struct {
	Selector string
	Node     Node
}

// Mutator is the DOM mutation collaborator: it moves and appends elements
// but never decides where they go on screen.
type Mutator interface {
	// MoveInto reparents el into target, remembering el's original position
	// so Restore can undo the move.
	MoveInto(ctx context.Context, el Node, target Target) error
	// Restore puts el back where MoveInto found it. A node that was never
	// moved is left alone.
	Restore(ctx context.Context, el Node) error
	// Append appends el to target without recording an origin.
	Append(ctx context.Context, el Node, target Target) error
}

// Engine runs placement passes against injected collaborators. It owns no
// DOM nodes and keeps no state between calls; every pass reads the current
// geometry snapshot, computes a fresh patch and writes it.
type Engine struct {
	vp      geometry.Viewport
	applier style.Applier
	mutator Mutator
	logger  *zap.Logger
}

// NewEngine creates a placement engine. A nil logger is replaced with a nop
// logger.
func NewEngine(vp geometry.Viewport, applier style.Applier, mutator Mutator, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		vp:      vp,
		applier: applier,
		mutator: mutator,
		logger:  logger.Named("placement"),
	}
}

// staticViewport pins a measured size so one viewport query serves both the
// anchor offsets and the overflow checks within a single pass.
type staticViewport struct {
	size geometry.Size
}

func (v staticViewport) Size(context.Context) (geometry.Size, error) {
	return v.size, nil
}

// Place runs one placement pass: measure, decide, apply. Missing element or
// anchor is a warned no-op, not an error (soft-failure policy: popups may be
// requested before their target exists). Measurement and style-application
// failures propagate.
func (e *Engine) Place(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.normalized()
	callID := uuid.New().String()
	logger := e.logger.With(zap.String("callID", callID))

	ok, err := e.resolveTargets(ctx, opts, logger)
	if err != nil || !ok {
		return nil, err
	}

	size, err := e.vp.Size(ctx)
	if err != nil {
		return nil, err
	}

	// The two measurements are independent; overlap them. Both must land
	// before any decision is made, so this stays a single synchronous pass
	// from the caller's point of view.
	var (
		anchorOff geometry.OffsetRect
		elemRect  geometry.ScaledRect
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		anchorOff, err = geometry.ViewportOffsets(gctx, opts.Anchor, staticViewport{size}, opts.Scale)
		return err
	})
	g.Go(func() error {
		var err error
		elemRect, err = geometry.BoundingRect(gctx, opts.Element, opts.Scale)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := Compute(anchorOff, elemRect, size, opts)
	logger.Debug("Computed placement",
		zap.Stringer("xDir", opts.XDir),
		zap.Stringer("yDir", opts.YDir),
		zap.Strings("classes", res.Classes))

	if err := e.applier.Apply(ctx, opts.Element, res.Styles, opts.Reset); err != nil {
		return nil, err
	}
	if err := e.applier.AddClasses(ctx, opts.Element, res.Classes...); err != nil {
		return nil, err
	}
	return &res, nil
}

// PlaceAfter schedules a deferred, fire-and-forget placement pass after
// opts.Delay (immediately when zero). There is no cancellation handle; if
// called again before the delay elapses both passes run and the later
// writer's styles win on the shared style attribute.
func (e *Engine) PlaceAfter(ctx context.Context, opts Options) {
	if opts.Delay <= 0 {
		e.placeLogged(ctx, opts)
		return
	}
	time.AfterFunc(opts.Delay, func() {
		e.placeLogged(ctx, opts)
	})
}

func (e *Engine) placeLogged(ctx context.Context, opts Options) {
	if _, err := e.Place(ctx, opts); err != nil {
		e.logger.Warn("Deferred placement failed", zap.Error(err))
	}
}

// PopTo moves el into target and immediately runs a placement pass for it.
// The usual soft-failure policy applies to a missing element.
func (e *Engine) PopTo(ctx context.Context, target Target, opts Options) error {
	if opts.Element == nil {
		e.logger.Warn("PopTo called without an element; skipping")
		return nil
	}
	if ok, err := e.nodeExists(ctx, opts.Element); err != nil {
		return err
	} else if !ok {
		e.logger.Warn("PopTo target element does not exist; skipping")
		return nil
	}
	if err := e.mutator.MoveInto(ctx, opts.Element, target); err != nil {
		return err
	}
	// Without an anchor this is a plain move; nothing to place against.
	if opts.Anchor != nil {
		e.PlaceAfter(ctx, opts)
	}
	return nil
}

// Restore moves el back to the position PopTo took it from.
func (e *Engine) Restore(ctx context.Context, el Node) error {
	if el == nil {
		e.logger.Warn("Restore called without an element; skipping")
		return nil
	}
	if ok, err := e.nodeExists(ctx, el); err != nil {
		return err
	} else if !ok {
		e.logger.Warn("Restore target element does not exist; skipping")
		return nil
	}
	return e.mutator.Restore(ctx, el)
}

// AppendTo appends el to target without recording an origin.
func (e *Engine) AppendTo(ctx context.Context, el Node, target Target) error {
	if el == nil {
		e.logger.Warn("AppendTo called without an element; skipping")
		return nil
	}
	if ok, err := e.nodeExists(ctx, el); err != nil {
		return err
	} else if !ok {
		e.logger.Warn("AppendTo target element does not exist; skipping")
		return nil
	}
	return e.mutator.Append(ctx, el, target)
}

// resolveTargets enforces the soft-failure precondition on Place: both the
// element and the anchor must be present. Returns false (and logs) when the
// pass should be skipped.
func (e *Engine) resolveTargets(ctx context.Context, opts Options, logger *zap.Logger) (bool, error) {
	if opts.Element == nil || opts.Anchor == nil {
		logger.Warn("Placement requested with a nil element or anchor; skipping")
		return false, nil
	}
	for name, node := range map[string]Node{"element": opts.Element, "anchor": opts.Anchor} {
		ok, err := node.Exists(ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			logger.Warn("Placement target does not exist; skipping", zap.String("target", name))
			return false, nil
		}
	}
	return true, nil
}

func (e *Engine) nodeExists(ctx context.Context, el Node) (bool, error) {
	return el.Exists(ctx)
}
