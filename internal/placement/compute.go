// internal/placement/compute.go
package placement

import (
	"fmt"
	"time"

	"github.com/xkilldash9x/anchorpop/internal/geometry"
	"github.com/xkilldash9x/anchorpop/internal/style"
)

// Defaults for Options fields left unset by callers.
const (
	DefaultScale = 1.0
	DefaultSpace = 8
)

// Marker classes attached alongside the style patch so external stylesheets
// can hook the placement outcome (arrow direction, entry animation, ...).
const (
	ClassXBefore      = "x-before"
	ClassXAfter       = "x-after"
	ClassXBetween     = "x-between"
	ClassXLeft        = "x-left"
	ClassXRight       = "x-right"
	ClassXScreenLeft  = "x-screen-left"
	ClassXScreenRight = "x-screen-right"

	ClassYAbove        = "y-above"
	ClassYBelow        = "y-below"
	ClassYBetween      = "y-between"
	ClassYTop          = "y-top"
	ClassYBottom       = "y-bottom"
	ClassYScreenTop    = "y-screen-top"
	ClassYScreenBottom = "y-screen-bottom"
)

// Options drives a single placement pass. The zero value of XDir/YDir is the
// between/below default; use DefaultOptions for the documented scale, swap
// and space defaults.
type Options struct {
	// Element is the popup being placed. Anchor is the element it is placed
	// relative to. Both must resolve to real nodes; Place soft-fails with a
	// warning otherwise.
	Element Node
	Anchor  Node

	XDir XDirection
	YDir YDirection

	// Scale is the divisor applied to all raw geometry, compensating for a
	// rendering zoom on the measured subtree. Must be > 0; a zero value is
	// treated as 1. Negative scales are a precondition violation and the
	// result is undefined.
	Scale float64

	// Swap flips the preferred side to the opposite side when the preferred
	// side would overflow the viewport. Between placements clamp to the
	// screen edge instead and do not consult this flag.
	Swap bool

	// Space is the margin, in pixels, kept between the element and the
	// anchor (or the screen edge for clamped between placements).
	Space int

	// Reset clears all prior inline styling before the patch is applied.
	Reset bool

	// Delay defers the placement pass, letting a just-moved element settle
	// in the layout tree first. Only consulted by PlaceAfter.
	Delay time.Duration
}

// DefaultOptions returns the engine defaults: between/below placement, unit
// scale, swap on overflow, 8px space.
func DefaultOptions() Options {
	return Options{Scale: DefaultScale, Swap: true, Space: DefaultSpace}
}

func (o Options) normalized() Options {
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	return o
}

// Result is the outcome of one placement pass: the style patch to write and
// the marker classes describing which branch was taken. Exactly one of
// left/right and exactly one of top/bottom is present in Styles.
type Result struct {
	Styles  style.Patch
	Classes []string
}

// Compute runs the directional-placement algorithm on already-measured
// geometry. It is a pure function of its inputs: anchor offsets relative to
// the viewport, the element's own scaled box, and the raw viewport size
// (divided by Options.Scale internally). The horizontal and vertical
// procedures are independent; each takes exactly one branch, so a single
// pass always terminates.
func Compute(anchor geometry.OffsetRect, elem geometry.ScaledRect, vp geometry.Size, opts Options) Result {
	opts = opts.normalized()
	vw := geometry.ScaleLength(vp.Width, opts.Scale)
	vh := geometry.ScaleLength(vp.Height, opts.Scale)
	space := style.Px(opts.Space)

	patch := style.Patch{}
	classes := make([]string, 0, 2)
	tx, ty := "0", "0"

	switch opts.XDir {
	case XBefore:
		// Room to the anchor's left, measured against its right edge. When
		// the element is wider than that room it would cross the viewport
		// edge, so flip to the after side (or pin to the edge without swap).
		if vw-anchor.Right-elem.Width < 0 {
			if opts.Swap {
				patch["left"] = style.Px(anchor.Left + anchor.Width)
			} else {
				patch["left"] = style.Px(0)
			}
			patch["margin-left"] = space
			classes = append(classes, ClassXAfter)
		} else {
			patch["right"] = style.Px(anchor.Right + anchor.Width)
			patch["margin-right"] = space
			classes = append(classes, ClassXBefore)
		}
	case XAfter:
		if anchor.Left+elem.Width > vw {
			if opts.Swap {
				patch["right"] = style.Px(anchor.Right + anchor.Width)
			} else {
				patch["right"] = style.Px(0)
			}
			patch["margin-right"] = space
			classes = append(classes, ClassXBefore)
		} else {
			patch["left"] = style.Px(anchor.Left + anchor.Width)
			patch["margin-left"] = space
			classes = append(classes, ClassXAfter)
		}
	case XBetween:
		cx := anchor.Left + anchor.Width/2
		half := elem.Width / 2
		switch {
		case cx-half < 0:
			patch["left"] = space
			patch["max-width"] = style.Px(vw - 2*opts.Space)
			classes = append(classes, ClassXScreenLeft)
		case cx+half > vw:
			patch["right"] = space
			patch["max-width"] = style.Px(vw - 2*opts.Space)
			classes = append(classes, ClassXScreenRight)
		default:
			patch["left"] = style.Px(cx)
			tx = "-50%"
			classes = append(classes, ClassXBetween)
		}
	case XLeft:
		patch["left"] = style.Px(anchor.Left)
		classes = append(classes, ClassXLeft)
	case XRight:
		patch["right"] = style.Px(anchor.Right)
		classes = append(classes, ClassXRight)
	}

	switch opts.YDir {
	case YAbove:
		if vh-anchor.Bottom-elem.Height < 0 {
			// Note the asymmetry with YBelow: without swap the element is
			// pinned via top=0 here, bottom=0 there. Intentional; callers
			// style the two marker classes accordingly.
			if opts.Swap {
				patch["top"] = style.Px(anchor.Top + anchor.Height)
			} else {
				patch["top"] = style.Px(0)
			}
			patch["margin-top"] = space
			classes = append(classes, ClassYBelow)
		} else {
			patch["bottom"] = style.Px(anchor.Bottom + anchor.Height)
			patch["margin-bottom"] = space
			classes = append(classes, ClassYAbove)
		}
	case YBelow:
		if anchor.Top+elem.Height > vh {
			if opts.Swap {
				patch["bottom"] = style.Px(anchor.Bottom + anchor.Height)
			} else {
				patch["bottom"] = style.Px(0)
			}
			patch["margin-bottom"] = space
			classes = append(classes, ClassYAbove)
		} else {
			patch["top"] = style.Px(anchor.Top + anchor.Height)
			patch["margin-top"] = space
			classes = append(classes, ClassYBelow)
		}
	case YBetween:
		cy := anchor.Top + anchor.Height/2
		half := elem.Height / 2
		switch {
		case cy-half < 0:
			patch["top"] = space
			patch["max-height"] = style.Px(vh - 2*opts.Space)
			classes = append(classes, ClassYScreenTop)
		case cy+half > vh:
			patch["bottom"] = space
			patch["max-height"] = style.Px(vh - 2*opts.Space)
			classes = append(classes, ClassYScreenBottom)
		default:
			patch["top"] = style.Px(cy)
			ty = "-50%"
			classes = append(classes, ClassYBetween)
		}
	case YTop:
		patch["top"] = style.Px(anchor.Top)
		classes = append(classes, ClassYTop)
	case YBottom:
		patch["bottom"] = style.Px(anchor.Bottom)
		classes = append(classes, ClassYBottom)
	}

	patch["transform"] = style.Raw(fmt.Sprintf("translate3d(%s, %s, 0)", tx, ty))
	return Result{Styles: patch, Classes: classes}
}
