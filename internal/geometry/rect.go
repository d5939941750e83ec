// internal/geometry/rect.go
package geometry

import (
	"context"
	"math"
)

// RawRect is an element rectangle as reported by the platform's native
// geometry query (getBoundingClientRect and friends). Right and Bottom are
// edge coordinates here, not remaining space.
type RawRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ScaledRect is a RawRect with every field divided by a scale factor and
// rounded to the nearest integer pixel. Right and Bottom remain edge
// coordinates, matching the raw rectangle they were derived from.
type ScaledRect struct {
	X      int
	Y      int
	Left   int
	Top    int
	Right  int
	Bottom int
	Width  int
	Height int
}

// OffsetRect describes an element's box relative to a reference frame: its
// size plus the distance from each of its edges to the matching edge of the
// reference. Right and Bottom are remaining space on that side, NOT edge
// coordinates. For any measured rect, Left+Width+Right equals the reference
// width within ±1 (the components round independently), and likewise for the
// vertical triple.
type OffsetRect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
	Width  int
	Height int
}

// Size holds viewport dimensions in raw (unscaled) pixels.
type Size struct {
	Width  float64
	Height float64
}

// Measurable is the bounding-box query capability an element handle must
// expose to be measured. Implementations live outside this package (the
// browser backend, or mocks in tests).
type Measurable interface {
	// BoundingClientRect returns the element's single bounding box.
	BoundingClientRect(ctx context.Context) (RawRect, error)
	// ClientRects returns all fragment boxes of the element in DOM order.
	// The slice is empty when the element is not rendered.
	ClientRects(ctx context.Context) ([]RawRect, error)
	// Parent resolves the element's immediate parent, or nil if it has none.
	Parent(ctx context.Context) (Measurable, error)
}

// Viewport exposes the current viewport dimensions.
type Viewport interface {
	Size(ctx context.Context) (Size, error)
}

// round is the single rounding mode used for all geometry in this package:
// half away from zero.
func round(v float64) int {
	return int(math.Round(v))
}

// ScaleLength divides a raw length by scale and rounds, using the same
// rounding mode as ScaleRect. Used for viewport dimensions, which are
// pre-divided by scale before any boundary arithmetic.
func ScaleLength(v, scale float64) int {
	return round(v / scale)
}

// ScaleRect divides every field of raw by scale and rounds to the nearest
// integer. Scale must be > 0; passing a zero or negative scale is a
// precondition violation and the result is undefined.
func ScaleRect(raw RawRect, scale float64) ScaledRect {
	return ScaledRect{
		X:      round(raw.X / scale),
		Y:      round(raw.Y / scale),
		Left:   round(raw.Left / scale),
		Top:    round(raw.Top / scale),
		Right:  round(raw.Right / scale),
		Bottom: round(raw.Bottom / scale),
		Width:  round(raw.Width / scale),
		Height: round(raw.Height / scale),
	}
}

// BoundingRect measures the element's bounding box, scaled.
func BoundingRect(ctx context.Context, el Measurable, scale float64) (ScaledRect, error) {
	raw, err := el.BoundingClientRect(ctx)
	if err != nil {
		return ScaledRect{}, err
	}
	return ScaleRect(raw, scale), nil
}

// ClientRects measures all fragment boxes of a (possibly multi-line inline)
// element, scaled. The result is materialized eagerly; fragment counts are
// small and bounded by the element's rendering.
func ClientRects(ctx context.Context, el Measurable, scale float64) ([]ScaledRect, error) {
	raws, err := el.ClientRects(ctx)
	if err != nil {
		return nil, err
	}
	rects := make([]ScaledRect, 0, len(raws))
	for _, raw := range raws {
		rects = append(rects, ScaleRect(raw, scale))
	}
	return rects, nil
}
