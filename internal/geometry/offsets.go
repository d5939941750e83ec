// internal/geometry/offsets.go
package geometry

import "context"

// ViewportOffsets measures el relative to the viewport. Left and Top come
// straight from the scaled bounding box; Right and Bottom are the remaining
// space between the element's scaled right/bottom edge and the viewport
// dimension pre-divided by scale. The viewport dimension is divided and
// rounded BEFORE the subtraction rather than scaling the difference; this
// ordering keeps the result consistent with visual layout when scale != 1
// and must not be reordered.
func ViewportOffsets(ctx context.Context, el Measurable, vp Viewport, scale float64) (OffsetRect, error) {
	rect, err := BoundingRect(ctx, el, scale)
	if err != nil {
		return OffsetRect{}, err
	}
	size, err := vp.Size(ctx)
	if err != nil {
		return OffsetRect{}, err
	}
	return OffsetRect{
		Left:   rect.Left,
		Top:    rect.Top,
		Right:  round(size.Width/scale) - rect.Right,
		Bottom: round(size.Height/scale) - rect.Bottom,
		Width:  rect.Width,
		Height: rect.Height,
	}, nil
}

// RelativeOffsets measures el relative to a reference element. A nil ref
// resolves to el's immediate parent. If the reference cannot be resolved to
// a boundable element the call fails with *InvalidReferenceError.
func RelativeOffsets(ctx context.Context, el, ref Measurable, scale float64) (OffsetRect, error) {
	if ref == nil {
		parent, err := el.Parent(ctx)
		if err != nil {
			return OffsetRect{}, err
		}
		if parent == nil {
			return OffsetRect{}, NewInvalidReferenceError("element has no parent")
		}
		ref = parent
	}

	elRect, err := el.BoundingClientRect(ctx)
	if err != nil {
		return OffsetRect{}, err
	}
	refRect, err := ref.BoundingClientRect(ctx)
	if err != nil {
		return OffsetRect{}, err
	}

	left := round((elRect.Left - refRect.Left) / scale)
	top := round((elRect.Top - refRect.Top) / scale)
	width := round(elRect.Width / scale)
	height := round(elRect.Height / scale)
	return OffsetRect{
		Left:   left,
		Top:    top,
		Right:  round(refRect.Width/scale) - (left + width),
		Bottom: round(refRect.Height/scale) - (top + height),
		Width:  width,
		Height: height,
	}, nil
}
