// internal/placement/direction.go
package placement

import "fmt"

// XDirection selects the horizontal placement rule. The zero value is
// XBetween, the engine default.
type XDirection int

const (
	// XBetween centers the element on the anchor's horizontal midpoint,
	// clamping to the screen edge on overflow.
	XBetween XDirection = iota
	// XBefore places the element to the left of the anchor, swapping to the
	// right side on overflow.
	XBefore
	// XAfter places the element to the right of the anchor, swapping to the
	// left side on overflow.
	XAfter
	// XLeft aligns the element's left edge with the anchor's left edge. No
	// overflow check.
	XLeft
	// XRight aligns the element's right edge with the anchor's right edge.
	// No overflow check.
	XRight
)

// YDirection selects the vertical placement rule. The zero value is YBelow,
// the engine default.
type YDirection int

const (
	// YBelow places the element under the anchor, swapping above on overflow.
	YBelow YDirection = iota
	// YAbove places the element over the anchor, swapping below on overflow.
	YAbove
	// YBetween centers the element on the anchor's vertical midpoint,
	// clamping to the screen edge on overflow.
	YBetween
	// YTop aligns the element's top edge with the anchor's top edge.
	YTop
	// YBottom aligns the element's bottom edge with the anchor's bottom edge.
	YBottom
)

// String implements fmt.Stringer.
func (d XDirection) String() string {
	switch d {
	case XBefore:
		return "before"
	case XAfter:
		return "after"
	case XBetween:
		return "between"
	case XLeft:
		return "left"
	case XRight:
		return "right"
	}
	return fmt.Sprintf("XDirection(%d)", int(d))
}

// String implements fmt.Stringer.
func (d YDirection) String() string {
	switch d {
	case YAbove:
		return "above"
	case YBelow:
		return "below"
	case YBetween:
		return "between"
	case YTop:
		return "top"
	case YBottom:
		return "bottom"
	}
	return fmt.Sprintf("YDirection(%d)", int(d))
}

// ParseXDirection maps a config/CLI string to an XDirection.
func ParseXDirection(s string) (XDirection, error) {
	switch s {
	case "before":
		return XBefore, nil
	case "after":
		return XAfter, nil
	case "between":
		return XBetween, nil
	case "left":
		return XLeft, nil
	case "right":
		return XRight, nil
	}
	return XBetween, fmt.Errorf("unknown horizontal direction %q (want before|after|between|left|right)", s)
}

// ParseYDirection maps a config/CLI string to a YDirection.
func ParseYDirection(s string) (YDirection, error) {
	switch s {
	case "above":
		return YAbove, nil
	case "below":
		return YBelow, nil
	case "between":
		return YBetween, nil
	case "top":
		return YTop, nil
	case "bottom":
		return YBottom, nil
	}
	return YBelow, fmt.Errorf("unknown vertical direction %q (want above|below|between|top|bottom)", s)
}
