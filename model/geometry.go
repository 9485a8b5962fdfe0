package model

import "math"

// Rect represents an axis-aligned bounding box in page coordinates.
// The origin is the top-left corner of the page and y increases downward,
// so Y0 is the top edge and Y1 the bottom edge.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// NewRect creates a rectangle, normalizing the corner order.
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{
		X0: math.Min(x0, x1),
		Y0: math.Min(y0, y1),
		X1: math.Max(x0, x1),
		Y1: math.Max(y0, y1),
	}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Top returns the top edge y-coordinate (smallest y).
func (r Rect) Top() float64 {
	return r.Y0
}

// Bottom returns the bottom edge y-coordinate (largest y).
func (r Rect) Bottom() float64 {
	return r.Y1
}

// Left returns the left edge x-coordinate.
func (r Rect) Left() float64 {
	return r.X0
}

// Right returns the right edge x-coordinate.
func (r Rect) Right() float64 {
	return r.X1
}

// CenterX returns the horizontal midpoint.
func (r Rect) CenterX() float64 {
	return (r.X0 + r.X1) / 2
}

// CenterY returns the vertical midpoint.
func (r Rect) CenterY() float64 {
	return (r.Y0 + r.Y1) / 2
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 {
	if !r.IsValid() {
		return 0
	}
	return r.Width() * r.Height()
}

// IsValid reports whether the rectangle has positive dimensions.
func (r Rect) IsValid() bool {
	return r.X1 > r.X0 && r.Y1 > r.Y0
}

// Union returns the smallest rectangle containing both r and other.
// A zero-value rectangle acts as the identity.
func (r Rect) Union(other Rect) Rect {
	if r == (Rect{}) {
		return other
	}
	if other == (Rect{}) {
		return r
	}
	return Rect{
		X0: math.Min(r.X0, other.X0),
		Y0: math.Min(r.Y0, other.Y0),
		X1: math.Max(r.X1, other.X1),
		Y1: math.Max(r.Y1, other.Y1),
	}
}

// Intersects reports whether the two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return !(r.X1 < other.X0 || r.X0 > other.X1 ||
		r.Y1 < other.Y0 || r.Y0 > other.Y1)
}
