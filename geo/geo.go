// Package geo provides bounding-polygon math for positioned text fragments.
// Coordinates are in pixels with the origin in the upper-left corner of the
// page image, matching the convention of every supported OCR output format.
package geo

import "math"

// Point is a single (x, y) vertex of a bounding polygon.
type Point struct {
	X float64
	Y float64
}

// Polygon is an ordered sequence of vertices. OCR engines emit quadrilaterals
// (4 points, clockwise from the top-left), but nothing here depends on the
// vertex count beyond the minimum.
type Polygon []Point

// MinVertices is the smallest polygon that still yields a bounding box.
// Fragments with fewer vertices carry no usable geometry and are dropped.
const MinVertices = 4

// Valid reports whether the polygon has enough vertices to derive a box.
func (p Polygon) Valid() bool { return len(p) >= MinVertices }

// LeftX returns the minimum x over all vertices.
func (p Polygon) LeftX() float64 {
	left := math.Inf(1)
	for _, pt := range p {
		left = math.Min(left, pt.X)
	}
	return left
}

// TopY returns the minimum y over all vertices.
func (p Polygon) TopY() float64 {
	top := math.Inf(1)
	for _, pt := range p {
		top = math.Min(top, pt.Y)
	}
	return top
}

// CenterX returns the mean x over all vertices.
func (p Polygon) CenterX() float64 {
	if len(p) == 0 {
		return 0
	}
	var sum float64
	for _, pt := range p {
		sum += pt.X
	}
	return sum / float64(len(p))
}

// CenterY returns the mean y over all vertices.
func (p Polygon) CenterY() float64 {
	if len(p) == 0 {
		return 0
	}
	var sum float64
	for _, pt := range p {
		sum += pt.Y
	}
	return sum / float64(len(p))
}

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Bounds returns the axis-aligned bounding rectangle of the polygon.
func (p Polygon) Bounds() Rect {
	if len(p) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range p {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// FromRect builds the clockwise quadrilateral covering r, starting at the
// top-left corner.
func FromRect(r Rect) Polygon {
	return Polygon{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	}
}
