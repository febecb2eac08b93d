// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package geom provides the geometric primitives used to describe clip
// regions: points, rectangles in both continuous and integer clip space,
// rounded rectangles, and paths.
package geom

import "github.com/chewxy/math32"

// Point is a 2D point with float32 coordinates.
type Point struct {
	X, Y float32
}

// Pt creates a Point from x, y coordinates.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Neg returns the point with both coordinates negated.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// IPoint is a 2D point with integer coordinates, used for clip-space
// offsets.
type IPoint struct {
	X, Y int
}

// Rect is an axis-aligned rectangle with float32 edges.
// A Rect is empty when MaxX <= MinX or MaxY <= MinY.
type Rect struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// NewRect creates a Rect from position and size.
func NewRect(x, y, w, h float32) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// Width returns the rectangle width.
func (r Rect) Width() float32 { return r.MaxX - r.MinX }

// Height returns the rectangle height.
func (r Rect) Height() float32 { return r.MaxY - r.MinY }

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Offset returns the rectangle translated by (dx, dy).
func (r Rect) Offset(dx, dy float32) Rect {
	return Rect{MinX: r.MinX + dx, MinY: r.MinY + dy, MaxX: r.MaxX + dx, MaxY: r.MaxY + dy}
}

// Contains returns true if r fully contains other.
// An empty rectangle contains nothing.
func (r Rect) Contains(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return other.MinX >= r.MinX && other.MaxX <= r.MaxX &&
		other.MinY >= r.MinY && other.MaxY <= r.MaxY
}

// ContainsPoint returns true if the point is inside the rectangle.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.MinX && p.X < r.MaxX && p.Y >= r.MinY && p.Y < r.MaxY
}

// Intersects returns true if the two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.MinX < other.MaxX && other.MinX < r.MaxX &&
		r.MinY < other.MaxY && other.MinY < r.MaxY
}

// Intersect returns the intersection of two rectangles.
// Returns the zero Rect when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		MinX: math32.Max(r.MinX, other.MinX),
		MinY: math32.Max(r.MinY, other.MinY),
		MaxX: math32.Min(r.MaxX, other.MaxX),
		MaxY: math32.Min(r.MaxY, other.MaxY),
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Union returns the smallest rectangle containing both r and other.
// An empty rectangle contributes nothing.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rect{
		MinX: math32.Min(r.MinX, other.MinX),
		MinY: math32.Min(r.MinY, other.MinY),
		MaxX: math32.Max(r.MaxX, other.MaxX),
		MaxY: math32.Max(r.MaxY, other.MaxY),
	}
}

// RoundOut returns the smallest IRect covering r.
func (r Rect) RoundOut() IRect {
	return IRect{
		MinX: int(math32.Floor(r.MinX)),
		MinY: int(math32.Floor(r.MinY)),
		MaxX: int(math32.Ceil(r.MaxX)),
		MaxY: int(math32.Ceil(r.MaxY)),
	}
}

// IRect is an axis-aligned rectangle with integer edges, used for clip
// space, scissor, and mask bounds.
type IRect struct {
	MinX, MinY int
	MaxX, MaxY int
}

// NewIRect creates an IRect from position and size.
func NewIRect(x, y, w, h int) IRect {
	return IRect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// Width returns the rectangle width.
func (r IRect) Width() int { return r.MaxX - r.MinX }

// Height returns the rectangle height.
func (r IRect) Height() int { return r.MaxY - r.MinY }

// IsEmpty returns true if the rectangle has no area.
func (r IRect) IsEmpty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Offset returns the rectangle translated by (dx, dy).
func (r IRect) Offset(dx, dy int) IRect {
	return IRect{MinX: r.MinX + dx, MinY: r.MinY + dy, MaxX: r.MaxX + dx, MaxY: r.MaxY + dy}
}

// Contains returns true if r fully contains other.
func (r IRect) Contains(other IRect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return other.MinX >= r.MinX && other.MaxX <= r.MaxX &&
		other.MinY >= r.MinY && other.MaxY <= r.MaxY
}

// Intersect returns the intersection of two rectangles.
// Returns the zero IRect when they do not overlap.
func (r IRect) Intersect(other IRect) IRect {
	out := IRect{
		MinX: max(r.MinX, other.MinX),
		MinY: max(r.MinY, other.MinY),
		MaxX: min(r.MaxX, other.MaxX),
		MaxY: min(r.MaxY, other.MaxY),
	}
	if out.IsEmpty() {
		return IRect{}
	}
	return out
}

// Rect converts the integer rectangle to a float32 Rect.
func (r IRect) Rect() Rect {
	return Rect{
		MinX: float32(r.MinX), MinY: float32(r.MinY),
		MaxX: float32(r.MaxX), MaxY: float32(r.MaxY),
	}
}

// RRect is a rectangle with circular corners of a single radius.
// A radius of zero degenerates to a plain rectangle.
type RRect struct {
	Rect   Rect
	Radius float32
}

// NewRRect creates a rounded rectangle. The radius is clamped to half the
// shorter side so opposing corners never overlap.
func NewRRect(r Rect, radius float32) RRect {
	limit := math32.Min(r.Width(), r.Height()) / 2
	if radius > limit {
		radius = limit
	}
	if radius < 0 {
		radius = 0
	}
	return RRect{Rect: r, Radius: radius}
}

// Bounds returns the bounding rectangle.
func (rr RRect) Bounds() Rect { return rr.Rect }

// Contains returns true if rr fully contains the rectangle other.
// Conservative: a rectangle inside the bounds but overlapping a cut
// corner is reported as not contained.
func (rr RRect) Contains(other Rect) bool {
	if !rr.Rect.Contains(other) {
		return false
	}
	if rr.Radius == 0 {
		return true
	}
	// Shrink the safe region by the corner radius on each side. Anything
	// inside it clears all four corner circles.
	safe := Rect{
		MinX: rr.Rect.MinX + rr.Radius,
		MinY: rr.Rect.MinY + rr.Radius,
		MaxX: rr.Rect.MaxX - rr.Radius,
		MaxY: rr.Rect.MaxY - rr.Radius,
	}
	if safe.Contains(other) {
		return true
	}
	// Check each corner of other against the rounded corners directly.
	for _, p := range [4]Point{
		{other.MinX, other.MinY},
		{other.MaxX, other.MinY},
		{other.MinX, other.MaxY},
		{other.MaxX, other.MaxY},
	} {
		if SDFRRect(p.X, p.Y, rr) > 0 {
			return false
		}
	}
	return true
}

// SDFRRect computes the signed distance from a point to a rounded
// rectangle. Negative values are inside, positive values are outside.
func SDFRRect(px, py float32, rr RRect) float32 {
	cx := (rr.Rect.MinX + rr.Rect.MaxX) / 2
	cy := (rr.Rect.MinY + rr.Rect.MaxY) / 2
	halfW := rr.Rect.Width() / 2
	halfH := rr.Rect.Height() / 2

	dx := math32.Abs(px-cx) - halfW + rr.Radius
	dy := math32.Abs(py-cy) - halfH + rr.Radius

	outside := math32.Sqrt(math32.Max(dx, 0)*math32.Max(dx, 0) + math32.Max(dy, 0)*math32.Max(dy, 0))
	inside := math32.Min(math32.Max(dx, dy), 0)

	return outside + inside - rr.Radius
}
