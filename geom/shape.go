// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

// ShapeKind discriminates the shape variants a clip element may carry.
type ShapeKind uint8

const (
	// KindRect is an axis-aligned rectangle.
	KindRect ShapeKind = iota
	// KindRRect is a rounded rectangle.
	KindRRect
	// KindPath is an arbitrary filled path.
	KindPath
)

// String returns the kind name for logging.
func (k ShapeKind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindRRect:
		return "rrect"
	case KindPath:
		return "path"
	}
	return "unknown"
}

// Shape is a tagged variant of the geometry a clip element may carry.
// Exactly the field selected by Kind is meaningful.
type Shape struct {
	Kind  ShapeKind
	Rect  Rect
	RRect RRect
	Path  *Path
}

// RectShape wraps a rectangle as a Shape.
func RectShape(r Rect) Shape {
	return Shape{Kind: KindRect, Rect: r}
}

// RRectShape wraps a rounded rectangle as a Shape.
func RRectShape(rr RRect) Shape {
	return Shape{Kind: KindRRect, RRect: rr}
}

// PathShape wraps a path as a Shape.
func PathShape(p *Path) Shape {
	return Shape{Kind: KindPath, Path: p}
}

// Bounds returns the shape's bounding rectangle.
func (s Shape) Bounds() Rect {
	switch s.Kind {
	case KindRect:
		return s.Rect
	case KindRRect:
		return s.RRect.Bounds()
	case KindPath:
		if s.Path == nil {
			return Rect{}
		}
		return s.Path.Bounds()
	}
	return Rect{}
}

// IsEmpty returns true if the shape encloses no area.
func (s Shape) IsEmpty() bool {
	switch s.Kind {
	case KindRect:
		return s.Rect.IsEmpty()
	case KindRRect:
		return s.RRect.Bounds().IsEmpty()
	case KindPath:
		return s.Path == nil || s.Path.IsEmpty()
	}
	return true
}

// Contains returns true if the shape provably contains the rectangle r.
// Paths always report false; there is no cheap containment test for them.
func (s Shape) Contains(r Rect) bool {
	switch s.Kind {
	case KindRect:
		return s.Rect.Contains(r)
	case KindRRect:
		return s.RRect.Contains(r)
	}
	return false
}

// ToPath converts the shape to a path representation. Rounded rectangle
// corners become cubic Bezier arcs.
func (s Shape) ToPath() *Path {
	switch s.Kind {
	case KindRect:
		return RectPath(s.Rect)
	case KindRRect:
		return rrectPath(s.RRect)
	case KindPath:
		return s.Path
	}
	return NewPath(nil)
}

// Offset returns the shape translated by (dx, dy).
func (s Shape) Offset(dx, dy float32) Shape {
	switch s.Kind {
	case KindRect:
		return RectShape(s.Rect.Offset(dx, dy))
	case KindRRect:
		return RRectShape(RRect{Rect: s.RRect.Rect.Offset(dx, dy), Radius: s.RRect.Radius})
	case KindPath:
		if s.Path == nil {
			return s
		}
		return PathShape(s.Path.Offset(dx, dy))
	}
	return s
}

// arcMagic is the cubic Bezier circle approximation constant
// 4/3*(sqrt(2)-1).
const arcMagic = 0.5522848

// rrectPath converts a rounded rectangle into a closed path.
func rrectPath(rr RRect) *Path {
	r := rr.Rect
	rad := rr.Radius
	if rad <= 0 {
		return RectPath(r)
	}
	k := rad * arcMagic
	return NewPath([]PathElement{
		MoveTo{Point{r.MinX + rad, r.MinY}},
		LineTo{Point{r.MaxX - rad, r.MinY}},
		CubicTo{
			Control1: Point{r.MaxX - rad + k, r.MinY},
			Control2: Point{r.MaxX, r.MinY + rad - k},
			Point:    Point{r.MaxX, r.MinY + rad},
		},
		LineTo{Point{r.MaxX, r.MaxY - rad}},
		CubicTo{
			Control1: Point{r.MaxX, r.MaxY - rad + k},
			Control2: Point{r.MaxX - rad + k, r.MaxY},
			Point:    Point{r.MaxX - rad, r.MaxY},
		},
		LineTo{Point{r.MinX + rad, r.MaxY}},
		CubicTo{
			Control1: Point{r.MinX + rad - k, r.MaxY},
			Control2: Point{r.MinX, r.MaxY - rad + k},
			Point:    Point{r.MinX, r.MaxY - rad},
		},
		LineTo{Point{r.MinX, r.MinY + rad}},
		CubicTo{
			Control1: Point{r.MinX, r.MinY + rad - k},
			Control2: Point{r.MinX + rad - k, r.MinY},
			Point:    Point{r.MinX + rad, r.MinY},
		},
		Close{},
	})
}
