// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

// PathElement is a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo moves to a point without drawing.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path is an immutable sequence of path elements describing a filled
// region. Fill inversion is not a property of the path itself; clip
// elements carry their own inverse-fill flag.
type Path struct {
	elements []PathElement
}

// NewPath creates a path from the given elements. The slice is retained;
// callers must not mutate it afterwards.
func NewPath(elements []PathElement) *Path {
	return &Path{elements: elements}
}

// RectPath returns a path tracing the given rectangle.
func RectPath(r Rect) *Path {
	return NewPath([]PathElement{
		MoveTo{Point{r.MinX, r.MinY}},
		LineTo{Point{r.MaxX, r.MinY}},
		LineTo{Point{r.MaxX, r.MaxY}},
		LineTo{Point{r.MinX, r.MaxY}},
		Close{},
	})
}

// Elements returns the path's elements. The returned slice must not be
// mutated.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty returns true if the path has no drawing elements.
func (p *Path) IsEmpty() bool {
	for _, el := range p.elements {
		switch el.(type) {
		case LineTo, QuadTo, CubicTo:
			return false
		}
	}
	return true
}

// Bounds returns the bounding rectangle of the path. Curve control
// points are included, so the result is conservative for curves.
func (p *Path) Bounds() Rect {
	first := true
	var b Rect
	grow := func(pt Point) {
		if first {
			b = Rect{MinX: pt.X, MinY: pt.Y, MaxX: pt.X, MaxY: pt.Y}
			first = false
			return
		}
		if pt.X < b.MinX {
			b.MinX = pt.X
		}
		if pt.X > b.MaxX {
			b.MaxX = pt.X
		}
		if pt.Y < b.MinY {
			b.MinY = pt.Y
		}
		if pt.Y > b.MaxY {
			b.MaxY = pt.Y
		}
	}
	for _, el := range p.elements {
		switch e := el.(type) {
		case MoveTo:
			grow(e.Point)
		case LineTo:
			grow(e.Point)
		case QuadTo:
			grow(e.Control)
			grow(e.Point)
		case CubicTo:
			grow(e.Control1)
			grow(e.Control2)
			grow(e.Point)
		}
	}
	if first {
		return Rect{}
	}
	return b
}

// Offset returns a copy of the path translated by (dx, dy).
func (p *Path) Offset(dx, dy float32) *Path {
	out := make([]PathElement, len(p.elements))
	d := Point{X: dx, Y: dy}
	for i, el := range p.elements {
		switch e := el.(type) {
		case MoveTo:
			out[i] = MoveTo{e.Point.Add(d)}
		case LineTo:
			out[i] = LineTo{e.Point.Add(d)}
		case QuadTo:
			out[i] = QuadTo{Control: e.Control.Add(d), Point: e.Point.Add(d)}
		case CubicTo:
			out[i] = CubicTo{Control1: e.Control1.Add(d), Control2: e.Control2.Add(d), Point: e.Point.Add(d)}
		case Close:
			out[i] = e
		}
	}
	return &Path{elements: out}
}

// quadSteps and cubicSteps are the fixed flattening subdivisions for
// Bezier curves.
const (
	quadSteps  = 10
	cubicSteps = 16
)

// Flatten converts the path into a sequence of polygon points, one
// subpath after another. Subpaths are closed implicitly: each Close (or
// trailing open subpath) connects back to its MoveTo point.
func (p *Path) Flatten() []Point {
	var points []Point
	var current, start Point
	started := false

	closeSub := func() {
		if started && len(points) > 0 {
			points = append(points, start)
			started = false
		}
	}

	for _, el := range p.elements {
		switch e := el.(type) {
		case MoveTo:
			closeSub()
			current = e.Point
			start = e.Point
			points = append(points, current)
			started = true
		case LineTo:
			current = e.Point
			points = append(points, current)
		case QuadTo:
			prev := current
			for i := 1; i <= quadSteps; i++ {
				t := float32(i) / quadSteps
				points = append(points, evalQuad(prev, e.Control, e.Point, t))
			}
			current = e.Point
		case CubicTo:
			prev := current
			for i := 1; i <= cubicSteps; i++ {
				t := float32(i) / cubicSteps
				points = append(points, evalCubic(prev, e.Control1, e.Control2, e.Point, t))
			}
			current = e.Point
		case Close:
			closeSub()
			current = start
		}
	}
	closeSub()
	return points
}

// IsConvex reports whether the flattened path forms a single convex
// polygon. Multi-subpath and self-intersecting paths report false.
func (p *Path) IsConvex() bool {
	pts := p.Flatten()
	// Collapse consecutive duplicates, including across the ring seam:
	// a final segment landing exactly on the MoveTo point and the
	// implicit close both revisit the start without adding a vertex.
	ring := make([]Point, 0, len(pts))
	for _, pt := range pts {
		if len(ring) == 0 || ring[len(ring)-1] != pt {
			ring = append(ring, pt)
		}
	}
	for len(ring) > 1 && ring[len(ring)-1] == ring[0] {
		ring = ring[:len(ring)-1]
	}
	if len(ring) < 3 {
		return false
	}
	// A second MoveTo produces a duplicate ring start; treat as non-convex.
	seen := make(map[Point]struct{}, len(ring))
	sign := float32(0)
	n := len(ring)
	for i := 0; i < n; i++ {
		if _, dup := seen[ring[i]]; dup {
			return false
		}
		seen[ring[i]] = struct{}{}
		a := ring[i]
		b := ring[(i+1)%n]
		c := ring[(i+2)%n]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		if cross == 0 {
			continue
		}
		if sign == 0 {
			sign = cross
		} else if (sign > 0) != (cross > 0) {
			return false
		}
	}
	return true
}

// evalQuad evaluates a quadratic Bezier curve at parameter t.
func evalQuad(p0, p1, p2 Point, t float32) Point {
	s := 1 - t
	return Point{
		X: s*s*p0.X + 2*s*t*p1.X + t*t*p2.X,
		Y: s*s*p0.Y + 2*s*t*p1.Y + t*t*p2.Y,
	}
}

// evalCubic evaluates a cubic Bezier curve at parameter t.
func evalCubic(p0, p1, p2, p3 Point, t float32) Point {
	s := 1 - t
	s2 := s * s
	s3 := s2 * s
	t2 := t * t
	t3 := t2 * t
	return Point{
		X: s3*p0.X + 3*s2*t*p1.X + 3*s*t2*p2.X + t3*p3.X,
		Y: s3*p0.Y + 3*s2*t*p1.Y + 3*s*t2*p2.Y + t3*p3.Y,
	}
}
