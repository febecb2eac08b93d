// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import "testing"

func trianglePath() *Path {
	return NewPath([]PathElement{
		MoveTo{Point{0, 0}},
		LineTo{Point{10, 0}},
		LineTo{Point{5, 10}},
		Close{},
	})
}

func TestPathBounds(t *testing.T) {
	p := trianglePath()
	want := Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	if got := p.Bounds(); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

func TestPathIsEmpty(t *testing.T) {
	if trianglePath().IsEmpty() {
		t.Error("triangle reported empty")
	}
	moveOnly := NewPath([]PathElement{MoveTo{Point{1, 1}}, Close{}})
	if !moveOnly.IsEmpty() {
		t.Error("move-only path reported non-empty")
	}
}

func TestPathIsConvex(t *testing.T) {
	tests := []struct {
		name string
		path *Path
		want bool
	}{
		{"triangle", trianglePath(), true},
		{"rect", RectPath(NewRect(0, 0, 10, 10)), true},
		{
			// The explicit closing segment revisits the start; that must
			// not read as a self-intersection.
			"triangle closed back to start",
			NewPath([]PathElement{
				MoveTo{Point{0, 0}},
				LineTo{Point{10, 0}},
				LineTo{Point{5, 10}},
				LineTo{Point{0, 0}},
				Close{},
			}),
			true,
		},
		{
			"concave L",
			NewPath([]PathElement{
				MoveTo{Point{0, 0}},
				LineTo{Point{10, 0}},
				LineTo{Point{10, 10}},
				LineTo{Point{5, 10}},
				LineTo{Point{5, 5}},
				LineTo{Point{0, 5}},
				Close{},
			}),
			false,
		},
		{
			"two subpaths",
			NewPath([]PathElement{
				MoveTo{Point{0, 0}},
				LineTo{Point{10, 0}},
				LineTo{Point{5, 10}},
				Close{},
				MoveTo{Point{20, 0}},
				LineTo{Point{30, 0}},
				LineTo{Point{25, 10}},
				Close{},
			}),
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.path.IsConvex(); got != tt.want {
				t.Errorf("IsConvex() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPathFlattenClosesSubpath(t *testing.T) {
	pts := trianglePath().Flatten()
	if len(pts) < 4 {
		t.Fatalf("Flatten() returned %d points, want at least 4", len(pts))
	}
	if pts[0] != pts[len(pts)-1] {
		t.Errorf("flattened ring not closed: first %v, last %v", pts[0], pts[len(pts)-1])
	}
}

func TestPathOffset(t *testing.T) {
	p := trianglePath().Offset(5, -2)
	want := Rect{MinX: 5, MinY: -2, MaxX: 15, MaxY: 8}
	if got := p.Bounds(); got != want {
		t.Errorf("Bounds() after offset = %v, want %v", got, want)
	}
}

func TestShapeToPathRRectConvex(t *testing.T) {
	s := RRectShape(NewRRect(NewRect(0, 0, 40, 40), 8))
	if !s.ToPath().IsConvex() {
		t.Error("rounded rect path reported non-convex")
	}
}
