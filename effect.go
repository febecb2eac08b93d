// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clipmask

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/clipmask/clipstack"
	"github.com/gogpu/clipmask/geom"
	"github.com/gogpu/clipmask/render"
)

// EdgeType selects how an analytic effect resolves its boundary.
type EdgeType uint8

const (
	// EdgeFillBW fills the interior, hard edge.
	EdgeFillBW EdgeType = iota
	// EdgeFillAA fills the interior with a one-pixel antialiased ramp.
	EdgeFillAA
	// EdgeInverseFillBW fills the exterior, hard edge.
	EdgeInverseFillBW
	// EdgeInverseFillAA fills the exterior with an antialiased ramp.
	EdgeInverseFillAA
)

func edgeTypeFor(aa, inverse bool) EdgeType {
	switch {
	case inverse && aa:
		return EdgeInverseFillAA
	case inverse:
		return EdgeInverseFillBW
	case aa:
		return EdgeFillAA
	default:
		return EdgeFillBW
	}
}

func (e EdgeType) inverted() bool {
	return e == EdgeInverseFillBW || e == EdgeInverseFillAA
}

func (e EdgeType) antialiased() bool {
	return e == EdgeFillAA || e == EdgeInverseFillAA
}

// CoverageEffect computes per-fragment clip coverage in clip-space
// coordinates. A draw's final coverage is the product over its
// installed effects.
type CoverageEffect interface {
	// Coverage returns the clip coverage in [0, 1] at the pixel
	// center (x+0.5, y+0.5) for integer x, y.
	Coverage(x, y float32) float32
}

// resolveEdge converts a signed distance (negative inside) to coverage
// for the edge type. AA edges use a one-pixel linear ramp centered on
// the boundary.
func resolveEdge(d float32, edge EdgeType) float32 {
	var c float32
	if edge.antialiased() {
		c = clamp01(0.5 - d)
	} else if d < 0 {
		c = 1
	}
	if edge.inverted() {
		return 1 - c
	}
	return c
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RectEffect clips to an axis-aligned rectangle.
type RectEffect struct {
	rect geom.Rect
	edge EdgeType
}

// NewRectEffect creates a rectangle coverage effect.
func NewRectEffect(r geom.Rect, edge EdgeType) *RectEffect {
	return &RectEffect{rect: r, edge: edge}
}

func (e *RectEffect) Coverage(x, y float32) float32 {
	px := x + 0.5
	py := y + 0.5
	// Signed distance to the rect boundary along the nearer axis.
	dx := math32.Max(e.rect.MinX-px, px-e.rect.MaxX)
	dy := math32.Max(e.rect.MinY-py, py-e.rect.MaxY)
	return resolveEdge(math32.Max(dx, dy), e.edge)
}

// RRectEffect clips to a rounded rectangle using its signed distance
// field.
type RRectEffect struct {
	rr   geom.RRect
	edge EdgeType
}

// NewRRectEffect creates a rounded-rectangle coverage effect.
func NewRRectEffect(rr geom.RRect, edge EdgeType) *RRectEffect {
	return &RRectEffect{rr: rr, edge: edge}
}

func (e *RRectEffect) Coverage(x, y float32) float32 {
	d := geom.SDFRRect(x+0.5, y+0.5, e.rr)
	return resolveEdge(d, e.edge)
}

// ConvexPolyEffect clips to a convex polygon as the intersection of
// its edge half-planes.
type ConvexPolyEffect struct {
	// For edge i, coverage requires nx*px + ny*py + c >= 0.
	nx, ny, c []float32
	edge      EdgeType
}

// NewConvexPolyEffect builds a half-plane effect from a convex path.
// The path is flattened; curved segments increase the edge count.
// Returns ErrUnsupportedGeometry for non-convex or degenerate paths.
func NewConvexPolyEffect(p *geom.Path, edge EdgeType) (*ConvexPolyEffect, error) {
	if p == nil || !p.IsConvex() {
		return nil, ErrUnsupportedGeometry
	}
	pts := p.Flatten()
	if len(pts) < 3 {
		return nil, ErrUnsupportedGeometry
	}
	// Orient so that edge normals point inward.
	var area float32
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	if area == 0 {
		return nil, ErrUnsupportedGeometry
	}
	sign := float32(1)
	if area < 0 {
		sign = -1
	}
	e := &ConvexPolyEffect{edge: edge}
	for i := range pts {
		j := (i + 1) % len(pts)
		ex := pts[j].X - pts[i].X
		ey := pts[j].Y - pts[i].Y
		length := math32.Hypot(ex, ey)
		if length == 0 {
			continue
		}
		// Inward normal for CCW winding is (-ey, ex).
		nx := sign * -ey / length
		ny := sign * ex / length
		e.nx = append(e.nx, nx)
		e.ny = append(e.ny, ny)
		e.c = append(e.c, -(nx*pts[i].X + ny*pts[i].Y))
	}
	if len(e.nx) < 3 {
		return nil, ErrUnsupportedGeometry
	}
	return e, nil
}

func (e *ConvexPolyEffect) Coverage(x, y float32) float32 {
	px := x + 0.5
	py := y + 0.5
	// The interior distance is the minimum half-plane distance, so the
	// signed distance to the boundary is its negation.
	d := math32.Inf(1)
	for i := range e.nx {
		d = math32.Min(d, e.nx[i]*px+e.ny[i]*py+e.c[i])
	}
	return resolveEdge(-d, e.edge)
}

// NewEffectForElement builds the analytic effect realizing one clip
// element, or ErrUnsupportedGeometry when the shape has no analytic
// form.
func NewEffectForElement(el clipstack.Element) (CoverageEffect, error) {
	edge := edgeTypeFor(el.AntiAlias, el.InverseFilled)
	switch el.Shape.Kind {
	case geom.KindRect:
		return NewRectEffect(el.Shape.Rect, edge), nil
	case geom.KindRRect:
		return NewRRectEffect(el.Shape.RRect, edge), nil
	case geom.KindPath:
		return NewConvexPolyEffect(el.Shape.Path, edge)
	}
	return nil, ErrUnsupportedGeometry
}

// TextureEffect samples an 8-bit mask texture with decal addressing:
// fragments outside the mask rectangle read zero coverage. deviceRect
// places the mask on the target.
type TextureEffect struct {
	tex        render.Texture
	deviceRect geom.IRect
}

// NewTextureEffect wraps a mask texture covering deviceRect.
func NewTextureEffect(tex render.Texture, deviceRect geom.IRect) *TextureEffect {
	return &TextureEffect{tex: tex, deviceRect: deviceRect}
}

// Texture returns the sampled mask texture.
func (e *TextureEffect) Texture() render.Texture { return e.tex }

// DeviceRect returns the target-space placement of the mask.
func (e *TextureEffect) DeviceRect() geom.IRect { return e.deviceRect }

func (e *TextureEffect) Coverage(x, y float32) float32 {
	ix := int(x) - e.deviceRect.MinX
	iy := int(y) - e.deviceRect.MinY
	if ix < 0 || iy < 0 || ix >= e.deviceRect.Width() || iy >= e.deviceRect.Height() {
		return 0
	}
	at, ok := e.tex.(*render.AlphaTexture)
	if !ok {
		// GPU-resident masks are sampled on the device, not here.
		return 1
	}
	img := at.Image()
	return float32(img.Pix[iy*img.Stride+ix]) / 255
}
