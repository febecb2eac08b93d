// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/gogpu/clipmask/geom"
)

// Rasterize renders the shape's coverage into an 8-bit alpha image of
// the given clip-space bounds. Pixels inside the shape approach 255,
// outside 0. With aa false the coverage is thresholded to 0 or 255.
//
// An empty shape or empty bounds yields a fully transparent image.
func Rasterize(shape geom.Shape, bounds geom.IRect, aa bool) *image.Alpha {
	dst := image.NewAlpha(image.Rect(0, 0, bounds.Width(), bounds.Height()))
	RasterizeInto(dst, shape, bounds, aa)
	return dst
}

// RasterizeInto renders the shape's coverage into dst, which must be at
// least bounds.Width() x bounds.Height(). Previous content of dst is
// replaced.
func RasterizeInto(dst *image.Alpha, shape geom.Shape, bounds geom.IRect, aa bool) {
	clear(dst.Pix)
	if bounds.IsEmpty() || shape.IsEmpty() {
		return
	}

	r := vector.NewRasterizer(bounds.Width(), bounds.Height())
	r.DrawOp = draw.Src

	// Translate clip space to mask space.
	ox := float32(bounds.MinX)
	oy := float32(bounds.MinY)

	open := false
	for _, el := range shape.ToPath().Elements() {
		switch e := el.(type) {
		case geom.MoveTo:
			if open {
				r.ClosePath()
			}
			r.MoveTo(e.Point.X-ox, e.Point.Y-oy)
			open = true
		case geom.LineTo:
			r.LineTo(e.Point.X-ox, e.Point.Y-oy)
		case geom.QuadTo:
			r.QuadTo(e.Control.X-ox, e.Control.Y-oy, e.Point.X-ox, e.Point.Y-oy)
		case geom.CubicTo:
			r.CubeTo(e.Control1.X-ox, e.Control1.Y-oy,
				e.Control2.X-ox, e.Control2.Y-oy,
				e.Point.X-ox, e.Point.Y-oy)
		case geom.Close:
			if open {
				r.ClosePath()
				open = false
			}
		}
	}
	if open {
		r.ClosePath()
	}

	r.Draw(dst, image.Rect(0, 0, bounds.Width(), bounds.Height()), image.Opaque, image.Point{})

	if !aa {
		threshold(dst)
	}
}

// threshold snaps fractional coverage to fully in or fully out.
func threshold(img *image.Alpha) {
	for i, v := range img.Pix {
		if v >= 128 {
			img.Pix[i] = 255
		} else {
			img.Pix[i] = 0
		}
	}
}
