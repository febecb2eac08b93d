// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clipmask

import (
	"image"

	"github.com/gogpu/clipmask/clipstack"
	"github.com/gogpu/clipmask/geom"
	"github.com/gogpu/clipmask/raster"
	"github.com/gogpu/clipmask/render"
)

// swMaskHelper accumulates clip coverage entirely on the CPU. It is
// the fallback for clips whose geometry no hardware renderer can draw
// with antialiased coverage.
type swMaskHelper struct {
	bounds  geom.IRect
	acc     *render.AlphaTexture
	scratch *image.Alpha
}

// newSWMaskHelper allocates the accumulator over bounds, cleared to
// the initial coverage.
func newSWMaskHelper(bounds geom.IRect, initial uint8) *swMaskHelper {
	h := &swMaskHelper{
		bounds: bounds,
		acc:    render.NewAlphaTexture(bounds.Width(), bounds.Height()),
	}
	h.acc.Fill(initial)
	return h
}

// drawElement folds one clip element into the accumulator. The element
// is in clip space; the helper translates into mask space itself.
//
// Coverage outside the element's geometry is zero, so applying the
// operation over the full mask bounds is exact for every operation,
// including the ones that must clear pixels the geometry never touches.
func (h *swMaskHelper) drawElement(el clipstack.Element) {
	w := h.bounds.Width()
	height := h.bounds.Height()
	if h.scratch == nil {
		h.scratch = image.NewAlpha(image.Rect(0, 0, w, height))
	}
	shape := el.Shape.Offset(float32(-h.bounds.MinX), float32(-h.bounds.MinY))
	raster.RasterizeInto(h.scratch, shape, geom.IRect{MaxX: w, MaxY: height}, el.AntiAlias)

	dst := h.acc.Image()
	for y := 0; y < height; y++ {
		src := h.scratch.Pix[y*h.scratch.Stride:]
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			s := src[x]
			if el.InverseFilled {
				s = 255 - s
			}
			row[x] = composeCoverage(el.Op, s, row[x])
		}
	}
}

// toTexture hands the built mask to the provider's texture, uploading
// when the provider's texture is not CPU-backed. The returned texture
// belongs to the caller.
func (h *swMaskHelper) toTexture(provider render.ResourceProvider) (render.Texture, error) {
	desc := render.TextureDescriptor{
		Label:  "clip-mask-sw",
		Width:  h.bounds.Width(),
		Height: h.bounds.Height(),
		Format: h.acc.Format(),
	}
	tex, err := provider.AcquireScratch(desc)
	if err != nil {
		return nil, ErrAllocationFailed
	}
	img := h.acc.Image()
	region := geom.IRect{MaxX: h.bounds.Width(), MaxY: h.bounds.Height()}
	if err := provider.Upload(tex, region, img.Pix, img.Stride); err != nil {
		provider.Release(tex)
		return nil, ErrAllocationFailed
	}
	return tex, nil
}

// useSWOnlyPath reports whether the reduced clip contains geometry no
// hardware renderer can draw, forcing the whole mask onto the CPU.
// Rect elements never force software: the bounds-rect draw is always
// available.
func useSWOnlyPath(chain *raster.Chain, rc *clipstack.ReducedClip) bool {
	for _, el := range rc.Elements {
		if el.Shape.Kind == geom.KindRect {
			continue
		}
		drawType := raster.DrawTypeColor
		if el.AntiAlias {
			drawType = raster.DrawTypeColorAntiAlias
		}
		if chain.Get(el.Shape, drawType, false) == nil {
			return true
		}
	}
	return false
}
