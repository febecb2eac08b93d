// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clipmask

import (
	"image"

	"github.com/gogpu/clipmask/geom"
	"github.com/gogpu/clipmask/raster"
	"github.com/gogpu/clipmask/render"
	"github.com/gogpu/gputypes"
)

// MaskDraw is one draw issued while building a clip mask. Geometry is
// in target space. Final source coverage per fragment is the geometry
// coverage times SrcCoverage times the optional effect's coverage.
type MaskDraw struct {
	// Shape is the geometry to rasterize. A zero-kind rect shape of
	// the full target bounds stands in for a bounds-rect draw.
	Shape geom.Shape

	// AA selects antialiased geometry coverage.
	AA bool

	// Inverse fills everything outside the shape instead; fragments
	// are generated over the whole target.
	Inverse bool

	// Scissor, when non-empty, restricts fragments to a target-space
	// rectangle.
	Scissor geom.IRect

	// SrcCoverage scales the source, typically 1, or 0 for passes
	// that only combine destination terms.
	SrcCoverage float32

	// Effect optionally multiplies source coverage per fragment,
	// evaluated in target space.
	Effect CoverageEffect

	// BlendSrc and BlendDst compose source coverage over the target.
	BlendSrc gputypes.BlendFactor
	BlendDst gputypes.BlendFactor

	// Stencil, when non-nil, gates fragments through the stencil
	// test and applies its update ops. Funcs must be basic.
	Stencil *StencilSettings

	// ColorWrites false suppresses coverage output, leaving only
	// stencil updates.
	ColorWrites bool
}

// ClipTarget is a surface that executes mask-building draws. The
// software implementation runs them on the CPU; GPU backends provide
// their own over a command encoder.
type ClipTarget interface {
	// Bounds is the target's extent in its own coordinates, origin at
	// (0, 0).
	Bounds() geom.IRect

	// Clear sets every coverage value.
	Clear(value uint8)

	// ClearStencil sets the masked stencil bits of every pixel inside
	// bounds.
	ClearStencil(bounds geom.IRect, value, mask uint16)

	// Draw executes one mask draw.
	Draw(d MaskDraw)
}

// ClipTargetProvider is implemented by render targets that can expose
// a ClipTarget over a region of themselves, used by the stencil mask
// builder.
type ClipTargetProvider interface {
	ClipTarget(bounds geom.IRect) ClipTarget
}

// evalBlendFactor resolves one blend factor against 8-bit source and
// destination coverage.
func evalBlendFactor(f gputypes.BlendFactor, s, d uint8) uint8 {
	switch f {
	case gputypes.BlendFactorZero:
		return 0
	case gputypes.BlendFactorOne:
		return 255
	case gputypes.BlendFactorSrc:
		return s
	case gputypes.BlendFactorOneMinusSrc:
		return 255 - s
	case gputypes.BlendFactorDst:
		return d
	case gputypes.BlendFactorOneMinusDst:
		return 255 - d
	}
	return 0
}

// ApplyBlend composes source coverage s over destination d with the
// given factors, mirroring single-channel fixed-function blending.
func ApplyBlend(srcFactor, dstFactor gputypes.BlendFactor, s, d uint8) uint8 {
	sf := evalBlendFactor(srcFactor, s, d)
	df := evalBlendFactor(dstFactor, s, d)
	return sat8(uint16(mul8(s, sf)) + uint16(mul8(d, df)))
}

// evalStencilFunc applies a basic stencil comparison, reference value
// on the left per GL convention.
func evalStencilFunc(f StencilFunc, ref, val uint16) bool {
	switch f {
	case FuncAlways:
		return true
	case FuncNever:
		return false
	case FuncGreater:
		return ref > val
	case FuncGEqual:
		return ref >= val
	case FuncLess:
		return ref < val
	case FuncLEqual:
		return ref <= val
	case FuncEqual:
		return ref == val
	case FuncNotEqual:
		return ref != val
	}
	return false
}

// applyStencilOp computes the post-test stencil value before write
// masking. maxVal is the largest value the buffer can hold, bounding
// the clamping ops.
func applyStencilOp(op StencilOp, val, ref, maxVal uint16) uint16 {
	switch op {
	case OpKeep:
		return val
	case OpZero:
		return 0
	case OpReplace:
		return ref
	case OpInvert:
		return ^val
	case OpIncWrap:
		return val + 1
	case OpDecWrap:
		return val - 1
	case OpIncClamp:
		if val >= maxVal {
			return maxVal
		}
		return val + 1
	case OpDecClamp:
		if val == 0 {
			return val
		}
		return val - 1
	}
	return val
}

// SoftwareClipTarget runs mask draws on the CPU over an 8-bit coverage
// image and an optional stencil plane. It backs the software clip mask
// path and stands in for the GPU during stencil clip simulation.
type SoftwareClipTarget struct {
	mask    *render.AlphaTexture
	stencil *render.MemoryStencil
	width   int
	height  int
	scratch *image.Alpha
}

// NewSoftwareClipTarget creates a CPU target over the given planes.
// Either plane may be nil when only the other is drawn to.
func NewSoftwareClipTarget(mask *render.AlphaTexture, stencil *render.MemoryStencil) *SoftwareClipTarget {
	t := &SoftwareClipTarget{mask: mask, stencil: stencil}
	if mask != nil {
		t.width = mask.Width()
		t.height = mask.Height()
	} else if stencil != nil {
		t.width = stencil.Width()
		t.height = stencil.Height()
	}
	return t
}

func (t *SoftwareClipTarget) Bounds() geom.IRect {
	return geom.IRect{MaxX: t.width, MaxY: t.height}
}

func (t *SoftwareClipTarget) Clear(value uint8) {
	if t.mask == nil {
		return
	}
	t.mask.Fill(value)
}

func (t *SoftwareClipTarget) ClearStencil(bounds geom.IRect, value, mask uint16) {
	if t.stencil == nil {
		return
	}
	r := bounds.Intersect(t.Bounds())
	for y := r.MinY; y < r.MaxY; y++ {
		for x := r.MinX; x < r.MaxX; x++ {
			v := t.stencil.Get(x, y)
			t.stencil.Set(x, y, v&^mask|value&mask)
		}
	}
}

// Draw rasterizes the geometry and walks covered fragments through the
// stencil test and blend stage.
func (t *SoftwareClipTarget) Draw(d MaskDraw) {
	cov := t.rasterize(d.Shape, d.AA)
	if d.Inverse {
		for i, v := range cov.Pix {
			cov.Pix[i] = 255 - v
		}
	}
	var img *image.Alpha
	if t.mask != nil {
		img = t.mask.Image()
	}
	r := t.Bounds()
	if !d.Scissor.IsEmpty() {
		r = r.Intersect(d.Scissor)
	}
	for y := r.MinY; y < r.MaxY; y++ {
		for x := r.MinX; x < r.MaxX; x++ {
			gc := cov.Pix[y*cov.Stride+x]
			if gc == 0 && !d.Inverse {
				continue // no fragment generated
			}
			if d.Stencil != nil && t.stencil != nil {
				if !t.stencilPass(x, y, *d.Stencil) {
					continue
				}
			}
			if !d.ColorWrites || img == nil {
				continue
			}
			s := mul8(gc, coverageByte(d.SrcCoverage))
			if d.Effect != nil {
				s = mul8(s, coverageByte(d.Effect.Coverage(float32(x), float32(y))))
			}
			i := y*img.Stride + x
			img.Pix[i] = ApplyBlend(d.BlendSrc, d.BlendDst, s, img.Pix[i])
		}
	}
}

// stencilPass runs the test and update for one fragment, reporting
// whether it survived.
func (t *SoftwareClipTarget) stencilPass(x, y int, s StencilSettings) bool {
	vm := t.stencil.ValueMask()
	val := t.stencil.Get(x, y)
	pass := evalStencilFunc(s.Func, s.FuncRef&s.FuncMask&vm, val&s.FuncMask&vm)
	op := s.FailOp
	if pass {
		op = s.PassOp
	}
	next := applyStencilOp(op, val, s.FuncRef, vm)
	t.stencil.Set(x, y, val&^s.WriteMask|next&s.WriteMask)
	return pass
}

// rasterize fills the scratch plane with geometry coverage.
func (t *SoftwareClipTarget) rasterize(shape geom.Shape, aa bool) *image.Alpha {
	if t.scratch == nil {
		t.scratch = image.NewAlpha(image.Rect(0, 0, t.width, t.height))
	}
	raster.RasterizeInto(t.scratch, shape, t.Bounds(), aa)
	return t.scratch
}

// Mask returns the coverage plane, nil for stencil-only targets.
func (t *SoftwareClipTarget) Mask() *render.AlphaTexture { return t.mask }

// Stencil returns the stencil plane, nil when absent.
func (t *SoftwareClipTarget) Stencil() *render.MemoryStencil { return t.stencil }

func coverageByte(c float32) uint8 {
	if c <= 0 {
		return 0
	}
	if c >= 1 {
		return 255
	}
	return uint8(c*255 + 0.5)
}

var _ ClipTarget = (*SoftwareClipTarget)(nil)
