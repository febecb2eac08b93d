// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clipmask

import (
	"log/slog"

	"github.com/gogpu/clipmask/clipstack"
	"github.com/gogpu/clipmask/geom"
	"github.com/gogpu/clipmask/raster"
	"github.com/gogpu/clipmask/render"
	"github.com/gogpu/gputypes"
)

// stencilInElement marks every fragment of an element in the mask
// surface's stencil plane while its coverage is blended into the mask.
var stencilInElement = StencilSettings{
	PassOp:    OpReplace,
	FailOp:    OpReplace,
	Func:      FuncAlways,
	FuncMask:  0xffff,
	FuncRef:   0xffff,
	WriteMask: 0xffff,
}

// drawOutsideElement follows stencilInElement: a bounds rect with zero
// source coverage lands on the pixels the element never touched, and
// both ops reset the stencil plane for the next element.
var drawOutsideElement = StencilSettings{
	PassOp:    OpZero,
	FailOp:    OpZero,
	Func:      FuncEqual,
	FuncMask:  0xffff,
	FuncRef:   0x0000,
	WriteMask: 0xffff,
}

// invertEffect flips another effect's coverage, realizing inverse
// fills during mask merges.
type invertEffect struct {
	inner CoverageEffect
}

func (e invertEffect) Coverage(x, y float32) float32 {
	return 1 - e.inner.Coverage(x, y)
}

// createAlphaClipMask builds (or fetches from the cache) the 8-bit
// coverage mask realizing the reduced clip. The returned texture is
// owned by the cache; callers must not release it.
func (m *Manager) createAlphaClipMask(genID int64, rc *clipstack.ReducedClip) (render.Texture, geom.IRect, error) {
	bounds := rc.Bounds
	if tex, b, ok := m.cache.lookup(genID, bounds); ok {
		return tex, b, nil
	}

	initial := uint8(0x00)
	if rc.InitialState == clipstack.InitialAllIn {
		initial = 0xff
	}

	if useSWOnlyPath(m.chain, rc) {
		return m.createSoftwareClipMask(genID, rc, initial)
	}

	w := bounds.Width()
	h := bounds.Height()
	acc, local, err := m.acquireMaskSurface(w, h)
	if err != nil {
		return nil, geom.IRect{}, err
	}
	tgt := NewSoftwareClipTarget(local, render.NewMemoryStencil(w, h, 8))
	tgt.Clear(initial)

	for _, el := range rc.Elements {
		me := el
		me.Shape = el.Shape.Offset(float32(-bounds.MinX), float32(-bounds.MinY))
		src, dst := BlendFactors(me.Op)

		if me.InverseFilled || me.Op == clipstack.OpIntersect || me.Op == clipstack.OpReverseDifference {
			// These must also touch pixels the shape does not cover.
			if m.canStencilInAccumulator(me) {
				m.drawElementTwoPass(tgt, me, src, dst)
				continue
			}
			if err := m.mergeElementViaTemp(tgt, me); err != nil {
				m.releaseMaskSurface(acc, local)
				return nil, geom.IRect{}, err
			}
			continue
		}
		// Reduction only keeps a Replace as the oldest element, so a
		// plain draw after the initial clear realizes it exactly.
		m.drawElement(tgt, me, src, dst)
	}

	if acc != render.Texture(local) {
		img := local.Image()
		region := geom.IRect{MaxX: w, MaxY: h}
		if err := m.provider.Upload(acc, region, img.Pix, img.Stride); err != nil {
			m.releaseMaskSurface(acc, local)
			return nil, geom.IRect{}, ErrAllocationFailed
		}
	}

	m.cache.store(genID, bounds, acc)
	Logger().Debug("built alpha clip mask",
		slog.Int64("genID", genID),
		slog.Int("width", w), slog.Int("height", h))
	return acc, bounds, nil
}

// createSoftwareClipMask rasterizes the whole clip on the CPU and
// uploads the result once.
func (m *Manager) createSoftwareClipMask(genID int64, rc *clipstack.ReducedClip, initial uint8) (render.Texture, geom.IRect, error) {
	helper := newSWMaskHelper(rc.Bounds, initial)
	for _, el := range rc.Elements {
		helper.drawElement(el)
	}
	tex, err := helper.toTexture(m.provider)
	if err != nil {
		return nil, geom.IRect{}, err
	}
	m.cache.store(genID, rc.Bounds, tex)
	Logger().Debug("built software clip mask", slog.Int64("genID", genID))
	return tex, rc.Bounds, nil
}

// drawElement composes one non-inverted additive element into the
// target: a direct blended draw when a hardware renderer covers the
// shape, the stencil-assisted pair of passes otherwise.
func (m *Manager) drawElement(tgt ClipTarget, el clipstack.Element, src, dst gputypes.BlendFactor) {
	dt := raster.DrawTypeColor
	if el.AntiAlias {
		dt = raster.DrawTypeColorAntiAlias
	}
	if m.chain.Get(el.Shape, dt, false) != nil {
		tgt.Draw(MaskDraw{
			Shape:       el.Shape,
			AA:          el.AntiAlias,
			SrcCoverage: 1,
			BlendSrc:    src,
			BlendDst:    dst,
			ColorWrites: true,
		})
		return
	}
	m.drawElementTwoPass(tgt, el, src, dst)
}

// drawElementTwoPass stencils the element's interior while blending,
// then sweeps the full bounds where the stencil was not marked. The
// sweep both finishes the boolean operation on untouched pixels and
// resets the stencil plane. Inverse fills swap which pass carries the
// source coverage.
func (m *Manager) drawElementTwoPass(tgt ClipTarget, el clipstack.Element, src, dst gputypes.BlendFactor) {
	inCov, outCov := float32(1), float32(0)
	aa := el.AntiAlias
	if el.InverseFilled {
		inCov, outCov = 0, 1
		aa = false // edge coverage cannot invert through the stencil
	}
	tgt.Draw(MaskDraw{
		Shape:       el.Shape,
		AA:          aa,
		SrcCoverage: inCov,
		BlendSrc:    src,
		BlendDst:    dst,
		Stencil:     &stencilInElement,
		ColorWrites: true,
	})
	tgt.Draw(MaskDraw{
		Shape:       geom.RectShape(tgt.Bounds().Rect()),
		SrcCoverage: outCov,
		BlendSrc:    src,
		BlendDst:    dst,
		Stencil:     &drawOutsideElement,
		ColorWrites: true,
	})
}

// canStencilInAccumulator reports whether a renderer can mark the
// element in the accumulator's stencil plane while blending color.
func (m *Manager) canStencilInAccumulator(el clipstack.Element) bool {
	dt := raster.DrawTypeStencilAndColor
	if el.AntiAlias {
		dt = raster.DrawTypeStencilAndColorAntiAlias
	}
	r := m.chain.Get(el.Shape, dt, false)
	return r != nil && r.StencilSupport(el.Shape) != raster.NoSupport
}

// mergeElementViaTemp renders the element into a scratch mask, then
// folds the scratch into the accumulator with the element's operation
// over the full bounds. Pixels outside the element read zero scratch
// coverage, so operations that clear untouched pixels come out right.
func (m *Manager) mergeElementViaTemp(acc ClipTarget, el clipstack.Element) error {
	b := acc.Bounds()
	w := b.Width()
	h := b.Height()
	tempTex, tempLocal, err := m.acquireMaskSurface(w, h)
	if err != nil {
		return err
	}
	defer m.releaseMaskSurface(tempTex, tempLocal)

	temp := NewSoftwareClipTarget(tempLocal, render.NewMemoryStencil(w, h, 8))
	temp.Clear(0x00)
	plain := el
	plain.InverseFilled = false
	m.drawElement(temp, plain, gputypes.BlendFactorOne, gputypes.BlendFactorZero)

	var effect CoverageEffect = NewTextureEffect(tempLocal, b)
	if el.InverseFilled {
		effect = invertEffect{inner: effect}
	}
	src, dst := BlendFactors(el.Op)
	acc.Draw(MaskDraw{
		Shape:       geom.RectShape(b.Rect()),
		SrcCoverage: 1,
		Effect:      effect,
		BlendSrc:    src,
		BlendDst:    dst,
		ColorWrites: true,
	})
	return nil
}

// acquireMaskSurface fetches a provider texture and the CPU image the
// draws land in. When the provider texture is CPU-backed they are the
// same storage and no upload is needed afterwards.
func (m *Manager) acquireMaskSurface(w, h int) (render.Texture, *render.AlphaTexture, error) {
	desc := render.TextureDescriptor{
		Label:        "clip-mask",
		Width:        w,
		Height:       h,
		Format:       gputypes.TextureFormatR8Unorm,
		RenderTarget: true,
	}
	tex, err := m.provider.AcquireScratch(desc)
	if err != nil {
		Logger().Warn("clip mask allocation failed",
			slog.Int("width", w), slog.Int("height", h))
		return nil, nil, ErrAllocationFailed
	}
	if at, ok := tex.(*render.AlphaTexture); ok {
		return tex, at, nil
	}
	return tex, render.NewAlphaTexture(w, h), nil
}

func (m *Manager) releaseMaskSurface(tex render.Texture, _ *render.AlphaTexture) {
	m.provider.Release(tex)
}
