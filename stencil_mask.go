// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clipmask

import (
	"log/slog"

	"github.com/gogpu/clipmask/clipstack"
	"github.com/gogpu/clipmask/geom"
	"github.com/gogpu/clipmask/raster"
	"github.com/gogpu/clipmask/render"
)

// createStencilClipMask renders the reduced clip into the high bit of
// the target's stencil buffer. offset translates clip space to target
// space. A clip already recorded in the buffer is not re-rendered.
func (m *Manager) createStencilClipMask(target render.RenderTarget, genID int64, rc *clipstack.ReducedClip, offset geom.IPoint) error {
	sb := target.StencilBuffer()
	if sb == nil {
		return ErrStencilUnavailable
	}
	clipBit := ClipBit(sb.Bits())
	if clipBit == 0 || sb.Bits() < 2 {
		// The indirect passes count element coverage in the user bits.
		return ErrStencilUnavailable
	}

	rec := render.ClipRecord{GenID: genID, Bounds: rc.Bounds, Offset: offset}
	if !render.MustRenderClip(sb, rec) {
		return nil
	}

	tgt, err := m.stencilTarget(target, sb)
	if err != nil {
		return err
	}

	// The clear and every build draw stay inside the clip bounds so
	// the application's stencil values elsewhere survive the rebuild.
	bounds := rc.Bounds.Offset(-offset.X, -offset.Y)
	initial := uint16(0)
	if rc.InitialState == clipstack.InitialAllIn {
		initial = clipBit
	}
	tgt.ClearStencil(bounds, initial, clipBit|(clipBit-1))

	boundsRect := geom.RectShape(bounds.Rect())
	for _, el := range rc.Elements {
		shape := el.Shape.Offset(float32(-offset.X), float32(-offset.Y))

		r := m.chain.Get(shape, raster.DrawTypeStencilOnly, false)
		canBeDirect := r != nil && r.StencilSupport(shape) == raster.NoRestrictionSupport
		direct, passes := GetClipPasses(el.Op, canBeDirect, clipBit, el.InverseFilled)
		if len(passes) == 0 {
			return ErrUnsupportedGeometry
		}

		if direct {
			tgt.Draw(MaskDraw{Shape: shape, Stencil: &passes[0], Scissor: bounds})
			continue
		}
		// Count the element into the user bits, then resolve it into
		// the clip bit with bounds-rect passes. Every sequence leaves
		// the user bits zeroed again.
		pre := DrawShapeToStencil
		tgt.Draw(MaskDraw{Shape: shape, Stencil: &pre, Scissor: bounds})
		for i := range passes {
			tgt.Draw(MaskDraw{Shape: boundsRect, Stencil: &passes[i], Scissor: bounds})
		}
	}

	sb.SetLastClip(rec)
	Logger().Debug("built stencil clip mask",
		slog.Int64("genID", genID),
		slog.Int("elements", len(rc.Elements)))
	return nil
}

// stencilTarget resolves the draw surface for the target's stencil
// plane: targets may provide their own, and CPU stencil buffers are
// wrapped directly.
func (m *Manager) stencilTarget(target render.RenderTarget, sb render.StencilBuffer) (ClipTarget, error) {
	if tp, ok := target.(ClipTargetProvider); ok {
		return tp.ClipTarget(geom.IRect{MaxX: target.Width(), MaxY: target.Height()}), nil
	}
	if ms, ok := sb.(*render.MemoryStencil); ok {
		return NewSoftwareClipTarget(nil, ms), nil
	}
	return nil, ErrStencilUnavailable
}
