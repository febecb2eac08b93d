// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clipmask

import (
	"github.com/gogpu/clipmask/geom"
	"github.com/gogpu/clipmask/render"
	"github.com/gogpu/gputypes"
)

// ScissorState is the rectangle test applied before rasterization.
// A disabled scissor admits every fragment.
type ScissorState struct {
	Enabled bool
	Rect    geom.IRect
}

// Set enables the scissor with the given rectangle.
func (s *ScissorState) Set(r geom.IRect) {
	s.Enabled = true
	s.Rect = r
}

// Disable turns the scissor off.
func (s *ScissorState) Disable() {
	s.Enabled = false
	s.Rect = geom.IRect{}
}

// DrawState carries the mutable pipeline state for the draw being
// prepared. SetupClipping mutates it in place: installing coverage
// effects, a scissor, and stencil settings as the chosen strategy
// requires. The rendering context owns the DrawState; clip code holds
// it only for the duration of one setup call.
type DrawState struct {
	// Target is the render target of the draw.
	Target render.RenderTarget

	// ClipOrigin translates clip-space coordinates to target space:
	// a clip point p lands at p - ClipOrigin on the target.
	ClipOrigin geom.IPoint

	// Scissor restricts fragments to a target-space rectangle.
	Scissor ScissorState

	// CoverageEffects are per-fragment coverage processors multiplied
	// into the draw's coverage. Clip setup appends to this list.
	CoverageEffects []CoverageEffect

	// Stencil holds the stencil settings the draw will run with, nil
	// when stenciling is disabled.
	Stencil *StencilSettings

	// BlendSrc and BlendDst are the active blend factors.
	BlendSrc gputypes.BlendFactor
	BlendDst gputypes.BlendFactor

	// ColorWritesDisabled suppresses all color output, used for
	// stencil-only passes.
	ColorWritesDisabled bool
}

// NewDrawState returns a DrawState for target with default blending
// and no clip applied.
func NewDrawState(target render.RenderTarget) *DrawState {
	return &DrawState{
		Target:   target,
		BlendSrc: gputypes.BlendFactorOne,
		BlendDst: gputypes.BlendFactorZero,
	}
}

// AddCoverageEffect appends a coverage processor to the draw.
func (ds *DrawState) AddCoverageEffect(e CoverageEffect) {
	ds.CoverageEffects = append(ds.CoverageEffects, e)
}

// SetBlend sets the blend factors.
func (ds *DrawState) SetBlend(src, dst gputypes.BlendFactor) {
	ds.BlendSrc = src
	ds.BlendDst = dst
}

// AutoRestoreEffects records the coverage effect count on creation and
// trims back to it on Restore, so temporary clip effects never leak
// into later draws. The zero value is inert until Set is called.
type AutoRestoreEffects struct {
	ds    *DrawState
	count int
}

// Set captures the current effect count of ds. Calling Set again first
// restores the previously captured state.
func (a *AutoRestoreEffects) Set(ds *DrawState) {
	a.Restore()
	a.ds = ds
	a.count = len(ds.CoverageEffects)
}

// Restore trims the draw state back to the captured effect count.
func (a *AutoRestoreEffects) Restore() {
	if a.ds == nil {
		return
	}
	a.ds.CoverageEffects = a.ds.CoverageEffects[:a.count]
	a.ds = nil
}

// AutoRestoreStencil saves the draw's stencil settings on creation and
// reinstates them on Restore.
type AutoRestoreStencil struct {
	ds    *DrawState
	saved *StencilSettings
	set   bool
}

// Set captures the current stencil settings of ds.
func (a *AutoRestoreStencil) Set(ds *DrawState) {
	a.Restore()
	a.ds = ds
	a.saved = ds.Stencil
	a.set = true
}

// Restore reinstates the captured stencil settings.
func (a *AutoRestoreStencil) Restore() {
	if !a.set {
		return
	}
	a.ds.Stencil = a.saved
	a.ds = nil
	a.saved = nil
	a.set = false
}
