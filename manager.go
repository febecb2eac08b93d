// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clipmask

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/clipmask/clipstack"
	"github.com/gogpu/clipmask/geom"
	"github.com/gogpu/clipmask/raster"
	"github.com/gogpu/clipmask/render"
)

// defaultMaxAnalyticElements is the largest reduced element count the
// analytic strategy attempts. Past it, per-fragment effect cost tends
// to exceed a one-time mask build.
const defaultMaxAnalyticElements = 4

// Manager selects and applies a clip strategy for each draw. It owns
// the mask cache and the stencil clip mode, and must only be used from
// the single thread that records draws.
type Manager struct {
	provider      render.ResourceProvider
	chain         *raster.Chain
	device        render.DeviceHandle
	caps          render.DeviceCapabilities
	capsSet       bool
	cache         *maskCache
	cacheDisabled bool
	maxAnalytic   int
	clipMode      StencilClipMode
	building      bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxAnalyticElements sets how many reduced elements the analytic
// strategy will take on.
func WithMaxAnalyticElements(n int) Option {
	return func(m *Manager) {
		if n >= 0 {
			m.maxAnalytic = n
		}
	}
}

// WithCache enables or disables alpha mask reuse across draws. The
// cache is on by default; disabling it rebuilds the mask every draw,
// which only makes sense for memory-starved environments.
func WithCache(enabled bool) Option {
	return func(m *Manager) { m.cacheDisabled = !enabled }
}

// WithResourceProvider sets the texture source for mask building.
func WithResourceProvider(p render.ResourceProvider) Option {
	return func(m *Manager) { m.provider = p }
}

// WithRendererChain sets the path renderer chain consulted for
// strategy capability checks.
func WithRendererChain(c *raster.Chain) Option {
	return func(m *Manager) { m.chain = c }
}

// WithDevice attaches the host application's GPU device. Strategy
// capabilities are derived from its adapter unless WithCapabilities
// overrides them.
func WithDevice(h render.DeviceHandle) Option {
	return func(m *Manager) { m.device = h }
}

// WithCapabilities overrides the device-derived capabilities.
func WithCapabilities(c render.DeviceCapabilities) Option {
	return func(m *Manager) {
		m.caps = c
		m.capsSet = true
	}
}

// New creates a Manager. Without options it runs fully CPU-backed:
// a scratch texture pool, the default renderer chain, and no device.
func New(opts ...Option) *Manager {
	m := &Manager{
		provider:    render.NewScratchPool(4, 0),
		chain:       raster.DefaultChain(),
		device:      render.NullDeviceHandle{},
		maxAnalytic: defaultMaxAnalyticElements,
	}
	for _, opt := range opts {
		opt(m)
	}
	if !m.capsSet {
		m.caps = render.CapabilitiesForDevice(m.device)
	}
	m.cache = newMaskCache(m.provider)
	m.cache.disabled = m.cacheDisabled
	return m
}

// ClipMode reports how draws currently relate to the stencil clip.
func (m *Manager) ClipMode() StencilClipMode { return m.clipMode }

// PurgeResources drops the cached mask and any pooled scratch
// textures.
func (m *Manager) PurgeResources() {
	m.cache.reset()
	if p, ok := m.provider.(interface{ Purge() }); ok {
		p.Purge()
	}
}

// CacheStats returns mask cache hit and miss counts.
func (m *Manager) CacheStats() (hits, misses int) { return m.cache.stats() }

// SetupClipping installs the clip described by stack onto the draw
// state, choosing the cheapest workable strategy: nothing, scissor,
// analytic coverage effects, a cached alpha mask, or the stencil
// buffer.
//
// query is the draw's device bounds in clip space, normally the whole
// target offset by ds.ClipOrigin. devBounds, when non-nil, is a tight
// target-space bound on the draw's geometry; a scissor that already
// contains it is not installed. The guards record what SetupClipping
// changed; the caller restores them after the draw is flushed.
//
// A false return with nil error means the draw is fully clipped away
// and must be skipped. An error means every strategy failed; the draw
// cannot be rendered correctly.
func (m *Manager) SetupClipping(ds *DrawState, stack *clipstack.Stack, query geom.IRect, devBounds *geom.IRect, are *AutoRestoreEffects, ars *AutoRestoreStencil) (bool, error) {
	if m.building {
		// Draws issued while a mask is being built are part of the
		// mask itself and take no clip.
		return true, nil
	}

	m.clipMode = ModeIgnoreClip
	rc := clipstack.Reduce(stack, query)

	if rc.IsEmpty() {
		return false, nil
	}

	if rc.IsWideOpen(query) {
		ds.Scissor.Disable()
		m.finalizeStencil(ds, ars)
		return true, nil
	}

	scissorRect := m.toTargetSpace(rc.Bounds, ds)
	if len(rc.Elements) == 0 {
		// Only a bounds restriction survived reduction.
		m.applyScissor(ds, scissorRect, devBounds)
		m.finalizeStencil(ds, ars)
		return true, nil
	}

	if m.installAnalyticEffects(ds, &rc, are) {
		m.applyScissor(ds, scissorRect, devBounds)
		m.finalizeStencil(ds, ars)
		return true, nil
	}

	if rc.RequiresAA && ds.Target.SampleCount() <= 1 {
		tex, maskBounds, err := m.createAlphaClipMask(rc.GenID, &rc)
		if err == nil {
			are.Set(ds)
			ds.AddCoverageEffect(NewTextureEffect(tex, m.toTargetSpace(maskBounds, ds)))
			m.applyScissor(ds, scissorRect, devBounds)
			m.finalizeStencil(ds, ars)
			return true, nil
		}
		Logger().Warn("alpha clip mask failed, trying stencil",
			slog.String("error", err.Error()))
	}

	// Draws issued by the mask build itself may write the clip bit.
	m.building = true
	m.clipMode = ModeModifyClip
	err := m.createStencilClipMask(ds.Target, rc.GenID, &rc, ds.ClipOrigin)
	m.building = false
	if err != nil {
		m.clipMode = ModeIgnoreClip
		return false, fmt.Errorf("clip strategies exhausted: %w", err)
	}
	m.clipMode = ModeRespectClip
	// The clip bit is only valid inside the mask bounds, so the
	// stencil strategy always scissors.
	ds.Scissor.Set(scissorRect)
	m.finalizeStencil(ds, ars)
	return true, nil
}

// applyScissor installs the clip's scissor unless the draw is already
// known to fit inside it.
func (m *Manager) applyScissor(ds *DrawState, scissor geom.IRect, devBounds *geom.IRect) {
	if devBounds != nil && scissor.Contains(*devBounds) {
		return
	}
	ds.Scissor.Set(scissor)
}

// installAnalyticEffects tries to express the clip as coverage
// processors multiplied into the draw. Coverage products can only
// restrict, so every element must be an intersect (or a difference,
// which intersects with the complement) on an all-in initial state.
func (m *Manager) installAnalyticEffects(ds *DrawState, rc *clipstack.ReducedClip, are *AutoRestoreEffects) bool {
	if len(rc.Elements) > m.maxAnalytic ||
		rc.InitialState != clipstack.InitialAllIn ||
		ds.Target.SampleCount() > 1 ||
		!m.caps.SupportsCoverageEffects {
		return false
	}

	effects := make([]CoverageEffect, 0, len(rc.Elements))
	for _, el := range rc.Elements {
		inverse := el.InverseFilled
		switch el.Op {
		case clipstack.OpIntersect:
		case clipstack.OpDifference:
			// Difference multiplies by the shape's complement.
			inverse = !inverse
		default:
			// Union, xor and reverse difference can re-add coverage,
			// which a chain of multiplicative tests cannot express.
			return false
		}
		te := el
		te.Shape = el.Shape.Offset(float32(-ds.ClipOrigin.X), float32(-ds.ClipOrigin.Y))
		te.InverseFilled = inverse
		effect, err := NewEffectForElement(te)
		if err != nil {
			return false
		}
		effects = append(effects, effect)
	}

	are.Set(ds)
	for _, e := range effects {
		ds.AddCoverageEffect(e)
	}
	Logger().Debug("installed analytic clip effects",
		slog.Int("count", len(effects)))
	return true
}

// finalizeStencil remaps any clip-aware stencil settings on the draw
// for the current clip mode, and installs the clip-bit test when the
// stencil clip is active.
func (m *Manager) finalizeStencil(ds *DrawState, ars *AutoRestoreStencil) {
	bits := m.stencilBits(ds.Target)

	if m.clipMode == ModeRespectClip {
		ars.Set(ds)
		base := StencilSettings{
			PassOp:    OpKeep,
			FailOp:    OpKeep,
			Func:      FuncAlwaysIfInClip,
			FuncMask:  0xffff,
			WriteMask: 0xffff,
		}
		if ds.Stencil != nil {
			base = *ds.Stencil
		}
		adjusted := AdjustStencilParams(base, ModeRespectClip, bits)
		ds.Stencil = &adjusted
		return
	}

	if ds.Stencil != nil && ds.Stencil.Func.IsClipAware() {
		ars.Set(ds)
		adjusted := AdjustStencilParams(*ds.Stencil, m.clipMode, bits)
		ds.Stencil = &adjusted
	}
}

func (m *Manager) stencilBits(target render.RenderTarget) int {
	if sb := target.StencilBuffer(); sb != nil {
		return sb.Bits()
	}
	return m.caps.StencilBits
}

// toTargetSpace converts a clip-space rectangle to target space.
func (m *Manager) toTargetSpace(r geom.IRect, ds *DrawState) geom.IRect {
	return r.Offset(-ds.ClipOrigin.X, -ds.ClipOrigin.Y)
}
