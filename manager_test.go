// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clipmask

import (
	"errors"
	"testing"

	"github.com/gogpu/clipmask/clipstack"
	"github.com/gogpu/clipmask/geom"
	"github.com/gogpu/clipmask/raster"
	"github.com/gogpu/clipmask/render"
	"github.com/gogpu/gpucontext"
)

func fullQuery() geom.IRect { return geom.NewIRect(0, 0, 100, 100) }

func setupEnv(t *testing.T) (*Manager, *render.ScratchPool, *DrawState, *AutoRestoreEffects, *AutoRestoreStencil) {
	t.Helper()
	pool := render.NewScratchPool(4, 0)
	m := New(WithResourceProvider(pool))
	ds := NewDrawState(render.NewPixmapTarget(100, 100))
	return m, pool, ds, &AutoRestoreEffects{}, &AutoRestoreStencil{}
}

func TestSetupClippingWideOpen(t *testing.T) {
	m, _, ds, are, ars := setupEnv(t)
	stack := clipstack.New()

	ok, err := m.SetupClipping(ds, stack, fullQuery(), nil, are, ars)
	if err != nil || !ok {
		t.Fatalf("SetupClipping = (%v, %v), want (true, nil)", ok, err)
	}
	if ds.Scissor.Enabled {
		t.Error("wide-open clip enabled the scissor")
	}
	if len(ds.CoverageEffects) != 0 {
		t.Errorf("wide-open clip installed %d effects", len(ds.CoverageEffects))
	}
	if ds.Stencil != nil {
		t.Error("wide-open clip installed stencil settings")
	}
}

func TestSetupClippingReplaceCoveringQuery(t *testing.T) {
	m, pool, ds, are, ars := setupEnv(t)
	stack := clipstack.New()
	stack.ClipRect(geom.NewRect(0, 0, 100, 100), clipstack.OpReplace, false)

	ok, err := m.SetupClipping(ds, stack, fullQuery(), nil, are, ars)
	if err != nil || !ok {
		t.Fatalf("SetupClipping = (%v, %v), want (true, nil)", ok, err)
	}
	if ds.Scissor.Enabled {
		t.Error("covering replace enabled the scissor")
	}
	if acq, _ := pool.Stats(); acq != 0 {
		t.Errorf("covering replace acquired %d textures", acq)
	}
}

func TestSetupClippingFullyClippedAway(t *testing.T) {
	m, _, ds, are, ars := setupEnv(t)
	stack := clipstack.New()
	stack.ClipRect(geom.NewRect(200, 200, 10, 10), clipstack.OpIntersect, false)

	ok, err := m.SetupClipping(ds, stack, fullQuery(), nil, are, ars)
	if err != nil {
		t.Fatalf("SetupClipping: %v", err)
	}
	if ok {
		t.Error("draw not skipped for a clip that excludes the query")
	}
}

func TestSetupClippingAnalytic(t *testing.T) {
	m, pool, ds, are, ars := setupEnv(t)
	stack := clipstack.New()
	stack.ClipRect(geom.NewRect(10, 10, 70, 70), clipstack.OpIntersect, true)
	stack.ClipRRect(geom.NewRRect(geom.NewRect(20, 20, 40, 40), 8), clipstack.OpIntersect, true)

	ok, err := m.SetupClipping(ds, stack, fullQuery(), nil, are, ars)
	if err != nil || !ok {
		t.Fatalf("SetupClipping = (%v, %v), want (true, nil)", ok, err)
	}
	if len(ds.CoverageEffects) != 2 {
		t.Fatalf("installed %d effects, want 2", len(ds.CoverageEffects))
	}
	if !ds.Scissor.Enabled || ds.Scissor.Rect != geom.NewIRect(20, 20, 40, 40) {
		t.Errorf("scissor = %+v, want enabled over (20,20)+40x40", ds.Scissor)
	}
	// Analytic clips never build a mask.
	if acq, _ := pool.Stats(); acq != 0 {
		t.Errorf("analytic path acquired %d textures", acq)
	}

	are.Restore()
	if len(ds.CoverageEffects) != 0 {
		t.Errorf("%d effects left after restore", len(ds.CoverageEffects))
	}
}

func TestSetupClippingAnalyticRefusals(t *testing.T) {
	newStack := func() *clipstack.Stack {
		s := clipstack.New()
		s.ClipRect(geom.NewRect(10, 10, 70, 70), clipstack.OpIntersect, true)
		return s
	}

	t.Run("multisampled target", func(t *testing.T) {
		m, _, _, are, ars := setupEnv(t)
		target := render.NewPixmapTarget(100, 100)
		target.SetSampleCount(4)
		ds := NewDrawState(target)
		// With analytic and alpha masks unavailable the stencil strategy
		// is next, and this target has no stencil buffer.
		ok, err := m.SetupClipping(ds, newStack(), fullQuery(), nil, are, ars)
		if ok || !errors.Is(err, ErrStencilUnavailable) {
			t.Errorf("SetupClipping = (%v, %v), want (false, ErrStencilUnavailable)", ok, err)
		}
	})

	t.Run("element limit", func(t *testing.T) {
		pool := render.NewScratchPool(4, 0)
		m := New(WithResourceProvider(pool), WithMaxAnalyticElements(0))
		ds := NewDrawState(render.NewPixmapTarget(100, 100))
		var are AutoRestoreEffects
		var ars AutoRestoreStencil
		ok, err := m.SetupClipping(ds, newStack(), fullQuery(), nil, &are, &ars)
		if err != nil || !ok {
			t.Fatalf("SetupClipping = (%v, %v), want (true, nil)", ok, err)
		}
		// Over the analytic element limit the clip falls back to an alpha mask.
		if acq, _ := pool.Stats(); acq != 1 {
			t.Errorf("alpha fallback acquired %d textures, want 1", acq)
		}
		if len(ds.CoverageEffects) != 1 {
			t.Fatalf("installed %d effects, want 1 mask effect", len(ds.CoverageEffects))
		}
		if _, okEff := ds.CoverageEffects[0].(*TextureEffect); !okEff {
			t.Errorf("effect is %T, want *TextureEffect", ds.CoverageEffects[0])
		}
	})

	t.Run("no coverage effect support", func(t *testing.T) {
		pool := render.NewScratchPool(4, 0)
		caps := render.DefaultCapabilities()
		caps.SupportsCoverageEffects = false
		m := New(WithResourceProvider(pool), WithCapabilities(caps))
		ds := NewDrawState(render.NewPixmapTarget(100, 100))
		var are AutoRestoreEffects
		var ars AutoRestoreStencil
		ok, err := m.SetupClipping(ds, newStack(), fullQuery(), nil, &are, &ars)
		if err != nil || !ok {
			t.Fatalf("SetupClipping = (%v, %v), want (true, nil)", ok, err)
		}
		if acq, _ := pool.Stats(); acq != 1 {
			t.Errorf("alpha fallback acquired %d textures, want 1", acq)
		}
	})
}

// TestSetupClippingAlphaMaskContent drives a clip the analytic strategy
// cannot express (a union re-adds coverage) and checks the mask the
// alpha strategy builds through the installed texture effect.
func TestSetupClippingAlphaMaskContent(t *testing.T) {
	m, _, ds, are, ars := setupEnv(t)
	stack := clipstack.New()
	stack.ClipRect(geom.NewRect(10, 10, 40, 40), clipstack.OpIntersect, true)
	stack.ClipRect(geom.NewRect(30, 30, 40, 40), clipstack.OpUnion, true)

	ok, err := m.SetupClipping(ds, stack, fullQuery(), nil, are, ars)
	if err != nil || !ok {
		t.Fatalf("SetupClipping = (%v, %v), want (true, nil)", ok, err)
	}
	if len(ds.CoverageEffects) != 1 {
		t.Fatalf("installed %d effects, want 1", len(ds.CoverageEffects))
	}
	eff, okEff := ds.CoverageEffects[0].(*TextureEffect)
	if !okEff {
		t.Fatalf("effect is %T, want *TextureEffect", ds.CoverageEffects[0])
	}

	tests := []struct {
		name string
		x, y float32
		want float32
	}{
		{"inside first rect only", 20, 20, 1},
		{"inside union rect only", 60, 60, 1},
		{"inside both", 35, 35, 1},
		{"outside both", 5, 5, 0},
		{"outside both lower right", 80, 80, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eff.Coverage(tt.x, tt.y); got != tt.want {
				t.Errorf("mask coverage(%g, %g) = %g, want %g", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestSetupClippingMaskCacheReuse(t *testing.T) {
	m, pool, ds, are, ars := setupEnv(t)
	stack := clipstack.New()
	stack.ClipRect(geom.NewRect(10, 10, 40, 40), clipstack.OpIntersect, true)
	stack.ClipRect(geom.NewRect(30, 30, 40, 40), clipstack.OpUnion, true)

	for i := 0; i < 2; i++ {
		if ok, err := m.SetupClipping(ds, stack, fullQuery(), nil, are, ars); err != nil || !ok {
			t.Fatalf("SetupClipping #%d = (%v, %v), want (true, nil)", i, ok, err)
		}
	}
	if hits, misses := m.CacheStats(); hits != 1 || misses != 1 {
		t.Errorf("cache stats = (%d hits, %d misses), want (1, 1)", hits, misses)
	}
	if acq, _ := pool.Stats(); acq != 1 {
		t.Errorf("pool acquires = %d, want 1 for the cached mask", acq)
	}

	// Mutating the stack invalidates the cached mask.
	stack.ClipRect(geom.NewRect(20, 20, 40, 40), clipstack.OpUnion, true)
	if ok, err := m.SetupClipping(ds, stack, fullQuery(), nil, are, ars); err != nil || !ok {
		t.Fatalf("SetupClipping after mutation = (%v, %v), want (true, nil)", ok, err)
	}
	if hits, misses := m.CacheStats(); hits != 1 || misses != 2 {
		t.Errorf("cache stats after mutation = (%d, %d), want (1, 2)", hits, misses)
	}
}

func TestSetupClippingCacheDisabled(t *testing.T) {
	pool := render.NewScratchPool(4, 0)
	m := New(WithResourceProvider(pool), WithCache(false))
	ds := NewDrawState(render.NewPixmapTarget(100, 100))
	var are AutoRestoreEffects
	var ars AutoRestoreStencil

	stack := clipstack.New()
	stack.ClipRect(geom.NewRect(10, 10, 40, 40), clipstack.OpIntersect, true)
	stack.ClipRect(geom.NewRect(30, 30, 40, 40), clipstack.OpUnion, true)

	for i := 0; i < 2; i++ {
		if ok, err := m.SetupClipping(ds, stack, fullQuery(), nil, &are, &ars); err != nil || !ok {
			t.Fatalf("SetupClipping #%d = (%v, %v), want (true, nil)", i, ok, err)
		}
	}
	if hits, misses := m.CacheStats(); hits != 0 || misses != 2 {
		t.Errorf("cache stats = (%d hits, %d misses), want (0, 2)", hits, misses)
	}
}

// TestSetupClippingSoftwareOnlyPath clips with a concave path no
// hardware renderer accepts, forcing the fully software mask build.
func TestSetupClippingSoftwareOnlyPath(t *testing.T) {
	m, _, ds, are, ars := setupEnv(t)
	stack := clipstack.New()
	stack.ClipPath(lShapedPath(), clipstack.OpIntersect, true, false)

	ok, err := m.SetupClipping(ds, stack, fullQuery(), nil, are, ars)
	if err != nil || !ok {
		t.Fatalf("SetupClipping = (%v, %v), want (true, nil)", ok, err)
	}
	if len(ds.CoverageEffects) != 1 {
		t.Fatalf("installed %d effects, want 1", len(ds.CoverageEffects))
	}
	eff := ds.CoverageEffects[0].(*TextureEffect)
	if got := eff.Coverage(5, 5); got != 1 {
		t.Errorf("coverage inside the L = %g, want 1", got)
	}
	if got := eff.Coverage(30, 30); got != 0 {
		t.Errorf("coverage in the notch = %g, want 0", got)
	}
}

func TestSetupClippingStencilPath(t *testing.T) {
	m, _, _, are, ars := setupEnv(t)
	target := render.NewPixmapTarget(100, 100)
	st := render.NewMemoryStencil(100, 100, 8)
	target.AttachStencil(st)
	ds := NewDrawState(target)

	// A black-and-white xor defeats both the analytic and alpha
	// strategies.
	stack := clipstack.New()
	stack.ClipRect(geom.NewRect(10, 10, 40, 40), clipstack.OpXor, false)

	ok, err := m.SetupClipping(ds, stack, fullQuery(), nil, are, ars)
	if err != nil || !ok {
		t.Fatalf("SetupClipping = (%v, %v), want (true, nil)", ok, err)
	}
	if m.ClipMode() != ModeRespectClip {
		t.Errorf("clip mode = %v, want RespectClip", m.ClipMode())
	}

	// All-in xor rect leaves the clip bit set only outside the rect.
	if got := st.Get(20, 20); got&0x80 != 0 {
		t.Errorf("clip bit set inside the xor rect: %#x", got)
	}
	if got := st.Get(70, 70); got&0x80 == 0 {
		t.Errorf("clip bit clear outside the xor rect: %#x", got)
	}

	// The draw is gated on the clip bit.
	want := StencilSettings{
		PassOp: OpKeep, FailOp: OpKeep, Func: FuncEqual,
		FuncMask: 0x0080, FuncRef: 0x0080, WriteMask: 0x007f,
	}
	if ds.Stencil == nil || *ds.Stencil != want {
		t.Errorf("draw stencil = %+v, want %+v", ds.Stencil, want)
	}

	ars.Restore()
	if ds.Stencil != nil {
		t.Error("stencil settings not restored")
	}

	// An identical clip must not re-render the stencil mask.
	st.Set(0, 0, 0x55)
	if ok, err := m.SetupClipping(ds, stack, fullQuery(), nil, are, ars); err != nil || !ok {
		t.Fatalf("second SetupClipping = (%v, %v), want (true, nil)", ok, err)
	}
	if got := st.Get(0, 0); got != 0x55 {
		t.Errorf("stencil re-rendered for an unchanged clip: %#x", got)
	}
}

func TestSetupClippingStencilUnavailable(t *testing.T) {
	m, _, ds, are, ars := setupEnv(t)
	stack := clipstack.New()
	stack.ClipRect(geom.NewRect(10, 10, 40, 40), clipstack.OpXor, false)

	ok, err := m.SetupClipping(ds, stack, fullQuery(), nil, are, ars)
	if ok || !errors.Is(err, ErrStencilUnavailable) {
		t.Errorf("SetupClipping = (%v, %v), want (false, ErrStencilUnavailable)", ok, err)
	}

	t.Run("too few stencil bits", func(t *testing.T) {
		target := render.NewPixmapTarget(100, 100)
		target.AttachStencil(render.NewMemoryStencil(100, 100, 1))
		ds := NewDrawState(target)
		ok, err := m.SetupClipping(ds, stack, fullQuery(), nil, are, ars)
		if ok || !errors.Is(err, ErrStencilUnavailable) {
			t.Errorf("SetupClipping = (%v, %v), want (false, ErrStencilUnavailable)", ok, err)
		}
	})
}

func TestPurgeResources(t *testing.T) {
	m, pool, ds, are, ars := setupEnv(t)
	stack := clipstack.New()
	stack.ClipRect(geom.NewRect(10, 10, 40, 40), clipstack.OpIntersect, true)
	stack.ClipRect(geom.NewRect(30, 30, 40, 40), clipstack.OpUnion, true)

	if ok, err := m.SetupClipping(ds, stack, fullQuery(), nil, are, ars); err != nil || !ok {
		t.Fatalf("SetupClipping = (%v, %v), want (true, nil)", ok, err)
	}
	m.PurgeResources()

	// After the purge the mask must be rebuilt with a fresh texture.
	if ok, err := m.SetupClipping(ds, stack, fullQuery(), nil, are, ars); err != nil || !ok {
		t.Fatalf("SetupClipping after purge = (%v, %v), want (true, nil)", ok, err)
	}
	if hits, _ := m.CacheStats(); hits != 0 {
		t.Errorf("cache hits after purge = %d, want 0", hits)
	}
	if _, reuses := pool.Stats(); reuses != 0 {
		t.Errorf("pool reuses after purge = %d, want 0", reuses)
	}
}

func TestSetupClippingDevBounds(t *testing.T) {
	newStack := func() *clipstack.Stack {
		s := clipstack.New()
		s.ClipRect(geom.NewRect(20, 20, 40, 40), clipstack.OpIntersect, false)
		return s
	}

	t.Run("draw inside the clip bounds", func(t *testing.T) {
		m, _, ds, are, ars := setupEnv(t)
		devBounds := geom.NewIRect(25, 25, 10, 10)
		ok, err := m.SetupClipping(ds, newStack(), fullQuery(), &devBounds, are, ars)
		if err != nil || !ok {
			t.Fatalf("SetupClipping = (%v, %v), want (true, nil)", ok, err)
		}
		if ds.Scissor.Enabled {
			t.Errorf("scissor installed for a draw the clip already contains: %+v", ds.Scissor)
		}
	})

	t.Run("draw past the clip bounds", func(t *testing.T) {
		m, _, ds, are, ars := setupEnv(t)
		devBounds := geom.NewIRect(50, 50, 40, 40)
		ok, err := m.SetupClipping(ds, newStack(), fullQuery(), &devBounds, are, ars)
		if err != nil || !ok {
			t.Fatalf("SetupClipping = (%v, %v), want (true, nil)", ok, err)
		}
		if !ds.Scissor.Enabled || ds.Scissor.Rect != geom.NewIRect(20, 20, 40, 40) {
			t.Errorf("scissor = %+v, want enabled over (20,20)+40x40", ds.Scissor)
		}
	})
}

// TestSetupClippingStencilPreservesUserBits rebuilds a stencil clip
// whose bounds cover only a corner of the target and checks that
// stencil values held by the application elsewhere survive, including
// under an element whose geometry reaches past the clip bounds.
func TestSetupClippingStencilPreservesUserBits(t *testing.T) {
	caps := render.DefaultCapabilities()
	caps.SupportsCoverageEffects = false
	m := New(WithCapabilities(caps))
	target := render.NewPixmapTarget(100, 100)
	st := render.NewMemoryStencil(100, 100, 8)
	target.AttachStencil(st)
	ds := NewDrawState(target)
	var are AutoRestoreEffects
	var ars AutoRestoreStencil

	st.Set(90, 90, 0x15)

	// Two black-and-white rounded rects; the second reaches well past
	// the reduced clip bounds of (10,10)+30x30.
	stack := clipstack.New()
	stack.ClipRRect(geom.NewRRect(geom.NewRect(10, 10, 30, 30), 10), clipstack.OpIntersect, false)
	stack.ClipRRect(geom.NewRRect(geom.NewRect(5, 5, 60, 60), 5), clipstack.OpIntersect, false)

	ok, err := m.SetupClipping(ds, stack, fullQuery(), nil, &are, &ars)
	if err != nil || !ok {
		t.Fatalf("SetupClipping = (%v, %v), want (true, nil)", ok, err)
	}
	if m.ClipMode() != ModeRespectClip {
		t.Fatalf("clip mode = %v, want RespectClip", m.ClipMode())
	}

	if got := st.Get(90, 90); got != 0x15 {
		t.Errorf("user stencil value outside the clip bounds = %#x, want 0x15", got)
	}
	if got := st.Get(50, 50); got != 0 {
		t.Errorf("element draw leaked past the clip bounds: stencil = %#x, want 0", got)
	}
	if got := st.Get(25, 25); got&0x80 == 0 {
		t.Errorf("clip bit clear inside both elements: %#x", got)
	}
	if got := st.Get(25, 25) & 0x7f; got != 0 {
		t.Errorf("user bits not restored inside the clip bounds: %#x", got)
	}
	if got := st.Get(11, 11); got&0x80 != 0 {
		t.Errorf("clip bit set outside the rounded corner: %#x", got)
	}
}

// modeRecordingTarget runs stencil mask draws on the CPU while noting
// the manager's clip mode at each draw.
type modeRecordingTarget struct {
	*render.PixmapTarget
	inner    *SoftwareClipTarget
	mode     func() StencilClipMode
	recorded []StencilClipMode
}

func (t *modeRecordingTarget) ClipTarget(geom.IRect) ClipTarget { return t }

func (t *modeRecordingTarget) Bounds() geom.IRect { return t.inner.Bounds() }

func (t *modeRecordingTarget) Clear(v uint8) { t.inner.Clear(v) }

func (t *modeRecordingTarget) ClearStencil(b geom.IRect, value, mask uint16) {
	t.inner.ClearStencil(b, value, mask)
}

func (t *modeRecordingTarget) Draw(d MaskDraw) {
	t.recorded = append(t.recorded, t.mode())
	t.inner.Draw(d)
}

func TestSetupClippingStencilBuildClipMode(t *testing.T) {
	m, _, _, are, ars := setupEnv(t)
	pt := render.NewPixmapTarget(100, 100)
	st := render.NewMemoryStencil(100, 100, 8)
	pt.AttachStencil(st)
	target := &modeRecordingTarget{
		PixmapTarget: pt,
		inner:        NewSoftwareClipTarget(nil, st),
		mode:         m.ClipMode,
	}
	ds := NewDrawState(target)

	stack := clipstack.New()
	stack.ClipRect(geom.NewRect(10, 10, 40, 40), clipstack.OpXor, false)

	ok, err := m.SetupClipping(ds, stack, fullQuery(), nil, are, ars)
	if err != nil || !ok {
		t.Fatalf("SetupClipping = (%v, %v), want (true, nil)", ok, err)
	}
	if len(target.recorded) == 0 {
		t.Fatal("no mask build draws recorded")
	}
	for i, mode := range target.recorded {
		if mode != ModeModifyClip {
			t.Errorf("clip mode during build draw %d = %v, want ModifyClip", i, mode)
		}
	}
	if m.ClipMode() != ModeRespectClip {
		t.Errorf("clip mode after build = %v, want RespectClip", m.ClipMode())
	}
}

// softwareAdapterDevice reports a CPU rasterizer behind the device
// handle, like llvmpipe or the software HAL.
type softwareAdapterDevice struct{ render.NullDeviceHandle }

func (softwareAdapterDevice) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "llvmpipe", Type: gpucontext.AdapterTypeSoftware}
}

func TestSetupClippingDeviceAdapterCapabilities(t *testing.T) {
	newStack := func() *clipstack.Stack {
		s := clipstack.New()
		s.ClipRect(geom.NewRect(10, 10, 70, 70), clipstack.OpIntersect, true)
		return s
	}

	t.Run("software adapter avoids analytic effects", func(t *testing.T) {
		pool := render.NewScratchPool(4, 0)
		m := New(WithResourceProvider(pool), WithDevice(softwareAdapterDevice{}))
		ds := NewDrawState(render.NewPixmapTarget(100, 100))
		var are AutoRestoreEffects
		var ars AutoRestoreStencil
		ok, err := m.SetupClipping(ds, newStack(), fullQuery(), nil, &are, &ars)
		if err != nil || !ok {
			t.Fatalf("SetupClipping = (%v, %v), want (true, nil)", ok, err)
		}
		if acq, _ := pool.Stats(); acq != 1 {
			t.Errorf("acquired %d textures, want 1 for the mask fallback", acq)
		}
		if len(ds.CoverageEffects) != 1 {
			t.Fatalf("installed %d effects, want 1 mask effect", len(ds.CoverageEffects))
		}
		if _, okEff := ds.CoverageEffects[0].(*TextureEffect); !okEff {
			t.Errorf("effect is %T, want *TextureEffect", ds.CoverageEffects[0])
		}
	})

	t.Run("explicit capabilities win", func(t *testing.T) {
		pool := render.NewScratchPool(4, 0)
		m := New(WithResourceProvider(pool),
			WithDevice(softwareAdapterDevice{}),
			WithCapabilities(render.DefaultCapabilities()))
		ds := NewDrawState(render.NewPixmapTarget(100, 100))
		var are AutoRestoreEffects
		var ars AutoRestoreStencil
		ok, err := m.SetupClipping(ds, newStack(), fullQuery(), nil, &are, &ars)
		if err != nil || !ok {
			t.Fatalf("SetupClipping = (%v, %v), want (true, nil)", ok, err)
		}
		if acq, _ := pool.Stats(); acq != 0 {
			t.Errorf("analytic path acquired %d textures, want 0", acq)
		}
	})
}

// colorOnlyRenderer draws coverage for any shape but cannot touch the
// stencil buffer, so inverse intersects must merge through a scratch
// mask.
type colorOnlyRenderer struct{}

func (colorOnlyRenderer) Name() string { return "color-only" }

func (colorOnlyRenderer) CanDrawPath(shape geom.Shape, drawType raster.DrawType) bool {
	switch drawType {
	case raster.DrawTypeColor, raster.DrawTypeColorAntiAlias:
		return !shape.IsEmpty()
	}
	return false
}

func (colorOnlyRenderer) StencilSupport(geom.Shape) raster.StencilSupport {
	return raster.NoSupport
}

// TestSetupClippingMaskMergeViaTemp drives an inverse-filled intersect
// path through a renderer chain that can color but not stencil, so the
// element lands in the mask through a scratch texture merge.
func TestSetupClippingMaskMergeViaTemp(t *testing.T) {
	pool := render.NewScratchPool(4, 0)
	m := New(WithResourceProvider(pool),
		WithRendererChain(raster.NewChain(nil, colorOnlyRenderer{})),
		WithMaxAnalyticElements(0))
	ds := NewDrawState(render.NewPixmapTarget(100, 100))
	var are AutoRestoreEffects
	var ars AutoRestoreStencil

	tri := geom.NewPath([]geom.PathElement{
		geom.MoveTo{Point: geom.Point{X: 20, Y: 20}},
		geom.LineTo{Point: geom.Point{X: 60, Y: 20}},
		geom.LineTo{Point: geom.Point{X: 20, Y: 60}},
		geom.Close{},
	})
	stack := clipstack.New()
	stack.ClipPath(tri, clipstack.OpIntersect, true, true)

	ok, err := m.SetupClipping(ds, stack, fullQuery(), nil, &are, &ars)
	if err != nil || !ok {
		t.Fatalf("SetupClipping = (%v, %v), want (true, nil)", ok, err)
	}
	if acq, _ := pool.Stats(); acq != 2 {
		t.Errorf("acquired %d textures, want 2 (mask and scratch)", acq)
	}
	if len(ds.CoverageEffects) != 1 {
		t.Fatalf("installed %d effects, want 1", len(ds.CoverageEffects))
	}
	eff := ds.CoverageEffects[0].(*TextureEffect)

	tests := []struct {
		name string
		x, y float32
		want float32
	}{
		{"inside the excluded triangle", 30, 30, 0},
		{"outside near origin", 5, 5, 1},
		{"outside lower right", 80, 80, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eff.Coverage(tt.x, tt.y); got != tt.want {
				t.Errorf("mask coverage(%g, %g) = %g, want %g", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
