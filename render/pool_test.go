// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/gogpu/clipmask/geom"
	"github.com/gogpu/gputypes"
)

func TestScratchPoolReuse(t *testing.T) {
	pool := NewScratchPool(4, 0)
	desc := TextureDescriptor{Width: 32, Height: 32, Format: gputypes.TextureFormatR8Unorm}

	tex, err := pool.AcquireScratch(desc)
	if err != nil {
		t.Fatalf("AcquireScratch: %v", err)
	}
	if acq, reuse := pool.Stats(); acq != 1 || reuse != 0 {
		t.Fatalf("Stats = (%d, %d), want (1, 0)", acq, reuse)
	}

	pool.Release(tex)
	again, err := pool.AcquireScratch(desc)
	if err != nil {
		t.Fatalf("AcquireScratch after release: %v", err)
	}
	if again != tex {
		t.Error("pool did not hand back the released texture")
	}
	if acq, reuse := pool.Stats(); acq != 2 || reuse != 1 {
		t.Fatalf("Stats = (%d, %d), want (2, 1)", acq, reuse)
	}
}

func TestScratchPoolBucketsBySize(t *testing.T) {
	pool := NewScratchPool(4, 0)
	small := TextureDescriptor{Width: 16, Height: 16, Format: gputypes.TextureFormatR8Unorm}
	large := TextureDescriptor{Width: 64, Height: 64, Format: gputypes.TextureFormatR8Unorm}

	tex, err := pool.AcquireScratch(small)
	if err != nil {
		t.Fatalf("AcquireScratch: %v", err)
	}
	pool.Release(tex)

	got, err := pool.AcquireScratch(large)
	if err != nil {
		t.Fatalf("AcquireScratch: %v", err)
	}
	if got == tex {
		t.Error("pool reused a texture from a differently sized bucket")
	}
	if _, reuse := pool.Stats(); reuse != 0 {
		t.Errorf("reuses = %d, want 0", reuse)
	}
}

func TestScratchPoolBucketCap(t *testing.T) {
	pool := NewScratchPool(1, 0)
	desc := TextureDescriptor{Width: 8, Height: 8, Format: gputypes.TextureFormatR8Unorm}

	a, _ := pool.AcquireScratch(desc)
	b, _ := pool.AcquireScratch(desc)
	pool.Release(a)
	pool.Release(b) // over the cap, dropped

	first, _ := pool.AcquireScratch(desc)
	second, _ := pool.AcquireScratch(desc)
	if first != a {
		t.Error("expected the retained texture back first")
	}
	if second == b {
		t.Error("texture released over the bucket cap was retained")
	}
}

func TestScratchPoolRejectsOversize(t *testing.T) {
	pool := NewScratchPool(4, 64)
	tests := []struct {
		name string
		desc TextureDescriptor
	}{
		{"too wide", TextureDescriptor{Width: 65, Height: 8}},
		{"too tall", TextureDescriptor{Width: 8, Height: 65}},
		{"zero width", TextureDescriptor{Width: 0, Height: 8}},
		{"negative height", TextureDescriptor{Width: 8, Height: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := pool.AcquireScratch(tt.desc); err != ErrPoolExhausted {
				t.Errorf("AcquireScratch = %v, want ErrPoolExhausted", err)
			}
		})
	}
}

func TestScratchPoolPurge(t *testing.T) {
	pool := NewScratchPool(4, 0)
	desc := TextureDescriptor{Width: 8, Height: 8, Format: gputypes.TextureFormatR8Unorm}

	tex, _ := pool.AcquireScratch(desc)
	pool.Release(tex)
	pool.Purge()

	got, _ := pool.AcquireScratch(desc)
	if got == tex {
		t.Error("Purge left a texture in the pool")
	}
}

func TestScratchPoolUpload(t *testing.T) {
	pool := NewScratchPool(4, 0)
	tex, err := pool.AcquireScratch(TextureDescriptor{Width: 4, Height: 4, Format: gputypes.TextureFormatR8Unorm})
	if err != nil {
		t.Fatalf("AcquireScratch: %v", err)
	}

	// 2x2 source rows with a wider stride.
	pix := []byte{
		10, 20, 0,
		30, 40, 0,
	}
	err = pool.Upload(tex, geom.NewIRect(0, 0, 2, 2), pix, 3)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	at := tex.(*AlphaTexture)
	img := at.Image()
	want := [][2]int{{0, 10}, {1, 20}, {img.Stride, 30}, {img.Stride + 1, 40}}
	for _, w := range want {
		if got := img.Pix[w[0]]; int(got) != w[1] {
			t.Errorf("Pix[%d] = %d, want %d", w[0], got, w[1])
		}
	}

	if err := pool.Upload(tex, geom.NewIRect(0, 0, 8, 8), make([]byte, 64), 8); err == nil {
		t.Error("Upload with oversize region succeeded, want error")
	}
}
