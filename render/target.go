// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/gogpu/gputypes"
)

// RenderTarget is the destination surface a clipped draw renders into.
// The clip mask code only needs its geometry, sampling and the attached
// stencil buffer; pixel access stays with the renderer.
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// SampleCount returns the multisample count. 1 means no
	// multisampling.
	SampleCount() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// StencilBuffer returns the attached stencil buffer, or nil when
	// the target has none.
	StencilBuffer() StencilBuffer
}

// PixmapTarget is a CPU-backed render target over *image.RGBA, with an
// optional in-memory stencil buffer. It is the target used by the
// software rendering path and by tests.
type PixmapTarget struct {
	img         *image.RGBA
	sampleCount int
	stencil     StencilBuffer
}

// NewPixmapTarget creates a CPU-backed render target without a stencil
// buffer.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		sampleCount: 1,
	}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int { return t.img.Rect.Dx() }

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int { return t.img.Rect.Dy() }

// SampleCount returns the multisample count.
func (t *PixmapTarget) SampleCount() int { return t.sampleCount }

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// StencilBuffer returns the attached stencil buffer, or nil.
func (t *PixmapTarget) StencilBuffer() StencilBuffer { return t.stencil }

// Image returns the underlying *image.RGBA, sharing memory with the
// target.
func (t *PixmapTarget) Image() *image.RGBA { return t.img }

// SetSampleCount overrides the reported multisample count. CPU targets
// never actually multisample; this exists so strategy decisions that
// depend on sampling can be exercised.
func (t *PixmapTarget) SetSampleCount(n int) {
	if n < 1 {
		n = 1
	}
	t.sampleCount = n
}

// AttachStencil attaches a stencil buffer to the target. Pass nil to
// detach.
func (t *PixmapTarget) AttachStencil(sb StencilBuffer) { t.stencil = sb }

var _ RenderTarget = (*PixmapTarget)(nil)
