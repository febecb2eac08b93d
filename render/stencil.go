// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/clipmask/geom"

// ClipRecord describes the clip most recently rendered into a stencil
// buffer: which stack snapshot it came from, the clip-space bounds it is
// valid within, and the clip-to-stencil-space offset it was rendered at.
type ClipRecord struct {
	GenID  int64
	Bounds geom.IRect
	Offset geom.IPoint
}

// StencilBuffer is the stencil attachment of a render target. The top
// bit is reserved for clipping; the remaining bits stay available to
// ordinary stencil users.
type StencilBuffer interface {
	// Bits returns the stencil bit depth. A clip needs at least 2 bits:
	// one for the clip flag, the rest for element winding counts and
	// unrelated stencil use.
	Bits() int

	// LastClip returns the record of the clip currently held in the
	// buffer's clip bit. A zero GenID means none.
	LastClip() ClipRecord

	// SetLastClip records the clip just rendered into the buffer.
	SetLastClip(rec ClipRecord)
}

// MustRenderClip reports whether the requested clip differs from what
// the buffer already holds, meaning the stencil mask must be re-drawn.
func MustRenderClip(sb StencilBuffer, rec ClipRecord) bool {
	last := sb.LastClip()
	if last.GenID == 0 {
		return true
	}
	// A previous mask is reusable only for an identical snapshot over
	// identical bounds at the same offset. Bounds containment would
	// also suffice but requests are always target-sized here.
	return last.GenID != rec.GenID || last.Bounds != rec.Bounds || last.Offset != rec.Offset
}

// MemoryStencil is a CPU stencil buffer of configurable depth backing
// PixmapTarget. Values are stored one uint16 per pixel.
type MemoryStencil struct {
	width  int
	height int
	bits   int
	vals   []uint16
	last   ClipRecord
}

// NewMemoryStencil creates an in-memory stencil buffer. bits must be in
// [1, 16].
func NewMemoryStencil(width, height, bits int) *MemoryStencil {
	if bits < 1 {
		bits = 1
	}
	if bits > 16 {
		bits = 16
	}
	return &MemoryStencil{
		width:  width,
		height: height,
		bits:   bits,
		vals:   make([]uint16, width*height),
	}
}

// Bits returns the stencil bit depth.
func (m *MemoryStencil) Bits() int { return m.bits }

// LastClip returns the record of the clip currently in the buffer.
func (m *MemoryStencil) LastClip() ClipRecord { return m.last }

// SetLastClip records the clip just rendered into the buffer.
func (m *MemoryStencil) SetLastClip(rec ClipRecord) { m.last = rec }

// Width returns the buffer width in pixels.
func (m *MemoryStencil) Width() int { return m.width }

// Height returns the buffer height in pixels.
func (m *MemoryStencil) Height() int { return m.height }

// ValueMask returns the mask of storable bits.
func (m *MemoryStencil) ValueMask() uint16 {
	return uint16(1<<m.bits - 1)
}

// Get returns the stencil value at (x, y). Out-of-range reads return 0.
func (m *MemoryStencil) Get(x, y int) uint16 {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return 0
	}
	return m.vals[y*m.width+x]
}

// Set writes the stencil value at (x, y), masked to the bit depth.
// Out-of-range writes are dropped.
func (m *MemoryStencil) Set(x, y int, v uint16) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	m.vals[y*m.width+x] = v & m.ValueMask()
}

var _ StencilBuffer = (*MemoryStencil)(nil)
