// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"sync"

	"github.com/gogpu/clipmask/geom"
	"github.com/gogpu/gputypes"
)

// ErrPoolExhausted is returned when the provider cannot supply a
// texture of the requested size.
var ErrPoolExhausted = errors.New("render: texture pool exhausted")

// ResourceProvider hands out scratch textures for mask building and
// takes them back when a mask is evicted or a build fails.
//
// Release must tolerate textures still referenced elsewhere; the
// provider may only recycle a texture once all references are gone.
type ResourceProvider interface {
	// AcquireScratch returns a texture of at least the descriptor's
	// size. The content is undefined; callers clear what they use.
	AcquireScratch(desc TextureDescriptor) (Texture, error)

	// Release returns a texture to the provider for reuse.
	Release(tex Texture)

	// Upload copies 8-bit coverage rows into the texture's top-left
	// region.
	Upload(tex Texture, region geom.IRect, pix []byte, stride int) error
}

// poolKey identifies a bucket of interchangeable scratch textures.
type poolKey struct {
	width  int
	height int
	format gputypes.TextureFormat
}

// ScratchPool is a ResourceProvider over CPU-backed textures, grouping
// free textures by (size, format) buckets. It caps how many textures of
// one bucket are retained and how large a single texture may be.
//
// ScratchPool is safe for concurrent use, though the clip mask code
// itself runs on a single submission thread.
type ScratchPool struct {
	mu       sync.Mutex
	buckets  map[poolKey][]*AlphaTexture
	maxPer   int
	maxDim   int
	acquires int
	reuses   int
}

// NewScratchPool creates a pool retaining at most maxPerBucket free
// textures per bucket. maxDim caps a single texture dimension; 0 means
// 16384.
func NewScratchPool(maxPerBucket, maxDim int) *ScratchPool {
	if maxDim <= 0 {
		maxDim = 16384
	}
	return &ScratchPool{
		buckets: make(map[poolKey][]*AlphaTexture),
		maxPer:  maxPerBucket,
		maxDim:  maxDim,
	}
}

// AcquireScratch returns a texture of at least the descriptor's size,
// reusing a pooled one when available.
func (p *ScratchPool) AcquireScratch(desc TextureDescriptor) (Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 ||
		desc.Width > p.maxDim || desc.Height > p.maxDim {
		return nil, ErrPoolExhausted
	}
	key := poolKey{width: desc.Width, height: desc.Height, format: desc.Format}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.acquires++
	if bucket := p.buckets[key]; len(bucket) > 0 {
		tex := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.reuses++
		return tex, nil
	}
	return NewAlphaTexture(desc.Width, desc.Height), nil
}

// Release returns a texture to the pool. Non-pool textures and overfull
// buckets are dropped.
func (p *ScratchPool) Release(tex Texture) {
	at, ok := tex.(*AlphaTexture)
	if !ok {
		return
	}
	key := poolKey{width: at.Width(), height: at.Height(), format: at.Format()}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.maxPer > 0 && len(p.buckets[key]) >= p.maxPer {
		return
	}
	p.buckets[key] = append(p.buckets[key], at)
}

// Upload copies coverage rows into the texture's region.
func (p *ScratchPool) Upload(tex Texture, region geom.IRect, pix []byte, stride int) error {
	at, ok := tex.(*AlphaTexture)
	if !ok {
		return errors.New("render: upload target is not CPU-backed")
	}
	w := region.Width()
	h := region.Height()
	if w > at.Width() || h > at.Height() {
		return errors.New("render: upload region exceeds texture size")
	}
	dst := at.Image()
	for y := 0; y < h; y++ {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+w], pix[y*stride:y*stride+w])
	}
	return nil
}

// Stats returns the total and pool-served acquire counts.
func (p *ScratchPool) Stats() (acquires, reuses int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.acquires, p.reuses
}

// Purge drops all retained free textures.
func (p *ScratchPool) Purge() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buckets = make(map[poolKey][]*AlphaTexture)
}

var _ ResourceProvider = (*ScratchPool)(nil)
