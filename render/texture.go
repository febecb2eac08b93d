// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the resource-side collaborator surface of the
// clip mask code: render targets, textures, stencil buffers and the
// scratch texture pool.
package render

import (
	"image"

	"github.com/gogpu/gputypes"
)

// TextureDescriptor describes parameters for acquiring a texture.
type TextureDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Width is the texture width in pixels.
	Width int

	// Height is the texture height in pixels.
	Height int

	// Format is the texture pixel format. Coverage masks use
	// gputypes.TextureFormatR8Unorm.
	Format gputypes.TextureFormat

	// RenderTarget requests a texture usable as a render attachment.
	// Upload-only masks leave it false.
	RenderTarget bool
}

// Texture is a 2D texture resource owned by the rendering context.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() int

	// Height returns the texture height in pixels.
	Height() int

	// Format returns the texture pixel format.
	Format() gputypes.TextureFormat
}

// AlphaTexture is a CPU-backed single-channel texture. It backs software
// mask building and doubles as the scratch texture implementation of the
// in-memory resource provider.
type AlphaTexture struct {
	img *image.Alpha
}

// NewAlphaTexture creates a CPU-backed 8-bit texture.
func NewAlphaTexture(width, height int) *AlphaTexture {
	return &AlphaTexture{img: image.NewAlpha(image.Rect(0, 0, width, height))}
}

// Width returns the texture width in pixels.
func (t *AlphaTexture) Width() int { return t.img.Rect.Dx() }

// Height returns the texture height in pixels.
func (t *AlphaTexture) Height() int { return t.img.Rect.Dy() }

// Format returns the single-channel coverage format.
func (t *AlphaTexture) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatR8Unorm
}

// Image returns the backing image. The image shares memory with the
// texture.
func (t *AlphaTexture) Image() *image.Alpha { return t.img }

// Pix returns the raw coverage bytes, row-major with Stride() bytes per
// row.
func (t *AlphaTexture) Pix() []byte { return t.img.Pix }

// Stride returns the number of bytes per pixel row.
func (t *AlphaTexture) Stride() int { return t.img.Stride }

// Fill sets every pixel to the given coverage value.
func (t *AlphaTexture) Fill(value uint8) {
	for i := range t.img.Pix {
		t.img.Pix[i] = value
	}
}

var _ Texture = (*AlphaTexture)(nil)
