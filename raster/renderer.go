// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster defines the path-renderer collaborator surface the clip
// mask builders query, and a CPU coverage rasterizer used when no GPU
// renderer can handle a shape.
package raster

import "github.com/gogpu/clipmask/geom"

// DrawType describes what a mask builder needs from a path renderer.
type DrawType uint8

const (
	// DrawTypeColor renders plain coverage to a color attachment.
	DrawTypeColor DrawType = iota
	// DrawTypeColorAntiAlias renders anti-aliased coverage to color.
	DrawTypeColorAntiAlias
	// DrawTypeStencilAndColor renders coverage to color while also
	// marking the stencil buffer with standard settings.
	DrawTypeStencilAndColor
	// DrawTypeStencilAndColorAntiAlias is the anti-aliased variant of
	// DrawTypeStencilAndColor.
	DrawTypeStencilAndColorAntiAlias
	// DrawTypeStencilOnly renders only into the stencil buffer.
	DrawTypeStencilOnly
)

// StencilSupport describes how freely a renderer can write the stencil
// buffer while drawing a given shape.
type StencilSupport uint8

const (
	// NoSupport means the renderer cannot touch the stencil buffer.
	NoSupport StencilSupport = iota
	// StencilOnlySupport means the renderer can mark coverage in the
	// stencil buffer but needs its own fixed settings to do so.
	StencilOnlySupport
	// NoRestrictionSupport means the renderer draws correctly under any
	// caller-supplied stencil settings.
	NoRestrictionSupport
)

// PathRenderer is the capability surface of one shape renderer. The
// actual draw commands are issued by the rendering context; the clip
// mask code only needs the capability queries to pick strategies.
type PathRenderer interface {
	// Name identifies the renderer in logs.
	Name() string

	// CanDrawPath reports whether the renderer handles the shape for
	// the requested draw type.
	CanDrawPath(shape geom.Shape, drawType DrawType) bool

	// StencilSupport reports the stencil freedom the renderer has while
	// drawing the shape. Only meaningful when CanDrawPath returned true
	// for a stencil draw type.
	StencilSupport(shape geom.Shape) StencilSupport
}

// Chain is an ordered list of path renderers, tried front to back, with
// an optional software renderer of last resort that the caller may
// exclude.
type Chain struct {
	renderers []PathRenderer
	software  PathRenderer
}

// NewChain builds a chain from hardware renderers and an optional
// software fallback.
func NewChain(software PathRenderer, renderers ...PathRenderer) *Chain {
	return &Chain{renderers: renderers, software: software}
}

// Get returns the first renderer able to draw the shape, or nil. With
// allowSW false the software fallback is not considered.
func (c *Chain) Get(shape geom.Shape, drawType DrawType, allowSW bool) PathRenderer {
	for _, r := range c.renderers {
		if r.CanDrawPath(shape, drawType) {
			return r
		}
	}
	if allowSW && c.software != nil && c.software.CanDrawPath(shape, drawType) {
		return c.software
	}
	return nil
}

// DefaultChain returns a chain modeling a typical GPU configuration: a
// direct renderer for rects, rounded rects and convex paths backed by
// the software rasterizer for everything else.
func DefaultChain() *Chain {
	return NewChain(SoftwareRenderer{}, ConvexRenderer{})
}

// ConvexRenderer handles rects, rounded rects and convex paths and can
// stencil them without restriction. It stands in for the GPU's direct
// geometry pipeline.
type ConvexRenderer struct{}

// Name identifies the renderer.
func (ConvexRenderer) Name() string { return "convex" }

// CanDrawPath reports true for rects, rounded rects and convex paths.
func (ConvexRenderer) CanDrawPath(shape geom.Shape, _ DrawType) bool {
	switch shape.Kind {
	case geom.KindRect, geom.KindRRect:
		return true
	case geom.KindPath:
		return shape.Path != nil && shape.Path.IsConvex()
	}
	return false
}

// StencilSupport reports unrestricted stencil freedom.
func (ConvexRenderer) StencilSupport(geom.Shape) StencilSupport {
	return NoRestrictionSupport
}

// SoftwareRenderer rasterizes any shape on the CPU. It can only produce
// coverage values, never stencil writes.
type SoftwareRenderer struct{}

// Name identifies the renderer.
func (SoftwareRenderer) Name() string { return "software" }

// CanDrawPath reports true for color draw types on any non-empty shape.
func (SoftwareRenderer) CanDrawPath(shape geom.Shape, drawType DrawType) bool {
	switch drawType {
	case DrawTypeColor, DrawTypeColorAntiAlias:
		return !shape.IsEmpty()
	}
	return false
}

// StencilSupport reports no stencil capability.
func (SoftwareRenderer) StencilSupport(geom.Shape) StencilSupport {
	return NoSupport
}
