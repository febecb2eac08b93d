// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package clipstack maintains ordered stacks of boolean clip operations
// and reduces them to the minimal element list a mask builder needs.
package clipstack

import "github.com/gogpu/clipmask/geom"

// Op is the boolean set operation combining a clip element with the
// accumulated clip region.
type Op uint8

const (
	// OpDifference removes the element's interior from the clip.
	OpDifference Op = iota
	// OpIntersect keeps only the part of the clip inside the element.
	OpIntersect
	// OpUnion adds the element's interior to the clip.
	OpUnion
	// OpXor toggles membership inside the element.
	OpXor
	// OpReverseDifference replaces the clip with the part of the element
	// outside the old clip.
	OpReverseDifference
	// OpReplace discards the old clip entirely.
	OpReplace
)

// String returns the operation name for logging.
func (op Op) String() string {
	switch op {
	case OpDifference:
		return "difference"
	case OpIntersect:
		return "intersect"
	case OpUnion:
		return "union"
	case OpXor:
		return "xor"
	case OpReverseDifference:
		return "reverse-difference"
	case OpReplace:
		return "replace"
	}
	return "unknown"
}

// Element is one clip operation: a shape combined into the clip region
// with a boolean operation. Elements are immutable once produced by the
// reducer.
type Element struct {
	Shape         geom.Shape
	Op            Op
	AntiAlias     bool
	InverseFilled bool
}

// Bounds returns the axis-aligned bounds of the element's primitive.
// For inverse-filled elements this is still the primitive's bounds; the
// element's effect extends beyond them.
func (e Element) Bounds() geom.Rect {
	return e.Shape.Bounds()
}

// coversQuery reports whether the element's filled region provably
// contains the whole query rectangle.
func (e Element) coversQuery(query geom.Rect) bool {
	if e.InverseFilled {
		// The inverse fill covers the query iff the primitive misses it
		// entirely.
		return !e.Shape.Bounds().Intersects(query)
	}
	return e.Shape.Contains(query)
}

// missesQuery reports whether the element's filled region provably
// misses the whole query rectangle.
func (e Element) missesQuery(query geom.Rect) bool {
	if e.InverseFilled {
		return e.Shape.Contains(query)
	}
	return !e.Shape.Bounds().Intersects(query)
}
