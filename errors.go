// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clipmask

import "errors"

// Sentinel errors returned by mask building. All are recoverable: the
// manager degrades to a cheaper strategy or reports the draw as fully
// clipped rather than aborting the frame.
var (
	// ErrAllocationFailed reports that a mask texture could not be
	// allocated at the required size.
	ErrAllocationFailed = errors.New("clipmask: mask texture allocation failed")

	// ErrUnsupportedGeometry reports that no renderer in the chain can
	// handle an element's shape for the chosen strategy.
	ErrUnsupportedGeometry = errors.New("clipmask: no renderer for clip geometry")

	// ErrStencilUnavailable reports that the render target carries no
	// stencil buffer while the stencil strategy was required.
	ErrStencilUnavailable = errors.New("clipmask: render target has no stencil buffer")
)
