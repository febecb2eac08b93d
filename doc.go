// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package clipmask turns a stack of boolean clip shapes into the
// cheapest GPU clip state that realizes it for a draw.
//
// A rendering context records clip shapes into a [clipstack.Stack] as
// the application pushes clips, and calls [Manager.SetupClipping]
// before each draw. The manager reduces the stack against the draw's
// device bounds and picks a strategy, cheapest first:
//
//   - nothing, when the clip cannot affect the draw
//   - a scissor rectangle
//   - analytic coverage effects for a few intersect-style elements
//   - an 8-bit alpha mask texture, cached across draws, for
//     antialiased clips
//   - the stencil buffer's high bit for everything else
//
// Strategies degrade: a failed mask allocation falls back to the
// stencil path, and a missing stencil buffer is the only unrecoverable
// outcome.
//
// All mask building runs on the recording thread; nothing in the
// package synchronizes internally.
package clipmask
