// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clipmask

import (
	"github.com/gogpu/clipmask/clipstack"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// StencilFunc is the comparison applied between the masked reference
// value and the masked stencil value. The test passes when
// (ref & funcMask) FUNC (stencil & funcMask).
//
// Funcs at and above FuncAlwaysIfInClip additionally require the pixel
// to be inside the stencil clip; they are remapped to basic funcs when
// the pipeline state is finalized.
type StencilFunc uint8

const (
	FuncAlways StencilFunc = iota
	FuncNever
	FuncGreater
	FuncGEqual
	FuncLess
	FuncLEqual
	FuncEqual
	FuncNotEqual

	// basicFuncCount is the number of funcs with direct hardware
	// equivalents.
	basicFuncCount
)

const (
	// FuncAlwaysIfInClip passes inside the stencil clip regardless of
	// user bits.
	FuncAlwaysIfInClip StencilFunc = basicFuncCount + iota
	// FuncEqualIfInClip applies FuncEqual to the user bits inside the
	// clip.
	FuncEqualIfInClip
	// FuncLessIfInClip applies FuncLess to the user bits inside the
	// clip.
	FuncLessIfInClip
	// FuncLEqualIfInClip applies FuncLEqual to the user bits inside
	// the clip.
	FuncLEqualIfInClip
	// FuncNonZeroIfInClip passes when the masked user bits are nonzero
	// inside the clip.
	FuncNonZeroIfInClip

	funcCount
)

// IsClipAware reports whether the func consults the stencil clip bit.
func (f StencilFunc) IsClipAware() bool {
	return f >= basicFuncCount && f < funcCount
}

func (f StencilFunc) String() string {
	names := [...]string{
		"Always", "Never", "Greater", "GEqual", "Less", "LEqual",
		"Equal", "NotEqual", "AlwaysIfInClip", "EqualIfInClip",
		"LessIfInClip", "LEqualIfInClip", "NonZeroIfInClip",
	}
	if int(f) < len(names) {
		return names[f]
	}
	return "Unknown"
}

// StencilOp is the update applied to a stencil value after the test.
type StencilOp uint8

const (
	OpKeep StencilOp = iota
	OpZero
	OpReplace // writes the masked reference value
	OpInvert
	OpIncWrap
	OpDecWrap
	OpIncClamp
	OpDecClamp
)

func (o StencilOp) String() string {
	names := [...]string{
		"Keep", "Zero", "Replace", "Invert", "IncWrap", "DecWrap",
		"IncClamp", "DecClamp",
	}
	if int(o) < len(names) {
		return names[o]
	}
	return "Unknown"
}

// StencilSettings is one stencil pass configuration, applied to both
// faces. Masks wider than the buffer are truncated when lowered.
type StencilSettings struct {
	PassOp    StencilOp
	FailOp    StencilOp
	Func      StencilFunc
	FuncMask  uint16
	FuncRef   uint16
	WriteMask uint16
}

// IsDisabled reports whether the settings leave the stencil buffer
// untouched and always pass.
func (s StencilSettings) IsDisabled() bool {
	return s.Func == FuncAlways && s.PassOp == OpKeep && s.FailOp == OpKeep
}

// StencilClipMode tells the pipeline how draws relate to the stencil
// clip while it is active.
type StencilClipMode uint8

const (
	// ModeIgnoreClip leaves draws unaffected by the clip bit.
	ModeIgnoreClip StencilClipMode = iota
	// ModeRespectClip restricts draws to pixels whose clip bit is set.
	ModeRespectClip
	// ModeModifyClip is in effect while the clip bit itself is being
	// written; user-bit write restrictions are lifted.
	ModeModifyClip
)

func (m StencilClipMode) String() string {
	switch m {
	case ModeIgnoreClip:
		return "IgnoreClip"
	case ModeRespectClip:
		return "RespectClip"
	case ModeModifyClip:
		return "ModifyClip"
	}
	return "Unknown"
}

// DrawShapeToStencil accumulates arbitrary shape coverage into the user
// bits ahead of the boolean bounds-rect passes. IncClamp never wraps a
// count into the clip bit as long as the buffer has at least two bits.
var DrawShapeToStencil = StencilSettings{
	PassOp:    OpIncClamp,
	FailOp:    OpIncClamp,
	Func:      FuncAlways,
	FuncMask:  0xffff,
	FuncRef:   0x0000,
	WriteMask: 0xffff,
}

// maxStencilClipPasses is the most bounds-rect passes any operation
// needs after the element pre-pass.
const maxStencilClipPasses = 3

// directClipTable holds the single-pass settings for operations that
// can be applied by drawing the element geometry itself, indexed by
// clip op. Entries are templates with FuncRef/WriteMask of clipBit
// filled in by GetClipPasses; nil-equivalent entries mark ops that are
// never direct.
//
// Intersect cannot be direct: pixels outside the element must change
// yet are never touched by its geometry. ReverseDifference fails the
// same way.
func directClipSettings(op clipstack.Op, clipBit uint16) (StencilSettings, bool) {
	switch op {
	case clipstack.OpReplace, clipstack.OpUnion:
		return StencilSettings{
			PassOp: OpReplace, FailOp: OpReplace, Func: FuncAlways,
			FuncMask: 0xffff, FuncRef: clipBit, WriteMask: clipBit,
		}, true
	case clipstack.OpXor:
		return StencilSettings{
			PassOp: OpInvert, FailOp: OpInvert, Func: FuncAlways,
			FuncMask: 0xffff, FuncRef: 0x0000, WriteMask: clipBit,
		}, true
	case clipstack.OpDifference:
		return StencilSettings{
			PassOp: OpZero, FailOp: OpZero, Func: FuncAlways,
			FuncMask: 0xffff, FuncRef: 0x0000, WriteMask: clipBit,
		}, true
	}
	return StencilSettings{}, false
}

// GetClipPasses returns the stencil passes that fold one element into
// the clip bit.
//
// When the return value direct is true the passes draw the element
// geometry itself. Otherwise the caller first draws the element with
// DrawShapeToStencil to count coverage into the user bits, then draws
// the element's bounding rectangle once per returned pass; every
// indirect sequence leaves the user bits at zero again.
//
// canBeDirect must only be set when the renderer reported unrestricted
// stencil support for the element and the fill is not inverted.
func GetClipPasses(op clipstack.Op, canBeDirect bool, clipBit uint16, invertedFill bool) (direct bool, passes []StencilSettings) {
	userMask := clipBit - 1

	if canBeDirect && !invertedFill {
		if s, ok := directClipSettings(op, clipBit); ok {
			return true, []StencilSettings{s}
		}
	}

	if !invertedFill {
		switch op {
		case clipstack.OpReplace:
			return false, []StencilSettings{{
				PassOp: OpReplace, FailOp: OpZero, Func: FuncLess,
				FuncMask: userMask, FuncRef: clipBit, WriteMask: 0xffff,
			}}
		case clipstack.OpIntersect:
			return false, []StencilSettings{{
				PassOp: OpReplace, FailOp: OpZero, Func: FuncLess,
				FuncMask: 0xffff, FuncRef: clipBit, WriteMask: 0xffff,
			}}
		case clipstack.OpUnion:
			return false, []StencilSettings{{
				PassOp: OpReplace, FailOp: OpKeep, Func: FuncLess,
				FuncMask: userMask, FuncRef: clipBit, WriteMask: 0xffff,
			}}
		case clipstack.OpDifference:
			return false, []StencilSettings{{
				PassOp: OpReplace, FailOp: OpZero, Func: FuncEqual,
				FuncMask: 0xffff, FuncRef: clipBit, WriteMask: 0xffff,
			}}
		case clipstack.OpXor:
			return false, []StencilSettings{
				{
					PassOp: OpZero, FailOp: OpKeep, Func: FuncLess,
					FuncMask: 0xffff, FuncRef: clipBit, WriteMask: 0xffff,
				},
				{
					PassOp: OpReplace, FailOp: OpKeep, Func: FuncLess,
					FuncMask: userMask, FuncRef: clipBit, WriteMask: 0xffff,
				},
			}
		case clipstack.OpReverseDifference:
			return false, []StencilSettings{
				{
					PassOp: OpZero, FailOp: OpKeep, Func: FuncLEqual,
					FuncMask: 0xffff, FuncRef: clipBit, WriteMask: 0xffff,
				},
				{
					PassOp: OpReplace, FailOp: OpKeep, Func: FuncLess,
					FuncMask: userMask, FuncRef: clipBit, WriteMask: 0xffff,
				},
			}
		}
		return false, nil
	}

	switch op {
	case clipstack.OpReplace:
		return false, []StencilSettings{{
			PassOp: OpReplace, FailOp: OpZero, Func: FuncEqual,
			FuncMask: userMask, FuncRef: clipBit, WriteMask: 0xffff,
		}}
	case clipstack.OpIntersect:
		return false, []StencilSettings{{
			PassOp: OpReplace, FailOp: OpZero, Func: FuncEqual,
			FuncMask: 0xffff, FuncRef: clipBit, WriteMask: 0xffff,
		}}
	case clipstack.OpDifference:
		return false, []StencilSettings{{
			PassOp: OpReplace, FailOp: OpZero, Func: FuncLess,
			FuncMask: 0xffff, FuncRef: clipBit, WriteMask: 0xffff,
		}}
	case clipstack.OpUnion:
		return false, []StencilSettings{
			{
				PassOp: OpReplace, FailOp: OpKeep, Func: FuncLess,
				FuncMask: 0xffff, FuncRef: clipBit, WriteMask: 0xffff,
			},
			{
				PassOp: OpReplace, FailOp: OpZero, Func: FuncEqual,
				FuncMask: userMask, FuncRef: clipBit, WriteMask: 0xffff,
			},
		}
	case clipstack.OpXor:
		return false, []StencilSettings{
			{
				PassOp: OpZero, FailOp: OpKeep, Func: FuncLess,
				FuncMask: 0xffff, FuncRef: clipBit, WriteMask: 0xffff,
			},
			{
				PassOp: OpReplace, FailOp: OpKeep, Func: FuncLess,
				FuncMask: userMask, FuncRef: clipBit, WriteMask: 0xffff,
			},
			{
				PassOp: OpInvert, FailOp: OpInvert, Func: FuncAlways,
				FuncMask: 0xffff, FuncRef: 0x0000, WriteMask: clipBit,
			},
		}
	case clipstack.OpReverseDifference:
		return false, []StencilSettings{
			{
				PassOp: OpInvert, FailOp: OpInvert, Func: FuncAlways,
				FuncMask: 0xffff, FuncRef: 0x0000, WriteMask: clipBit,
			},
			{
				PassOp: OpReplace, FailOp: OpZero, Func: FuncEqual,
				FuncMask: 0xffff, FuncRef: clipBit, WriteMask: 0xffff,
			},
		}
	}
	return false, nil
}

// specialToBasicFunc maps clip-aware funcs to hardware funcs, first
// row when clipping is inactive, second when the clip bit is live.
var specialToBasicFunc = [2][funcCount - basicFuncCount]StencilFunc{
	{FuncAlways, FuncEqual, FuncLess, FuncLEqual, FuncNotEqual},
	{FuncEqual, FuncEqual, FuncLess, FuncLEqual, FuncLess},
}

// AdjustStencilParams rewrites clip-aware settings into basic ones for
// the given clip mode and stencil depth, and confines user draws to
// the user bits. The returned settings contain only basic funcs.
func AdjustStencilParams(s StencilSettings, mode StencilClipMode, stencilBits int) StencilSettings {
	clipBit := ClipBit(stencilBits)
	userMask := clipBit - 1

	if mode != ModeModifyClip {
		s.WriteMask &= userMask
	}

	if !s.Func.IsClipAware() {
		return s
	}

	clipActive := mode == ModeRespectClip
	special := int(s.Func - basicFuncCount)
	if clipActive {
		switch s.Func {
		case FuncAlwaysIfInClip:
			s.FuncMask = clipBit
			s.FuncRef = clipBit
		case FuncNonZeroIfInClip:
			s.FuncMask = s.FuncMask&userMask | clipBit
			s.FuncRef = clipBit
		default:
			s.FuncMask = s.FuncMask&userMask | clipBit
			s.FuncRef = s.FuncRef&userMask | clipBit
		}
		s.Func = specialToBasicFunc[1][special]
		return s
	}

	s.FuncMask &= userMask
	s.FuncRef &= userMask
	s.Func = specialToBasicFunc[0][special]
	if s.Func == FuncNotEqual {
		// NonZeroIfInClip without a clip degrades to masked != 0.
		s.FuncRef = 0
	}
	return s
}

// ClipBit returns the stencil bit reserved for clipping: the highest
// bit of the buffer.
func ClipBit(stencilBits int) uint16 {
	if stencilBits <= 0 || stencilBits > 16 {
		return 0
	}
	return 1 << (stencilBits - 1)
}

// compareFunc maps basic funcs to their WebGPU comparisons. The test
// direction follows GL convention, ref on the left.
var compareFunc = [basicFuncCount]gputypes.CompareFunction{
	FuncAlways:   gputypes.CompareFunctionAlways,
	FuncNever:    gputypes.CompareFunctionNever,
	FuncGreater:  gputypes.CompareFunctionGreater,
	FuncGEqual:   gputypes.CompareFunctionGreaterEqual,
	FuncLess:     gputypes.CompareFunctionLess,
	FuncLEqual:   gputypes.CompareFunctionLessEqual,
	FuncEqual:    gputypes.CompareFunctionEqual,
	FuncNotEqual: gputypes.CompareFunctionNotEqual,
}

var stencilOperation = [...]hal.StencilOperation{
	OpKeep:     hal.StencilOperationKeep,
	OpZero:     hal.StencilOperationZero,
	OpReplace:  hal.StencilOperationReplace,
	OpInvert:   hal.StencilOperationInvert,
	OpIncWrap:  hal.StencilOperationIncrementWrap,
	OpDecWrap:  hal.StencilOperationDecrementWrap,
	OpIncClamp: hal.StencilOperationIncrementClamp,
	OpDecClamp: hal.StencilOperationDecrementClamp,
}

// FaceState lowers basic-func settings to a hal stencil face. Settings
// still carrying a clip-aware func must go through AdjustStencilParams
// first.
func (s StencilSettings) FaceState() hal.StencilFaceState {
	return hal.StencilFaceState{
		Compare:     compareFunc[s.Func],
		FailOp:      stencilOperation[s.FailOp],
		DepthFailOp: stencilOperation[s.PassOp], // depth test is disabled; mirror PassOp
		PassOp:      stencilOperation[s.PassOp],
	}
}

// DepthStencilState builds the full pipeline depth-stencil descriptor
// for the settings on a combined depth/stencil attachment.
func (s StencilSettings) DepthStencilState() *hal.DepthStencilState {
	face := s.FaceState()
	return &hal.DepthStencilState{
		Format:            gputypes.TextureFormatDepth24PlusStencil8,
		DepthWriteEnabled: false,
		DepthCompare:      gputypes.CompareFunctionAlways,
		StencilFront:      face,
		StencilBack:       face,
		StencilReadMask:   uint32(s.FuncMask),
		StencilWriteMask:  uint32(s.WriteMask),
	}
}
