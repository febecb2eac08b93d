// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clipmask

import (
	"github.com/gogpu/clipmask/clipstack"
	"github.com/gogpu/gputypes"
)

// blendPair holds the source and destination factors for one boolean
// coverage operation drawn into a single-channel mask.
type blendPair struct {
	src gputypes.BlendFactor
	dst gputypes.BlendFactor
}

// maskBlendTable maps each clip operation to the blend factors that
// compose element coverage S over accumulated mask coverage D:
//
//	Replace:    S
//	Intersect:  D*S
//	Union:      S + D*(1-S)
//	Xor:        S*(1-D) + D*(1-S)
//	Difference: D*(1-S)
//	RevDiff:    S*(1-D)
//
// The factors refer to the color channel of the R8 mask, so Src not
// SrcAlpha.
var maskBlendTable = [...]blendPair{
	clipstack.OpReplace:           {gputypes.BlendFactorOne, gputypes.BlendFactorZero},
	clipstack.OpIntersect:         {gputypes.BlendFactorDst, gputypes.BlendFactorZero},
	clipstack.OpUnion:             {gputypes.BlendFactorOne, gputypes.BlendFactorOneMinusSrc},
	clipstack.OpXor:               {gputypes.BlendFactorOneMinusDst, gputypes.BlendFactorOneMinusSrc},
	clipstack.OpDifference:        {gputypes.BlendFactorZero, gputypes.BlendFactorOneMinusSrc},
	clipstack.OpReverseDifference: {gputypes.BlendFactorOneMinusDst, gputypes.BlendFactorZero},
}

// BlendFactors returns the blend factors that realize op when drawing
// element coverage into a mask render target.
func BlendFactors(op clipstack.Op) (src, dst gputypes.BlendFactor) {
	p := maskBlendTable[op]
	return p.src, p.dst
}

// composeCoverage applies op arithmetically to 8-bit coverage values.
// It is the CPU mirror of BlendFactors, used by the software mask
// builder and when merging a scratch mask into the accumulator.
func composeCoverage(op clipstack.Op, s, d uint8) uint8 {
	switch op {
	case clipstack.OpReplace:
		return s
	case clipstack.OpIntersect:
		return mul8(d, s)
	case clipstack.OpUnion:
		return sat8(uint16(s) + uint16(mul8(d, 255-s)))
	case clipstack.OpXor:
		return sat8(uint16(mul8(s, 255-d)) + uint16(mul8(d, 255-s)))
	case clipstack.OpDifference:
		return mul8(d, 255-s)
	case clipstack.OpReverseDifference:
		return mul8(s, 255-d)
	}
	return 0
}

// mul8 multiplies two 8-bit coverages with rounding, treating 255 as
// 1.0.
func mul8(a, b uint8) uint8 {
	v := uint16(a)*uint16(b) + 128
	return uint8((v + v>>8) >> 8)
}

func sat8(v uint16) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}
