// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clipmask

import (
	"testing"

	"github.com/gogpu/clipmask/clipstack"
)

var allOps = []clipstack.Op{
	clipstack.OpDifference,
	clipstack.OpIntersect,
	clipstack.OpUnion,
	clipstack.OpXor,
	clipstack.OpReverseDifference,
	clipstack.OpReplace,
}

// TestBlendFactorsMatchComposeCoverage checks that the fixed-function
// blend pair for each operation computes the same result as the direct
// coverage arithmetic, for every 8-bit source/destination combination.
func TestBlendFactorsMatchComposeCoverage(t *testing.T) {
	for _, op := range allOps {
		src, dst := BlendFactors(op)
		for s := 0; s < 256; s++ {
			for d := 0; d < 256; d++ {
				blended := ApplyBlend(src, dst, uint8(s), uint8(d))
				composed := composeCoverage(op, uint8(s), uint8(d))
				if blended != composed {
					t.Fatalf("op %v, s=%d, d=%d: blend %d, compose %d",
						op, s, d, blended, composed)
				}
			}
		}
	}
}

// TestComposeCoverageBoolean checks the operations against their set
// semantics at full and zero coverage.
func TestComposeCoverageBoolean(t *testing.T) {
	boolExpect := func(op clipstack.Op, s, d bool) bool {
		switch op {
		case clipstack.OpReplace:
			return s
		case clipstack.OpIntersect:
			return s && d
		case clipstack.OpUnion:
			return s || d
		case clipstack.OpXor:
			return s != d
		case clipstack.OpDifference:
			return d && !s
		case clipstack.OpReverseDifference:
			return s && !d
		}
		return false
	}
	toByte := func(b bool) uint8 {
		if b {
			return 255
		}
		return 0
	}
	for _, op := range allOps {
		for _, s := range []bool{false, true} {
			for _, d := range []bool{false, true} {
				got := composeCoverage(op, toByte(s), toByte(d))
				want := toByte(boolExpect(op, s, d))
				if got != want {
					t.Errorf("op %v, s=%v, d=%v: got %d, want %d", op, s, d, got, want)
				}
			}
		}
	}
}

func TestMul8(t *testing.T) {
	tests := []struct {
		a, b, want uint8
	}{
		{0, 0, 0},
		{255, 255, 255},
		{255, 0, 0},
		{128, 255, 128},
		{128, 128, 64},
	}
	for _, tt := range tests {
		if got := mul8(tt.a, tt.b); got != tt.want {
			t.Errorf("mul8(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
