// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clipstack

import "github.com/gogpu/clipmask/geom"

// InitialState is what every pixel outside all reduced elements'
// primitives is assumed to be before the elements are applied.
type InitialState uint8

const (
	// InitialAllOut assumes pixels start outside the clip.
	InitialAllOut InitialState = iota
	// InitialAllIn assumes pixels start inside the clip.
	InitialAllIn
)

// String returns the state name for logging.
func (s InitialState) String() string {
	if s == InitialAllIn {
		return "all-in"
	}
	return "all-out"
}

// ReducedClip is the minimal equivalent of a clip stack over a query
// rectangle: applying Elements in order (oldest first) to InitialState
// over Bounds reproduces the stack's effect exactly within Bounds.
type ReducedClip struct {
	// Elements is ordered oldest (outermost) first.
	Elements []Element
	// GenID identifies the source stack snapshot. Empty and wide-open
	// results use the reserved EmptyGenID / WideOpenGenID.
	GenID int64
	// InitialState is the assumed state outside all element primitives.
	InitialState InitialState
	// Bounds is the integer clip-space region the clip can affect,
	// never larger than the query rectangle.
	Bounds geom.IRect
	// RequiresAA is true when any retained element wants anti-aliasing.
	RequiresAA bool
}

// IsEmpty returns true when nothing inside the query survives the clip.
func (rc *ReducedClip) IsEmpty() bool {
	return len(rc.Elements) == 0 && rc.InitialState == InitialAllOut
}

// IsWideOpen returns true when the clip excludes nothing inside the
// query.
func (rc *ReducedClip) IsWideOpen(query geom.IRect) bool {
	return len(rc.Elements) == 0 && rc.InitialState == InitialAllIn && rc.Bounds == query
}

// Reduce collapses the stack into a minimal equivalent element list for
// the given query rectangle (the render target's bounds in clip space).
//
// The walk runs newest to oldest. A Replace truncates everything older.
// Elements whose boolean effect over the query rectangle is provably a
// no-op are dropped; elements that provably decide the whole query
// rectangle terminate the walk. Reduce never fails: a stack that clips
// everything away reduces to an empty clip with InitialAllOut.
func Reduce(s *Stack, query geom.IRect) ReducedClip {
	if s.IsWideOpen() || query.IsEmpty() {
		return wideOpenClip(query)
	}
	queryR := query.Rect()

	// Collect newest-first, then reverse.
	kept := make([]Element, 0, len(s.elements))
	initial := InitialAllIn

walk:
	for i := len(s.elements) - 1; i >= 0; i-- {
		e := s.elements[i]
		switch e.Op {
		case OpReplace:
			if e.missesQuery(queryR) {
				initial = InitialAllOut
			} else if e.coversQuery(queryR) {
				initial = InitialAllIn
			} else {
				kept = append(kept, e)
				initial = InitialAllOut
			}
			break walk
		case OpIntersect:
			if e.coversQuery(queryR) {
				continue // no-op over the query
			}
			if e.missesQuery(queryR) {
				initial = InitialAllOut
				break walk
			}
			kept = append(kept, e)
		case OpUnion:
			if e.coversQuery(queryR) {
				initial = InitialAllIn
				break walk
			}
			if e.missesQuery(queryR) {
				continue
			}
			kept = append(kept, e)
		case OpXor:
			if e.missesQuery(queryR) {
				continue
			}
			kept = append(kept, e)
		case OpDifference:
			if e.missesQuery(queryR) {
				continue
			}
			if e.coversQuery(queryR) {
				initial = InitialAllOut
				break walk
			}
			kept = append(kept, e)
		case OpReverseDifference:
			if e.missesQuery(queryR) {
				initial = InitialAllOut
				break walk
			}
			kept = append(kept, e)
		}
	}

	// Restore oldest-first order.
	for l, r := 0, len(kept)-1; l < r; l, r = l+1, r-1 {
		kept[l], kept[r] = kept[r], kept[l]
	}

	if len(kept) == 0 {
		if initial == InitialAllIn {
			return wideOpenClip(query)
		}
		return emptyClip()
	}

	bounds := reducedBounds(kept, initial, query)
	if bounds.IsEmpty() {
		return emptyClip()
	}

	requiresAA := false
	for _, e := range kept {
		if e.AntiAlias {
			requiresAA = true
			break
		}
	}

	return ReducedClip{
		Elements:     kept,
		GenID:        s.genID,
		InitialState: initial,
		Bounds:       bounds,
		RequiresAA:   requiresAA,
	}
}

// reducedBounds computes the tightest clip-space bounds the reducer can
// prove. Two sound shrinking rules:
//
//  1. With InitialAllOut, an "in" pixel must come from some additive
//     element (replace, union, xor, reverse-difference), so the bounds
//     shrink to the union of additive element bounds.
//  2. The newest run of consecutive non-inverse intersect elements
//     shrinks the bounds to their primitives; nothing applied after
//     them can re-add pixels outside.
func reducedBounds(elements []Element, initial InitialState, query geom.IRect) geom.IRect {
	tight := query.Rect()

	if initial == InitialAllOut {
		var additive geom.Rect
		any := false
		for _, e := range elements {
			switch e.Op {
			case OpReplace, OpUnion, OpXor, OpReverseDifference:
				if e.InverseFilled {
					additive = query.Rect()
				} else {
					additive = additive.Union(e.Bounds())
				}
				any = true
			}
		}
		if !any {
			return geom.IRect{}
		}
		tight = tight.Intersect(additive)
	}

	for i := len(elements) - 1; i >= 0; i-- {
		e := elements[i]
		if e.Op != OpIntersect || e.InverseFilled {
			break
		}
		tight = tight.Intersect(e.Bounds())
	}

	if tight.IsEmpty() {
		return geom.IRect{}
	}
	return tight.RoundOut().Intersect(query)
}

func wideOpenClip(query geom.IRect) ReducedClip {
	return ReducedClip{
		GenID:        WideOpenGenID,
		InitialState: InitialAllIn,
		Bounds:       query,
	}
}

func emptyClip() ReducedClip {
	return ReducedClip{
		GenID:        EmptyGenID,
		InitialState: InitialAllOut,
	}
}
