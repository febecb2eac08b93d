// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clipstack

import (
	"sync/atomic"

	"github.com/gogpu/clipmask/geom"
)

// Reserved generation ids. Dynamic ids start above them.
const (
	// InvalidGenID never identifies a valid clip snapshot.
	InvalidGenID int64 = 0
	// EmptyGenID identifies a clip that excludes everything.
	EmptyGenID int64 = 1
	// WideOpenGenID identifies a clip that excludes nothing.
	WideOpenGenID int64 = 2

	firstDynamicGenID int64 = 3
)

// genCounter issues process-unique generation ids across all stacks, so
// a cached mask keyed by generation can never collide between contexts.
var genCounter atomic.Int64

func init() {
	genCounter.Store(firstDynamicGenID - 1)
}

func nextGenID() int64 {
	return genCounter.Add(1)
}

// Stack is an ordered stack of clip operations with save/restore
// semantics. Each mutation produces a new generation id identifying the
// stack's content snapshot.
//
// Stack is not safe for concurrent use; it is owned by a single
// recording context.
type Stack struct {
	elements []Element
	saves    []int // element counts at each Save
	genID    int64
}

// New creates an empty (wide open) clip stack.
func New() *Stack {
	return &Stack{genID: WideOpenGenID}
}

// Save marks the current stack depth. A matching Restore pops every clip
// applied since.
func (s *Stack) Save() {
	s.saves = append(s.saves, len(s.elements))
}

// Restore pops clips back to the most recent Save. Without an open Save
// it clears the stack.
func (s *Stack) Restore() {
	n := 0
	if len(s.saves) > 0 {
		n = s.saves[len(s.saves)-1]
		s.saves = s.saves[:len(s.saves)-1]
	}
	if n == len(s.elements) {
		return
	}
	s.elements = s.elements[:n]
	if len(s.elements) == 0 {
		s.genID = WideOpenGenID
	} else {
		s.genID = nextGenID()
	}
}

// ClipRect combines a rectangle into the clip.
func (s *Stack) ClipRect(r geom.Rect, op Op, antiAlias bool) {
	s.push(Element{Shape: geom.RectShape(r), Op: op, AntiAlias: antiAlias})
}

// ClipRRect combines a rounded rectangle into the clip.
func (s *Stack) ClipRRect(rr geom.RRect, op Op, antiAlias bool) {
	s.push(Element{Shape: geom.RRectShape(rr), Op: op, AntiAlias: antiAlias})
}

// ClipPath combines a path into the clip. An inverse-filled path clips
// to the region outside the path.
func (s *Stack) ClipPath(p *geom.Path, op Op, antiAlias, inverseFilled bool) {
	s.push(Element{Shape: geom.PathShape(p), Op: op, AntiAlias: antiAlias, InverseFilled: inverseFilled})
}

func (s *Stack) push(e Element) {
	s.elements = append(s.elements, e)
	s.genID = nextGenID()
}

// Reset clears the stack back to wide open.
func (s *Stack) Reset() {
	s.elements = s.elements[:0]
	s.saves = s.saves[:0]
	s.genID = WideOpenGenID
}

// IsWideOpen returns true if the stack holds no clip operations.
func (s *Stack) IsWideOpen() bool {
	return len(s.elements) == 0
}

// GenID returns the generation id of the current content snapshot.
func (s *Stack) GenID() int64 {
	return s.genID
}

// Depth returns the number of clip operations on the stack.
func (s *Stack) Depth() int {
	return len(s.elements)
}
