// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clipstack

import (
	"testing"

	"github.com/gogpu/clipmask/geom"
)

func TestStackSaveRestore(t *testing.T) {
	s := New()
	s.ClipRect(geom.NewRect(0, 0, 100, 100), OpIntersect, false)
	s.Save()
	s.ClipRect(geom.NewRect(10, 10, 50, 50), OpIntersect, false)
	s.ClipRect(geom.NewRect(20, 20, 30, 30), OpDifference, false)
	if got := s.Depth(); got != 3 {
		t.Fatalf("Depth() = %d, want 3", got)
	}
	s.Restore()
	if got := s.Depth(); got != 1 {
		t.Errorf("Depth() after restore = %d, want 1", got)
	}
}

func TestStackRestoreWithoutSaveClears(t *testing.T) {
	s := New()
	s.ClipRect(geom.NewRect(0, 0, 10, 10), OpIntersect, false)
	s.Restore()
	if !s.IsWideOpen() {
		t.Error("stack should be wide open after unbalanced restore")
	}
	if got := s.GenID(); got != WideOpenGenID {
		t.Errorf("GenID() = %d, want WideOpenGenID", got)
	}
}

func TestStackGenIDChangesOnMutation(t *testing.T) {
	s := New()
	if got := s.GenID(); got != WideOpenGenID {
		t.Fatalf("new stack GenID() = %d, want WideOpenGenID", got)
	}
	s.ClipRect(geom.NewRect(0, 0, 10, 10), OpIntersect, false)
	first := s.GenID()
	if first < 3 {
		t.Fatalf("dynamic GenID() = %d, want >= 3", first)
	}
	s.ClipRect(geom.NewRect(0, 0, 5, 5), OpIntersect, false)
	if s.GenID() == first {
		t.Error("GenID did not change after second clip")
	}
}

func TestStackNoOpRestoreKeepsGenID(t *testing.T) {
	s := New()
	s.ClipRect(geom.NewRect(0, 0, 10, 10), OpIntersect, false)
	id := s.GenID()
	s.Save()
	s.Restore()
	if got := s.GenID(); got != id {
		t.Errorf("GenID() = %d after no-op save/restore, want %d", got, id)
	}
}

func TestStackReset(t *testing.T) {
	s := New()
	s.Save()
	s.ClipRect(geom.NewRect(0, 0, 10, 10), OpReplace, false)
	s.Reset()
	if !s.IsWideOpen() || s.Depth() != 0 {
		t.Error("Reset did not clear the stack")
	}
}

func TestElementCoversAndMissesQuery(t *testing.T) {
	query := geom.NewRect(0, 0, 100, 100)

	tests := []struct {
		name   string
		el     Element
		covers bool
		misses bool
	}{
		{
			name:   "big rect covers",
			el:     Element{Shape: geom.RectShape(geom.NewRect(-10, -10, 200, 200)), Op: OpIntersect},
			covers: true,
		},
		{
			name:   "distant rect misses",
			el:     Element{Shape: geom.RectShape(geom.NewRect(500, 500, 10, 10)), Op: OpIntersect},
			misses: true,
		},
		{
			name: "overlapping rect neither",
			el:   Element{Shape: geom.RectShape(geom.NewRect(50, 50, 100, 100)), Op: OpIntersect},
		},
		{
			name: "inverse of distant rect covers",
			el: Element{
				Shape:         geom.RectShape(geom.NewRect(500, 500, 10, 10)),
				Op:            OpIntersect,
				InverseFilled: true,
			},
			covers: true,
		},
		{
			name: "inverse of covering rect misses",
			el: Element{
				Shape:         geom.RectShape(geom.NewRect(-10, -10, 200, 200)),
				Op:            OpIntersect,
				InverseFilled: true,
			},
			misses: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.el.coversQuery(query); got != tt.covers {
				t.Errorf("coversQuery() = %v, want %v", got, tt.covers)
			}
			if got := tt.el.missesQuery(query); got != tt.misses {
				t.Errorf("missesQuery() = %v, want %v", got, tt.misses)
			}
		})
	}
}
