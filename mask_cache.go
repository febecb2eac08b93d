// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clipmask

import (
	"log/slog"

	"github.com/gogpu/clipmask/clipstack"
	"github.com/gogpu/clipmask/geom"
	"github.com/gogpu/clipmask/render"
)

// maskCache remembers the most recently built alpha clip mask so that
// consecutive draws under an unchanged clip reuse one texture. It holds
// a single entry: clip state rarely alternates between two stacks
// within a frame, so one slot captures nearly all the reuse.
//
// Not safe for concurrent use; it lives on the submission thread with
// the rest of the clip state.
type maskCache struct {
	genID    int64
	bounds   geom.IRect
	tex      render.Texture
	provider render.ResourceProvider
	disabled bool
	hits     int
	misses   int
}

func newMaskCache(provider render.ResourceProvider) *maskCache {
	return &maskCache{provider: provider}
}

// canReuse reports whether the cached mask serves a clip with the given
// generation covering bounds. The cached mask may cover more than the
// request.
func (c *maskCache) canReuse(genID int64, bounds geom.IRect) bool {
	if c.disabled || c.tex == nil || genID == clipstack.InvalidGenID || genID != c.genID {
		return false
	}
	return c.bounds.Contains(bounds)
}

// lookup returns the cached texture and its bounds on a hit.
func (c *maskCache) lookup(genID int64, bounds geom.IRect) (render.Texture, geom.IRect, bool) {
	if !c.canReuse(genID, bounds) {
		c.misses++
		return nil, geom.IRect{}, false
	}
	c.hits++
	Logger().Debug("clip mask cache hit", slog.Int64("genID", genID))
	return c.tex, c.bounds, true
}

// store replaces the cached entry, releasing any previous texture.
func (c *maskCache) store(genID int64, bounds geom.IRect, tex render.Texture) {
	c.release()
	c.genID = genID
	c.bounds = bounds
	c.tex = tex
}

// reset clears the entry and returns the texture to the provider.
func (c *maskCache) reset() {
	c.release()
	c.genID = clipstack.InvalidGenID
	c.bounds = geom.IRect{}
}

func (c *maskCache) release() {
	if c.tex != nil && c.provider != nil {
		c.provider.Release(c.tex)
	}
	c.tex = nil
}

// stats returns hit and miss counts since creation.
func (c *maskCache) stats() (hits, misses int) {
	return c.hits, c.misses
}
