// pkg/renderer/text.go
// Copyright(c) 2023-2025 overlay contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// ShapedQuad is one positioned glyph quad: screen-space corners plus the
// atlas uv rectangle to sample. Color is applied later, when the batcher
// copies the quads into a mesh, so shaped runs can be cached and reused
// across colors.
type ShapedQuad struct {
	P0, P1   [2]float32
	UV0, UV1 [2]float32
}

// ShapeText walks the string and produces one textured quad per visible
// glyph. The pen starts at origin (the baseline of the first line) and
// advances by each glyph's scaled advance; '\n' returns the pen to
// origin's x and moves down one scaled line height. Codepoints the atlas
// doesn't map get the missing-glyph box. There is no kerning beyond the
// per-glyph advance: overlay labels are short and it isn't worth it.
//
// Shaping at a pixel height other than the atlas's native height scales
// the quads and visibly blurs; that's an accepted trade-off, not
// something to fix here.
func ShapeText(atlas *FontAtlas, s string, origin [2]float32, pixelHeight float32) []ShapedQuad {
	if atlas == nil || s == "" {
		return nil
	}
	scale := pixelHeight / atlas.NativeHeight

	var quads []ShapedQuad
	pen := origin
	for _, ch := range s {
		if ch == '\n' {
			pen[0] = origin[0]
			pen[1] += atlas.LineHeight * scale
			continue
		}

		glyph, ok := atlas.Lookup(ch)
		if !ok {
			glyph = atlas.Fallback()
		}

		if glyph.Visible {
			quads = append(quads, ShapedQuad{
				P0:  [2]float32{pen[0] + glyph.X0*scale, pen[1] + glyph.Y0*scale},
				P1:  [2]float32{pen[0] + glyph.X1*scale, pen[1] + glyph.Y1*scale},
				UV0: [2]float32{glyph.U0, glyph.V0},
				UV1: [2]float32{glyph.U1, glyph.V1},
			})
		}

		// Visible or not, advance the pen.
		pen[0] += glyph.Advance * scale
	}
	return quads
}

// BoundText returns the width and height of the string shaped at the
// given pixel height, including all lines.
func BoundText(atlas *FontAtlas, s string, pixelHeight float32) (float32, float32) {
	if atlas == nil || s == "" {
		return 0, 0
	}
	scale := pixelHeight / atlas.NativeHeight

	var x, xmax float32
	y := atlas.LineHeight * scale
	for _, ch := range s {
		if ch == '\n' {
			x = 0
			y += atlas.LineHeight * scale
			continue
		}
		glyph, ok := atlas.Lookup(ch)
		if !ok {
			glyph = atlas.Fallback()
		}
		x += glyph.Advance * scale
		if x > xmax {
			xmax = x
		}
	}
	return xmax, y
}

// CenteredOrigin returns the baseline origin that centers the string's
// bound on the given point.
func CenteredOrigin(atlas *FontAtlas, s string, pixelHeight float32, center [2]float32) [2]float32 {
	w, h := BoundText(atlas, s, pixelHeight)
	return [2]float32{center[0] - w/2, center[1] + h/2 - atlas.LineHeight*pixelHeight/atlas.NativeHeight/2}
}

///////////////////////////////////////////////////////////////////////////
// ShapeCache

// shapeKey identifies one shaped run. The atlas pointer is part of the
// key: atlases are immutable, so a rebuilt font is a new atlas and stale
// entries simply age out of the cache.
type shapeKey struct {
	atlas       *FontAtlas
	text        string
	origin      [2]float32
	pixelHeight float32
}

// ShapeCache memoizes ShapeText results. Shaping is deterministic and
// idempotent, so caching is transparent; it just skips re-walking hot
// labels (clocks, counters and the like redrawn every frame). Cached
// slices are shared: callers must treat them as read-only.
type ShapeCache struct {
	cache *lru.Cache[shapeKey, []ShapedQuad]
}

// DefaultShapeCacheSize is plenty for overlays that redraw a few dozen
// labels per frame.
const DefaultShapeCacheSize = 1024

func NewShapeCache(size int) *ShapeCache {
	if size <= 0 {
		size = DefaultShapeCacheSize
	}
	// lru.New only fails for non-positive sizes.
	c, _ := lru.New[shapeKey, []ShapedQuad](size)
	return &ShapeCache{cache: c}
}

// Shape returns the shaped quads for the run, consulting the cache first.
func (sc *ShapeCache) Shape(atlas *FontAtlas, s string, origin [2]float32, pixelHeight float32) []ShapedQuad {
	if sc == nil {
		return ShapeText(atlas, s, origin, pixelHeight)
	}
	key := shapeKey{atlas: atlas, text: s, origin: origin, pixelHeight: pixelHeight}
	if quads, ok := sc.cache.Get(key); ok {
		return quads
	}
	quads := ShapeText(atlas, s, origin, pixelHeight)
	sc.cache.Add(key, quads)
	return quads
}
