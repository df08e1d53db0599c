// pkg/renderer/atlas.go
// Copyright(c) 2023-2025 overlay contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"fmt"
	"image"
)

// RasterizedGlyph is the input to atlas construction: one glyph bitmap
// plus its metrics, as produced by the font rasterization collaborator.
// The atlas adapter does not parse fonts or rasterize outlines itself.
type RasterizedGlyph struct {
	Codepoint rune
	// Bitmap holds the glyph's alpha coverage; it may be nil for glyphs
	// with no ink (space and friends), which still carry an advance.
	Bitmap *image.Alpha
	// BearingX is the x offset from the pen position to the left edge of
	// the bitmap; BearingY is the distance from the baseline up to its
	// top edge.
	BearingX, BearingY float32
	// Advance is the pen advance after this glyph, in pixels at the
	// rasterized height.
	Advance float32
}

// GlyphInfo locates one glyph in a built atlas. X0..Y1 are the corners of
// the glyph quad relative to the baseline pen position in y-down screen
// coordinates (so Y0 is generally negative); U0..V1 are the corresponding
// atlas texture coordinates. All values are at the atlas's native
// rasterization height.
type GlyphInfo struct {
	X0, Y0, X1, Y1 float32
	U0, V0, U1, V1 float32
	Advance        float32
	// Visible is false for glyphs with no ink; they only advance the pen.
	Visible bool
}

func (g *GlyphInfo) Width() float32 {
	return g.X1 - g.X0
}

func (g *GlyphInfo) Height() float32 {
	return g.Y1 - g.Y0
}

// FontAtlas packs the rasterized glyphs of one font at one pixel height
// into a single RGBA image and records where each one landed. Atlases are
// immutable once built; rebuilding a font (e.g. hot reload) means building
// a new atlas and swapping the reference between frames.
type FontAtlas struct {
	// Image is the packed atlas, white ink with per-pixel alpha, ready to
	// be uploaded as a texture.
	Image *image.RGBA
	// NativeHeight is the pixel height the glyphs were rasterized at;
	// shaping at other sizes scales the quads (with the documented blur).
	NativeHeight float32
	// LineHeight is the baseline-to-baseline distance at NativeHeight.
	LineHeight float32

	glyphs   map[rune]GlyphInfo
	fallback GlyphInfo
}

// atlasMaxWidth bounds the shelf width during packing. ASCII at overlay
// sizes fits in one or two shelves.
const atlasMaxWidth = 1024

// atlasPad is the padding between packed glyphs, so that linear sampling
// at non-native sizes doesn't bleed between neighbors.
const atlasPad = 1

// BuildAtlas packs the provided rasterized glyphs into a new FontAtlas
// using row ("shelf") packing: glyphs are placed left to right and a new
// shelf is started when the current row is full. nativeHeight is the
// rasterization pixel height; lineHeight may be zero, in which case a
// conventional 1.2x of the native height is used.
//
// A synthesized "missing glyph" box is always added and is returned by
// lookups for codepoints the font doesn't cover.
func BuildAtlas(glyphs []RasterizedGlyph, nativeHeight, lineHeight float32) (*FontAtlas, error) {
	if nativeHeight <= 0 {
		return nil, fmt.Errorf("invalid native height %v", nativeHeight)
	}
	if lineHeight <= 0 {
		lineHeight = 1.2 * nativeHeight
	}

	boxIndex := len(glyphs)
	glyphs = append(glyphs, missingGlyphBox(nativeHeight))

	// First pass: assign positions with shelf packing.
	pos := make([]image.Point, len(glyphs))
	x, y, shelfHeight := atlasPad, atlasPad, 0
	maxX := 0
	for i, g := range glyphs {
		if g.Bitmap == nil {
			continue
		}
		w, h := g.Bitmap.Rect.Dx(), g.Bitmap.Rect.Dy()
		if w+2*atlasPad > atlasMaxWidth {
			return nil, fmt.Errorf("glyph %q is %d pixels wide; exceeds atlas width %d",
				g.Codepoint, w, atlasMaxWidth)
		}
		if x+w+atlasPad > atlasMaxWidth {
			// Wrap to the next shelf.
			x = atlasPad
			y += shelfHeight + atlasPad
			shelfHeight = 0
		}
		pos[i] = image.Point{X: x, Y: y}
		x += w + atlasPad
		if x > maxX {
			maxX = x
		}
		if h > shelfHeight {
			shelfHeight = h
		}
	}

	width := ceilPow2(maxX)
	height := ceilPow2(y + shelfHeight + atlasPad)

	// Second pass: blit the bitmaps and record the glyph table.
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	a := &FontAtlas{
		Image:        img,
		NativeHeight: nativeHeight,
		LineHeight:   lineHeight,
		glyphs:       make(map[rune]GlyphInfo),
	}
	for i, g := range glyphs {
		info := GlyphInfo{Advance: g.Advance}
		if g.Bitmap != nil {
			w, h := g.Bitmap.Rect.Dx(), g.Bitmap.Rect.Dy()
			blitAlpha(img, pos[i], g.Bitmap)

			info.X0, info.Y0 = g.BearingX, -g.BearingY
			info.X1, info.Y1 = info.X0+float32(w), info.Y0+float32(h)
			info.U0 = float32(pos[i].X) / float32(width)
			info.V0 = float32(pos[i].Y) / float32(height)
			info.U1 = float32(pos[i].X+w) / float32(width)
			info.V1 = float32(pos[i].Y+h) / float32(height)
			info.Visible = true
		}

		if i == boxIndex {
			a.fallback = info
		} else if _, ok := a.glyphs[g.Codepoint]; !ok {
			a.glyphs[g.Codepoint] = info
		}
	}

	return a, nil
}

// Lookup returns the GlyphInfo for the given codepoint, or false if the
// atlas has no entry for it; callers generally substitute Fallback rather
// than treating a miss as an error.
func (a *FontAtlas) Lookup(ch rune) (GlyphInfo, bool) {
	g, ok := a.glyphs[ch]
	return g, ok
}

// Fallback returns the synthesized missing-glyph box.
func (a *FontAtlas) Fallback() GlyphInfo {
	return a.fallback
}

// Glyphs returns the number of mapped codepoints, not counting the
// fallback entry.
func (a *FontAtlas) Glyphs() int {
	return len(a.glyphs)
}

// blitAlpha copies an alpha mask into the atlas as white ink so that the
// fragment color is just the vertex color scaled by coverage.
func blitAlpha(dst *image.RGBA, at image.Point, mask *image.Alpha) {
	b := mask.Rect
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			alpha := mask.Pix[mask.PixOffset(b.Min.X+x, b.Min.Y+y)]
			o := dst.PixOffset(at.X+x, at.Y+y)
			dst.Pix[o+0] = 0xff
			dst.Pix[o+1] = 0xff
			dst.Pix[o+2] = 0xff
			dst.Pix[o+3] = alpha
		}
	}
}

// missingGlyphBox synthesizes the hollow box used for codepoints the font
// doesn't map, sized to look reasonable next to real glyphs.
func missingGlyphBox(nativeHeight float32) RasterizedGlyph {
	w := int(nativeHeight/2 + 0.5)
	h := int(nativeHeight*7/10 + 0.5)
	if w < 3 {
		w = 3
	}
	if h < 3 {
		h = 3
	}
	bm := image.NewAlpha(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		bm.Pix[x] = 0xff
		bm.Pix[(h-1)*bm.Stride+x] = 0xff
	}
	for y := 0; y < h; y++ {
		bm.Pix[y*bm.Stride] = 0xff
		bm.Pix[y*bm.Stride+w-1] = 0xff
	}
	return RasterizedGlyph{
		Codepoint: 0xfffd,
		Bitmap:    bm,
		BearingX:  1,
		BearingY:  float32(h),
		Advance:   float32(w) + 2,
	}
}

func ceilPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
