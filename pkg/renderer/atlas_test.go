// atlas_test.go
// Copyright(c) 2023-2025 overlay contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"image"
	"testing"
)

// testGlyphs synthesizes a handful of glyphs with known sizes so atlas
// tests don't depend on a real font.
func testGlyphs() []RasterizedGlyph {
	glyph := func(ch rune, w, h int) RasterizedGlyph {
		bm := image.NewAlpha(image.Rect(0, 0, w, h))
		for i := range bm.Pix {
			bm.Pix[i] = 0xff
		}
		return RasterizedGlyph{Codepoint: ch, Bitmap: bm, BearingX: 1,
			BearingY: float32(h), Advance: float32(w + 2)}
	}
	return []RasterizedGlyph{
		glyph('A', 8, 10),
		glyph('B', 7, 10),
		glyph('g', 7, 12),
		// Space has no ink, just an advance.
		{Codepoint: ' ', Advance: 4},
	}
}

func TestBuildAtlasLookup(t *testing.T) {
	atlas, err := BuildAtlas(testGlyphs(), 12, 0)
	if err != nil {
		t.Fatalf("BuildAtlas: %v", err)
	}

	for _, ch := range "ABg " {
		if _, ok := atlas.Lookup(ch); !ok {
			t.Errorf("glyph %q missing from atlas", ch)
		}
	}
	if _, ok := atlas.Lookup('Z'); ok {
		t.Errorf("glyph 'Z' unexpectedly present in atlas")
	}

	space, _ := atlas.Lookup(' ')
	if space.Visible {
		t.Errorf("space glyph should not be visible")
	}
	if space.Advance != 4 {
		t.Errorf("space advance: got %v, expected 4", space.Advance)
	}

	// The default is computed in float32, so compare the same way.
	if want := float32(1.2) * atlas.NativeHeight; atlas.LineHeight != want {
		t.Errorf("default line height: got %v, expected %v", atlas.LineHeight, want)
	}
}

func TestBuildAtlasUVsDisjoint(t *testing.T) {
	atlas, err := BuildAtlas(testGlyphs(), 12, 14)
	if err != nil {
		t.Fatalf("BuildAtlas: %v", err)
	}

	type uvRect struct {
		ch             rune
		u0, v0, u1, v1 float32
	}
	var rects []uvRect
	for _, ch := range "ABg" {
		g, _ := atlas.Lookup(ch)
		if !g.Visible {
			t.Fatalf("glyph %q should be visible", ch)
		}
		if g.U0 >= g.U1 || g.V0 >= g.V1 {
			t.Errorf("glyph %q: degenerate uv rect (%v,%v)-(%v,%v)", ch, g.U0, g.V0, g.U1, g.V1)
		}
		rects = append(rects, uvRect{ch, g.U0, g.V0, g.U1, g.V1})
	}
	fb := atlas.Fallback()
	rects = append(rects, uvRect{0xfffd, fb.U0, fb.V0, fb.U1, fb.V1})

	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			a, b := rects[i], rects[j]
			if a.u0 < b.u1 && b.u0 < a.u1 && a.v0 < b.v1 && b.v0 < a.v1 {
				t.Errorf("glyphs %q and %q overlap in the atlas", a.ch, b.ch)
			}
		}
	}
}

func TestBuildAtlasFallback(t *testing.T) {
	atlas, err := BuildAtlas(testGlyphs(), 12, 14)
	if err != nil {
		t.Fatalf("BuildAtlas: %v", err)
	}

	fb := atlas.Fallback()
	if !fb.Visible {
		t.Errorf("fallback glyph should be visible")
	}
	if fb.Advance <= 0 {
		t.Errorf("fallback advance: got %v, expected positive", fb.Advance)
	}
}

func TestBuildAtlasPow2Dims(t *testing.T) {
	atlas, err := BuildAtlas(testGlyphs(), 12, 14)
	if err != nil {
		t.Fatalf("BuildAtlas: %v", err)
	}

	w, h := atlas.Image.Rect.Dx(), atlas.Image.Rect.Dy()
	if w&(w-1) != 0 || h&(h-1) != 0 {
		t.Errorf("atlas dimensions %dx%d are not powers of two", w, h)
	}
}

func TestBuildAtlasSubimageBitmap(t *testing.T) {
	// Bitmaps whose bounds don't start at (0,0), e.g. subimages of a
	// larger rasterization buffer, must blit correctly.
	base := image.NewAlpha(image.Rect(0, 0, 8, 8))
	for y := 2; y < 6; y++ {
		for x := 2; x < 6; x++ {
			base.Pix[y*base.Stride+x] = 0xff
		}
	}
	sub := base.SubImage(image.Rect(2, 2, 6, 6)).(*image.Alpha)

	glyphs := []RasterizedGlyph{
		{Codepoint: 'X', Bitmap: sub, BearingX: 0, BearingY: 4, Advance: 5},
	}
	atlas, err := BuildAtlas(glyphs, 12, 14)
	if err != nil {
		t.Fatalf("BuildAtlas: %v", err)
	}

	g, ok := atlas.Lookup('X')
	if !ok || !g.Visible {
		t.Fatalf("glyph 'X' missing or invisible")
	}
	if g.Width() != 4 || g.Height() != 4 {
		t.Fatalf("glyph box %vx%v, expected 4x4", g.Width(), g.Height())
	}

	// Every pixel inside the glyph's atlas rect must carry the mask's
	// full alpha.
	w, h := atlas.Image.Rect.Dx(), atlas.Image.Rect.Dy()
	x0, y0 := int(g.U0*float32(w)), int(g.V0*float32(h))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if a := atlas.Image.Pix[atlas.Image.PixOffset(x0+x, y0+y)+3]; a != 0xff {
				t.Errorf("atlas pixel (%d,%d): alpha %d, expected 255", x0+x, y0+y, a)
			}
		}
	}
}

func TestBuildAtlasWhiteInk(t *testing.T) {
	atlas, err := BuildAtlas(testGlyphs(), 12, 14)
	if err != nil {
		t.Fatalf("BuildAtlas: %v", err)
	}

	img := atlas.Image
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i+3] != 0 && (img.Pix[i] != 0xff || img.Pix[i+1] != 0xff || img.Pix[i+2] != 0xff) {
			t.Fatalf("pixel %d: inked pixel is not white", i/4)
		}
	}
}
