// pkg/renderer/font.go
// Copyright(c) 2023-2025 overlay contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Font is a registered face rasterized at one native pixel height. The
// atlas is immutable; TexID is the registry texture holding the atlas
// image.
type Font struct {
	Atlas *FontAtlas
	// PixelHeight is the native rasterization height.
	PixelHeight float32
	TexID       TextureID
	Id          FontID
}

// asciiFirst..asciiLast is the codepoint range rasterized for every font.
// Codepoints outside it fall back to the atlas's missing-glyph box; for
// overlay labels that's an acceptable trade against atlas size.
const (
	asciiFirst = ' '
	asciiLast  = '~'
)

// LoadFont parses TTF/OTF bytes and rasterizes the printable ASCII range
// at the given pixel height via golang.org/x/image/font/opentype, then
// packs the result into a FontAtlas. Failures are reported as
// *FontLoadError; they are fatal to this font only and never to a frame.
func LoadFont(ttf []byte, pixelHeight float32) (*Font, error) {
	if pixelHeight <= 0 {
		return nil, &FontLoadError{Err: fmt.Errorf("invalid pixel height %v", pixelHeight)}
	}

	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, &FontLoadError{Err: err}
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(pixelHeight),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, &FontLoadError{Err: err}
	}
	defer face.Close()

	glyphs, lineHeight, err := rasterizeRange(face, asciiFirst, asciiLast)
	if err != nil {
		return nil, &FontLoadError{Err: err}
	}

	atlas, err := BuildAtlas(glyphs, pixelHeight, lineHeight)
	if err != nil {
		return nil, &FontLoadError{Err: err}
	}

	return &Font{Atlas: atlas, PixelHeight: pixelHeight}, nil
}

// rasterizeRange renders each codepoint in [first, last] with the given
// face, producing the bitmaps and metrics the atlas adapter consumes.
func rasterizeRange(face font.Face, first, last rune) ([]RasterizedGlyph, float32, error) {
	var glyphs []RasterizedGlyph
	for ch := first; ch <= last; ch++ {
		// Rendering with the dot at the origin puts the bounds rectangle
		// in baseline-relative coordinates: Min.Y is negative above the
		// baseline.
		dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, ch)
		if !ok {
			// Not mapped by this font; the atlas fallback will cover it.
			continue
		}

		g := RasterizedGlyph{
			Codepoint: ch,
			Advance:   fixedToFloat(advance),
		}
		if !dr.Empty() {
			bm := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
			draw.Draw(bm, bm.Rect, mask, maskp, draw.Src)
			g.Bitmap = bm
			g.BearingX = float32(dr.Min.X)
			g.BearingY = float32(-dr.Min.Y)
		}
		glyphs = append(glyphs, g)
	}
	if len(glyphs) == 0 {
		return nil, 0, fmt.Errorf("no glyphs in %q-%q", first, last)
	}

	return glyphs, fixedToFloat(face.Metrics().Height), nil
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
