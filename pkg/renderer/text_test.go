// text_test.go
// Copyright(c) 2023-2025 overlay contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"reflect"
	"testing"
)

func testAtlas(t *testing.T) *FontAtlas {
	t.Helper()
	atlas, err := BuildAtlas(testGlyphs(), 12, 14)
	if err != nil {
		t.Fatalf("BuildAtlas: %v", err)
	}
	return atlas
}

func TestShapeTextAdvances(t *testing.T) {
	atlas := testAtlas(t)
	origin := [2]float32{100, 200}
	quads := ShapeText(atlas, "AB", origin, atlas.NativeHeight)

	if len(quads) != 2 {
		t.Fatalf("got %d quads, expected 2", len(quads))
	}

	a, _ := atlas.Lookup('A')
	if got := quads[1].P0[0] - quads[0].P0[0]; got != a.Advance {
		t.Errorf("second glyph offset: got %v, expected advance %v", got, a.Advance)
	}
	if quads[0].P0[0] != origin[0]+a.X0 {
		t.Errorf("first glyph x: got %v, expected %v", quads[0].P0[0], origin[0]+a.X0)
	}
	// Glyph tops are above the baseline in y-down coordinates.
	if quads[0].P0[1] >= origin[1] {
		t.Errorf("glyph top %v should be above baseline %v", quads[0].P0[1], origin[1])
	}
}

func TestShapeTextNewline(t *testing.T) {
	atlas := testAtlas(t)
	origin := [2]float32{10, 20}
	quads := ShapeText(atlas, "A\nB", origin, atlas.NativeHeight)

	if len(quads) != 2 {
		t.Fatalf("got %d quads, expected 2", len(quads))
	}

	a, _ := atlas.Lookup('A')
	b, _ := atlas.Lookup('B')
	if quads[1].P0[0] != origin[0]+b.X0 {
		t.Errorf("glyph after newline: x %v, expected reset to %v", quads[1].P0[0], origin[0]+b.X0)
	}
	if got := quads[1].P0[1] - quads[0].P0[1]; got != atlas.LineHeight+(b.Y0-a.Y0) {
		t.Errorf("glyph after newline: y moved by %v, expected line height %v", got, atlas.LineHeight)
	}
}

func TestShapeTextInvisibleAdvances(t *testing.T) {
	atlas := testAtlas(t)
	quads := ShapeText(atlas, "A B", [2]float32{0, 0}, atlas.NativeHeight)

	if len(quads) != 2 {
		t.Fatalf("got %d quads, expected 2 (space has no ink)", len(quads))
	}
	a, _ := atlas.Lookup('A')
	space, _ := atlas.Lookup(' ')
	if got := quads[1].P0[0] - quads[0].P0[0]; got != a.Advance+space.Advance {
		t.Errorf("space advance: glyphs %v apart, expected %v", got, a.Advance+space.Advance)
	}
}

func TestShapeTextFallback(t *testing.T) {
	atlas := testAtlas(t)
	quads := ShapeText(atlas, "é", [2]float32{0, 0}, atlas.NativeHeight)

	if len(quads) != 1 {
		t.Fatalf("got %d quads, expected the fallback box", len(quads))
	}
	fb := atlas.Fallback()
	if quads[0].UV0 != [2]float32{fb.U0, fb.V0} {
		t.Errorf("unmapped codepoint did not shape as the fallback box")
	}
}

func TestShapeTextScaling(t *testing.T) {
	atlas := testAtlas(t)
	native := ShapeText(atlas, "A", [2]float32{0, 0}, atlas.NativeHeight)
	double := ShapeText(atlas, "A", [2]float32{0, 0}, 2*atlas.NativeHeight)

	if len(native) != 1 || len(double) != 1 {
		t.Fatalf("expected one quad each")
	}
	nw := native[0].P1[0] - native[0].P0[0]
	dw := double[0].P1[0] - double[0].P0[0]
	if dw != 2*nw {
		t.Errorf("doubled pixel height: quad width %v, expected %v", dw, 2*nw)
	}
	// The uv rect is unchanged; only geometry scales.
	if native[0].UV0 != double[0].UV0 || native[0].UV1 != double[0].UV1 {
		t.Errorf("uv coordinates should not change with pixel height")
	}
}

func TestShapeTextIdempotent(t *testing.T) {
	atlas := testAtlas(t)
	first := ShapeText(atlas, "ABgA B", [2]float32{3, 4}, atlas.NativeHeight)
	second := ShapeText(atlas, "ABgA B", [2]float32{3, 4}, atlas.NativeHeight)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("shaping the same run twice gave different results")
	}
}

func TestBoundText(t *testing.T) {
	atlas := testAtlas(t)
	a, _ := atlas.Lookup('A')
	b, _ := atlas.Lookup('B')

	w, h := BoundText(atlas, "AB", atlas.NativeHeight)
	if w != a.Advance+b.Advance {
		t.Errorf("width: got %v, expected %v", w, a.Advance+b.Advance)
	}
	if h != atlas.LineHeight {
		t.Errorf("height: got %v, expected one line height %v", h, atlas.LineHeight)
	}

	_, h2 := BoundText(atlas, "A\nB", atlas.NativeHeight)
	if h2 != 2*atlas.LineHeight {
		t.Errorf("two-line height: got %v, expected %v", h2, 2*atlas.LineHeight)
	}
}

func TestCenteredOrigin(t *testing.T) {
	atlas := testAtlas(t)
	a, _ := atlas.Lookup('A')
	b, _ := atlas.Lookup('B')
	center := [2]float32{100, 50}

	origin := CenteredOrigin(atlas, "AB", atlas.NativeHeight, center)

	// A single line is half its advance to the left of center, with the
	// baseline on the center itself.
	if want := center[0] - (a.Advance+b.Advance)/2; origin[0] != want {
		t.Errorf("origin x: got %v, expected %v", origin[0], want)
	}
	if origin[1] != center[1] {
		t.Errorf("origin y: got %v, expected baseline at %v", origin[1], center[1])
	}

	// With two lines the first baseline moves half a line height down
	// so the block stays centered.
	origin2 := CenteredOrigin(atlas, "A\nB", atlas.NativeHeight, center)
	if want := center[1] + atlas.LineHeight/2; origin2[1] != want {
		t.Errorf("two-line origin y: got %v, expected %v", origin2[1], want)
	}
}

func TestShapeCache(t *testing.T) {
	atlas := testAtlas(t)
	cache := NewShapeCache(8)

	first := cache.Shape(atlas, "AB", [2]float32{1, 2}, atlas.NativeHeight)
	second := cache.Shape(atlas, "AB", [2]float32{1, 2}, atlas.NativeHeight)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached shape differs from original")
	}

	direct := ShapeText(atlas, "AB", [2]float32{1, 2}, atlas.NativeHeight)
	if !reflect.DeepEqual(first, direct) {
		t.Errorf("cached shape differs from direct shaping")
	}

	other := cache.Shape(atlas, "AB", [2]float32{9, 9}, atlas.NativeHeight)
	if reflect.DeepEqual(first, other) {
		t.Errorf("different origins should shape differently")
	}
}
