// registry_test.go
// Copyright(c) 2023-2025 overlay contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/overlaylib/overlay/pkg/log"
)

func TestRegisterTexture(t *testing.T) {
	r := NewRegistry(log.NewDiscard())

	pixels := make([]byte, 4*8*8)
	id, err := r.RegisterTexture(pixels, 8, 8)
	if err != nil {
		t.Fatalf("RegisterTexture: %v", err)
	}
	if id == TextureNone {
		t.Errorf("got TextureNone for a valid registration")
	}

	tex, ok := r.Texture(id)
	if !ok {
		t.Fatalf("registered texture not found")
	}
	if tex.Width != 8 || tex.Height != 8 {
		t.Errorf("got %dx%d, expected 8x8", tex.Width, tex.Height)
	}
}

func TestRegisterTextureBadBuffer(t *testing.T) {
	r := NewRegistry(log.NewDiscard())

	type testCase struct {
		name   string
		pixels []byte
		w, h   int
	}
	for _, tc := range []testCase{
		{name: "short", pixels: make([]byte, 10), w: 8, h: 8},
		{name: "long", pixels: make([]byte, 4*8*8+1), w: 8, h: 8},
		{name: "zero width", pixels: make([]byte, 0), w: 0, h: 8},
	} {
		_, err := r.RegisterTexture(tc.pixels, tc.w, tc.h)
		if err == nil {
			t.Errorf("%s: no error returned", tc.name)
			continue
		}
		var tre *TextureRegistrationError
		if !errors.As(err, &tre) {
			t.Errorf("%s: got %T, expected *TextureRegistrationError", tc.name, err)
		}
	}
}

func TestRegistryIdsNeverReused(t *testing.T) {
	r := NewRegistry(log.NewDiscard())

	pixels := make([]byte, 4*2*2)
	var seen []TextureID
	for i := 0; i < 4; i++ {
		id, err := r.RegisterTexture(pixels, 2, 2)
		if err != nil {
			t.Fatalf("RegisterTexture: %v", err)
		}
		for _, prev := range seen {
			if id == prev {
				t.Errorf("id %d handed out twice", id)
			}
		}
		seen = append(seen, id)
	}

	if _, ok := r.Texture(TextureNone); ok {
		t.Errorf("TextureNone should never resolve")
	}
	if _, ok := r.Texture(12345); ok {
		t.Errorf("unregistered id should not resolve")
	}
}

func TestRegistryVisitTextures(t *testing.T) {
	r := NewRegistry(log.NewDiscard())

	var want []TextureID
	for i := 2; i <= 4; i++ {
		pixels := make([]byte, 4*i*i)
		id, err := r.RegisterTexture(pixels, i, i)
		if err != nil {
			t.Fatalf("RegisterTexture: %v", err)
		}
		want = append(want, id)
	}

	var got []TextureID
	r.VisitTextures(func(tex *Texture) {
		got = append(got, tex.Id)
		if tex.Image == nil {
			t.Errorf("texture %d: nil image", tex.Id)
		}
	})

	if len(got) != len(want) {
		t.Fatalf("visited %d textures, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("visit %d: got id %d, expected registration order %d", i, got[i], want[i])
		}
	}
}

func TestRegisterFont(t *testing.T) {
	r := NewRegistry(log.NewDiscard())

	id, err := r.RegisterFont(goregular.TTF, 14)
	if err != nil {
		t.Fatalf("RegisterFont: %v", err)
	}

	font, ok := r.Font(id)
	if !ok {
		t.Fatalf("registered font not found")
	}
	if font.TexID == TextureNone {
		t.Errorf("font atlas was not registered as a texture")
	}
	if _, ok := r.Texture(font.TexID); !ok {
		t.Errorf("font atlas texture %d not resolvable", font.TexID)
	}
}

func TestRegisterFontBadData(t *testing.T) {
	r := NewRegistry(log.NewDiscard())

	_, err := r.RegisterFont([]byte("junk"), 14)
	if err == nil {
		t.Fatalf("no error for invalid font data")
	}
	var fle *FontLoadError
	if !errors.As(err, &fle) {
		t.Errorf("got %T, expected *FontLoadError", err)
	}
	if _, ok := r.Font(1); ok {
		t.Errorf("failed registration should leave the registry unchanged")
	}
}
