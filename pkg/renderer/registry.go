// pkg/renderer/registry.go
// Copyright(c) 2023-2025 overlay contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"image"

	"github.com/overlaylib/overlay/pkg/log"
)

// Texture is a registered RGBA image, identified by the TextureID the
// registry handed out. The image is retained so a backend can (re)upload
// it whenever a GL context comes or goes.
type Texture struct {
	Id     TextureID
	Image  *image.RGBA
	Width  int
	Height int
}

// Registry owns the texture and font tables for one drawing context. IDs
// are handed out monotonically and never reused, so a stale id from a
// previous frame can never alias a newer resource; stale lookups just
// miss. The registry is not safe for concurrent use; like the command
// list, it belongs to the drawing goroutine.
type Registry struct {
	textures map[TextureID]*Texture
	fonts    map[FontID]*Font
	order    []TextureID

	nextTexture TextureID
	nextFont    FontID

	lg *log.Logger
}

func NewRegistry(lg *log.Logger) *Registry {
	return &Registry{
		textures:    make(map[TextureID]*Texture),
		fonts:       make(map[FontID]*Font),
		nextTexture: TextureNone + 1,
		nextFont:    1,
		lg:          lg,
	}
}

// RegisterTexture registers a tightly-packed RGBA pixel buffer of the
// given dimensions and returns its id. The buffer length must be exactly
// 4*width*height bytes; anything else is a *TextureRegistrationError.
// The pixels are copied, so the caller's buffer may be reused.
func (r *Registry) RegisterTexture(pixels []byte, width, height int) (TextureID, error) {
	if width <= 0 || height <= 0 || len(pixels) != 4*width*height {
		return TextureNone, &TextureRegistrationError{
			Width: width, Height: height, Got: len(pixels), Want: 4 * width * height,
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)
	return r.registerImage(img), nil
}

// RegisterImage registers an existing RGBA image without copying it; the
// caller must not modify the image afterwards.
func (r *Registry) RegisterImage(img *image.RGBA) TextureID {
	return r.registerImage(img)
}

func (r *Registry) registerImage(img *image.RGBA) TextureID {
	id := r.nextTexture
	r.nextTexture++

	r.textures[id] = &Texture{
		Id:     id,
		Image:  img,
		Width:  img.Rect.Dx(),
		Height: img.Rect.Dy(),
	}
	r.order = append(r.order, id)

	r.lg.Debugf("registered texture %d: %dx%d", id, img.Rect.Dx(), img.Rect.Dy())
	return id
}

// RegisterFont parses and rasterizes a TTF/OTF font at the given pixel
// height, registers its atlas image as a texture, and returns the font's
// id. Errors are *FontLoadError and leave the registry unchanged.
func (r *Registry) RegisterFont(ttf []byte, pixelHeight float32) (FontID, error) {
	font, err := LoadFont(ttf, pixelHeight)
	if err != nil {
		return 0, err
	}

	font.TexID = r.registerImage(font.Atlas.Image)
	font.Id = r.nextFont
	r.nextFont++
	r.fonts[font.Id] = font

	r.lg.Debugf("registered font %d: height %v, %d glyphs, atlas texture %d",
		font.Id, pixelHeight, font.Atlas.Glyphs(), font.TexID)
	return font.Id, nil
}

// Texture returns the registered texture for the id, or false for ids
// that were never handed out (including TextureNone).
func (r *Registry) Texture(id TextureID) (*Texture, bool) {
	t, ok := r.textures[id]
	return t, ok
}

// Font returns the registered font for the id, or false.
func (r *Registry) Font(id FontID) (*Font, bool) {
	f, ok := r.fonts[id]
	return f, ok
}

// VisitTextures calls the callback for each registered texture in
// registration order; backends use this to upload everything after a
// context (re)build.
func (r *Registry) VisitTextures(visit func(*Texture)) {
	for _, id := range r.order {
		visit(r.textures[id])
	}
}
