// pkg/renderer/errors.go
// Copyright(c) 2023-2025 overlay contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import "fmt"

// The error taxonomy is intentionally small: resource registration can
// fail fast, but per-frame batching never returns an error. Degenerate
// geometry (zero-length lines, empty strings, zero-radius circles) just
// produces no output, and commands that reference unregistered resources
// are recovered locally with fallback geometry.

// FontLoadError indicates that font bytes could not be parsed or that
// glyph rasterization failed. It is fatal to that font registration only.
type FontLoadError struct {
	Err error
}

func (e *FontLoadError) Error() string {
	return fmt.Sprintf("font load failed: %v", e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// TextureRegistrationError indicates an invalid pixel buffer was passed to
// RegisterTexture. It is fatal to that texture registration only.
type TextureRegistrationError struct {
	Width, Height int
	Got, Want     int
}

func (e *TextureRegistrationError) Error() string {
	return fmt.Sprintf("texture registration failed: %dx%d RGBA texture needs %d bytes, got %d",
		e.Width, e.Height, e.Want, e.Got)
}
