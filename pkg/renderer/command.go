// pkg/renderer/command.go
// Copyright(c) 2023-2025 overlay contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

// TextureID is an opaque handle for a registered texture. TextureNone is
// reserved for flat-colored geometry that samples no texture.
type TextureID uint32

const TextureNone TextureID = 0

// FontID is an opaque handle for a registered font (a face rasterized at
// one native pixel height).
type FontID uint32

// CommandKind discriminates the DrawCommand variants. The set is closed;
// the batcher switches exhaustively over it.
type CommandKind uint8

const (
	KindRect CommandKind = iota
	KindTriangle
	KindLine
	KindCircle
	KindText
	KindTexture
)

func (k CommandKind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindTriangle:
		return "triangle"
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindText:
		return "text"
	case KindTexture:
		return "texture"
	default:
		return "invalid"
	}
}

// DrawCommand records one submitted primitive. It carries only value data:
// resources are referenced by TextureID/FontID, never by pointer, so
// command lists are trivially copyable and can be serialized for frame
// capture. Which fields are meaningful depends on Kind; unused fields are
// zero.
type DrawCommand struct {
	Kind CommandKind `msgpack:"k"`

	// P0..P2 are, depending on Kind: rect/texture corners (P0 top-left,
	// P1 bottom-right), triangle vertices, line endpoints (P0, P1), or
	// the circle center (P0).
	P0 [2]float32 `msgpack:"p0"`
	P1 [2]float32 `msgpack:"p1,omitempty"`
	P2 [2]float32 `msgpack:"p2,omitempty"`

	Color     RGBA    `msgpack:"c"`
	Filled    bool    `msgpack:"f,omitempty"`
	Thickness float32 `msgpack:"th,omitempty"`

	Radius   float32 `msgpack:"r,omitempty"`
	Segments int32   `msgpack:"n,omitempty"`

	Text        string  `msgpack:"s,omitempty"`
	Font        FontID  `msgpack:"fo,omitempty"`
	PixelHeight float32 `msgpack:"ph,omitempty"`

	Texture TextureID  `msgpack:"t,omitempty"`
	UV0     [2]float32 `msgpack:"u0,omitempty"`
	UV1     [2]float32 `msgpack:"u1,omitempty"`
}

// CommandList accumulates the draw commands submitted during one frame.
// It is owned by a single goroutine; submission order is paint order.
type CommandList struct {
	cmds  []DrawCommand
	spare []DrawCommand
}

func (cl *CommandList) add(cmd DrawCommand) {
	cl.cmds = append(cl.cmds, cmd)
}

// Add submits an already-constructed command; replay paths use this to
// resubmit captured frames.
func (cl *CommandList) Add(cmd DrawCommand) {
	cl.add(cmd)
}

// AddRect submits an axis-aligned rectangle given its top-left and
// bottom-right corners. Outline rectangles are drawn with lines of the
// default thickness; use AddRectOutline to specify it.
func (cl *CommandList) AddRect(p0, p1 [2]float32, color RGBA, filled bool) {
	cl.add(DrawCommand{Kind: KindRect, P0: p0, P1: p1, Color: color, Filled: filled,
		Thickness: 1})
}

// AddRectOutline submits a rectangle outline with the given line
// thickness.
func (cl *CommandList) AddRectOutline(p0, p1 [2]float32, color RGBA, thickness float32) {
	cl.add(DrawCommand{Kind: KindRect, P0: p0, P1: p1, Color: color, Thickness: thickness})
}

// AddTriangle submits a triangle with the given three vertices.
func (cl *CommandList) AddTriangle(p0, p1, p2 [2]float32, color RGBA, filled bool) {
	cl.add(DrawCommand{Kind: KindTriangle, P0: p0, P1: p1, P2: p2, Color: color,
		Filled: filled, Thickness: 1})
}

// AddLine submits a line segment expanded to the given thickness;
// zero-length lines are accepted and produce no geometry.
func (cl *CommandList) AddLine(p0, p1 [2]float32, color RGBA, thickness float32) {
	cl.add(DrawCommand{Kind: KindLine, P0: p0, P1: p1, Color: color, Thickness: thickness})
}

// AddCircle submits a circle approximated with the given number of
// segments; values below the tessellation floor are bumped up to it.
func (cl *CommandList) AddCircle(center [2]float32, radius float32, color RGBA, filled bool, segments int32) {
	cl.add(DrawCommand{Kind: KindCircle, P0: center, Radius: radius, Color: color,
		Filled: filled, Segments: segments, Thickness: 1})
}

// AddText submits a text string; origin is the baseline position of the
// first glyph.
func (cl *CommandList) AddText(origin [2]float32, s string, color RGBA, font FontID, pixelHeight float32) {
	cl.add(DrawCommand{Kind: KindText, P0: origin, Text: s, Color: color, Font: font,
		PixelHeight: pixelHeight})
}

// AddTexture submits a textured quad mapping the uv rectangle (uv0, uv1)
// of the given texture onto the screen rectangle (p0, p1), modulated by
// tint.
func (cl *CommandList) AddTexture(id TextureID, p0, p1, uv0, uv1 [2]float32, tint RGBA) {
	cl.add(DrawCommand{Kind: KindTexture, Texture: id, P0: p0, P1: p1, UV0: uv0, UV1: uv1,
		Color: tint})
}

// Len returns the number of commands currently recorded.
func (cl *CommandList) Len() int { return len(cl.cmds) }

// Drain returns the commands submitted since the previous Drain and
// resets the list for the next frame. The returned slice is valid until
// the following Drain call; the list alternates between two backing
// arrays so that steady-state frames allocate nothing.
func (cl *CommandList) Drain() []DrawCommand {
	drained := cl.cmds
	cl.cmds, cl.spare = cl.spare[:0], drained
	return drained
}
