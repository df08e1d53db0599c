// pkg/renderer/tessellate.go
// Copyright(c) 2023-2025 overlay contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"github.com/overlaylib/overlay/pkg/math"
)

// Vertex is the interleaved format handed to the backend: 2D position in
// screen pixels, texture coordinates, and an RGBA color, 32 bytes total.
type Vertex struct {
	P     [2]float32
	UV    [2]float32
	Color RGBA
}

// MinCircleSegments is the tessellation floor for circles; requests below
// it are rounded up so that degenerate polygons can't be submitted.
const MinCircleSegments = 8

// DefaultThickness is the line width used for outline primitives when the
// caller doesn't specify one.
const DefaultThickness float32 = 1

// MeshBuffer accumulates triangle-list geometry: an append-only vertex
// array plus indices into it. The tessellator and the text shaper both
// emit into MeshBuffers; the batcher keeps one per texture.
type MeshBuffer struct {
	Verts   []Vertex
	Indices []int32
}

func (m *MeshBuffer) Reset() {
	m.Verts = m.Verts[:0]
	m.Indices = m.Indices[:0]
}

// AddTriangle adds a single triangle with a flat color.
func (m *MeshBuffer) AddTriangle(p0, p1, p2 [2]float32, color RGBA) {
	idx := int32(len(m.Verts))
	m.Verts = append(m.Verts,
		Vertex{P: p0, Color: color},
		Vertex{P: p1, Color: color},
		Vertex{P: p2, Color: color})
	m.Indices = append(m.Indices, idx, idx+1, idx+2)
}

// AddQuad adds a quadrilateral with a flat color; the four vertices must
// be given in winding order. The quad is split into two triangles.
func (m *MeshBuffer) AddQuad(p0, p1, p2, p3 [2]float32, color RGBA) {
	idx := int32(len(m.Verts))
	m.Verts = append(m.Verts,
		Vertex{P: p0, Color: color},
		Vertex{P: p1, Color: color},
		Vertex{P: p2, Color: color},
		Vertex{P: p3, Color: color})
	m.Indices = append(m.Indices, idx, idx+1, idx+2, idx, idx+2, idx+3)
}

// AddTexturedQuad adds a quadrilateral with per-vertex uv coordinates and
// a flat modulation color.
func (m *MeshBuffer) AddTexturedQuad(p0, p1, p2, p3, uv0, uv1, uv2, uv3 [2]float32, color RGBA) {
	idx := int32(len(m.Verts))
	m.Verts = append(m.Verts,
		Vertex{P: p0, UV: uv0, Color: color},
		Vertex{P: p1, UV: uv1, Color: color},
		Vertex{P: p2, UV: uv2, Color: color},
		Vertex{P: p3, UV: uv3, Color: color})
	m.Indices = append(m.Indices, idx, idx+1, idx+2, idx, idx+2, idx+3)
}

// AddLine adds a line segment expanded to a quad of the given thickness,
// perpendicular to the segment direction. Zero-length lines produce no
// geometry.
func (m *MeshBuffer) AddLine(p0, p1 [2]float32, thickness float32, color RGBA) {
	dir := math.Normalize2f(math.Sub2f(p1, p0))
	if dir == [2]float32{0, 0} {
		// Degenerate; nothing to draw.
		return
	}
	perp := math.Scale2f(math.Perp2f(dir), thickness/2)
	m.AddQuad(math.Add2f(p0, perp), math.Add2f(p1, perp),
		math.Sub2f(p1, perp), math.Sub2f(p0, perp), color)
}

// circlePolygon returns the perimeter points for a circle approximated
// with max(segments, MinCircleSegments) edges.
func circlePolygon(center [2]float32, radius float32, segments int32) [][2]float32 {
	nsegs := int(segments)
	if nsegs < MinCircleSegments {
		nsegs = MinCircleSegments
	}
	unit := math.CirclePoints(nsegs)
	pts := make([][2]float32, nsegs)
	for i, u := range unit {
		pts[i] = math.Add2f(center, math.Scale2f(u, radius))
	}
	return pts
}

// Tessellate converts a single shape command into triangles appended to
// the given MeshBuffer. Text and texture commands are not geometry
// commands and are ignored here; the batcher routes them to the shaper
// and to direct quad construction respectively.
func Tessellate(cmd DrawCommand, m *MeshBuffer) {
	thickness := cmd.Thickness
	if thickness <= 0 {
		thickness = DefaultThickness
	}

	switch cmd.Kind {
	case KindRect:
		p0, p1 := cmd.P0, cmd.P1
		if cmd.Filled {
			m.AddQuad(p0, [2]float32{p1[0], p0[1]}, p1, [2]float32{p0[0], p1[1]}, cmd.Color)
		} else {
			// Four edges as thin quads. The horizontals span the full
			// outer width and the verticals run between them, so every
			// point of the outline, corners included, is covered exactly
			// once and translucent outlines blend uniformly.
			h := thickness / 2
			m.AddLine([2]float32{p0[0] - h, p0[1]}, [2]float32{p1[0] + h, p0[1]}, thickness, cmd.Color)
			m.AddLine([2]float32{p0[0] - h, p1[1]}, [2]float32{p1[0] + h, p1[1]}, thickness, cmd.Color)
			m.AddLine([2]float32{p1[0], p0[1] + h}, [2]float32{p1[0], p1[1] - h}, thickness, cmd.Color)
			m.AddLine([2]float32{p0[0], p0[1] + h}, [2]float32{p0[0], p1[1] - h}, thickness, cmd.Color)
		}

	case KindTriangle:
		if cmd.Filled {
			m.AddTriangle(cmd.P0, cmd.P1, cmd.P2, cmd.Color)
		} else {
			m.AddLine(cmd.P0, cmd.P1, thickness, cmd.Color)
			m.AddLine(cmd.P1, cmd.P2, thickness, cmd.Color)
			m.AddLine(cmd.P2, cmd.P0, thickness, cmd.Color)
		}

	case KindLine:
		m.AddLine(cmd.P0, cmd.P1, thickness, cmd.Color)

	case KindCircle:
		pts := circlePolygon(cmd.P0, cmd.Radius, cmd.Segments)
		if cmd.Filled {
			// Triangle fan from the center.
			idx := int32(len(m.Verts))
			m.Verts = append(m.Verts, Vertex{P: cmd.P0, Color: cmd.Color})
			for _, p := range pts {
				m.Verts = append(m.Verts, Vertex{P: p, Color: cmd.Color})
			}
			n := int32(len(pts))
			for i := int32(0); i < n; i++ {
				m.Indices = append(m.Indices, idx, idx+1+i, idx+1+(i+1)%n)
			}
		} else {
			for i := range pts {
				m.AddLine(pts[i], pts[(i+1)%len(pts)], thickness, cmd.Color)
			}
		}
	}
}
