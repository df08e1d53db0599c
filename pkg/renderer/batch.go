// pkg/renderer/batch.go
// Copyright(c) 2023-2025 overlay contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"github.com/overlaylib/overlay/pkg/log"
)

// Batch is one draw call's worth of a frame: a run of indices into the
// frame's shared vertex array, all sampling the same texture (or none).
type Batch struct {
	Texture     TextureID
	IndexOffset int32
	IndexCount  int32
}

// FrameOutput is a finished frame: a single vertex array, a single index
// array, and the ordered batches that partition the indices by texture.
// It references no resources other than by id and is safe to hand to a
// render thread or to serialize for capture.
type FrameOutput struct {
	Vertices []Vertex
	Indices  []int32
	Batches  []Batch
}

// Batcher converts a frame's drained command list into a FrameOutput. It
// groups geometry by texture while preserving the relative paint order
// within each texture; the batches themselves are ordered by the first
// command that touched each texture. Ordering across different textures
// is therefore not strictly paint order; overlay content is almost
// entirely flat-colored plus text, where this never shows, and it cuts
// draw calls to one per texture.
//
// A Batcher is reused frame to frame so the per-texture buffers reach a
// steady state and stop allocating. It is owned by a single goroutine.
type Batcher struct {
	registry *Registry
	shapes   *ShapeCache
	lg       *log.Logger

	buckets map[TextureID]*bucketMesh
	order   []TextureID
}

type bucketMesh struct {
	MeshBuffer
	touched bool
}

func NewBatcher(registry *Registry, lg *log.Logger) *Batcher {
	return &Batcher{
		registry: registry,
		shapes:   NewShapeCache(DefaultShapeCacheSize),
		lg:       lg,
		buckets:  make(map[TextureID]*bucketMesh),
	}
}

// bucket returns the MeshBuffer for the texture, creating it and
// recording first-seen order as needed.
func (b *Batcher) bucket(id TextureID) *MeshBuffer {
	m, ok := b.buckets[id]
	if !ok {
		m = &bucketMesh{}
		b.buckets[id] = m
	}
	if !m.touched {
		m.touched = true
		b.order = append(b.order, id)
	}
	return &m.MeshBuffer
}

// Build consumes one frame's commands and produces its FrameOutput. The
// same command list always produces the same output; an empty list
// produces an empty frame. Commands referencing unknown resources never
// fail the frame: an unregistered texture id draws as a flat tinted quad
// and an unregistered font id draws nothing, each with a debug log.
func (b *Batcher) Build(cmds []DrawCommand) FrameOutput {
	for _, m := range b.buckets {
		m.Reset()
		m.touched = false
	}
	b.order = b.order[:0]

	for _, cmd := range cmds {
		switch cmd.Kind {
		case KindText:
			b.buildText(cmd)
		case KindTexture:
			b.buildTexture(cmd)
		default:
			Tessellate(cmd, b.bucket(TextureNone))
		}
	}

	return b.flatten()
}

func (b *Batcher) buildText(cmd DrawCommand) {
	font, ok := b.registry.Font(cmd.Font)
	if !ok {
		b.lg.Debugf("text %q: font %d not registered; skipping", cmd.Text, cmd.Font)
		return
	}

	height := cmd.PixelHeight
	if height <= 0 {
		height = font.PixelHeight
	}

	quads := b.shapes.Shape(font.Atlas, cmd.Text, cmd.P0, height)
	if len(quads) == 0 {
		return
	}

	m := b.bucket(font.TexID)
	for _, q := range quads {
		m.AddTexturedQuad(q.P0, [2]float32{q.P1[0], q.P0[1]}, q.P1, [2]float32{q.P0[0], q.P1[1]},
			q.UV0, [2]float32{q.UV1[0], q.UV0[1]}, q.UV1, [2]float32{q.UV0[0], q.UV1[1]},
			cmd.Color)
	}
}

func (b *Batcher) buildTexture(cmd DrawCommand) {
	p0, p1 := cmd.P0, cmd.P1
	if _, ok := b.registry.Texture(cmd.Texture); !ok {
		// Draw the footprint as a flat quad so missing art is visible on
		// screen rather than silently absent.
		b.lg.Debugf("texture %d not registered; drawing flat quad", cmd.Texture)
		b.bucket(TextureNone).AddQuad(p0, [2]float32{p1[0], p0[1]}, p1, [2]float32{p0[0], p1[1]},
			cmd.Color)
		return
	}

	uv0, uv1 := cmd.UV0, cmd.UV1
	b.bucket(cmd.Texture).AddTexturedQuad(
		p0, [2]float32{p1[0], p0[1]}, p1, [2]float32{p0[0], p1[1]},
		uv0, [2]float32{uv1[0], uv0[1]}, uv1, [2]float32{uv0[0], uv1[1]},
		cmd.Color)
}

// flatten copies the per-texture buffers into the frame's shared arrays,
// rebasing each bucket's indices past the vertices already emitted.
func (b *Batcher) flatten() FrameOutput {
	var fo FrameOutput
	for _, id := range b.order {
		m := b.buckets[id]
		if len(m.Indices) == 0 {
			continue
		}

		base := int32(len(fo.Vertices))
		fo.Vertices = append(fo.Vertices, m.Verts...)

		offset := int32(len(fo.Indices))
		for _, idx := range m.Indices {
			fo.Indices = append(fo.Indices, base+idx)
		}

		fo.Batches = append(fo.Batches, Batch{
			Texture:     id,
			IndexOffset: offset,
			IndexCount:  int32(len(m.Indices)),
		})
	}
	return fo
}
