// pkg/renderer/frame.go
// Copyright(c) 2023-2025 overlay contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"unsafe"

	"github.com/overlaylib/overlay/pkg/math"
)

// TextureBinder maps a registry TextureID to the native texture id the
// backend uploaded it under (e.g. a GL texture name). Returning 0 means
// the texture isn't resident and its batch draws untextured.
type TextureBinder func(TextureID) uint32

// EncodeFrame encodes a batched frame into the command buffer: an
// orthographic projection with the origin at the top-left of a
// width x height window, alpha blending, the frame's interleaved vertex
// and index data, and one DrawTriangles per batch with textures bound as
// each batch requires. The caller clears the framebuffer (or doesn't)
// before calling.
func EncodeFrame(fo FrameOutput, width, height int, bind TextureBinder, cb *CommandBuffer) {
	if len(fo.Batches) == 0 {
		return
	}

	proj := math.Identity3x3().Ortho(0, float32(width), float32(height), 0)
	cb.LoadProjectionMatrix(proj)
	cb.LoadModelViewMatrix(math.Identity3x3())
	cb.Viewport(0, 0, width, height)
	cb.Blend()

	vb := cb.VertexBuffer(fo.Vertices)
	ib := cb.IntBuffer(fo.Indices)

	stride := int(unsafe.Sizeof(Vertex{}))
	cb.VertexArray(vb+int(unsafe.Offsetof(Vertex{}.P)), 2, stride)
	cb.TexCoordArray(vb+int(unsafe.Offsetof(Vertex{}.UV)), 2, stride)
	cb.RGBA32Array(vb+int(unsafe.Offsetof(Vertex{}.Color)), 4, stride)

	for _, batch := range fo.Batches {
		var native uint32
		if batch.Texture != TextureNone && bind != nil {
			native = bind(batch.Texture)
		}
		if native != 0 {
			cb.EnableTexture(native)
		} else {
			cb.DisableTexture()
		}

		cb.DrawTriangles(ib+4*int(batch.IndexOffset), int(batch.IndexCount))
	}

	cb.DisableTexCoordArray()
	cb.DisableColorArray()
	cb.DisableVertexArray()
	cb.DisableTexture()
	cb.DisableBlend()
}
