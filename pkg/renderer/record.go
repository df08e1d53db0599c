// pkg/renderer/record.go
// Copyright(c) 2023-2025 overlay contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// Recording captures the draw commands of a sequence of frames. Since
// DrawCommands are plain values that reference resources only by id, a
// recording replays deterministically against any registry holding the
// same resources under the same ids; this is how captured sessions are
// turned into regression cases.
type Recording struct {
	Frames [][]DrawCommand `msgpack:"frames"`
}

// Capture appends one frame's drained commands. The slice is copied, so
// it may be handed back to a CommandList afterwards.
func (r *Recording) Capture(cmds []DrawCommand) {
	frame := make([]DrawCommand, len(cmds))
	copy(frame, cmds)
	r.Frames = append(r.Frames, frame)
}

// Encode writes the recording in msgpack format.
func (r *Recording) Encode(w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(r)
}

// DecodeRecording reads a recording written by Encode.
func DecodeRecording(rd io.Reader) (*Recording, error) {
	var r Recording
	if err := msgpack.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decoding recording: %w", err)
	}
	return &r, nil
}

// SaveRecording writes the recording to the given file.
func SaveRecording(r *Recording, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadRecording reads a recording saved with SaveRecording.
func LoadRecording(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeRecording(f)
}
