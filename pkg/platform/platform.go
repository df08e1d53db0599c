// pkg/platform/platform.go
// Copyright(c) 2023-2025 overlay contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package platform

// Platform is the interface that abstracts the windowing system: creating
// the overlay window, pumping its events, and presenting frames. Input
// handling is deliberately absent; overlay windows pass clicks through to
// whatever is underneath them.
type Platform interface {
	// ProcessEvents handles all pending window events. Returns true if
	// there were any events and false otherwise.
	ProcessEvents() bool
	// PostRender performs the buffer swap.
	PostRender()
	// ShouldStop returns true if the window is to be closed.
	ShouldStop() bool
	// SetShouldStop requests that the render loop exit.
	SetShouldStop()
	// WindowSize returns the size of the window in screen coordinates.
	WindowSize() [2]int
	// FramebufferSize returns the dimension of the framebuffer, which may
	// differ from WindowSize on retina-style displays.
	FramebufferSize() [2]float32
	// DPIScale returns the ratio of framebuffer to window resolution.
	DPIScale() float32
	// EnableVSync specifies whether v-sync should be used when rendering;
	// v-sync is on by default and should only be disabled for benchmarking.
	EnableVSync(sync bool)
	// Dispose is called when the application is shutting down and is when
	// resources are freed.
	Dispose()
}
