// pkg/platform/glfw.go
// Copyright(c) 2023-2025 overlay contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package platform

import (
	"fmt"
	"runtime"

	"github.com/overlaylib/overlay/pkg/log"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW event handling and context calls must run on the main OS thread.
	runtime.LockOSThread()
}

// glfwPlatform implements the Platform interface using GLFW.
type glfwPlatform struct {
	window *glfw.Window
	config *Config
	lg     *log.Logger
}

type Config struct {
	Title      string
	WindowSize [2]int
	// WindowPosition places the overlay; a typical use is covering one
	// monitor or one target application's window.
	WindowPosition [2]int

	// Decorated and Opaque are off for the usual transparent overlay;
	// turning them on gives a normal window, which is handy for
	// development.
	Decorated bool
	Opaque    bool
}

// New returns a Platform implemented with an overlay window of the
// specified size at the specified position: undecorated, always on top,
// and with a transparent framebuffer so that cleared regions show the
// desktop behind. Making the window click-through is compositor-specific
// and out of scope here.
func New(config *Config, lg *log.Logger) (Platform, error) {
	lg.Info("Starting GLFW initialization")
	err := glfw.Init()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}
	lg.Infof("GLFW: %s", glfw.GetVersionString())

	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	vm := glfw.GetPrimaryMonitor().GetVideoMode()
	if config.WindowSize[0] == 0 || config.WindowSize[1] == 0 {
		config.WindowSize = [2]int{vm.Width, vm.Height}
	}
	if config.WindowPosition[0] < 0 || config.WindowPosition[1] < 0 ||
		config.WindowPosition[0] > vm.Width || config.WindowPosition[1] > vm.Height {
		config.WindowPosition = [2]int{0, 0}
	}

	// Start with an invisible window so that we can position it first.
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Decorated, boolHint(config.Decorated))
	glfw.WindowHint(glfw.Floating, glfw.True)
	glfw.WindowHint(glfw.TransparentFramebuffer, boolHint(!config.Opaque))
	glfw.WindowHint(glfw.FocusOnShow, glfw.False)
	// Disable GLFW_AUTO_ICONIFY so the always-on-top window doesn't
	// minimize when something else takes focus.
	glfw.WindowHint(glfw.AutoIconify, glfw.False)

	window, err := glfw.CreateWindow(config.WindowSize[0], config.WindowSize[1], config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	window.SetPos(config.WindowPosition[0], config.WindowPosition[1])
	window.Show()

	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	lg.Info("Finished GLFW initialization")
	return &glfwPlatform{window: window, config: config, lg: lg}, nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func (g *glfwPlatform) ProcessEvents() bool {
	glfw.PollEvents()
	return true
}

func (g *glfwPlatform) PostRender() {
	g.window.SwapBuffers()
}

func (g *glfwPlatform) ShouldStop() bool {
	return g.window.ShouldClose()
}

func (g *glfwPlatform) SetShouldStop() {
	g.window.SetShouldClose(true)
}

func (g *glfwPlatform) WindowSize() [2]int {
	w, h := g.window.GetSize()
	return [2]int{w, h}
}

func (g *glfwPlatform) FramebufferSize() [2]float32 {
	w, h := g.window.GetFramebufferSize()
	return [2]float32{float32(w), float32(h)}
}

func (g *glfwPlatform) DPIScale() float32 {
	if runtime.GOOS == "windows" {
		return 1
	}
	return g.FramebufferSize()[0] / float32(g.WindowSize()[0])
}

func (g *glfwPlatform) EnableVSync(sync bool) {
	if sync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

func (g *glfwPlatform) Dispose() {
	g.window.Destroy()
	glfw.Terminate()
}
