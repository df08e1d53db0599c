// cmd/overlay/main.go
// Copyright(c) 2023-2025 overlay contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// This file contains the implementation of the main() function, which
// initializes the system and then runs the render loop until the window
// is closed.

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/overlaylib/overlay/pkg/log"
	"github.com/overlaylib/overlay/pkg/math"
	"github.com/overlaylib/overlay/pkg/platform"
	"github.com/overlaylib/overlay/pkg/renderer"
	"github.com/overlaylib/overlay/pkg/util"
)

var (
	configFile = flag.String("config", "", "path to JSON configuration file")
	logLevel   = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir     = flag.String("logdir", "", "log file directory")
	fontPath   = flag.String("font", "", "TTF/OTF font file (optionally .zst compressed)")
	recordFile = flag.String("record", "", "capture each frame's draw commands to this file on exit")
	replayFile = flag.String("replay", "", "replay a captured session instead of drawing the demo")
	decorated  = flag.Bool("decorated", false, "create a normal decorated window (development)")
	opaque     = flag.Bool("opaque", false, "disable framebuffer transparency (development)")
	noVSync    = flag.Bool("novsync", false, "disable v-sync (benchmarking)")
)

func main() {
	flag.Parse()

	lg := log.New(*logLevel, *logDir)

	config, err := loadConfig(*configFile)
	if err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *fontPath != "" {
		config.FontPath = *fontPath
	}
	config.Decorated = config.Decorated || *decorated
	config.Opaque = config.Opaque || *opaque

	plat, err := platform.New(&platform.Config{
		Title:          config.Title,
		WindowSize:     config.WindowSize,
		WindowPosition: config.WindowPosition,
		Decorated:      config.Decorated,
		Opaque:         config.Opaque,
	}, lg)
	if err != nil {
		lg.Errorf("unable to create window: %v", err)
		os.Exit(1)
	}
	defer plat.Dispose()
	if *noVSync {
		plat.EnableVSync(false)
	}

	rend, err := renderer.NewOpenGL2Renderer(lg)
	if err != nil {
		lg.Errorf("unable to initialize OpenGL: %v", err)
		os.Exit(1)
	}
	defer rend.Dispose()

	registry := renderer.NewRegistry(lg)
	batcher := renderer.NewBatcher(registry, lg)

	var font renderer.FontID
	if config.FontPath != "" {
		if ttf, err := util.LoadFileBytes(config.FontPath); err != nil {
			lg.Errorf("%s: %v", config.FontPath, err)
		} else if font, err = registry.RegisterFont(ttf, config.FontHeight); err != nil {
			lg.Errorf("%s: %v", config.FontPath, err)
		}
	}

	var replay *renderer.Recording
	if *replayFile != "" {
		if replay, err = renderer.LoadRecording(*replayFile); err != nil {
			lg.Errorf("%s: %v", *replayFile, err)
			os.Exit(1)
		}
		lg.Infof("replaying %d frames from %s", len(replay.Frames), *replayFile)
	}
	var recording renderer.Recording

	// Registration is finished before the loop starts, so all registry
	// textures can be uploaded to GL up front. An unknown id maps to 0,
	// which the backend treats as untextured.
	native := make(map[renderer.TextureID]uint32)
	registry.VisitTextures(func(tex *renderer.Texture) {
		native[tex.Id] = rend.CreateTextureFromImage(tex.Image, false)
	})
	bind := func(id renderer.TextureID) uint32 { return native[id] }

	var cl renderer.CommandList
	var stats renderer.RendererStats
	statsInterval := time.Duration(config.StatsIntervalSeconds) * time.Second
	lastStats := time.Now()
	start := time.Now()
	nframes := 0

	for !plat.ShouldStop() {
		plat.ProcessEvents()

		if replay != nil && nframes >= len(replay.Frames) {
			plat.SetShouldStop()
			continue
		}

		// Draw in framebuffer coordinates so the projection and the
		// geometry agree on retina-style displays.
		fb := plat.FramebufferSize()
		w, h := int(fb[0]), int(fb[1])

		if replay != nil {
			for _, cmd := range replay.Frames[nframes] {
				cl.Add(cmd)
			}
		} else {
			drawDemo(&cl, [2]int{w, h}, time.Since(start), font)
		}

		cmds := cl.Drain()
		if *recordFile != "" {
			recording.Capture(cmds)
		}

		fo := batcher.Build(cmds)

		// The frame geometry is encoded into its own buffer and called
		// from the top-level one, which owns the clear and draw bounds.
		frame := renderer.GetCommandBuffer()
		renderer.EncodeFrame(fo, w, h, bind, frame)

		cb := renderer.GetCommandBuffer()
		cb.SetDrawBounds(math.Extent2D{P1: fb}, 1)
		cb.ClearRGBA(renderer.RGBA{})
		cb.Call(*frame)
		stats.Merge(rend.RenderCommandBuffer(cb))
		renderer.ReturnCommandBuffer(frame)
		renderer.ReturnCommandBuffer(cb)

		plat.PostRender()
		nframes++

		if statsInterval > 0 && time.Since(lastStats) > statsInterval {
			lg.Info("render stats", slog.Int("frames", nframes), slog.Any("stats", stats))
			stats = renderer.RendererStats{}
			lastStats = time.Now()
		}
	}

	if *recordFile != "" {
		if err := renderer.SaveRecording(&recording, *recordFile); err != nil {
			lg.Errorf("%s: %v", *recordFile, err)
		} else {
			lg.Infof("saved %d frames to %s", len(recording.Frames), *recordFile)
		}
	}
}

// drawDemo submits a frame of sample content: a screen border, a
// crosshair at the center, a sweeping radar-style line, and a HUD panel
// with the elapsed time.
func drawDemo(cl *renderer.CommandList, size [2]int, elapsed time.Duration, font renderer.FontID) {
	w, h := float32(size[0]), float32(size[1])
	center := [2]float32{w / 2, h / 2}

	white := renderer.RGBFromUInt8(255, 255, 255).RGBA().Scale(0.9)
	green := renderer.RGBFromHex(0x39ff14)
	panel := renderer.RGBA{R: 0.1, G: 0.1, B: 0.1, A: 0.6}

	cl.AddRectOutline([2]float32{2, 2}, [2]float32{w - 2, h - 2}, green.RGBA(), 2)

	cl.AddLine(math.Sub2f(center, [2]float32{20, 0}), math.Add2f(center, [2]float32{20, 0}), white, 1)
	cl.AddLine(math.Sub2f(center, [2]float32{0, 20}), math.Add2f(center, [2]float32{0, 20}), white, 1)
	cl.AddCircle(center, 40, white, false, 32)

	// Radar sweep, pulsing between full and dimmed green.
	angle := math.Radians(float32(elapsed.Seconds()) * 60)
	tip := math.Add2f(center, math.Scale2f([2]float32{math.Sin(angle), -math.Cos(angle)}, 200))
	pulse := 0.5 + 0.5*math.Sin(4*angle)
	cl.AddLine(center, tip, renderer.LerpRGB(pulse, green, green.Scale(0.4)).RGBA(), 2)
	cl.AddCircle(center, 200, green.RGBA(), false, 64)

	cl.AddRect([2]float32{10, 10}, [2]float32{230, 60}, panel, true)
	if font != 0 {
		label := fmt.Sprintf("elapsed %s", elapsed.Truncate(time.Second))
		cl.AddText([2]float32{20, 40}, label, white, font, 0)
	}
}
