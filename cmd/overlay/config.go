// cmd/overlay/config.go
// Copyright(c) 2023-2025 overlay contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config collects the overlay's startup settings. It is loaded from an
// optional JSON file and then overridden by command-line flags.
type Config struct {
	Title          string `json:"title"`
	WindowSize     [2]int `json:"window_size"`
	WindowPosition [2]int `json:"window_position"`

	// FontPath points at a TTF/OTF file, optionally zstd-compressed with
	// a .zst extension. Empty means no text is drawn.
	FontPath   string  `json:"font_path"`
	FontHeight float32 `json:"font_height"`

	// StatsIntervalSeconds is how often render statistics are logged;
	// zero disables them.
	StatsIntervalSeconds int `json:"stats_interval_seconds"`

	Decorated bool `json:"decorated"`
	Opaque    bool `json:"opaque"`
}

func defaultConfig() Config {
	return Config{
		Title:                "overlay",
		WindowSize:           [2]int{1280, 720},
		FontHeight:           18,
		StatsIntervalSeconds: 10,
	}
}

// loadConfig returns the defaults overlaid with the given JSON file, if
// any.
func loadConfig(path string) (Config, error) {
	config := defaultConfig()
	if path == "" {
		return config, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}
	if err := json.Unmarshal(b, &config); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	if config.FontHeight <= 0 {
		return config, fmt.Errorf("%s: font_height must be positive", path)
	}
	return config, nil
}
