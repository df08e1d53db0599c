// pkg/util/resources.go
// Copyright(c) 2023-2025 overlay contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// LoadFileBytes reads the file at the given path, decompressing it if it
// is zstd compressed (".zst" suffix). Bundled fonts are generally stored
// compressed, so this is the one place that needs to know about that.
func LoadFileBytes(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if filepath.Ext(path) == ".zst" {
		return DecompressZstd(b)
	}

	return b, nil
}

// DecompressZstd decompresses a zstd-compressed byte slice.
func DecompressZstd(b []byte) ([]byte, error) {
	zr, err := zstd.NewReader(bytes.NewReader(b), zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	defer zr.Close()

	return io.ReadAll(zr)
}

// CompressZstd compresses the given byte slice with zstd.
func CompressZstd(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("zstd compress: %w", err)
	}
	if _, err := zw.Write(b); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
