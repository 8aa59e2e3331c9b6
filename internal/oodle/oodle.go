// Package oodle adapts the external Oodle-compatible LZ decompressor
// used by Compressed Block framing (bundle.CHUNK_SIZE blocks) behind a
// small interface, so the bundle decoder never talks to the native
// library directly.
package oodle

import (
	"fmt"
	"os"
	"path/filepath"
)

// Decompressor is the opaque contract every block decoder depends on.
// Implementations decompress src into dst and report the number of
// bytes actually produced (which may be less than len(dst) only for a
// bundle's final block).
type Decompressor interface {
	Decompress(src, dst []byte) (int, error)
}

// CandidatePaths returns the resolution order for locating the native
// decompressor library: the canonical name in the standard search
// path, then "../binaries/<name>" relative to the bundle directory,
// then next to a best-effort detected game install directory.
func CandidatePaths(name, bundleDir, gameInstallDir string) []string {
	paths := []string{name}
	if bundleDir != "" {
		paths = append(paths, filepath.Join(bundleDir, "..", "binaries", name))
	}
	if gameInstallDir != "" {
		paths = append(paths, filepath.Join(gameInstallDir, "binaries", name))
	}
	return paths
}

// Resolve tries each candidate path via load until one succeeds. It
// returns the last error if every candidate fails, matching the
// source's "treat failure as a fatal startup error" policy (§4.2).
func Resolve(name, bundleDir, gameInstallDir string, load func(path string) (Decompressor, error)) (Decompressor, error) {
	var lastErr error
	for _, path := range CandidatePaths(name, bundleDir, gameInstallDir) {
		if _, err := os.Stat(path); err != nil && path != name {
			lastErr = err
			continue
		}
		dec, err := load(path)
		if err == nil {
			return dec, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("oodle: could not load %q from any candidate path: %w", name, lastErr)
}
