package oodle

import (
	"fmt"

	extoodle "github.com/new-world-tools/go-oodle"
)

// Library is the production Decompressor backed by a native Oodle
// shared library, resolved and loaded once at startup and shared
// read-only among worker goroutines (§4.2, §5 resource lifecycle).
// new-world-tools/go-oodle itself dlopen's the library through
// ebitengine/purego.
type Library struct {
	path string
}

// Load opens the native library at path (or, if path equals the bare
// library name, lets go-oodle search the platform default locations).
func Load(path string) (Decompressor, error) {
	if err := extoodle.Load(path); err != nil {
		return nil, fmt.Errorf("oodle: load %q: %w", path, err)
	}
	return &Library{path: path}, nil
}

// Decompress satisfies Decompressor. go-oodle allocates its own output
// buffer sized to len(dst); we copy into dst so callers can keep using
// their own reusable chunk buffer.
func (l *Library) Decompress(src, dst []byte) (int, error) {
	out, err := extoodle.Decompress(src, int64(len(dst)))
	if err != nil {
		return 0, fmt.Errorf("oodle: decompress via %q: %w", l.path, err)
	}
	n := copy(dst, out)
	return n, nil
}
