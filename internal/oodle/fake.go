package oodle

import "fmt"

// FakeCodec is a test double standing in for the native library: it
// treats src as already-decompressed bytes and copies it into dst
// verbatim. Tests exercise the block-framing state machine against it
// instead of needing a real Oodle binary, per the "substitute an
// identity or fake codec" guidance (§9).
type FakeCodec struct{}

// Decompress copies src into dst, failing if dst is too small.
func (FakeCodec) Decompress(src, dst []byte) (int, error) {
	if len(src) > len(dst) {
		return 0, fmt.Errorf("oodle: fake codec dst too small (%d < %d)", len(dst), len(src))
	}
	return copy(dst, src), nil
}
