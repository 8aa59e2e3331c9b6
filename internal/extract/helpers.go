package extract

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/qasikfwn/limn/internal/bundle"
)

// The wire-format readers below panic on any I/O error instead of
// returning one: a short read or failed assertion here means the
// declared binary layout doesn't match the bytes on disk, which §7
// classifies as bundle-level fatal and propagates as a worker panic,
// exactly as the original's liberal use of .unwrap()/assert!() does.

func mustReadU32(r io.Reader) uint32 {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		panic(fmt.Errorf("extract: read u32: %w", err))
	}
	return binary.LittleEndian.Uint32(b[:])
}

func mustReadU64(r io.Reader) uint64 {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		panic(fmt.Errorf("extract: read u64: %w", err))
	}
	return binary.LittleEndian.Uint64(b[:])
}

func mustReadByte(e *bundle.Entry) byte {
	b, err := e.ReadByte()
	if err != nil {
		panic(fmt.Errorf("extract: read byte: %w", err))
	}
	return b
}

func mustReadFull(r io.Reader, buf []byte) {
	if _, err := io.ReadFull(r, buf); err != nil {
		panic(fmt.Errorf("extract: read %d bytes: %w", len(buf), err))
	}
}

func mustUvarint(e *bundle.Entry) uint64 {
	v, err := binary.ReadUvarint(e)
	if err != nil {
		panic(fmt.Errorf("extract: read leb128 varint: %w", err))
	}
	return v
}

func mustAssert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("extract: "+format, args...))
	}
}
