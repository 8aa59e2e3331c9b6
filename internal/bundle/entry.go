package bundle

import (
	"fmt"
	"io"

	"github.com/qasikfwn/limn/internal/hash"
)

// Entry is the reader view handed to a format parser: the remaining
// variant descriptors for the current file, its logical name hash, and
// a byte stream bounded to exactly the concatenated variant bodies
// (§3, §4.3).
type Entry struct {
	d         *Decoder
	remaining int
	variants  []Variant
	nameHash  hash.Long
}

// Variants returns the file's variant descriptors.
func (e *Entry) Variants() []Variant {
	return e.variants
}

// NameHash returns the file's logical name hash.
func (e *Entry) NameHash() hash.Long {
	return e.nameHash
}

// Name renders the name hash as the hex string a parser falls back to
// when the dictionary has no entry for it.
func (e *Entry) Name() string {
	return fmt.Sprintf("%016x", uint64(e.nameHash))
}

// Remaining reports how many body bytes have not yet been read.
func (e *Entry) Remaining() int {
	return e.remaining
}

// Read implements io.Reader, serving bytes from the decoder's current
// decompressed chunk and pulling further blocks as needed, never
// returning more than the entry's declared remaining byte count.
func (e *Entry) Read(p []byte) (int, error) {
	if e.remaining == 0 {
		return 0, io.EOF
	}
	if len(p) > e.remaining {
		p = p[:e.remaining]
	}
	if e.d.chunkPos >= e.d.chunkLen {
		if err := e.d.nextBlock(); err != nil {
			return 0, err
		}
	}
	n := copy(p, e.d.chunk[e.d.chunkPos:e.d.chunkLen])
	e.d.chunkPos += n
	e.remaining -= n
	return n, nil
}

// ReadByte implements io.ByteReader, which LEB128 decoding needs.
func (e *Entry) ReadByte() (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(e, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}
