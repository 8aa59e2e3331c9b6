// Package chunkio provides a buffered, seekable byte reader over a
// single externally supplied window buffer, sized for bundle's
// CHUNK_SIZE framing so the bundle decoder never needs to double-buffer
// a block of compressed or decompressed data.
package chunkio

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Reader is a buffered reader backed by a caller-owned window buffer.
// It performs no internal allocation: every read copies from the
// current window, refilling that same window whenever the read runs
// past its end.
type Reader struct {
	src io.ReadSeeker
	buf []byte // window buffer, owned by the caller

	winStart int64 // file offset of buf[0]
	winLen   int   // valid bytes in buf, starting at winStart
	pos      int64 // current logical read position
}

// New wraps src with a window buffer buf. buf must have length >= 1;
// callers servicing bundle.CHUNK_SIZE framing should pass a buffer of
// at least that length so a single block never needs more than one
// refill.
func New(src io.ReadSeeker, buf []byte) *Reader {
	return &Reader{src: src, buf: buf}
}

// Seek repositions the reader. The current window is invalidated; the
// next read triggers a refill at the new position.
func (r *Reader) Seek(offset int64) error {
	if offset < 0 {
		return fmt.Errorf("chunkio: negative seek offset %d", offset)
	}
	r.pos = offset
	r.winLen = 0
	return nil
}

// Pos reports the current logical read position.
func (r *Reader) Pos() int64 {
	return r.pos
}

func (r *Reader) fill() error {
	if _, err := r.src.Seek(r.pos, io.SeekStart); err != nil {
		return fmt.Errorf("chunkio: seek to %d: %w", r.pos, err)
	}
	n, err := io.ReadFull(r.src, r.buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("chunkio: fill at %d: %w", r.pos, err)
	}
	r.winStart = r.pos
	r.winLen = n
	return nil
}

// ReadExact fills dst completely, refilling the window as needed. It
// returns io.ErrUnexpectedEOF (wrapped with position context) on a
// short read.
func (r *Reader) ReadExact(dst []byte) error {
	need := len(dst)
	filled := 0
	for filled < need {
		avail := int(r.winStart+int64(r.winLen) - r.pos)
		if avail <= 0 {
			if err := r.fill(); err != nil {
				return err
			}
			avail = r.winLen
			if avail <= 0 {
				return fmt.Errorf("chunkio: read %d bytes at %d: %w", need, r.pos, io.ErrUnexpectedEOF)
			}
		}

		off := int(r.pos - r.winStart)
		n := copy(dst[filled:], r.buf[off:r.winLen])
		if n == 0 {
			return fmt.Errorf("chunkio: read %d bytes at %d: %w", need, r.pos, io.ErrUnexpectedEOF)
		}
		filled += n
		r.pos += int64(n)
	}
	return nil
}

// ReadU32LE reads a little-endian uint32.
func (r *Reader) ReadU32LE() (uint32, error) {
	var b [4]byte
	if err := r.ReadExact(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// ReadU64LE reads a little-endian uint64.
func (r *Reader) ReadU64LE() (uint64, error) {
	var b [8]byte
	if err := r.ReadExact(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
