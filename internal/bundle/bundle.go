// Package bundle implements the Bundle Decoder: given a seekable
// source it parses the bundle header, decompresses the shared block
// stream, and exposes a forward-only iterator of (FileRecord, Entry)
// pairs (§4.3).
package bundle

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/qasikfwn/limn/internal/chunkio"
	"github.com/qasikfwn/limn/internal/hash"
	"github.com/qasikfwn/limn/internal/oodle"
)

// ChunkSize is the maximum decompressed size of a single on-disk
// compressed block (GLOSSARY).
const ChunkSize = 0x10000

const (
	headerSize      = 12 // magic/version u32, num_files u32, unknown u32
	fileRecordSize  = 24 // ext_hash u64, name_hash u64, extension_index u32, reserved u32
	variantDescSize = 12 // kind u32, body_size u32, reserved u32
)

// FileRecord is a single file's metadata from the bundle index (§3).
type FileRecord struct {
	ExtHash        hash.Long
	NameHash       hash.Long
	ExtensionIndex uint32
}

// Variant describes one of a file's parallel body streams (GLOSSARY).
type Variant struct {
	Kind     uint32
	BodySize uint32
}

type state int

const (
	stateInit state = iota
	stateIterating
	stateDone
)

// Decoder walks a bundle: Init reads the header and materializes the
// index, Iterating yields one Entry per file in index order, Done once
// every file has been yielded (§4.3).
type Decoder struct {
	cr    *chunkio.Reader
	codec oodle.Decompressor

	compressed []byte // scratch, len ChunkSize
	chunk      []byte // scratch, len ChunkSize
	chunkLen   int
	chunkPos   int
	discard    []byte // scratch for skipping unread entry tails

	records []FileRecord
	idx     int
	state   state

	pending *Entry
}

// Open parses the bundle header and index from src, using winBuf as
// the Chunk Reader's window (len(winBuf) should be >= ChunkSize) and
// codec to decompress blocks.
func Open(src io.ReadSeeker, winBuf []byte, codec oodle.Decompressor) (*Decoder, error) {
	d := &Decoder{
		cr:         chunkio.New(src, winBuf),
		codec:      codec,
		compressed: make([]byte, ChunkSize),
		chunk:      make([]byte, ChunkSize),
		discard:    make([]byte, ChunkSize),
	}

	var hdr [3]uint32
	for i := range hdr {
		v, err := d.cr.ReadU32LE()
		if err != nil {
			return nil, fmt.Errorf("bundle: read header word %d: %w", i, err)
		}
		hdr[i] = v
	}
	numFiles := hdr[1]

	indexBuf := make([]byte, int(numFiles)*fileRecordSize)
	if err := d.readStream(indexBuf); err != nil {
		return nil, fmt.Errorf("bundle: read index (%d files): %w", numFiles, err)
	}

	d.records = make([]FileRecord, numFiles)
	for i := range d.records {
		off := i * fileRecordSize
		d.records[i] = FileRecord{
			ExtHash:        hash.Long(binary.LittleEndian.Uint64(indexBuf[off:])),
			NameHash:       hash.Long(binary.LittleEndian.Uint64(indexBuf[off+8:])),
			ExtensionIndex: binary.LittleEndian.Uint32(indexBuf[off+16:]),
		}
	}

	d.state = stateIterating
	return d, nil
}

// Index returns the parsed file index in on-disk order.
func (d *Decoder) Index() []FileRecord {
	return d.records
}

func (d *Decoder) nextBlock() error {
	compLen, err := d.cr.ReadU32LE()
	if err != nil {
		return fmt.Errorf("bundle: read block length: %w", err)
	}
	if compLen > ChunkSize {
		return fmt.Errorf("bundle: block compressed length %d exceeds chunk size %d", compLen, ChunkSize)
	}

	if compLen == ChunkSize {
		if err := d.cr.ReadExact(d.chunk[:ChunkSize]); err != nil {
			return fmt.Errorf("bundle: read stored block: %w", err)
		}
		d.chunkLen = ChunkSize
	} else {
		if err := d.cr.ReadExact(d.compressed[:compLen]); err != nil {
			return fmt.Errorf("bundle: read compressed block (%d bytes): %w", compLen, err)
		}
		n, err := d.codec.Decompress(d.compressed[:compLen], d.chunk)
		if err != nil {
			return fmt.Errorf("bundle: decompress block: %w", err)
		}
		d.chunkLen = n
	}
	d.chunkPos = 0
	return nil
}

// readStream fills dst from the decompressed block stream, pulling
// further blocks as needed.
func (d *Decoder) readStream(dst []byte) error {
	filled := 0
	for filled < len(dst) {
		if d.chunkPos >= d.chunkLen {
			if err := d.nextBlock(); err != nil {
				return err
			}
			if d.chunkLen == 0 {
				return fmt.Errorf("bundle: unexpected empty block while %d bytes remain: %w", len(dst)-filled, io.ErrUnexpectedEOF)
			}
		}
		n := copy(dst[filled:], d.chunk[d.chunkPos:d.chunkLen])
		filled += n
		d.chunkPos += n
	}
	return nil
}

// NextFile advances to the next file in index order, discarding any
// unread tail of the previous Entry first (§4.3). It returns io.EOF
// once every file has been yielded.
func (d *Decoder) NextFile() (*FileRecord, *Entry, error) {
	if d.pending != nil {
		if err := d.skipRemaining(d.pending); err != nil {
			return nil, nil, fmt.Errorf("bundle: skip unread entry tail: %w", err)
		}
		d.pending = nil
	}

	if d.state == stateDone || d.idx >= len(d.records) {
		d.state = stateDone
		return nil, nil, io.EOF
	}

	rec := d.records[d.idx]
	d.idx++

	var numVarBuf [4]byte
	if err := d.readStream(numVarBuf[:]); err != nil {
		return nil, nil, fmt.Errorf("bundle: read variant count: %w", err)
	}
	numVariants := binary.LittleEndian.Uint32(numVarBuf[:])

	variants := make([]Variant, numVariants)
	var total int
	var descBuf [variantDescSize]byte
	for i := range variants {
		if err := d.readStream(descBuf[:]); err != nil {
			return nil, nil, fmt.Errorf("bundle: read variant descriptor %d: %w", i, err)
		}
		variants[i] = Variant{
			Kind:     binary.LittleEndian.Uint32(descBuf[0:4]),
			BodySize: binary.LittleEndian.Uint32(descBuf[4:8]),
		}
		total += int(variants[i].BodySize)
	}

	entry := &Entry{d: d, remaining: total, variants: variants, nameHash: rec.NameHash}
	d.pending = entry

	if d.idx >= len(d.records) {
		d.state = stateDone
	}

	return &rec, entry, nil
}

func (d *Decoder) skipRemaining(e *Entry) error {
	for e.remaining > 0 {
		n := len(d.discard)
		if n > e.remaining {
			n = e.remaining
		}
		if _, err := e.Read(d.discard[:n]); err != nil {
			return err
		}
	}
	return nil
}
