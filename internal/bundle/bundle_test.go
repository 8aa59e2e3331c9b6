package bundle

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/qasikfwn/limn/internal/hash"
	"github.com/qasikfwn/limn/internal/oodle"
)

// buildBundle assembles a minimal uncompressed-block bundle: one block
// stored with compressed_len == ChunkSize (the copy-through case),
// containing the index followed immediately by the bodies.
func buildBundle(t *testing.T, files [][]byte, extHashes, nameHashes []uint64) []byte {
	t.Helper()

	var body bytes.Buffer
	// index
	for i := range files {
		binary.Write(&body, binary.LittleEndian, extHashes[i])
		binary.Write(&body, binary.LittleEndian, nameHashes[i])
		binary.Write(&body, binary.LittleEndian, uint32(0)) // extension index
		binary.Write(&body, binary.LittleEndian, uint32(0)) // reserved
	}
	// bodies: one variant each, kind 0
	for _, f := range files {
		binary.Write(&body, binary.LittleEndian, uint32(1)) // num_variants
		binary.Write(&body, binary.LittleEndian, uint32(0)) // kind
		binary.Write(&body, binary.LittleEndian, uint32(len(f)))
		binary.Write(&body, binary.LittleEndian, uint32(0)) // reserved
		body.Write(f)
	}

	if body.Len() > ChunkSize {
		t.Fatalf("test bundle body too large for a single block: %d", body.Len())
	}

	padded := make([]byte, ChunkSize)
	copy(padded, body.Bytes())

	var out bytes.Buffer
	binary.Write(&out, binary.LittleEndian, uint32(1))            // magic
	binary.Write(&out, binary.LittleEndian, uint32(len(files)))   // num_files
	binary.Write(&out, binary.LittleEndian, uint32(0))            // unknown
	binary.Write(&out, binary.LittleEndian, uint32(ChunkSize))    // compressed_len == ChunkSize => stored
	out.Write(padded)
	return out.Bytes()
}

func TestDecoderSingleFile(t *testing.T) {
	data := buildBundle(t, [][]byte{[]byte("hello")}, []uint64{0x1111111111111111}, []uint64{0x2222222222222222})
	src := bytes.NewReader(data)

	dec, err := Open(src, make([]byte, ChunkSize), oodle.FakeCodec{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	rec, entry, err := dec.NextFile()
	if err != nil {
		t.Fatalf("NextFile: %v", err)
	}
	if rec.ExtHash != hash.Long(0x1111111111111111) || rec.NameHash != hash.Long(0x2222222222222222) {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if len(entry.Variants()) != 1 || entry.Variants()[0].BodySize != 5 {
		t.Fatalf("unexpected variants: %+v", entry.Variants())
	}

	got := make([]byte, 5)
	if _, err := io.ReadFull(entry, got); err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("got %q", got)
	}

	if _, _, err := dec.NextFile(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestDecoderSkipsUnreadTail(t *testing.T) {
	data := buildBundle(t,
		[][]byte{[]byte("first-file-body"), []byte("second")},
		[]uint64{0x1, 0x3},
		[]uint64{0x2, 0x4},
	)
	src := bytes.NewReader(data)
	dec, err := Open(src, make([]byte, ChunkSize), oodle.FakeCodec{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	_, _, err = dec.NextFile()
	if err != nil {
		t.Fatalf("NextFile 1: %v", err)
	}
	// Deliberately don't read the first entry's body.

	_, entry2, err := dec.NextFile()
	if err != nil {
		t.Fatalf("NextFile 2: %v", err)
	}
	got := make([]byte, 6)
	if _, err := io.ReadFull(entry2, got); err != nil {
		t.Fatalf("read second body: %v", err)
	}
	if string(got) != "second" {
		t.Fatalf("got %q, expected unread tail of file 1 to have been skipped", got)
	}
}

func TestDecoderEmptyBundle(t *testing.T) {
	data := buildBundle(t, nil, nil, nil)
	src := bytes.NewReader(data)
	dec, err := Open(src, make([]byte, ChunkSize), oodle.FakeCodec{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, _, err := dec.NextFile(); err != io.EOF {
		t.Fatalf("expected immediate io.EOF, got %v", err)
	}
}
