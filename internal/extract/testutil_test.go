package extract

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/qasikfwn/limn/internal/bundle"
	"github.com/qasikfwn/limn/internal/oodle"
)

// memWriter is an in-memory scopedfs.Writer for assertions.
type memWriter struct {
	files map[string][]byte
}

func newMemWriter() *memWriter {
	return &memWriter{files: make(map[string][]byte)}
}

func (m *memWriter) Open(relPath string, scope func(io.Writer) (int64, error)) (int64, error) {
	var buf bytes.Buffer
	n, err := scope(&buf)
	m.files[relPath] = buf.Bytes()
	return n, err
}

// variant is one variant body plus its kind, for buildEntryBundle.
type variant struct {
	kind uint32
	body []byte
}

// buildEntryBundle constructs a single-file, single-block bundle whose
// one file carries the given variants, and returns a Decoder already
// positioned to yield that file via NextFile.
func buildEntryBundle(t *testing.T, extHash, nameHash uint64, variants []variant) *bundle.Decoder {
	t.Helper()

	var body bytes.Buffer
	binary.Write(&body, binary.LittleEndian, extHash)
	binary.Write(&body, binary.LittleEndian, nameHash)
	binary.Write(&body, binary.LittleEndian, uint32(0))
	binary.Write(&body, binary.LittleEndian, uint32(0))

	binary.Write(&body, binary.LittleEndian, uint32(len(variants)))
	for _, v := range variants {
		binary.Write(&body, binary.LittleEndian, v.kind)
		binary.Write(&body, binary.LittleEndian, uint32(len(v.body)))
		binary.Write(&body, binary.LittleEndian, uint32(0))
		body.Write(v.body)
	}

	if body.Len() > bundle.ChunkSize {
		t.Fatalf("test bundle body too large for a single block: %d", body.Len())
	}
	padded := make([]byte, bundle.ChunkSize)
	copy(padded, body.Bytes())

	var out bytes.Buffer
	binary.Write(&out, binary.LittleEndian, uint32(1))
	binary.Write(&out, binary.LittleEndian, uint32(1))
	binary.Write(&out, binary.LittleEndian, uint32(0))
	binary.Write(&out, binary.LittleEndian, uint32(bundle.ChunkSize))
	out.Write(padded)

	src := bytes.NewReader(out.Bytes())
	dec, err := bundle.Open(src, make([]byte, bundle.ChunkSize), oodle.FakeCodec{})
	if err != nil {
		t.Fatalf("bundle.Open: %v", err)
	}
	return dec
}
