package extract

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/qasikfwn/limn/internal/bundle"
)

// luaMagicPrimary and luaMagicSecondary are the two little-endian
// bytecode header words observed in script files. Files carrying the
// secondary form are rewritten to the primary one on extraction, so
// every emitted script carries a single canonical header.
const (
	luaMagicPrimary   uint32 = 0x02494a4c
	luaMagicSecondary uint32 = 0x82504c9b
)

// ScriptParser unwraps a script file's bundle-specific prelude and
// embedded source path, rewrites the header to its canonical form, and
// copies either the bytecode tail or (when extract-lua-source is set
// and a source is attached) the source text tail (§4.5, scenario S4).
type ScriptParser struct{}

func (ScriptParser) Extract(rec bundle.FileRecord, entry *bundle.Entry, pool *Pool, opts *Options) (int64, error) {
	variants := entry.Variants()
	mustAssert(len(variants) == 1, "script: expected exactly 1 variant, got %d", len(variants))
	bodySize := variants[0].BodySize

	_ = mustReadU32(entry) // unknown, always discarded
	fileLen := mustReadU32(entry)
	_ = mustReadU32(entry) // unknown

	header := mustReadU32(entry)
	hasSource := header == 2
	if hasSource {
		_ = mustReadU32(entry)
		_ = mustReadU32(entry)
		header = mustReadU32(entry)
	} else {
		fileLen = bodySize
	}
	mustAssert(header == luaMagicPrimary || header == luaMagicSecondary,
		"script: unrecognized bytecode magic %#08x", header)

	zero := mustReadByte(entry)
	mustAssert(zero == 0, "script: expected leading zero byte, got %d", zero)

	pathLen := mustUvarint(entry)
	sigil := mustReadByte(entry)
	mustAssert(sigil == '@', "script: expected '@' path sigil, got %q", rune(sigil))

	pathBuf := make([]byte, pathLen-1)
	mustReadFull(entry, pathBuf)
	srcPath := string(pathBuf)

	out := pool.Growable()
	if err := binary.Write(out, binary.LittleEndian, luaMagicPrimary); err != nil {
		panic(fmt.Errorf("extract: script: write canonical magic: %w", err))
	}
	out.WriteByte(0)
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], pathLen)
	out.Write(lenBuf[:n])
	out.WriteByte('@')
	out.Write(pathBuf)

	remaining := int64(fileLen) - int64(out.Len())

	if hasSource && opts.ExtractLuaSource {
		if _, err := io.CopyN(io.Discard, entry, remaining); err != nil && err != io.EOF {
			panic(fmt.Errorf("extract: script: skip bytecode tail: %w", err))
		}
		out.Reset()
		if _, err := io.Copy(out, entry); err != nil && err != io.EOF {
			panic(fmt.Errorf("extract: script: copy source tail: %w", err))
		}
	} else if _, err := io.CopyN(out, entry, remaining); err != nil && err != io.EOF {
		panic(fmt.Errorf("extract: script: copy bytecode tail: %w", err))
	}

	return opts.Write(srcPath, out.Bytes())
}
