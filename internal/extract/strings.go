package extract

import (
	"bytes"
	"fmt"

	"github.com/qasikfwn/limn/internal/bundle"
	"github.com/qasikfwn/limn/internal/hash"
)

// languageNames maps a string-table variant's kind bitmask to the
// language it holds. Language codes can change between updates; this
// table is best effort and kept normative until corrected from a
// runtime source. Any other code is rendered as its raw hex kind
// rather than guessed at.
var languageNames = map[uint32]string{
	0:    "english",
	1:    "polish",
	2:    "japanese",
	4:    "spanish",
	8:    "english2",
	16:   "chinese_traditional",
	32:   "portuguese",
	64:   "german",
	128:  "korean",
	256:  "russian",
	512:  "italian",
	1024: "chinese_simplified",
	2048: "french",
}

func languageName(kind uint32) string {
	if name, ok := languageNames[kind]; ok {
		return name
	}
	return fmt.Sprintf("%04x", kind)
}

// StringTableParser decodes a localized string table into one JSON
// object per variant, keyed by the dictionary-resolved name (or the
// short hash's hex form when unresolved), emitting "<base>.<lang>.json"
// per variant (§4.5, scenario S3).
type StringTableParser struct{}

func (StringTableParser) Extract(rec bundle.FileRecord, entry *bundle.Entry, pool *Pool, opts *Options) (int64, error) {
	base, _ := ResolveBase(rec, opts.Dictionary)

	var written int64
	for _, v := range entry.Variants() {
		n, err := extractStringVariant(entry, v, base, opts)
		if err != nil {
			return written, err
		}
		written += n
	}
	return written, nil
}

func extractStringVariant(entry *bundle.Entry, v bundle.Variant, base string, opts *Options) (int64, error) {
	_ = mustReadU32(entry) // unknown
	numItems := mustReadU32(entry)

	type item struct {
		shortHash uint32
		offset    uint32 // absolute byte offset from the start of this variant
	}
	items := make([]item, numItems)
	for i := range items {
		items[i] = item{shortHash: mustReadU32(entry), offset: mustReadU32(entry)}
	}

	headerLen := 8 + int(numItems)*8
	blobLen := int(v.BodySize) - headerLen
	mustAssert(blobLen >= 0, "strings: variant body too small for %d items", numItems)

	blob := make([]byte, blobLen)
	mustReadFull(entry, blob)

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for i, it := range items {
		start := int(it.offset) - headerLen
		end := blobLen
		if i+1 < len(items) {
			end = int(items[i+1].offset) - headerLen
		}
		mustAssert(start >= 0 && end <= blobLen && start <= end, "strings: item %d offset out of range", i)

		raw := blob[start:end]
		mustAssert(len(raw) > 0 && raw[len(raw)-1] == 0, "strings: item %d not NUL-terminated", i)
		raw = raw[:len(raw)-1]
		if nul := bytes.IndexByte(raw, 0); nul >= 0 {
			raw = raw[:nul]
		}

		key, ok := opts.Dictionary.LookupShort(hash.Short(it.shortHash))
		if !ok {
			if opts.SkipUnknown {
				continue
			}
			key = fmt.Sprintf("%08x", it.shortHash)
		}

		if !first {
			buf.WriteByte(',')
		}
		first = false
		writeJSONString(&buf, key)
		buf.WriteByte(':')
		writeJSONString(&buf, string(raw))
	}
	buf.WriteByte('}')

	path := fmt.Sprintf("%s.%s.json", base, languageName(v.Kind))
	return opts.Write(path, buf.Bytes())
}

// writeJSONString writes s as a double-quoted JSON string, escaping
// only the characters that would otherwise break the quoting: the
// string-table source text is plain UTF-8 with no control characters
// beyond \t \n \r, so a general unicode escaper isn't needed here.
func writeJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\t':
			buf.WriteString(`\t`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		default:
			buf.WriteByte(c)
		}
	}
	buf.WriteByte('"')
}
