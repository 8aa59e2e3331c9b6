// Package extract implements Extractor Dispatch and the format-specific
// parsers (§4.4, §4.5), sharing a per-worker scratch Pool so parsing
// never allocates on the hot path.
package extract

import (
	"io"

	"github.com/qasikfwn/limn/internal/bundle"
	"github.com/qasikfwn/limn/internal/hash"
	"github.com/qasikfwn/limn/internal/scopedfs"
)

// Options carries the run-wide, read-only configuration every parser
// consults (§4.5, §4.4 filtering policy).
type Options struct {
	Dictionary       *hash.Dictionary
	SkipUnknown      bool // true once a dictionary was loaded
	ExtractLuaSource bool
	RawOnly          bool // --dump-raw: bypass format parsers entirely
	Writer           scopedfs.Writer
}

// Write routes data through the Scoped Writer, matching the shape
// every parser ends on: options.write(path, bytes) in the original.
func (o *Options) Write(path string, data []byte) (int64, error) {
	return o.Writer.Open(path, func(w io.Writer) (int64, error) {
		n, err := w.Write(data)
		return int64(n), err
	})
}

// Parser is a pure function over an Entry's byte stream, writing its
// output through Options.Write (§4.5).
type Parser interface {
	Extract(rec bundle.FileRecord, entry *bundle.Entry, pool *Pool, opts *Options) (int64, error)
}
