package extract

import (
	"fmt"

	"github.com/qasikfwn/limn/internal/bundle"
	"github.com/qasikfwn/limn/internal/extext"
)

// RawParser writes a file's decompressed body unmodified, the fallback
// for any extension without a dedicated parser (§4.4).
type RawParser struct{}

func (RawParser) Extract(rec bundle.FileRecord, entry *bundle.Entry, pool *Pool, opts *Options) (int64, error) {
	base, _ := ResolveBase(rec, opts.Dictionary)
	path := base
	if ext, ok := extext.Lookup(rec.ExtHash); ok {
		path = path + "." + ext
	}

	buf := pool.Growable()
	if _, err := buf.ReadFrom(entry); err != nil {
		panic(fmt.Errorf("extract: raw: read body: %w", err))
	}
	return opts.Write(path, buf.Bytes())
}
