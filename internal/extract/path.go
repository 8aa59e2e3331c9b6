package extract

import (
	"fmt"

	"github.com/qasikfwn/limn/internal/bundle"
	"github.com/qasikfwn/limn/internal/hash"
)

// ResolveBase returns the extraction path base (without any
// format-specific suffix) for rec. When the dictionary resolves the
// file's name hash, base is that original string and known is true;
// otherwise base falls back to "<ext_hex>/<name_hex>" (§4.4, scenario
// S1) and known is false.
func ResolveBase(rec bundle.FileRecord, dict *hash.Dictionary) (base string, known bool) {
	if dict != nil {
		if name, ok := dict.LookupLong(rec.NameHash); ok {
			return name, true
		}
	}
	return fmt.Sprintf("%016x/%016x", uint64(rec.ExtHash), uint64(rec.NameHash)), false
}
