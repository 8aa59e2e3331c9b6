package extract

import (
	"encoding/json"
	"fmt"

	"github.com/qasikfwn/limn/internal/bundle"
	"github.com/qasikfwn/limn/internal/extext"
	"github.com/qasikfwn/limn/internal/hash"
)

const packageMagic uint32 = 43

// packageItem is one entry of a package manifest's file list.
type packageItem struct {
	NameHash string `json:"name_hash"`
	Name     string `json:"name,omitempty"`
	Ext      string `json:"ext,omitempty"`
	ExtHash  string `json:"ext_hash,omitempty"`
}

// PackageParser decodes a package manifest (a flat list of the bundle
// entries it packages) into a JSON array (§4.5, scenario S2).
type PackageParser struct{}

func (PackageParser) Extract(rec bundle.FileRecord, entry *bundle.Entry, pool *Pool, opts *Options) (int64, error) {
	magic := mustReadU32(entry)
	mustAssert(magic == packageMagic, "package: bad magic %d, want %d", magic, packageMagic)

	numFiles := mustReadU32(entry)
	items := make([]packageItem, numFiles)
	for i := range items {
		extHash := hash.Long(mustReadU64(entry))
		nameHash := hash.Long(mustReadU64(entry))

		item := packageItem{NameHash: fmt.Sprintf("%016x", uint64(nameHash))}
		if name, ok := opts.Dictionary.LookupLong(nameHash); ok {
			item.Name = name
		}
		if ext, ok := extext.Lookup(extHash); ok {
			item.Ext = ext
		} else {
			item.ExtHash = fmt.Sprintf("%016x", uint64(extHash))
		}
		items[i] = item
	}

	trailing := mustReadByte(entry)
	mustAssert(trailing == 1, "package: expected trailing marker byte 1, got %d", trailing)
	mustAssert(entry.Remaining() == 0, "package: %d unexpected trailing bytes", entry.Remaining())

	data, err := json.Marshal(items)
	if err != nil {
		panic(fmt.Errorf("extract: package: marshal: %w", err))
	}

	base, _ := ResolveBase(rec, opts.Dictionary)
	return opts.Write(base+".package.json", data)
}
