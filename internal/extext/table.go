// Package extext holds the static extension table dispatch and the
// CLI consult to turn an ext_hash back into a readable extension
// string, or an extension string into the hash used to filter a run
// (§6 "Static extension table").
package extext

import (
	"sort"

	"github.com/qasikfwn/limn/internal/hash"
)

// Ext pairs a known ext_hash with its extension string.
type Ext struct {
	Hash hash.Long
	Name string
}

// LuaHash and StringsHash are the two extensions whitelisted in the
// dispatch filter: their natural output key is the name hash itself,
// so unknown-name files of these extensions are never silently
// skipped even when a dictionary is loaded (§4.4).
const (
	LuaHash     hash.Long = 0xa14e8dfa2cd117e2
	StringsHash hash.Long = 0x0d972bab10b40fd3
)

// knownExtensions is the set of extension strings this build resolves
// hashes for. Darktide's engine (Bitsquid/Stingray derived) uses many
// more; these are the ones Format Parsers or raw dispatch in this
// module care about naming.
var knownExtensions = []string{
	"lua",
	"package",
	"strings",
	"unit",
	"texture",
	"material",
	"animation",
	"level",
	"entity",
	"flow",
	"shader",
	"shader_library",
	"config",
	"state_machine",
	"render_config",
	"mod",
	"ini",
	"data",
	"xml",
	"json",
}

var table []Ext

func init() {
	table = make([]Ext, 0, len(knownExtensions))
	for _, name := range knownExtensions {
		table = append(table, Ext{Hash: hash.MurmurHash64A([]byte(name), 0), Name: name})
	}
	sort.Slice(table, func(i, j int) bool { return table[i].Hash < table[j].Hash })
}

// Lookup resolves a known ext_hash to its extension string via binary
// search over the sorted table.
func Lookup(h hash.Long) (string, bool) {
	i := sort.Search(len(table), func(i int) bool { return table[i].Hash >= h })
	if i < len(table) && table[i].Hash == h {
		return table[i].Name, true
	}
	return "", false
}

// HashOf computes the ext_hash for a known extension string, used to
// resolve a "-f lua" style CLI filter argument to the hash dispatch
// and the duplicate tracker key on.
func HashOf(name string) hash.Long {
	return hash.MurmurHash64A([]byte(name), 0)
}
