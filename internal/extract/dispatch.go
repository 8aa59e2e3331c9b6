package extract

import (
	"github.com/qasikfwn/limn/internal/extext"
	"github.com/qasikfwn/limn/internal/hash"
)

var packageExtHash = extext.HashOf("package")

// Dispatch picks the Parser for a file's extension hash (§4.4). rawOnly
// forces RawParser regardless of extension, for --dump-raw runs.
func Dispatch(extHash hash.Long, rawOnly bool) Parser {
	if rawOnly {
		return RawParser{}
	}
	switch extHash {
	case extext.LuaHash:
		return ScriptParser{}
	case extext.StringsHash:
		return StringTableParser{}
	case packageExtHash:
		return PackageParser{}
	default:
		return RawParser{}
	}
}
