package pool

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/qasikfwn/limn/internal/hash"
)

// BundleRef is one bundle file queued for a worker: its path on disk
// and the hash parsed from its filename (bundle files are named after
// their own hash, with no extension).
type BundleRef struct {
	Path string
	Hash hash.Long
}

// HashFromFilename parses a bundle's hash from its bare hex filename,
// the naming convention bundle files are found under (GLOSSARY).
func HashFromFilename(path string) (hash.Long, bool) {
	name := filepath.Base(path)
	if ext := filepath.Ext(name); ext != "" {
		return 0, false
	}
	v, err := strconv.ParseUint(strings.ToLower(name), 16, 64)
	if err != nil {
		return 0, false
	}
	return hash.Long(v), true
}
