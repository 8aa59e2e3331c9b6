package pool

import (
	"encoding/binary"
	"io"
	"sort"
	"sync"

	"github.com/qasikfwn/limn/internal/hash"
)

type pairKey struct {
	Ext  hash.Long
	Name hash.Long
}

// Duplicates counts how many times each (ext_hash, name_hash) pair is
// seen across every bundle in a run, so only the first occurrence of a
// file is ever extracted (§4.8).
type Duplicates struct {
	mu     sync.Mutex
	counts map[pairKey]uint64
}

// NewDuplicates returns an empty tracker, pre-sized the way the
// original reserves its duplicate map up front.
func NewDuplicates() *Duplicates {
	return &Duplicates{counts: make(map[pairKey]uint64, 0x10000)}
}

// bump records one more sighting of (ext, name) and returns the new
// count; callers treat a returned 1 as "first occurrence".
func (d *Duplicates) bump(ext, name hash.Long) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	k := pairKey{ext, name}
	d.counts[k]++
	return d.counts[k]
}

// DumpHashes writes every distinct (ext_hash, name_hash) pair to w as
// sorted 16-byte little-endian records, optionally restricted to a
// single extension, and returns how many records were written.
func (d *Duplicates) DumpHashes(w io.Writer, filterExt *hash.Long) (int, error) {
	d.mu.Lock()
	keys := make([]pairKey, 0, len(d.counts))
	for k := range d.counts {
		keys = append(keys, k)
	}
	d.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Ext != keys[j].Ext {
			return keys[i].Ext < keys[j].Ext
		}
		return keys[i].Name < keys[j].Name
	})

	if filterExt != nil {
		lo := sort.Search(len(keys), func(i int) bool { return keys[i].Ext >= *filterExt })
		hi := sort.Search(len(keys), func(i int) bool { return keys[i].Ext > *filterExt })
		keys = keys[lo:hi]
	}

	var rec [16]byte
	for _, k := range keys {
		binary.LittleEndian.PutUint64(rec[0:8], uint64(k.Ext))
		binary.LittleEndian.PutUint64(rec[8:16], uint64(k.Name))
		if _, err := w.Write(rec[:]); err != nil {
			return 0, err
		}
	}
	return len(keys), nil
}
