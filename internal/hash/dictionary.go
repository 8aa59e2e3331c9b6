package hash

import "strings"

// Dictionary maps known content hashes back to their original strings,
// built once from a user-supplied newline-separated candidate list and
// immutable thereafter (§3).
type Dictionary struct {
	Long  map[Long]string
	Short map[Short]Long
}

// NewDictionary builds a Dictionary from candidate name lines, skipping
// blank lines. Each line contributes both its long hash (keyed to the
// original string) and that hash's short derivative (keyed to the long
// hash, so string-table lookups can go short -> long -> string).
func NewDictionary(lines []string) *Dictionary {
	d := &Dictionary{
		Long:  make(map[Long]string, len(lines)),
		Short: make(map[Short]Long, len(lines)),
	}
	for _, line := range lines {
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		h := NameHash(line)
		d.Long[h] = line
		d.Short[ShortOf(h)] = h
	}
	return d
}

// Empty returns a Dictionary with no entries, used when no dictionary
// file was loaded; lookups always miss and the "unknown name" skip
// policy (§4.4) never applies.
func Empty() *Dictionary {
	return &Dictionary{Long: map[Long]string{}, Short: map[Short]Long{}}
}

// Loaded reports whether any entries were parsed.
func (d *Dictionary) Loaded() bool {
	return len(d.Long) > 0
}

// LookupLong resolves a 64-bit hash to its original string, if known.
func (d *Dictionary) LookupLong(h Long) (string, bool) {
	s, ok := d.Long[h]
	return s, ok
}

// LookupShort resolves a 32-bit short hash all the way to its original
// string, if known.
func (d *Dictionary) LookupShort(s Short) (string, bool) {
	long, ok := d.Short[s]
	if !ok {
		return "", false
	}
	return d.LookupLong(long)
}
