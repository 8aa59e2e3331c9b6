// Package hash computes the 64-bit and 32-bit content hashes bundle
// records are addressed by, and maintains the optional dictionary that
// recovers readable names from them (§3, §6 GLOSSARY).
package hash

import (
	murmur "github.com/rryqszq4/go-murmurhash"
)

// Long is a 64-bit content hash (an ext_hash or name_hash).
type Long uint64

// Short is the 32-bit in-file key used by string tables (§4.5).
type Short uint32

// MurmurHash64A hashes data with the classic MurmurHash2 64-bit A
// variant, seed 0, matching the CLI's extension-filter hashing
// (original_source/src/main.rs: "hash::murmur_hash64a(ext.as_bytes(), 0)").
func MurmurHash64A(data []byte, seed uint32) Long {
	return Long(murmur.MurmurHash64A(data, seed))
}

// NameHash hashes a dictionary candidate name the same way the index
// hashes a logical file name: lowercased, seed 0.
func NameHash(name string) Long {
	lower := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		lower[i] = c
	}
	return MurmurHash64A(lower, 0)
}

// ShortOf folds a 64-bit long hash into its 32-bit short form, the key
// string-table variants actually carry on disk.
func ShortOf(h Long) Short {
	return Short(uint32(h) ^ uint32(h>>32))
}
