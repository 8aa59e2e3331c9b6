package extract

import "bytes"

// Pool is a per-worker bag of reusable scratch buffers, so format
// parsers never allocate per file (§9 "Scratch buffer sharing").
type Pool struct {
	fixed    []byte
	growable bytes.Buffer
}

// NewPool returns an empty Pool; its buffers grow on first use and are
// kept for the worker's lifetime.
func NewPool() *Pool {
	return &Pool{}
}

// Fixed returns a buffer of exactly minSize bytes, reusing and growing
// the pool's backing array as needed.
func (p *Pool) Fixed(minSize int) []byte {
	if cap(p.fixed) < minSize {
		p.fixed = make([]byte, minSize)
	}
	return p.fixed[:minSize]
}

// Growable returns the pool's scratch buffer, cleared.
func (p *Pool) Growable() *bytes.Buffer {
	p.growable.Reset()
	return &p.growable
}
