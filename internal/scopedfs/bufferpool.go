package scopedfs

import (
	"bytes"
	"sync"
)

// bufferPool is a sync.Pool of *bytes.Buffer, reset before reuse.
type bufferPool struct {
	pool sync.Pool
}

func (p *bufferPool) get() *bytes.Buffer {
	if v := p.pool.Get(); v != nil {
		buf := v.(*bytes.Buffer)
		buf.Reset()
		return buf
	}
	return &bytes.Buffer{}
}

func (p *bufferPool) put(buf *bytes.Buffer) {
	p.pool.Put(buf)
}
