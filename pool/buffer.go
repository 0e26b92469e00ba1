package pool

import (
	"bytes"
	"sync"
)

// maxPooledSize is the largest buffer capacity returned to the pool. Feed
// bodies are usually small; the occasional huge payload is left to the GC.
const maxPooledSize = 4 << 20

type bufp struct {
	sync.Pool
}

// Buffer is a utility variable that provides bytes.Buffer objects.
var Buffer bufp

// Get returns an empty bytes.Buffer pointer from the pool.
func (b *bufp) Get() *bytes.Buffer {
	buffer := b.Pool.Get().(*bytes.Buffer)
	buffer.Reset()

	return buffer
}

// Put returns the buffer to the pool, unless it grew too large.
func (b *bufp) Put(buffer *bytes.Buffer) {
	if buffer == nil || buffer.Cap() > maxPooledSize {
		return
	}

	b.Pool.Put(buffer)
}

// Copy returns a copy of the buffer's unread contents, safe to retain after
// the buffer is put back.
func Copy(buffer *bytes.Buffer) []byte {
	return append([]byte(nil), buffer.Bytes()...)
}

func init() {
	Buffer = bufp{
		Pool: sync.Pool{
			New: func() interface{} {
				return new(bytes.Buffer)
			},
		},
	}
}
