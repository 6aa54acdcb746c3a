package handler

import (
	"bytes"
	"sync"
)

const (
	initialBufferSize = 512
	// leaderboards with limit=100 stay well under this
	maxPooledBufferSize = 64 << 10
)

var bufferPool = sync.Pool{
	New: func() any { return bytes.NewBuffer(make([]byte, 0, initialBufferSize)) },
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// putBuffer recycles buf unless a large response grew it past the cap
func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
