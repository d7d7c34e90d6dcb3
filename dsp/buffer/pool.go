package buffer

import "sync"

// Pool provides sync.Pool-based Buffer reuse to reduce GC pressure in
// real-time processing loops.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Buffer{}
			},
		},
	}
}

// Get returns an owning, zero-filled buffer of the requested shape,
// reusing pooled backing storage when its capacity suffices. Callers
// must return it via Put when done.
func (p *Pool) Get(frames, channels int) *Buffer {
	b := p.pool.Get().(*Buffer)
	b.resize(frames, channels)
	return b
}

// Put returns a Buffer to the pool for reuse. Views are released first
// so the pool never retains caller-managed memory. The caller must not
// use the buffer after calling Put.
func (p *Pool) Put(b *Buffer) {
	if b == nil {
		return
	}
	if b.viewing {
		b.Free()
	}
	p.pool.Put(b)
}

// resize reshapes b to frames x channels, zeroing the samples and
// keeping the backing array when it is large enough. Only for owning
// buffers; pooled buffers always are.
func (b *Buffer) resize(frames, channels int) {
	if frames < 0 || channels < 0 {
		panic("buffer: negative frame or channel count")
	}
	n := frames * channels
	switch {
	case n == 0:
		b.data = nil
	case n <= cap(b.data):
		b.data = b.data[:n]
		for i := range b.data {
			b.data[i] = 0
		}
	default:
		b.data = make([]float64, n)
	}
	b.frames = frames
	b.channels = channels
	b.viewing = false
}
