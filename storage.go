package rfc3986

import "github.com/valyala/bytebufferpool"

// Buffer is a chunk of memory handed out by a Storage. handle is
// opaque to callers; a Storage stashes whatever it needs there to
// reclaim the chunk on Deallocate (nil for storage that relies on the
// garbage collector).
type Buffer struct {
	Bytes  []byte
	handle any
}

// Storage is the allocate/deallocate capability consumed by
// IndexedString. Allocate must return a buffer of at least n bytes or
// fail with an error satisfying errors.Is(err, ErrAllocFailure).
// Deallocate must accept any Buffer previously returned by Allocate,
// and must be a no-op on the zero Buffer.
type Storage interface {
	Allocate(n int) (Buffer, error)
	Deallocate(Buffer)
}

// GCStorage allocates with make and leaves reclamation to the garbage
// collector. It is the default Storage for a zero-value IndexedString.
type GCStorage struct{}

func (GCStorage) Allocate(n int) (Buffer, error) {
	return Buffer{Bytes: make([]byte, n)}, nil
}

func (GCStorage) Deallocate(Buffer) {}

// PooledStorage recycles buffers through a bytebufferpool.Pool,
// avoiding a fresh allocation on every grow for short-lived URL
// values that are reset and reused (the pattern the teacher's
// bytebufferpool dependency exists to serve).
type PooledStorage struct {
	pool *bytebufferpool.Pool
}

// NewPooledStorage returns a Storage backed by a fresh
// bytebufferpool.Pool.
func NewPooledStorage() *PooledStorage {
	return &PooledStorage{pool: &bytebufferpool.Pool{}}
}

func (s *PooledStorage) Allocate(n int) (Buffer, error) {
	bb := s.pool.Get()
	if cap(bb.B) < n {
		bb.B = make([]byte, n)
	} else {
		bb.B = bb.B[:n]
	}
	return Buffer{Bytes: bb.B, handle: bb}, nil
}

func (s *PooledStorage) Deallocate(b Buffer) {
	if bb, ok := b.handle.(*bytebufferpool.ByteBuffer); ok {
		s.pool.Put(bb)
	}
}

func defaultStorage() Storage {
	return GCStorage{}
}
