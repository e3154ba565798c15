// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import "github.com/valyala/bytebufferpool"

// arenaChunkSize is the minimum capacity of a chunk drawn from the pool.
// DER artifacts produced by the encoders are small (a test certificate is
// well under 2 KiB), so a single chunk serves most arenas.
const arenaChunkSize = 64 * 1024

// Arena is a bump allocator over pooled byte buffers. Every slice returned
// by Alloc stays valid until Release is called; Release returns all backing
// chunks to the pool at once. Slices handed out by one arena must never be
// retained past its Release, and must not be mixed into another arena by
// reference.
//
// Arena is not safe for concurrent use.
type Arena struct {
	chunks []*bytebufferpool.ByteBuffer
	free   []byte
}

// NewArena creates an empty arena. The first Alloc draws a chunk from the
// default pool.
func NewArena() *Arena { return &Arena{} }

// Alloc returns a zeroed slice of n bytes owned by the arena.
func (a *Arena) Alloc(n int) []byte {
	if n > len(a.free) {
		a.grow(n)
	}
	out := a.free[:n:n]
	a.free = a.free[n:]
	clear(out)
	return out
}

// Own copies b into the arena and returns the arena-owned copy.
func (a *Arena) Own(b []byte) []byte {
	out := a.Alloc(len(b))
	copy(out, b)
	return out
}

func (a *Arena) grow(n int) {
	want := arenaChunkSize
	if n > want {
		want = n
	}
	bb := bytebufferpool.Get()
	if cap(bb.B) < want {
		bb.B = make([]byte, want)
	} else {
		bb.B = bb.B[:cap(bb.B)]
	}
	a.chunks = append(a.chunks, bb)
	a.free = bb.B
}

// Release returns every chunk to the pool. All slices previously returned
// by Alloc become invalid. Releasing twice is a no-op.
func (a *Arena) Release() {
	for _, bb := range a.chunks {
		bytebufferpool.Put(bb)
	}
	a.chunks = nil
	a.free = nil
}
