// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package der

import "github.com/H0llyW00dzZ/pkix-forge/src/internal/helper/gc"

// MaxSequenceItems is the hard ceiling on the number of children a single
// constructed value may carry. No structure the engine emits needs more.
const MaxSequenceItems = 10

// MaxTagStackDepth is the ceiling on nested constructed tags an artifact may
// use. The emitters build bottom-up and no structure they produce comes
// anywhere near it; the constant records the wire-format assumption.
const MaxTagStackDepth = 1024

// maxContentLength is the largest content length the two-byte long form can
// express; anything larger is a fatal encoding error.
const maxContentLength = 65535

// Output accumulates already-encoded children for one constructed value.
// Children are borrowed, never copied: the caller must keep every added
// slice alive until Squash returns.
//
// The zero value is ready to use.
type Output struct {
	items    [MaxSequenceItems][]byte
	numItems int
	length   int
}

// Add appends one encoded child.
func (o *Output) Add(item []byte) error {
	if o.numItems >= MaxSequenceItems {
		return ErrTooManyItems
	}
	if o.length+len(item) > maxContentLength {
		return ErrValueTooLarge
	}
	o.items[o.numItems] = item
	o.numItems++
	o.length += len(item)
	return nil
}

// Squash concatenates the children behind tag and a shortest-form definite
// length, writing the result into a fresh buffer owned by a.
func (o *Output) Squash(a *gc.Arena, tag byte) ([]byte, error) {
	ll, err := lengthLength(o.length)
	if err != nil {
		return nil, err
	}
	out := a.Alloc(1 + ll + o.length)
	out[0] = tag
	encodeLength(out[1:1+ll], o.length)
	d := out[1+ll:]
	for i := range o.numItems {
		copy(d, o.items[i])
		d = d[len(o.items[i]):]
	}
	return out, nil
}
