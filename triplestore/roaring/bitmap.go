// Package roaring implements the roaring-bitmap backed triple store
// (spec.md §4.E): a central indexed triple set plus three
// node-to-bitmap maps, used for graphs too large for the fast triadic
// store's per-triple bunches to index comfortably.
package roaring

import (
	"github.com/RoaringBitmap/roaring"
	"github.com/c2h5oh/datasize"
)

// BatchSize is the default fixed-size buffer used to amortize
// per-element overhead when iterating a bitmap (spec.md §4.E),
// mirroring the role turbo-geth's ethdb/bitmapdb.ShardLimit plays for
// on-disk bitmap shards, here sized for in-memory batched iteration
// instead of disk shard boundaries.
var BatchSize = int(64 * datasize.B)

// Bitmap is a thin wrapper over RoaringBitmap/roaring adding the
// batched-iteration and first-element helpers the stores need.
type Bitmap struct {
	rb *roaring.Bitmap
}

// NewBitmap constructs an empty bitmap.
func NewBitmap() *Bitmap {
	return &Bitmap{rb: roaring.New()}
}

// Add inserts slot.
func (b *Bitmap) Add(slot uint32) { b.rb.Add(slot) }

// Remove deletes slot.
func (b *Bitmap) Remove(slot uint32) { b.rb.Remove(slot) }

// Contains reports whether slot is present.
func (b *Bitmap) Contains(slot uint32) bool { return b.rb.Contains(slot) }

// IsEmpty reports whether the bitmap has no elements.
func (b *Bitmap) IsEmpty() bool { return b.rb.IsEmpty() }

// Cardinality is the number of elements.
func (b *Bitmap) Cardinality() int { return int(b.rb.GetCardinality()) }

// First returns the smallest element and true, or (0, false) if empty.
func (b *Bitmap) First() (uint32, bool) {
	if b.rb.IsEmpty() {
		return 0, false
	}
	return b.rb.Minimum(), true
}

// And returns the intersection of b with others.
func And(bitmaps ...*Bitmap) *Bitmap {
	if len(bitmaps) == 0 {
		return NewBitmap()
	}
	rbs := make([]*roaring.Bitmap, len(bitmaps))
	for i, b := range bitmaps {
		rbs[i] = b.rb
	}
	return &Bitmap{rb: roaring.FastAnd(rbs...)}
}

// Or returns the union of b with others.
func Or(bitmaps ...*Bitmap) *Bitmap {
	if len(bitmaps) == 0 {
		return NewBitmap()
	}
	rbs := make([]*roaring.Bitmap, len(bitmaps))
	for i, b := range bitmaps {
		rbs[i] = b.rb
	}
	return &Bitmap{rb: roaring.FastOr(rbs...)}
}

// ForEachBatch iterates the bitmap's elements in batches of BatchSize,
// calling fn once per batch. It stops early if fn returns false.
func (b *Bitmap) ForEachBatch(fn func(batch []uint32) bool) {
	it := b.rb.ManyIterator()
	buf := make([]uint32, BatchSize)
	for {
		n := it.NextMany(buf)
		if n == 0 {
			return
		}
		if !fn(buf[:n]) {
			return
		}
	}
}

// ToSlice materializes every element; present for tests.
func (b *Bitmap) ToSlice() []uint32 {
	return b.rb.ToArray()
}
