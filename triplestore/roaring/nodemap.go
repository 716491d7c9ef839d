package roaring

import "github.com/ledgerwatch/turbo-rdf/rdf"

// nodeBitmapMap maps rdf.Node -> *Bitmap, with hash-collision chaining
// the same way triplestore.BunchMap chains key collisions — distinct
// nodes sharing a 64-bit hash are vanishingly rare but handled
// correctly rather than assumed away.
type nodeBitmapMap struct {
	m   map[uint64][]*nodeBitmapEntry
	len int
}

type nodeBitmapEntry struct {
	key    rdf.Node
	bitmap *Bitmap
}

func newNodeBitmapMap() *nodeBitmapMap {
	return &nodeBitmapMap{m: make(map[uint64][]*nodeBitmapEntry)}
}

func (nm *nodeBitmapMap) get(key rdf.Node) *Bitmap {
	for _, e := range nm.m[key.Hash()] {
		if e.key.Equals(key) {
			return e.bitmap
		}
	}
	return nil
}

// getOrCreate returns the bitmap for key, creating an empty one (and
// recording that the key now exists) if absent.
func (nm *nodeBitmapMap) getOrCreate(key rdf.Node) *Bitmap {
	h := key.Hash()
	for _, e := range nm.m[h] {
		if e.key.Equals(key) {
			return e.bitmap
		}
	}
	e := &nodeBitmapEntry{key: key, bitmap: NewBitmap()}
	nm.m[h] = append(nm.m[h], e)
	nm.len++
	return e.bitmap
}

// dropIfEmpty removes key's entry if its bitmap has become empty.
func (nm *nodeBitmapMap) dropIfEmpty(key rdf.Node) {
	h := key.Hash()
	bucket := nm.m[h]
	for i, e := range bucket {
		if e.key.Equals(key) {
			if !e.bitmap.IsEmpty() {
				return
			}
			last := len(bucket) - 1
			bucket[i] = bucket[last]
			bucket = bucket[:last]
			if len(bucket) == 0 {
				delete(nm.m, h)
			} else {
				nm.m[h] = bucket
			}
			nm.len--
			return
		}
	}
}

func (nm *nodeBitmapMap) keyCount() int { return nm.len }
