package triplestore

import "github.com/ledgerwatch/turbo-rdf/rdf"

// BunchMap is a keyed container of Bunches, one per distinct value of
// the component it indexes (spec.md §4.C). It owns its bunches;
// bunches never back-reference the map (spec.md §9's cyclic-ownership
// avoidance). Collisions between distinct key nodes sharing a hash are
// resolved by chaining within the bucket slice; true hash-value
// equality is rare enough that this never shows up as the "open-
// addressed hash set" spec.md asks of the *Bunch* representation
// itself (see bunch.go's hashBunch) — that requirement is about how a
// single bunch stores its triples, not how this map stores its keys.
type BunchMap struct {
	m         map[uint64][]*bunchSlot
	threshold int
	len       int
}

type bunchSlot struct {
	key   rdf.Node
	bunch Bunch
}

// NewBunchMap constructs an empty map whose bunches promote from array
// to hashed form once they exceed threshold elements.
func NewBunchMap(threshold int) *BunchMap {
	return &BunchMap{m: make(map[uint64][]*bunchSlot), threshold: threshold}
}

// Get returns the bunch for key, or nil if absent.
func (bm *BunchMap) Get(key rdf.Node) Bunch {
	if slot := bm.slotFor(key); slot != nil {
		return slot.bunch
	}
	return nil
}

func (bm *BunchMap) slotFor(key rdf.Node) *bunchSlot {
	for _, slot := range bm.m[key.Hash()] {
		if slot.key.Equals(key) {
			return slot
		}
	}
	return nil
}

// ComputeIfAbsent returns the existing bunch for key, or creates one
// with factory, stores it, and returns it.
func (bm *BunchMap) ComputeIfAbsent(key rdf.Node, factory func() Bunch) Bunch {
	h := key.Hash()
	for _, slot := range bm.m[h] {
		if slot.key.Equals(key) {
			return slot.bunch
		}
	}
	slot := &bunchSlot{key: key, bunch: factory()}
	bm.m[h] = append(bm.m[h], slot)
	bm.len++
	return slot.bunch
}

// Remove drops key's bunch entirely (used once a bunch empties).
func (bm *BunchMap) Remove(key rdf.Node) {
	h := key.Hash()
	bucket := bm.m[h]
	for i, slot := range bucket {
		if slot.key.Equals(key) {
			last := len(bucket) - 1
			bucket[i] = bucket[last]
			bucket = bucket[:last]
			if len(bucket) == 0 {
				delete(bm.m, h)
			} else {
				bm.m[h] = bucket
			}
			bm.len--
			return
		}
	}
}

// ReplaceBunch atomically swaps the bunch stored for key, used when an
// arrayBunch promotes to a hashBunch (spec.md §4.C's "replaced
// atomically in its slot").
func (bm *BunchMap) ReplaceBunch(key rdf.Node, bunch Bunch) {
	if slot := bm.slotFor(key); slot != nil {
		slot.bunch = bunch
	}
}

// IterValues calls fn once per bunch currently in the map, stopping
// early if fn returns false.
func (bm *BunchMap) IterValues(fn func(key rdf.Node, b Bunch) bool) {
	for _, bucket := range bm.m {
		for _, slot := range bucket {
			if !fn(slot.key, slot.bunch) {
				return
			}
		}
	}
}

// Len reports the number of distinct keys.
func (bm *BunchMap) Len() int { return bm.len }

// NewBunch constructs an empty bunch at this map's promotion
// threshold, in array form.
func (bm *BunchMap) NewBunch() Bunch {
	return newArrayBunch(bm.threshold)
}

// AddAndMaybePromote adds t to the bunch at key (creating it if
// absent), promoting the bunch to hashed form if the array form just
// crossed its threshold. It returns whether t was newly added.
func (bm *BunchMap) AddAndMaybePromote(key rdf.Node, t rdf.Triple) bool {
	b := bm.ComputeIfAbsent(key, bm.NewBunch)
	added := b.Add(t)
	if added {
		if ab, ok := b.(*arrayBunch); ok && ab.needsPromotion() {
			bm.ReplaceBunch(key, ab.promote())
		}
	}
	return added
}

// RemoveAndMaybeDrop removes t from the bunch at key, dropping the
// key entirely if the bunch becomes empty.
func (bm *BunchMap) RemoveAndMaybeDrop(key rdf.Node, t rdf.Triple) bool {
	b := bm.Get(key)
	if b == nil {
		return false
	}
	removed := b.Remove(t)
	if removed && b.Size() == 0 {
		bm.Remove(key)
	}
	return removed
}
