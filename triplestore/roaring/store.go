package roaring

import (
	"github.com/ledgerwatch/turbo-rdf/rdf"
	"github.com/ledgerwatch/turbo-rdf/triplestore"
)

// Store is the roaring-bitmap backed triple store (spec.md §4.E): an
// indexed triple set with stable per-element slot ids, three
// node->bitmap maps keyed by subject/predicate/object, and a
// free-slot stack for position reuse. Grounded on turbo-geth's
// eth/stagedsync/stage_log_index.go, which builds exactly this shape
// of node->bitmap maps (there: topic/address -> block-number bitmap)
// while streaming receipts, generalized here from two maps to three
// plus the owning indexed set.
type Store struct {
	triples []*rdf.Triple // slot -> triple; nil entries are free
	free    []uint32      // LIFO free-slot stack
	all     *Bitmap       // occupied slots, for the ___ pattern

	bySubject   *nodeBitmapMap
	byPredicate *nodeBitmapMap
	byObject    *nodeBitmapMap

	changes uint64
}

// NewStore constructs an empty roaring store.
func NewStore() *Store {
	return &Store{
		all:         NewBitmap(),
		bySubject:   newNodeBitmapMap(),
		byPredicate: newNodeBitmapMap(),
		byObject:    newNodeBitmapMap(),
	}
}

// Add inserts t. Per spec.md §4.E: probe by intersecting the three
// bitmaps for S, P, O (creating them empty as needed); a non-empty
// intersection means t already exists and Add is a no-op. Otherwise
// allocate a slot (reusing a freed one if available), write the
// triple, and add the slot id to each of the three bitmaps.
func (s *Store) Add(t rdf.Triple) bool {
	sb := s.bySubject.getOrCreate(t.Subject)
	pb := s.byPredicate.getOrCreate(t.Predicate)
	ob := s.byObject.getOrCreate(t.Object)

	if !And(sb, pb, ob).IsEmpty() {
		return false
	}

	slot := s.allocSlot()
	s.triples[slot] = &t
	sb.Add(slot)
	pb.Add(slot)
	ob.Add(slot)
	s.all.Add(slot)
	s.changes++
	return true
}

func (s *Store) allocSlot() uint32 {
	if n := len(s.free); n > 0 {
		slot := s.free[n-1]
		s.free = s.free[:n-1]
		return slot
	}
	slot := uint32(len(s.triples))
	s.triples = append(s.triples, nil)
	return slot
}

// Remove deletes t. Per spec.md §4.E: re-probe the intersection; if
// empty, no-op; otherwise take the first slot, clear it from the
// three bitmaps, null its entry, push the slot onto the free stack,
// and drop any bitmap key that becomes empty.
func (s *Store) Remove(t rdf.Triple) bool {
	sb := s.bySubject.get(t.Subject)
	pb := s.byPredicate.get(t.Predicate)
	ob := s.byObject.get(t.Object)
	if sb == nil || pb == nil || ob == nil {
		return false
	}
	inter := And(sb, pb, ob)
	slot, ok := inter.First()
	if !ok {
		return false
	}

	sb.Remove(slot)
	pb.Remove(slot)
	ob.Remove(slot)
	s.bySubject.dropIfEmpty(t.Subject)
	s.byPredicate.dropIfEmpty(t.Predicate)
	s.byObject.dropIfEmpty(t.Object)

	s.triples[slot] = nil
	s.all.Remove(slot)
	s.free = append(s.free, slot)
	s.changes++
	return true
}

// Contains reports whether (s,p,o) is stored, dispatching on pattern.
func (s *Store) Contains(sub, pred, obj rdf.Node) bool {
	found := false
	s.ForEach(sub, pred, obj, func(rdf.Triple) bool { found = true; return false })
	return found
}

// Find returns an iterator over every stored triple matching the
// pattern.
func (s *Store) Find(sub, pred, obj rdf.Node) triplestore.Iterator {
	var out []rdf.Triple
	s.ForEach(sub, pred, obj, func(t rdf.Triple) bool { out = append(out, t); return true })
	return triplestore.NewIterator(out, func() uint64 { return s.changes })
}

var _ triplestore.Graph = (*Store)(nil)

// ForEach is the internal-iteration counterpart of Find. It resolves
// the query to a slot bitmap via And() over the relevant per-component
// bitmaps (spec.md §8's bitmap-algebra property), then projects slots
// back to triples in batches (spec.md §4.E).
func (s *Store) ForEach(sub, pred, obj rdf.Node, fn func(rdf.Triple) bool) {
	var result *Bitmap
	switch rdf.Classify(sub, pred, obj) {
	case rdf.PatternSPO, rdf.PatternSP_, rdf.PatternS_O, rdf.Pattern_PO:
		bitmaps := s.componentBitmaps(sub, pred, obj)
		if bitmaps == nil {
			return
		}
		result = And(bitmaps...)
	case rdf.PatternS__:
		b := s.bySubject.get(sub)
		if b == nil {
			return
		}
		result = b
	case rdf.Pattern_P_:
		b := s.byPredicate.get(pred)
		if b == nil {
			return
		}
		result = b
	case rdf.Pattern__O:
		b := s.byObject.get(obj)
		if b == nil {
			return
		}
		result = b
	case rdf.Pattern___:
		result = s.all
	}
	if result == nil {
		return
	}
	cont := true
	result.ForEachBatch(func(batch []uint32) bool {
		for _, slot := range batch {
			if t := s.triples[slot]; t != nil {
				cont = fn(*t)
				if !cont {
					return false
				}
			}
		}
		return true
	})
}

// componentBitmaps returns only the bitmaps for the non-Any components
// of the pattern, or nil if any required bitmap is absent (meaning no
// match is possible).
func (s *Store) componentBitmaps(sub, pred, obj rdf.Node) []*Bitmap {
	var bitmaps []*Bitmap
	if !sub.IsAny() {
		b := s.bySubject.get(sub)
		if b == nil {
			return nil
		}
		bitmaps = append(bitmaps, b)
	}
	if !pred.IsAny() {
		b := s.byPredicate.get(pred)
		if b == nil {
			return nil
		}
		bitmaps = append(bitmaps, b)
	}
	if !obj.IsAny() {
		b := s.byObject.get(obj)
		if b == nil {
			return nil
		}
		bitmaps = append(bitmaps, b)
	}
	return bitmaps
}

// Size is the number of occupied slots, equivalently the number of
// stored triples.
func (s *Store) Size() int { return s.all.Cardinality() }

// FreeSlots reports the current depth of the free-slot stack (used by
// tests asserting position-reuse behavior, spec.md §8 scenario 6).
func (s *Store) FreeSlots() int { return len(s.free) }

// Clear empties the store.
func (s *Store) Clear() {
	s.triples = nil
	s.free = nil
	s.all = NewBitmap()
	s.bySubject = newNodeBitmapMap()
	s.byPredicate = newNodeBitmapMap()
	s.byObject = newNodeBitmapMap()
	s.changes++
}

// BitmapForSubject exposes the raw per-subject slot bitmap, used by
// the bitmap-algebra test in spec.md §8 and by callers that want to
// compose set algebra across multiple stores.
func (s *Store) BitmapForSubject(sub rdf.Node) *Bitmap { return s.bySubject.get(sub) }

// BitmapForPredicate exposes the raw per-predicate slot bitmap.
func (s *Store) BitmapForPredicate(pred rdf.Node) *Bitmap { return s.byPredicate.get(pred) }

// BitmapForObject exposes the raw per-object slot bitmap.
func (s *Store) BitmapForObject(obj rdf.Node) *Bitmap { return s.byObject.get(obj) }
