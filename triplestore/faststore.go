package triplestore

import "github.com/ledgerwatch/turbo-rdf/rdf"

// FastStore is the general-purpose backend: three bunch maps keyed by
// subject, predicate, and object (spec.md §4.D). It is the triple
// store equivalent of turbo-geth's eth/stagedsync/stage_log_index.go
// maintaining parallel topics/addresses bitmap indices off one stream
// of facts, generalized here from two indices to three plus a count.
type FastStore struct {
	bySubject   *BunchMap
	byPredicate *BunchMap
	byObject    *BunchMap
	count       int
	changes     uint64
}

// NewFastStore constructs an empty FastStore with the default
// promotion thresholds.
func NewFastStore() *FastStore {
	return &FastStore{
		bySubject:   NewBunchMap(DefaultSubjectPromotionThreshold),
		byPredicate: NewBunchMap(DefaultPredicateOrObjectPromotionThreshold),
		byObject:    NewBunchMap(DefaultPredicateOrObjectPromotionThreshold),
	}
}

var _ Graph = (*FastStore)(nil)

// Add inserts t. Per spec.md §4.D: look up/insert in bySubject first;
// only if that was a genuine addition does it unconditionally insert
// into the other two indices and bump count.
func (s *FastStore) Add(t rdf.Triple) bool {
	if !s.bySubject.AddAndMaybePromote(t.Subject, t) {
		return false
	}
	s.byPredicate.AddAndMaybePromote(t.Predicate, t)
	s.byObject.AddAndMaybePromote(t.Object, t)
	s.count++
	s.changes++
	return true
}

// Remove deletes t, mirroring Add: if it was present in bySubject it
// is dropped from all three indices and count decremented.
func (s *FastStore) Remove(t rdf.Triple) bool {
	if !s.bySubject.RemoveAndMaybeDrop(t.Subject, t) {
		return false
	}
	s.byPredicate.RemoveAndMaybeDrop(t.Predicate, t)
	s.byObject.RemoveAndMaybeDrop(t.Object, t)
	s.count--
	s.changes++
	return true
}

// Contains dispatches on the match pattern exactly as Find does, but
// stops at the first match instead of materializing results.
func (s *FastStore) Contains(sub, pred, obj rdf.Node) bool {
	found := false
	s.ForEach(sub, pred, obj, func(rdf.Triple) bool {
		found = true
		return false
	})
	return found
}

// Find returns an iterator over every stored triple matching
// (sub, pred, obj). A non-matching pattern yields an empty iterator,
// never an error (spec.md §4.D).
func (s *FastStore) Find(sub, pred, obj rdf.Node) Iterator {
	var out []rdf.Triple
	s.ForEach(sub, pred, obj, func(t rdf.Triple) bool {
		out = append(out, t)
		return true
	})
	return newSliceIterator(out, s.changeCounter)
}

func (s *FastStore) changeCounter() uint64 { return s.changes }

// ForEach is the internal iteration form spec.md §9 asks stores to
// offer alongside the external iterator, dispatching on the eight
// patterns from rdf.Classify (spec.md §4.B, §4.D).
func (s *FastStore) ForEach(sub, pred, obj rdf.Node, fn func(rdf.Triple) bool) {
	switch rdf.Classify(sub, pred, obj) {
	case rdf.PatternSPO:
		b := s.bySubject.Get(sub)
		if b == nil {
			return
		}
		want := rdf.New(sub, pred, obj)
		if b.AnyMatch(func(t rdf.Triple) bool { return t.Equals(want) }) {
			fn(want)
		}
	case rdf.PatternSP_:
		s.scanBunch(s.bySubject.Get(sub), func(t rdf.Triple) bool { return t.Predicate.Equals(pred) }, fn)
	case rdf.PatternS_O:
		s.scanBunch(s.bySubject.Get(sub), func(t rdf.Triple) bool { return t.Object.Equals(obj) }, fn)
	case rdf.PatternS__:
		s.scanBunch(s.bySubject.Get(sub), nil, fn)
	case rdf.Pattern_PO:
		s.findPO(pred, obj, fn)
	case rdf.Pattern_P_:
		s.scanBunch(s.byPredicate.Get(pred), nil, fn)
	case rdf.Pattern__O:
		s.scanBunch(s.byObject.Get(obj), nil, fn)
	case rdf.Pattern___:
		s.bySubject.IterValues(func(_ rdf.Node, b Bunch) bool {
			cont := true
			b.ForEach(func(t rdf.Triple) bool {
				cont = fn(t)
				return cont
			})
			return cont
		})
	}
}

func (s *FastStore) scanBunch(b Bunch, filter func(rdf.Triple) bool, fn func(rdf.Triple) bool) {
	if b == nil {
		return
	}
	b.ForEach(func(t rdf.Triple) bool {
		if filter == nil || filter(t) {
			return fn(t)
		}
		return true
	})
}

// findPO applies the _PO tie-break rule from spec.md §4.C: scan the
// predicate bunch instead of the object bunch only when the object
// bunch is larger than SecondaryLookupThreshold and the predicate
// bunch is smaller than it. This is observable performance behavior,
// not just an optimization, so it is reproduced exactly.
func (s *FastStore) findPO(pred, obj rdf.Node, fn func(rdf.Triple) bool) {
	objBunch := s.byObject.Get(obj)
	predBunch := s.byPredicate.Get(pred)
	if objBunch == nil || predBunch == nil {
		return
	}
	if objBunch.Size() > SecondaryLookupThreshold && predBunch.Size() < objBunch.Size() {
		s.scanBunch(predBunch, func(t rdf.Triple) bool { return t.Object.Equals(obj) }, fn)
		return
	}
	s.scanBunch(objBunch, func(t rdf.Triple) bool { return t.Predicate.Equals(pred) }, fn)
}

// Size returns the number of distinct triples currently stored.
func (s *FastStore) Size() int { return s.count }

// Clear empties the store.
func (s *FastStore) Clear() {
	s.bySubject = NewBunchMap(DefaultSubjectPromotionThreshold)
	s.byPredicate = NewBunchMap(DefaultPredicateOrObjectPromotionThreshold)
	s.byObject = NewBunchMap(DefaultPredicateOrObjectPromotionThreshold)
	s.count = 0
	s.changes++
}
