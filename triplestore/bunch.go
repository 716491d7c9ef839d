package triplestore

import "github.com/ledgerwatch/turbo-rdf/rdf"

// Default promotion thresholds (spec.md §9): a subject bunch promotes
// from its array form to a hashed form once it holds more than 16
// elements; predicate/object bunches promote at 32.  Exposed as
// tunables because the spec calls them benchmark-derived defaults, not
// fixed constants.
const (
	DefaultSubjectPromotionThreshold          = 16
	DefaultPredicateOrObjectPromotionThreshold = 32

	// SecondaryLookupThreshold is the _PO tie-break threshold from
	// spec.md §4.C: above this object-bunch size, prefer scanning the
	// (smaller) predicate bunch instead.
	SecondaryLookupThreshold = 400
)

// Bunch represents "all triples sharing one component value": a small
// unordered collection, array-backed below its promotion threshold and
// open-addressed-hash-backed above it. Promotion is one-way; demotion
// never happens (spec.md §3).
type Bunch interface {
	Add(t rdf.Triple) bool
	AddUnchecked(t rdf.Triple)
	Remove(t rdf.Triple) bool
	RemoveUnchecked(t rdf.Triple)
	IsHashed() bool
	Size() int
	AnyMatch(pred func(rdf.Triple) bool) bool
	Values() []rdf.Triple
	ForEach(fn func(rdf.Triple) bool)
}

// arrayBunch is the small-collection form: a plain slice, linear scan.
type arrayBunch struct {
	items     []rdf.Triple
	threshold int
}

func newArrayBunch(threshold int) *arrayBunch {
	return &arrayBunch{threshold: threshold}
}

func (b *arrayBunch) IsHashed() bool { return false }
func (b *arrayBunch) Size() int      { return len(b.items) }

func (b *arrayBunch) indexOf(t rdf.Triple) int {
	for i, x := range b.items {
		if x.Equals(t) {
			return i
		}
	}
	return -1
}

// Add inserts t if not already present, returning whether it was
// added.
func (b *arrayBunch) Add(t rdf.Triple) bool {
	if b.indexOf(t) >= 0 {
		return false
	}
	b.AddUnchecked(t)
	return true
}

func (b *arrayBunch) AddUnchecked(t rdf.Triple) {
	b.items = append(b.items, t)
}

func (b *arrayBunch) Remove(t rdf.Triple) bool {
	i := b.indexOf(t)
	if i < 0 {
		return false
	}
	b.removeAt(i)
	return true
}

func (b *arrayBunch) RemoveUnchecked(t rdf.Triple) {
	b.Remove(t)
}

func (b *arrayBunch) removeAt(i int) {
	last := len(b.items) - 1
	b.items[i] = b.items[last]
	b.items = b.items[:last]
}

func (b *arrayBunch) AnyMatch(pred func(rdf.Triple) bool) bool {
	for _, x := range b.items {
		if pred(x) {
			return true
		}
	}
	return false
}

func (b *arrayBunch) Values() []rdf.Triple {
	out := make([]rdf.Triple, len(b.items))
	copy(out, b.items)
	return out
}

func (b *arrayBunch) ForEach(fn func(rdf.Triple) bool) {
	for _, x := range b.items {
		if !fn(x) {
			return
		}
	}
}

// needsPromotion reports whether the array form has crossed this
// bunch's threshold and should be replaced by a hashBunch.
func (b *arrayBunch) needsPromotion() bool {
	return len(b.items) > b.threshold
}

func (b *arrayBunch) promote() *hashBunch {
	h := newHashBunch()
	for _, x := range b.items {
		h.AddUnchecked(x)
	}
	return h
}

// hashBunch is the promoted, open-addressed form. Go's built-in map is
// used as the open-addressing hash set here; it satisfies the same
// O(1)-expected membership contract spec.md §3 asks for without
// hand-rolling probing, the same way turbo-geth's ValueSet
// (core/vm/absint_valueset.go) backs its set with a plain map rather
// than a bespoke hash table.
type hashBunch struct {
	set map[uint64][]rdf.Triple
	n   int
}

func newHashBunch() *hashBunch {
	return &hashBunch{set: make(map[uint64][]rdf.Triple)}
}

func (b *hashBunch) IsHashed() bool { return true }
func (b *hashBunch) Size() int      { return b.n }

func (b *hashBunch) Add(t rdf.Triple) bool {
	h := t.Hash()
	for _, x := range b.set[h] {
		if x.Equals(t) {
			return false
		}
	}
	b.AddUnchecked(t)
	return true
}

func (b *hashBunch) AddUnchecked(t rdf.Triple) {
	h := t.Hash()
	b.set[h] = append(b.set[h], t)
	b.n++
}

func (b *hashBunch) Remove(t rdf.Triple) bool {
	h := t.Hash()
	bucket := b.set[h]
	for i, x := range bucket {
		if x.Equals(t) {
			last := len(bucket) - 1
			bucket[i] = bucket[last]
			bucket = bucket[:last]
			if len(bucket) == 0 {
				delete(b.set, h)
			} else {
				b.set[h] = bucket
			}
			b.n--
			return true
		}
	}
	return false
}

func (b *hashBunch) RemoveUnchecked(t rdf.Triple) {
	b.Remove(t)
}

func (b *hashBunch) AnyMatch(pred func(rdf.Triple) bool) bool {
	for _, bucket := range b.set {
		for _, x := range bucket {
			if pred(x) {
				return true
			}
		}
	}
	return false
}

func (b *hashBunch) Values() []rdf.Triple {
	out := make([]rdf.Triple, 0, b.n)
	for _, bucket := range b.set {
		out = append(out, bucket...)
	}
	return out
}

func (b *hashBunch) ForEach(fn func(rdf.Triple) bool) {
	for _, bucket := range b.set {
		for _, x := range bucket {
			if !fn(x) {
				return
			}
		}
	}
}
