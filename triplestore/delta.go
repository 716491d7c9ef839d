package triplestore

import "github.com/ledgerwatch/turbo-rdf/rdf"

// DeltaGraph overlays additions and removals above a base graph
// (spec.md §4.F), the in-memory analogue of the changeset-over-a-base
// pattern turbo-geth's common/dbutils bucket layout documents for
// PlainAccountChangeSetBucket/PlainStorageChangeSetBucket: a base plus
// a delta, reconciled at read time instead of at write time. Used to
// materialize a DifferenceModel's forward/reverse sections against a
// dataset's body.
type DeltaGraph struct {
	base      Graph
	additions *FastStore
	removals  *FastStore
	changes   uint64
}

// NewDeltaGraph constructs an overlay above base. base is read-only
// from the overlay's perspective; the overlay never mutates it.
func NewDeltaGraph(base Graph) *DeltaGraph {
	return &DeltaGraph{base: base, additions: NewFastStore(), removals: NewFastStore()}
}

var _ Graph = (*DeltaGraph)(nil)

// Add records t in additions, maintaining the invariant additions ∩
// removals = ∅: if t is present in removals it is dropped from there
// instead. If t is already implied by (base ∪ additions), Add is a
// no-op per spec.md §4.F.
func (d *DeltaGraph) Add(t rdf.Triple) bool {
	if d.removals.Contains(t.Subject, t.Predicate, t.Object) {
		d.removals.Remove(t)
		d.changes++
		return true
	}
	if d.Contains(t.Subject, t.Predicate, t.Object) {
		return false
	}
	added := d.additions.Add(t)
	if added {
		d.changes++
	}
	return added
}

// Remove records t in removals (unless it was only ever in additions,
// in which case it is simply retracted from there). Removing a triple
// not in the overlay's current view is a no-op.
func (d *DeltaGraph) Remove(t rdf.Triple) bool {
	if d.additions.Contains(t.Subject, t.Predicate, t.Object) {
		d.additions.Remove(t)
		d.changes++
		return true
	}
	if !d.Contains(t.Subject, t.Predicate, t.Object) {
		return false
	}
	added := d.removals.Add(t)
	if added {
		d.changes++
	}
	return added
}

// Contains reports whether t is in (base ∪ additions) \ removals.
func (d *DeltaGraph) Contains(s, p, o rdf.Node) bool {
	if rdf.Classify(s, p, o) != rdf.PatternSPO {
		found := false
		d.ForEach(s, p, o, func(rdf.Triple) bool { found = true; return false })
		return found
	}
	t := rdf.New(s, p, o)
	if d.removals.Contains(s, p, o) {
		return false
	}
	return d.base.Contains(s, p, o) || d.additions.Contains(t.Subject, t.Predicate, t.Object)
}

// Find returns (base ∪ additions) \ removals restricted to the given
// pattern.
func (d *DeltaGraph) Find(s, p, o rdf.Node) Iterator {
	var out []rdf.Triple
	d.ForEach(s, p, o, func(t rdf.Triple) bool {
		out = append(out, t)
		return true
	})
	return newSliceIterator(out, func() uint64 { return d.changes })
}

// ForEach visits (base ∪ additions) \ removals restricted to the
// pattern, each triple once.
func (d *DeltaGraph) ForEach(s, p, o rdf.Node, fn func(rdf.Triple) bool) {
	seen := make(map[uint64]struct{})
	cont := true
	visit := func(t rdf.Triple) bool {
		if d.removals.Contains(t.Subject, t.Predicate, t.Object) {
			return true
		}
		h := t.Hash()
		if _, dup := seen[h]; dup {
			return true
		}
		seen[h] = struct{}{}
		cont = fn(t)
		return cont
	}
	d.base.ForEach(s, p, o, visit)
	if cont {
		d.additions.ForEach(s, p, o, visit)
	}
}

// Size is the cardinality of (base ∪ additions) \ removals.
func (d *DeltaGraph) Size() int {
	n := 0
	d.ForEach(rdf.Any, rdf.Any, rdf.Any, func(rdf.Triple) bool { n++; return true })
	return n
}

// Clear drops both overlays, leaving the overlay equivalent to base.
func (d *DeltaGraph) Clear() {
	d.additions.Clear()
	d.removals.Clear()
	d.changes++
}

// Apply materializes the overlay's forward/reverse view against an
// explicit base graph, independent of the overlay's own configured
// base: apply(base) = (base ∪ forward) \ reverse, used when a
// DifferenceModel's forward/reverse sections are replayed onto a
// separately supplied base graph (spec.md §4.F).
func Apply(base Graph, forward, reverse Graph) *FastStore {
	out := NewFastStore()
	base.ForEach(rdf.Any, rdf.Any, rdf.Any, func(t rdf.Triple) bool {
		if !reverse.Contains(t.Subject, t.Predicate, t.Object) {
			out.Add(t)
		}
		return true
	})
	forward.ForEach(rdf.Any, rdf.Any, rdf.Any, func(t rdf.Triple) bool {
		if !reverse.Contains(t.Subject, t.Predicate, t.Object) {
			out.Add(t)
		}
		return true
	})
	return out
}
