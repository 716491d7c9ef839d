// Package triplestore implements the in-memory triple store family:
// the promotable triple bunch used by the fast triadic store, the fast
// triadic store itself, and the delta overlay graph. The roaring-bitmap
// backed store lives in the triplestore/roaring subpackage.
package triplestore

import (
	"fmt"

	"github.com/ledgerwatch/turbo-rdf/rdf"
	"github.com/ledgerwatch/turbo-rdf/rdferr"
)

// Graph is the common contract every store implementation in this
// repository satisfies (spec.md §9): a single interface rather than a
// class hierarchy, with ModelHeader/CimProfile/CimDatasetGraph-style
// wrappers projecting semantic queries onto it elsewhere in the repo.
type Graph interface {
	Add(t rdf.Triple) bool
	Remove(t rdf.Triple) bool
	Contains(s, p, o rdf.Node) bool
	Find(s, p, o rdf.Node) Iterator
	ForEach(s, p, o rdf.Node, fn func(rdf.Triple) bool)
	Size() int
	Clear()
}

// Iterator is the external iterator returned by Find. It captures a
// snapshot of the source graph's change counter at construction and
// fails fast with rdferr.ConcurrentModification if that counter moves
// before iteration completes (spec.md §5).
type Iterator interface {
	// Next advances the iterator and reports whether a value is
	// available. It returns rdferr.ConcurrentModification if the
	// source graph was mutated since the iterator was built.
	Next() (rdf.Triple, bool, error)
}

// sliceIterator is the iterator used by FastStore and DeltaGraph: both
// materialize their match result as a triple slice up front (bunches
// and overlays are small enough in practice, and §4.D's failure model
// only requires "empty sequence, never an error" for non-matching
// patterns, not true laziness).
type sliceIterator struct {
	triples []rdf.Triple
	pos     int

	changeCounter func() uint64
	snapshot      uint64
}

func newSliceIterator(triples []rdf.Triple, changeCounter func() uint64) *sliceIterator {
	return &sliceIterator{triples: triples, changeCounter: changeCounter, snapshot: changeCounter()}
}

// NewIterator builds an Iterator over triples that fails fast with
// rdferr.ConcurrentModification once changeCounter's value diverges
// from its value at construction time. Exported so other packages
// implementing Graph (e.g. triplestore/roaring) can reuse the same
// snapshot-and-compare iterator instead of redefining it.
func NewIterator(triples []rdf.Triple, changeCounter func() uint64) Iterator {
	return newSliceIterator(triples, changeCounter)
}

func (it *sliceIterator) Next() (rdf.Triple, bool, error) {
	if it.changeCounter() != it.snapshot {
		return rdf.Triple{}, false, fmt.Errorf("triplestore: iterator outlived a mutation: %w", rdferr.ConcurrentModification)
	}
	if it.pos >= len(it.triples) {
		return rdf.Triple{}, false, nil
	}
	t := it.triples[it.pos]
	it.pos++
	return t, true, nil
}

// Collect drains it into a slice. Present for tests and for callers
// that don't need streaming behavior.
func Collect(it Iterator) ([]rdf.Triple, error) {
	var out []rdf.Triple
	for {
		t, ok, err := it.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, t)
	}
}
