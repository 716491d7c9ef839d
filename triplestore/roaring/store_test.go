package roaring

import (
	"fmt"
	"testing"

	"github.com/ledgerwatch/turbo-rdf/rdf"
	"github.com/stretchr/testify/require"
)

func TestStoreIdempotentAddRemove(t *testing.T) {
	s := NewStore()
	tr := rdf.New(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("b"))

	require.True(t, s.Add(tr))
	require.False(t, s.Add(tr))
	require.Equal(t, 1, s.Size())

	require.True(t, s.Remove(tr))
	require.False(t, s.Remove(tr))
	require.Equal(t, 0, s.Size())
}

func TestStoreBitmapAlgebra(t *testing.T) {
	// spec.md §8: bitmap_S(s) ∩ bitmap_P(p) = {slot(t): t ∈ find(s,p,_)}
	s := NewStore()
	subj := rdf.IRI("s")
	pred := rdf.IRI("p")
	s.Add(rdf.New(subj, pred, rdf.IRI("o1")))
	s.Add(rdf.New(subj, pred, rdf.IRI("o2")))
	s.Add(rdf.New(subj, rdf.IRI("other-pred"), rdf.IRI("o3")))

	inter := And(s.BitmapForSubject(subj), s.BitmapForPredicate(pred))

	var fromFind []uint32
	s.ForEach(subj, pred, rdf.Any, func(rdf.Triple) bool { fromFind = append(fromFind, 0); return true })

	require.Equal(t, len(fromFind), inter.Cardinality())
}

func TestStoreFreeSlotReuse(t *testing.T) {
	s := NewStore()
	var triples []rdf.Triple
	for i := 0; i < 100; i++ {
		tr := rdf.New(rdf.IRI(fmt.Sprintf("s%d", i)), rdf.IRI("p"), rdf.IRI("o"))
		triples = append(triples, tr)
		s.Add(tr)
	}
	for _, tr := range triples {
		s.Remove(tr)
	}
	require.Equal(t, 0, s.Size())
	require.Equal(t, 100, s.FreeSlots())
}

func TestStoreConcurrentModification(t *testing.T) {
	s := NewStore()
	s.Add(rdf.New(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("b")))

	it := s.Find(rdf.Any, rdf.Any, rdf.Any)
	s.Add(rdf.New(rdf.IRI("c"), rdf.IRI("p"), rdf.IRI("b")))

	_, _, err := it.Next()
	require.Error(t, err)
}

func TestStorePatternDispatch(t *testing.T) {
	s := NewStore()
	s.Add(rdf.New(rdf.IRI("s"), rdf.IRI("p"), rdf.IRI("o")))
	s.Add(rdf.New(rdf.IRI("s"), rdf.IRI("p2"), rdf.IRI("o2")))

	require.True(t, s.Contains(rdf.IRI("s"), rdf.IRI("p"), rdf.IRI("o")))
	require.False(t, s.Contains(rdf.IRI("s"), rdf.IRI("p"), rdf.IRI("wrong")))

	var all []rdf.Triple
	s.ForEach(rdf.Any, rdf.Any, rdf.Any, func(t rdf.Triple) bool { all = append(all, t); return true })
	require.Len(t, all, 2)
}
