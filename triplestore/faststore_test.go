package triplestore

import (
	"testing"

	"github.com/ledgerwatch/turbo-rdf/rdf"
	"github.com/stretchr/testify/require"
)

func TestFastStoreIdempotentAddAndFind(t *testing.T) {
	s := NewFastStore()
	tr := rdf.New(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("b"))

	require.True(t, s.Add(tr))
	require.False(t, s.Add(tr))
	require.Equal(t, 1, s.Size())

	got, err := Collect(s.Find(rdf.IRI("a"), rdf.Any, rdf.Any))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.True(t, got[0].Equals(tr))
}

func TestFastStorePromotionInvariance(t *testing.T) {
	s := NewFastStore()
	subj := rdf.IRI("s")
	for i := 0; i < 17; i++ {
		s.Add(rdf.New(subj, rdf.IRI(predName(i)), rdf.IRI("o")))
	}
	require.Equal(t, 17, s.Size())
	require.True(t, s.Contains(subj, rdf.IRI(predName(16)), rdf.Any))

	got, err := Collect(s.Find(subj, rdf.Any, rdf.Any))
	require.NoError(t, err)
	require.Len(t, got, 17)
}

func predName(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	return "http://p/" + string(letters[i%26]) + string(rune('0'+i))
}

func TestFastStoreThousandPredicatesScenario(t *testing.T) {
	// spec.md §8 scenario 2.
	s := NewFastStore()
	subj := rdf.IRI("http://e/s")
	var p500, o500 rdf.Node
	for i := 0; i < 1000; i++ {
		p := rdf.IRI(predName(i))
		o := rdf.IRI(predName(i) + "-o")
		if i == 500 {
			p500, o500 = p, o
		}
		s.Add(rdf.New(subj, p, o))
	}

	require.True(t, s.Contains(subj, p500, rdf.Any))
	got, err := Collect(s.Find(subj, rdf.Any, rdf.Any))
	require.NoError(t, err)
	require.Len(t, got, 1000)

	require.True(t, s.Remove(rdf.New(subj, p500, o500)))
	require.Equal(t, 999, s.Size())
	require.False(t, s.Contains(subj, p500, rdf.Any))
}

func TestFastStoreSecondaryLookupTieBreak(t *testing.T) {
	s := NewFastStore()
	pred := rdf.IRI("http://e/p")
	bigObj := rdf.IRI("http://e/common-object")

	// Object bunch grows past SecondaryLookupThreshold. Every triple
	// shares the predicate too, so the predicate bunch is the same size
	// and _PO keeps scanning the object bunch; the result must still
	// hold every matching triple.
	for i := 0; i < SecondaryLookupThreshold+10; i++ {
		s.Add(rdf.New(rdf.IRI(predName(i)), pred, bigObj))
	}
	target := rdf.New(rdf.IRI("http://e/only-this-subject"), pred, bigObj)
	s.Add(target)

	got, err := Collect(s.Find(rdf.Any, pred, bigObj))
	require.NoError(t, err)
	require.Len(t, got, SecondaryLookupThreshold+11)
}

func TestFastStoreConcurrentModificationDetected(t *testing.T) {
	s := NewFastStore()
	tr := rdf.New(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("b"))
	s.Add(tr)

	it := s.Find(rdf.Any, rdf.Any, rdf.Any)
	s.Add(rdf.New(rdf.IRI("a2"), rdf.IRI("p"), rdf.IRI("b")))

	_, _, err := it.Next()
	require.Error(t, err)
}

func TestFastStoreCountCoherence(t *testing.T) {
	s := NewFastStore()
	for i := 0; i < 50; i++ {
		s.Add(rdf.New(rdf.IRI(predName(i)), rdf.IRI("p"), rdf.IRI("o")))
	}
	s.Remove(rdf.New(rdf.IRI(predName(3)), rdf.IRI("p"), rdf.IRI("o")))

	got, err := Collect(s.Find(rdf.Any, rdf.Any, rdf.Any))
	require.NoError(t, err)
	require.Equal(t, s.Size(), len(got))
}
