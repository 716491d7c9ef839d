package triplestore

import (
	"testing"

	"github.com/ledgerwatch/turbo-rdf/rdf"
	"github.com/stretchr/testify/require"
)

func TestDeltaGraphOverlayView(t *testing.T) {
	base := NewFastStore()
	kept := rdf.New(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("kept"))
	removedFromBase := rdf.New(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("gone"))
	base.Add(kept)
	base.Add(removedFromBase)

	d := NewDeltaGraph(base)
	added := rdf.New(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("new"))
	require.True(t, d.Add(added))
	require.True(t, d.Remove(removedFromBase))

	got, err := Collect(d.Find(rdf.IRI("a"), rdf.Any, rdf.Any))
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.True(t, d.Contains(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("kept")))
	require.True(t, d.Contains(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("new")))
	require.False(t, d.Contains(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("gone")))
}

func TestDeltaGraphAdditionsRemovalsDisjoint(t *testing.T) {
	base := NewFastStore()
	t1 := rdf.New(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("o"))

	d := NewDeltaGraph(base)
	d.Add(t1)
	// Removing something only ever in additions retracts it from
	// additions rather than recording it in removals.
	d.Remove(t1)
	require.False(t, d.Contains(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("o")))

	// Re-adding after it was removed from base (present in removals)
	// retracts the removal instead of duplicating it into additions.
	base.Add(t1)
	d2 := NewDeltaGraph(base)
	d2.Remove(t1)
	require.False(t, d2.Contains(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("o")))
	d2.Add(t1)
	require.True(t, d2.Contains(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("o")))
}

func TestDeltaGraphRemovingAbsentIsNoOp(t *testing.T) {
	base := NewFastStore()
	d := NewDeltaGraph(base)
	require.False(t, d.Remove(rdf.New(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("o"))))
}

func TestApplyForwardReverse(t *testing.T) {
	base := NewFastStore()
	keep := rdf.New(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("keep"))
	drop := rdf.New(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("drop"))
	base.Add(keep)
	base.Add(drop)

	forward := NewFastStore()
	added := rdf.New(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("added"))
	forward.Add(added)

	reverse := NewFastStore()
	reverse.Add(drop)

	result := Apply(base, forward, reverse)
	require.Equal(t, 2, result.Size())
	require.True(t, result.Contains(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("keep")))
	require.True(t, result.Contains(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("added")))
	require.False(t, result.Contains(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("drop")))
}
