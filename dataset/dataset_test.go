package dataset

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerwatch/turbo-rdf/rdf"
	"github.com/ledgerwatch/turbo-rdf/rdf/vocab"
	"github.com/ledgerwatch/turbo-rdf/triplestore"
)

func TestFullModelWiring(t *testing.T) {
	// spec.md §8 scenario 3.
	header := triplestore.NewFastStore()
	model := rdf.IRI("urn:m")
	header.Add(rdf.New(model, rdf.IRI(vocab.RDFType), rdf.IRI(vocab.MDFullModel)))
	header.Add(rdf.New(model, rdf.IRI(vocab.MDModelProfile), rdf.IRI("urn:p")))

	body := triplestore.NewFastStore()

	ds := New(body)
	ds.AddGraph(vocab.GraphFullModel, header)

	require.True(t, ds.IsFullModel())
	require.False(t, ds.IsDifferenceModel())

	h, err := ds.ModelHeader()
	require.NoError(t, err)
	m, ok := h.Model()
	require.True(t, ok)
	require.True(t, m.Equals(model))
	require.Equal(t, []string{"urn:p"}, h.Profiles())

	b, err := ds.Body()
	require.NoError(t, err)
	require.Equal(t, 0, b.Size())

	_, err = ds.ForwardDifferences()
	require.Error(t, err)
}

func TestDifferenceModelWiring(t *testing.T) {
	header := triplestore.NewFastStore()
	model := rdf.IRI("urn:dm")
	header.Add(rdf.New(model, rdf.IRI(vocab.RDFType), rdf.IRI(vocab.DMDifferenceModel)))

	forward := triplestore.NewFastStore()
	sub := rdf.IRI("http://base/#_42")
	forward.Add(rdf.New(sub, rdf.IRI("http://cim/Switch.open"), rdf.TypedLiteral("true", "http://www.w3.org/2001/XMLSchema#boolean")))
	reverse := triplestore.NewFastStore()

	ds := New(triplestore.NewFastStore())
	ds.AddGraph(vocab.GraphDifferenceModel, header)
	ds.AddGraph(vocab.GraphForwardDifferences, forward)
	ds.AddGraph(vocab.GraphReverseDifferences, reverse)

	require.True(t, ds.IsDifferenceModel())

	fwd, err := ds.ForwardDifferences()
	require.NoError(t, err)
	require.Equal(t, 1, fwd.Size())

	rev, err := ds.ReverseDifferences()
	require.NoError(t, err)
	require.Equal(t, 0, rev.Size())

	pre, err := ds.Preconditions()
	require.NoError(t, err)
	require.Nil(t, pre)

	_, err = ds.Body()
	require.Error(t, err)
}

func TestForEachGraphParallel(t *testing.T) {
	ds := New(triplestore.NewFastStore())
	g1 := triplestore.NewFastStore()
	g1.Add(rdf.New(rdf.IRI("a"), rdf.IRI("p"), rdf.IRI("b")))
	ds.AddGraph("g1", g1)

	seen := make(map[string]int)
	var mu sync.Mutex
	err := ds.ForEachGraphParallel(func(name string, g triplestore.Graph) error {
		mu.Lock()
		seen[name] = g.Size()
		mu.Unlock()
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, seen["g1"])
	require.Equal(t, 0, seen[""])
}
