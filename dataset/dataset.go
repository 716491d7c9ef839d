// Package dataset implements the dataset / named-graph layer (spec.md
// §4.G): a mapping from graph name to graph, with one graph marked
// default, plus the FullModel/DifferenceModel projections a CIM/XML
// document's header and body/difference sections are exposed through.
//
// Grounded on migrations/migrations.go's Migrator: a small named-entry
// registry (there: migration name -> Up function; here: graph name ->
// Graph) with a couple of derived views over the same underlying map.
package dataset

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ledgerwatch/turbo-rdf/rdf"
	"github.com/ledgerwatch/turbo-rdf/rdf/vocab"
	"github.com/ledgerwatch/turbo-rdf/rdferr"
	"github.com/ledgerwatch/turbo-rdf/triplestore"
)

// Dataset owns a default graph plus a keyed collection of named
// graphs (spec.md §3). It owns every graph it holds; none of them is
// shared with another Dataset.
type Dataset struct {
	defaultGraph triplestore.Graph
	named        map[string]triplestore.Graph
}

// New constructs a Dataset whose default graph is defaultGraph.
func New(defaultGraph triplestore.Graph) *Dataset {
	return &Dataset{defaultGraph: defaultGraph, named: make(map[string]triplestore.Graph)}
}

// DefaultGraph returns the dataset's default (unnamed) graph.
func (d *Dataset) DefaultGraph() triplestore.Graph { return d.defaultGraph }

// AddGraph registers g under name, replacing any existing graph with
// that name.
func (d *Dataset) AddGraph(name string, g triplestore.Graph) {
	d.named[name] = g
}

// ContainsGraph reports whether a graph is registered under name.
func (d *Dataset) ContainsGraph(name string) bool {
	_, ok := d.named[name]
	return ok
}

// Graph returns the named graph, or nil if none is registered under
// that name.
func (d *Dataset) Graph(name string) triplestore.Graph {
	return d.named[name]
}

// NamedGraphs returns a snapshot of the name -> graph map.
func (d *Dataset) NamedGraphs() map[string]triplestore.Graph {
	out := make(map[string]triplestore.Graph, len(d.named))
	for k, v := range d.named {
		out[k] = v
	}
	return out
}

// IsFullModel reports whether this dataset carries a urn:FullModel
// header graph.
func (d *Dataset) IsFullModel() bool { return d.ContainsGraph(vocab.GraphFullModel) }

// IsDifferenceModel reports whether this dataset carries a
// urn:DifferenceModel header graph.
func (d *Dataset) IsDifferenceModel() bool { return d.ContainsGraph(vocab.GraphDifferenceModel) }

// ModelHeader returns the header wrapper for whichever of
// urn:FullModel / urn:DifferenceModel is present.
func (d *Dataset) ModelHeader() (*ModelHeader, error) {
	if g := d.Graph(vocab.GraphFullModel); g != nil {
		return &ModelHeader{graph: g, kind: rdf.IRI(vocab.MDFullModel)}, nil
	}
	if g := d.Graph(vocab.GraphDifferenceModel); g != nil {
		return &ModelHeader{graph: g, kind: rdf.IRI(vocab.DMDifferenceModel)}, nil
	}
	return nil, fmt.Errorf("dataset: no model header present: %w", rdferr.IllegalArgument)
}

// Body returns the default graph for a FullModel dataset. Calling it
// on a difference model is an illegal argument (spec.md §7).
func (d *Dataset) Body() (triplestore.Graph, error) {
	if !d.IsFullModel() {
		return nil, fmt.Errorf("dataset: body() requires a FullModel dataset: %w", rdferr.IllegalArgument)
	}
	return d.defaultGraph, nil
}

// ForwardDifferences returns the urn:ForwardDifferences graph.
// Calling it on a full model is an illegal argument.
func (d *Dataset) ForwardDifferences() (triplestore.Graph, error) {
	return d.differenceSection(vocab.GraphForwardDifferences)
}

// ReverseDifferences returns the urn:ReverseDifferences graph.
func (d *Dataset) ReverseDifferences() (triplestore.Graph, error) {
	return d.differenceSection(vocab.GraphReverseDifferences)
}

// Preconditions returns the urn:Preconditions graph, or (nil, nil) if
// the document had no preconditions section — it is optional per
// spec.md §3.
func (d *Dataset) Preconditions() (triplestore.Graph, error) {
	if !d.IsDifferenceModel() {
		return nil, fmt.Errorf("dataset: preconditions() requires a DifferenceModel dataset: %w", rdferr.IllegalArgument)
	}
	return d.Graph(vocab.GraphPreconditions), nil
}

func (d *Dataset) differenceSection(name string) (triplestore.Graph, error) {
	if !d.IsDifferenceModel() {
		return nil, fmt.Errorf("dataset: %s requires a DifferenceModel dataset: %w", name, rdferr.IllegalArgument)
	}
	g := d.Graph(name)
	if g == nil {
		return nil, fmt.Errorf("dataset: missing required section %s: %w", name, rdferr.MalformedInput)
	}
	return g, nil
}

// MaterializeFullModel synthesizes a full model from a difference
// model applied against base, per spec.md §4.F:
// apply(base) = (base ∪ forward) \ reverse.
func (d *Dataset) MaterializeFullModel(base triplestore.Graph) (triplestore.Graph, error) {
	forward, err := d.ForwardDifferences()
	if err != nil {
		return nil, err
	}
	reverse, err := d.ReverseDifferences()
	if err != nil {
		return nil, err
	}
	return triplestore.Apply(base, forward, reverse), nil
}

// ForEachGraphParallel runs fn once per graph in the dataset
// (including the default graph, named ""), concurrently. This is one
// of the two data-parallel operations spec.md §5 permits: fn must only
// read its graph, never mutate it. Every fn call runs to completion,
// even after another call has failed; the first error returned by any
// fn call is returned.
func (d *Dataset) ForEachGraphParallel(fn func(name string, g triplestore.Graph) error) error {
	var g errgroup.Group
	g.Go(func() error { return fn("", d.defaultGraph) })
	for name, graph := range d.named {
		name, graph := name, graph
		g.Go(func() error { return fn(name, graph) })
	}
	return g.Wait()
}
