package dataset

import (
	"github.com/ledgerwatch/turbo-rdf/rdf"
	"github.com/ledgerwatch/turbo-rdf/rdf/vocab"
	"github.com/ledgerwatch/turbo-rdf/triplestore"
)

// ModelHeader is a wrapper (spec.md §9: wrapper, not a subclass) that
// projects the header vocabulary queries spec.md §6 names onto a
// header graph.
type ModelHeader struct {
	graph triplestore.Graph
	kind  rdf.Node // md:FullModel or dm:DifferenceModel
}

// Model returns the header's model IRI: the subject of the
// `rdf:type md:FullModel` (or dm:DifferenceModel) triple.
func (h *ModelHeader) Model() (rdf.Node, bool) {
	var model rdf.Node
	found := false
	h.graph.ForEach(rdf.Any, rdf.IRI(vocab.RDFType), h.kind, func(t rdf.Triple) bool {
		model = t.Subject
		found = true
		return false
	})
	return model, found
}

// Profiles returns the lexical forms of every md:Model.profile value
// asserted about the header's model.
func (h *ModelHeader) Profiles() []string {
	return h.literalsFor(vocab.MDModelProfile)
}

// Supersedes returns the lexical forms of every md:Model.Supersedes
// value.
func (h *ModelHeader) Supersedes() []string {
	return h.literalsFor(vocab.MDModelSupersedes)
}

// DependentOn returns the lexical forms of every md:Model.DependentOn
// value.
func (h *ModelHeader) DependentOn() []string {
	return h.literalsFor(vocab.MDModelDependentOn)
}

func (h *ModelHeader) literalsFor(predicate string) []string {
	model, ok := h.Model()
	if !ok {
		return nil
	}
	var out []string
	h.graph.ForEach(model, rdf.IRI(predicate), rdf.Any, func(t rdf.Triple) bool {
		switch t.Object.Kind() {
		case rdf.KindLiteral:
			out = append(out, t.Object.Lexical())
		case rdf.KindIRI:
			out = append(out, t.Object.IRIValue())
		}
		return true
	})
	return out
}

// Graph returns the underlying header graph, for callers that need to
// run arbitrary queries beyond the vocabulary above.
func (h *ModelHeader) Graph() triplestore.Graph { return h.graph }
