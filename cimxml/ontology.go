package cimxml

import (
	"encoding/xml"
	"io"

	"github.com/ledgerwatch/turbo-rdf/rdf"
	"github.com/ledgerwatch/turbo-rdf/rdf/vocab"
	"github.com/ledgerwatch/turbo-rdf/triplestore"
)

// ontologySink discards everything Reader reports except triples,
// which it writes straight into the graph it wraps: an ontology
// document has no model header, no named-graph sections and no CIM
// namespace PI, so none of the other Sink hooks fire anything worth
// recording.
type ontologySink struct{ g triplestore.Graph }

func (ontologySink) Start() error               { return nil }
func (ontologySink) SetVersion(vocab.CIMVersion) {}
func (ontologySink) SetDocumentVersion(string)   {}
func (ontologySink) Base(string)                 {}
func (ontologySink) Prefix(string, string)        {}
func (ontologySink) SwitchContext(string)         {}
func (s ontologySink) Triple(t rdf.Triple) error { s.g.Add(t); return nil }
func (ontologySink) Finish() error                { return nil }

var _ Sink = ontologySink{}

// ReadOntology parses a plain RDF/XML ontology document — an OWL
// profile export such as a CGMES RDFS profile, not a CIM/XML instance
// document — into a triplestore.Graph. It reuses Reader's
// rdf:about/rdf:ID/rdf:resource subject derivation and nested-element/
// text-content object handling (spec.md §4.I.4-5), but unlike Read it
// requires neither the iec61970-552 processing instruction nor a
// recognized CIM namespace, and it gives FullModel/DifferenceModel
// elements no section handling: ontology documents carry none of
// those, only plain
// rdf:Description/owl:Ontology/rdfs:Class resources. The result feeds
// cim.DiscoverProfileMetadata and cim.NewContentProfile/
// NewHeaderProfile.
func ReadOntology(r io.Reader) (triplestore.Graph, error) {
	g := triplestore.NewFastStore()
	rd := &Reader{dec: xml.NewDecoder(r), sink: ontologySink{g}}

	for {
		tok, err := rd.dec.Token()
		if err == io.EOF {
			return nil, fatal("ontology document has no root element")
		}
		if err != nil {
			return nil, fatal("ill-formed XML: %v", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			if err := rd.readOntologyRoot(start); err != nil {
				return nil, err
			}
			return g, nil
		}
	}
}

// readOntologyRoot handles the document's root element: it records
// xml:base (the only root attribute an ontology document's children
// can depend on) and reads every child as a resource description,
// without the CIM-namespace check handleRoot applies or the
// FullModel/DifferenceModel section switching handleTopLevel does for
// instance documents.
func (rd *Reader) readOntologyRoot(root xml.StartElement) error {
	for _, a := range root.Attr {
		if a.Name.Space == xmlReservedNamespace && a.Name.Local == "base" {
			rd.base = a.Value
		}
	}
	for {
		tok, err := rd.dec.Token()
		if err != nil {
			return fatal("ill-formed XML: %v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if _, err := rd.readDescription(t); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name == root.Name {
				return nil
			}
		}
	}
}
