package cim

import (
	"github.com/ledgerwatch/turbo-rdf/rdf"
	"github.com/ledgerwatch/turbo-rdf/rdf/vocab"
	"github.com/ledgerwatch/turbo-rdf/triplestore"
)

// DiscoverProfileMetadata inspects a parsed ontology graph for its
// owl:Ontology resource and extracts the keyword, version IRIs and
// version info a Profile is identified by (spec.md §3), so a caller
// that only has a bare ontology document doesn't have to hand-walk
// the graph itself before calling NewContentProfile. versionIRIs is
// empty when the ontology declares none; registering such an
// ontology as a content profile is then a caller error (spec.md §4.H
// rejects an empty-version-IRI-set content profile).
func DiscoverProfileMetadata(ontology triplestore.Graph) (keyword string, versionIRIs []string, versionInfo string) {
	ontology.ForEach(rdf.Any, rdf.IRI(vocab.RDFType), rdf.IRI(OWLOntology), func(t rdf.Triple) bool {
		subject := t.Subject

		ontology.ForEach(subject, rdf.IRI(OWLVersionIRI), rdf.Any, func(vt rdf.Triple) bool {
			versionIRIs = append(versionIRIs, vt.Object.IRIValue())
			return true
		})
		if info, ok := singleLiteral(ontology, subject, rdf.IRI(OWLVersionInfo)); ok {
			versionInfo = info
		}
		if label, ok := singleLiteral(ontology, subject, rdf.IRI(RDFSLabel)); ok {
			keyword = label
		} else {
			keyword = localName(subject.IRIValue())
		}
		return true
	})
	return keyword, versionIRIs, versionInfo
}
