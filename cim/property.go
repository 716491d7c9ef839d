package cim

import (
	"strings"

	"github.com/ethereum/go-ethereum/log"

	"github.com/ledgerwatch/turbo-rdf/rdf"
	"github.com/ledgerwatch/turbo-rdf/triplestore"
)

// PropertyKind discriminates how a property's value is represented.
type PropertyKind uint8

const (
	// PropertyLiteral means the value is a literal typed with Datatype.
	PropertyLiteral PropertyKind = iota
	// PropertyReference means the value is an IRI or blank node whose
	// class is expected to be ReferenceTarget.
	PropertyReference
)

// PropertyInfo is one entry of a profile's derived property table
// (spec.md §4.H): for a given property IRI, how to interpret its
// value.
type PropertyInfo struct {
	DomainClass     string
	Kind            PropertyKind
	Datatype        string // set when Kind == PropertyLiteral
	ReferenceTarget string // set when Kind == PropertyReference
}

// extractProperties walks an ontology graph and derives the property
// table spec.md §4.H describes, resolving each property's stereotype
// by inspecting either the property itself or its range class:
//
//   - range class stereotyped Primitive: literal, datatype named by
//     the range class's local name looked up in primitives.
//   - range class stereotyped CIMDatatype: find that class's
//     "<Class>.value" child property and use its own range's local
//     name as the primitive.
//   - anything else, with AssociationUsed absent or "Yes": a
//     reference to the range class.
//   - AssociationUsed == "No": the association is not navigable in
//     this profile; no property table entry is produced.
//
// Unresolvable or unknown primitive names fall back to xsd:string
// with a warning, per spec.md §4.H's "unknown primitives fall back to
// string, with a warning" rule.
func extractProperties(ontology triplestore.Graph, primitives map[string]string) map[string]PropertyInfo {
	out := make(map[string]PropertyInfo)

	ontology.ForEach(rdf.Any, rdf.IRI(RDFSDomain), rdf.Any, func(t rdf.Triple) bool {
		prop := t.Subject
		domainClass := t.Object

		rangeClass, ok := singleObject(ontology, prop, rdf.IRI(RDFSRange))
		if !ok {
			return true
		}

		if used, ok := singleLiteral(ontology, prop, rdf.IRI(UMLAssociationUsed)); ok && used == AssociationUsedNo {
			return true
		}

		stereotype, _ := singleLiteral(ontology, rangeClass, rdf.IRI(UMLStereotype))

		switch stereotype {
		case StereotypePrimitive:
			name := localName(rangeClass.IRIValue())
			out[prop.IRIValue()] = PropertyInfo{
				DomainClass: domainClass.IRIValue(),
				Kind:        PropertyLiteral,
				Datatype:    resolvePrimitive(name, primitives),
			}
		case StereotypeCIMDatatype:
			datatype := resolveDatatypeValueChild(ontology, rangeClass, primitives)
			out[prop.IRIValue()] = PropertyInfo{
				DomainClass: domainClass.IRIValue(),
				Kind:        PropertyLiteral,
				Datatype:    datatype,
			}
		default:
			out[prop.IRIValue()] = PropertyInfo{
				DomainClass:     domainClass.IRIValue(),
				Kind:            PropertyReference,
				ReferenceTarget: rangeClass.IRIValue(),
			}
		}
		return true
	})

	return out
}

// resolveDatatypeValueChild finds datatypeClass's "<Class>.value"
// child property and resolves the primitive it wraps.
func resolveDatatypeValueChild(ontology triplestore.Graph, datatypeClass rdf.Node, primitives map[string]string) string {
	suffix := localName(datatypeClass.IRIValue()) + ValueChildSuffix
	var primitiveName string
	found := false
	ontology.ForEach(rdf.Any, rdf.IRI(RDFSDomain), datatypeClass, func(t rdf.Triple) bool {
		if found || !strings.HasSuffix(t.Subject.IRIValue(), suffix) {
			return true
		}
		valueRange, ok := singleObject(ontology, t.Subject, rdf.IRI(RDFSRange))
		if !ok {
			return true
		}
		primitiveName = localName(valueRange.IRIValue())
		found = true
		return false
	})
	if !found {
		log.Warn("CIMDatatype has no .value child property", "class", datatypeClass.IRIValue())
		return primitives["String"]
	}
	return resolvePrimitive(primitiveName, primitives)
}

func resolvePrimitive(name string, primitives map[string]string) string {
	if dt, ok := primitives[name]; ok {
		return dt
	}
	log.Warn("unknown CIM primitive, falling back to xsd:string", "primitive", name)
	return primitives["String"]
}

func localName(iri string) string {
	if i := strings.LastIndexAny(iri, "#/"); i >= 0 {
		return iri[i+1:]
	}
	return iri
}

func singleObject(g triplestore.Graph, s, p rdf.Node) (rdf.Node, bool) {
	var found rdf.Node
	ok := false
	g.ForEach(s, p, rdf.Any, func(t rdf.Triple) bool {
		found = t.Object
		ok = true
		return false
	})
	return found, ok
}

func singleLiteral(g triplestore.Graph, s, p rdf.Node) (string, bool) {
	obj, ok := singleObject(g, s, p)
	if !ok || obj.Kind() != rdf.KindLiteral {
		return "", false
	}
	return obj.Lexical(), true
}
