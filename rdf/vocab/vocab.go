// Package vocab collects the well-known IRIs this repository needs to
// recognize by name: RDF/RDFS/OWL reserved terms, the three CIM
// namespaces, the well-known dataset graph names, the header
// vocabulary, and the two custom datatypes. Grouped const blocks with
// a doc comment per group follow the same layout turbo-geth's
// common/dbutils/bucket.go uses for its bucket name constants.
package vocab

// RDF/XML reserved vocabulary the CIM/XML reader must recognize
// structurally rather than treat as a predicate.
const (
	RDF      = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFAbout = RDF + "about"
	RDFID    = RDF + "ID"
	RDFResource = RDF + "resource"
	RDFDatatype = RDF + "datatype"
	RDFParseType = RDF + "parseType"
	RDFType  = RDF + "type"
	RDFDescription = RDF + "Description"
)

// ParseType values. Only Statements is given special handling by
// §4.I.6; any other value besides Literal/Resource/Collection is
// fatal per spec.md §4.I.7.
const (
	ParseTypeLiteral    = "Literal"
	ParseTypeResource   = "Resource"
	ParseTypeCollection = "Collection"
	ParseTypeStatements = "Statements"
)

// CIM namespaces determine the document's CIM version (spec.md §6).
const (
	CIM16Namespace = "http://iec.ch/TC57/2013/CIM-schema-cim16#"
	CIM17Namespace = "http://iec.ch/TC57/CIM100#"
	CIM18Namespace = "https://cim.ucaiug.io/ns#"
)

// CIMVersion names the three supported CIM namespace generations.
type CIMVersion uint8

const (
	CIMUnknown CIMVersion = iota
	CIM16
	CIM17
	CIM18
)

func (v CIMVersion) String() string {
	switch v {
	case CIM16:
		return "CIM16"
	case CIM17:
		return "CIM17"
	case CIM18:
		return "CIM18"
	default:
		return "unknown"
	}
}

// CIMVersionForNamespace maps a declared namespace IRI to the CIM
// version it identifies, or CIMUnknown if the namespace is not one of
// the three recognized CIM namespaces.
func CIMVersionForNamespace(ns string) CIMVersion {
	switch ns {
	case CIM16Namespace:
		return CIM16
	case CIM17Namespace:
		return CIM17
	case CIM18Namespace:
		return CIM18
	default:
		return CIMUnknown
	}
}

// Well-known dataset graph names (spec.md §6).
const (
	GraphFullModel          = "urn:FullModel"
	GraphDifferenceModel    = "urn:DifferenceModel"
	GraphForwardDifferences = "urn:ForwardDifferences"
	GraphReverseDifferences = "urn:ReverseDifferences"
	GraphPreconditions      = "urn:Preconditions"
)

// Header vocabulary: model properties exposed by the header graph
// (spec.md §6).
const (
	MDNamespace = "http://iec.ch/TC57/61970-552/ModelDescription/1#"
	DMNamespace = "http://iec.ch/TC57/61970-552/DifferenceModel/1#"

	MDModelProfile     = MDNamespace + "Model.profile"
	MDModelSupersedes  = MDNamespace + "Model.Supersedes"
	MDModelDependentOn = MDNamespace + "Model.DependentOn"

	MDFullModel       = MDNamespace + "FullModel"
	DMDifferenceModel = DMNamespace + "DifferenceModel"

	DMForwardDifferences = DMNamespace + "forwardDifferences"
	DMReverseDifferences = DMNamespace + "reverseDifferences"
	DMPreconditions      = DMNamespace + "preconditions"
)

// Custom datatype IRIs (spec.md §6). A neutral, non-Java-specific IRI
// is chosen for UUID in this rewrite, per spec.md's instruction to
// pick one in a rewrite rather than carry over the original's
// `java:java.util.UUID`.
const (
	DatatypeUUID    = "https://www.rfc-editor.org/rfc/rfc4122#UUID"
	DatatypeVersion = "https://semver.org/spec/v2.0.0.html"
)

// IEC61970552ProcessingInstruction is the PI target the reader
// requires before the document's root element.
const IEC61970552ProcessingInstruction = "iec61970-552"
