package cim

// Ontology vocabulary used to extract a profile's property table from
// its RDFS/OWL ontology graph (spec.md §4.H). These follow the
// conventions CIM/CGMES UML-to-RDFS exports actually use: properties
// carry rdfs:domain/rdfs:range, a non-standard UML-stereotype literal
// distinguishes Primitive/CIMDatatype/enumeration classes, and
// CIMDatatype classes expose their wrapped primitive through a
// "<Datatype>.value" child property.
const (
	rdfsNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	RDFSDomain    = rdfsNamespace + "domain"
	RDFSRange     = rdfsNamespace + "range"
	RDFSLabel     = rdfsNamespace + "label"

	umlNamespace       = "http://iec.ch/TC57/NonStandard/UML#"
	UMLStereotype      = umlNamespace + ".stereotype"
	UMLAssociationUsed = umlNamespace + ".associationUsed"

	owlNamespace   = "http://www.w3.org/2002/07/owl#"
	OWLOntology    = owlNamespace + "Ontology"
	OWLVersionIRI  = owlNamespace + "versionIRI"
	OWLVersionInfo = owlNamespace + "versionInfo"

	StereotypePrimitive   = "Primitive"
	StereotypeCIMDatatype = "CIMDatatype"

	AssociationUsedYes = "Yes"
	AssociationUsedNo  = "No"

	// ValueChildSuffix is the suffix CIMDatatype "value" child
	// properties carry, e.g. "Voltage.value" on the "Voltage" class.
	ValueChildSuffix = ".value"
)
