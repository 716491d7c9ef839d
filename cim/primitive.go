package cim

import "github.com/ledgerwatch/turbo-rdf/rdf/vocab"

const xsd = "http://www.w3.org/2001/XMLSchema#"

// defaultPrimitiveTable is the fixed CIM primitive-name -> datatype-IRI
// table from spec.md §4.H. UUID and Version are the two non-XSD
// datatypes (spec.md §6); everything else is a standard XSD datatype.
var defaultPrimitiveTable = map[string]string{
	"Base64Binary":       xsd + "base64Binary",
	"Boolean":            xsd + "boolean",
	"Byte":               xsd + "byte",
	"Date":               xsd + "date",
	"DateTime":           xsd + "dateTime",
	"DateTimeStamp":      xsd + "dateTimeStamp",
	"Day":                xsd + "gDay",
	"DayTimeDuration":    xsd + "dayTimeDuration",
	"Decimal":            xsd + "decimal",
	"Double":             xsd + "double",
	"Duration":           xsd + "duration",
	"Float":              xsd + "float",
	"HexBinary":          xsd + "hexBinary",
	"Int":                xsd + "int",
	"Integer":            xsd + "integer",
	"LangString":         "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString",
	"Long":               xsd + "long",
	"Month":              xsd + "gMonth",
	"MonthDay":           xsd + "gMonthDay",
	"NegativeInteger":    xsd + "negativeInteger",
	"NonNegativeInteger": xsd + "nonNegativeInteger",
	"NonPositiveInteger": xsd + "nonPositiveInteger",
	"PositiveInteger":    xsd + "positiveInteger",
	"String":             xsd + "string",
	"Time":               xsd + "time",
	"UnsignedByte":       xsd + "unsignedByte",
	"UnsignedInt":        xsd + "unsignedInt",
	"UnsignedLong":       xsd + "unsignedLong",
	"UnsignedShort":      xsd + "unsignedShort",
	"URI":                xsd + "anyURI",
	"IRI":                xsd + "anyURI",
	"UUID":               vocab.DatatypeUUID,
	"Version":            vocab.DatatypeVersion,
	"Year":               xsd + "gYear",
	"YearMonth":          xsd + "gYearMonth",
	"YearMonthDuration":  xsd + "yearMonthDuration",
}

// newPrimitiveTable returns a fresh, mutable copy of the default table
// so each registry instance can register additional primitive names
// without mutating package state.
func newPrimitiveTable() map[string]string {
	t := make(map[string]string, len(defaultPrimitiveTable))
	for k, v := range defaultPrimitiveTable {
		t[k] = v
	}
	return t
}
