package rdf

import (
	"fmt"
	"regexp"

	"github.com/ledgerwatch/turbo-rdf/rdf/vocab"
	"github.com/ledgerwatch/turbo-rdf/rdferr"
)

const xsdNS = "http://www.w3.org/2001/XMLSchema#"

// Lexical-form patterns for the datatypes this repository actually
// produces (spec.md §4.H's primitive table plus the two custom
// datatypes from §6). Datatypes outside this set pass unchecked:
// validation is an opt-in best-effort check, not a full XSD engine.
var (
	xsdBooleanPattern  = regexp.MustCompile(`^(true|false|0|1)$`)
	xsdIntegerPattern  = regexp.MustCompile(`^[+-]?[0-9]+$`)
	xsdDecimalPattern  = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)
	xsdDoublePattern   = regexp.MustCompile(`^([+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?|[+-]?INF|NaN)$`)
	xsdDatePattern     = regexp.MustCompile(`^-?[0-9]{4}-[0-9]{2}-[0-9]{2}(Z|[+-][0-9]{2}:[0-9]{2})?$`)
	xsdDateTimePattern = regexp.MustCompile(`^-?[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}(\.[0-9]+)?(Z|[+-][0-9]{2}:[0-9]{2})?$`)
	uuidPattern        = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	semverPattern      = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?$`)
)

var integerDatatypes = map[string]bool{
	xsdNS + "integer":            true,
	xsdNS + "int":                true,
	xsdNS + "long":               true,
	xsdNS + "short":              true,
	xsdNS + "byte":               true,
	xsdNS + "nonNegativeInteger": true,
	xsdNS + "nonPositiveInteger": true,
	xsdNS + "negativeInteger":    true,
	xsdNS + "positiveInteger":    true,
	xsdNS + "unsignedByte":       true,
	xsdNS + "unsignedInt":        true,
	xsdNS + "unsignedLong":       true,
	xsdNS + "unsignedShort":      true,
}

// ValidateLiteral checks n's lexical form against its declared
// datatype, returning rdferr.IllegalDatatype on a mismatch (spec.md
// §7). Validation is only meaningful when a caller opts into it
// explicitly (default is permissive, per §7); stores and the CIM/XML
// reader never call this on their own.
func ValidateLiteral(n Node) error {
	if n.Kind() != KindLiteral {
		return nil
	}
	lex := n.Lexical()
	var ok bool
	switch {
	case n.Datatype() == xsdNS+"boolean":
		ok = xsdBooleanPattern.MatchString(lex)
	case integerDatatypes[n.Datatype()]:
		ok = xsdIntegerPattern.MatchString(lex)
	case n.Datatype() == xsdNS+"decimal":
		ok = xsdDecimalPattern.MatchString(lex)
	case n.Datatype() == xsdNS+"double" || n.Datatype() == xsdNS+"float":
		ok = xsdDoublePattern.MatchString(lex)
	case n.Datatype() == xsdNS+"date":
		ok = xsdDatePattern.MatchString(lex)
	case n.Datatype() == xsdNS+"dateTime" || n.Datatype() == xsdNS+"dateTimeStamp":
		ok = xsdDateTimePattern.MatchString(lex)
	case n.Datatype() == vocab.DatatypeUUID:
		ok = uuidPattern.MatchString(lex)
	case n.Datatype() == vocab.DatatypeVersion:
		ok = semverPattern.MatchString(lex)
	default:
		return nil
	}
	if !ok {
		return fmt.Errorf("rdf: literal %q does not satisfy datatype <%s>: %w", lex, n.Datatype(), rdferr.IllegalDatatype)
	}
	return nil
}
