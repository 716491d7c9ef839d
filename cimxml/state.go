// Package cimxml implements the CIM/XML streaming reader (spec.md
// §4.I): a pull-style parser over encoding/xml's token stream that
// emits triples into a Sink (§4.J) instead of building a DOM, so a
// document can be consumed in one pass regardless of size.
//
// Grounded on turbo/stages/headerdownload's small explicit state
// structs reacting to an incoming stream, and
// cmd/headers/download/downloader.go's "read one unit, advance state,
// emit" driving loop — adapted here from a block-header stream to an
// RDF/XML token stream.
package cimxml

// state names the reader's position in a CIM/XML document. The
// reader only ever holds one of these at a time; nested resource
// descriptions are handled by explicit recursion in reader.go rather
// than by growing this enum, since their nesting depth is unbounded
// and unrelated to which section of the document they occur in.
type state uint8

const (
	stateStart state = iota
	stateSeenPI
	stateSeenRoot
	stateInsideBody
	stateEnd
)

func (s state) String() string {
	switch s {
	case stateStart:
		return "start"
	case stateSeenPI:
		return "seen-pi"
	case stateSeenRoot:
		return "seen-root"
	case stateInsideBody:
		return "inside-body"
	case stateEnd:
		return "end"
	default:
		return "unknown"
	}
}

// documentKind distinguishes a full model document from a difference
// model document, once the reader has seen the header resource.
type documentKind uint8

const (
	documentUnknown documentKind = iota
	documentFullModel
	documentDifferenceModel
)
