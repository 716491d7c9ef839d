package cimxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pborman/uuid"

	"github.com/ledgerwatch/turbo-rdf/cim"
	"github.com/ledgerwatch/turbo-rdf/rdf"
	"github.com/ledgerwatch/turbo-rdf/rdf/vocab"
	"github.com/ledgerwatch/turbo-rdf/rdferr"
)

const xmlReservedNamespace = "http://www.w3.org/XML/1998/namespace"

// Reader pulls tokens from an encoding/xml.Decoder and drives a Sink
// (spec.md §4.I). A Reader is single-use: construct one per document.
type Reader struct {
	dec      *xml.Decoder
	sink     Sink
	registry *cim.ProfileRegistry // optional; nil disables profile-driven datatype resolution

	base             string
	version          vocab.CIMVersion
	kind             documentKind
	seenFullModel    bool
	seenDiffModel    bool
	declaredProfiles []string
	blankCounter     int
}

// NewReader builds a Reader over r. registry may be nil, in which
// case every literal property falls back to rdf:datatype / xml:lang /
// plain string, never profile-driven resolution.
func NewReader(r io.Reader, sink Sink, registry *cim.ProfileRegistry) *Reader {
	return &Reader{dec: xml.NewDecoder(r), sink: sink, registry: registry}
}

// Read consumes the entire document, driving rd.sink, and returns the
// first fatal error encountered (spec.md §4.I's failure model): ill-
// formed XML, a missing version processing instruction, an
// unrecognized root namespace, a duplicate header, an unterminated
// section or an unrecognized rdf:parseType. Unknown primitives and
// profile-less property lookups are not failures: the former are
// logged by the cim package when a profile is built, the latter
// silently fall back to rdf:datatype / xml:lang / plain string.
func (rd *Reader) Read() error {
	if err := rd.sink.Start(); err != nil {
		return err
	}

	st := stateStart
	seenVersionPI := false

	for {
		tok, err := rd.dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fatal("ill-formed XML: %v", err)
		}

		switch t := tok.(type) {
		case xml.ProcInst:
			if t.Target == vocab.IEC61970552ProcessingInstruction {
				docVersion, verr := parsePIVersion(string(t.Inst))
				if verr != nil {
					return fatal("malformed %q processing instruction: %v", vocab.IEC61970552ProcessingInstruction, verr)
				}
				seenVersionPI = true
				rd.sink.SetDocumentVersion(docVersion)
				if st == stateStart {
					st = stateSeenPI
				}
			}
		case xml.StartElement:
			switch st {
			case stateStart, stateSeenPI:
				if !seenVersionPI {
					return fatal("document must declare a %q processing instruction before its root element", vocab.IEC61970552ProcessingInstruction)
				}
				if err := rd.handleRoot(t); err != nil {
					return err
				}
				st = stateSeenRoot
			case stateSeenRoot:
				if err := rd.handleTopLevel(t); err != nil {
					return err
				}
				st = stateInsideBody
			case stateInsideBody:
				if err := rd.handleTopLevel(t); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if st == stateInsideBody || st == stateSeenRoot {
				st = stateEnd
			}
		}
	}

	if st != stateEnd {
		return fatal("document ended before its root element closed")
	}
	return rd.sink.Finish()
}

// parsePIVersion extracts the version="x.y" attribute from the raw
// instruction text of the iec61970-552 processing instruction
// (spec.md §4.I.1), e.g. ` version="2.0"` -> "2.0".
func parsePIVersion(inst string) (string, error) {
	const key = "version"
	i := strings.Index(inst, key)
	if i < 0 {
		return "", fmt.Errorf("missing %q attribute", key)
	}
	rest := strings.TrimLeft(inst[i+len(key):], " \t\r\n")
	if !strings.HasPrefix(rest, "=") {
		return "", fmt.Errorf("missing %q attribute", key)
	}
	rest = strings.TrimLeft(rest[1:], " \t\r\n")
	if len(rest) == 0 || (rest[0] != '"' && rest[0] != '\'') {
		return "", fmt.Errorf("missing quoted value for %q attribute", key)
	}
	quote := rest[0]
	end := strings.IndexByte(rest[1:], quote)
	if end < 0 {
		return "", fmt.Errorf("unterminated value for %q attribute", key)
	}
	return rest[1 : 1+end], nil
}

func (rd *Reader) handleRoot(root xml.StartElement) error {
	version := vocab.CIMUnknown
	for _, a := range root.Attr {
		switch {
		case a.Name.Space == "xmlns":
			rd.sink.Prefix(a.Name.Local, a.Value)
			if v := vocab.CIMVersionForNamespace(a.Value); v != vocab.CIMUnknown {
				version = v
			}
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			rd.sink.Prefix("", a.Value)
			if v := vocab.CIMVersionForNamespace(a.Value); v != vocab.CIMUnknown {
				version = v
			}
		case a.Name.Space == xmlReservedNamespace && a.Name.Local == "base":
			rd.base = a.Value
		}
	}
	if version == vocab.CIMUnknown {
		return fatal("root element declares no recognized CIM namespace")
	}

	rd.version = version
	rd.sink.SetVersion(version)
	rd.sink.Base(rd.base)
	rd.sink.SwitchContext("")
	return nil
}

// handleTopLevel processes one child of the root element: either the
// FullModel/DifferenceModel header (by its rdf:type) or a plain
// resource description belonging to the default graph.
func (rd *Reader) handleTopLevel(start xml.StartElement) error {
	switch qname(start.Name) {
	case vocab.MDFullModel:
		if rd.seenFullModel {
			return fatal("duplicate FullModel header")
		}
		if rd.seenDiffModel {
			return fatal("document declares both a FullModel and a DifferenceModel header")
		}
		rd.seenFullModel = true
		rd.kind = documentFullModel
		rd.sink.SwitchContext(vocab.GraphFullModel)
		_, err := rd.readDescription(start)
		rd.sink.SwitchContext("")
		return err
	case vocab.DMDifferenceModel:
		if rd.seenDiffModel {
			return fatal("duplicate DifferenceModel header")
		}
		if rd.seenFullModel {
			return fatal("document declares both a FullModel and a DifferenceModel header")
		}
		rd.seenDiffModel = true
		rd.kind = documentDifferenceModel
		rd.sink.SwitchContext(vocab.GraphDifferenceModel)
		_, err := rd.readDescription(start)
		rd.sink.SwitchContext("")
		return err
	default:
		_, err := rd.readDescription(start)
		return err
	}
}

// readDescription reads one resource description element: its
// subject (from rdf:about / rdf:ID, or a fresh blank node), an
// rdf:type triple naming the element itself (none for an
// rdf:Description element), and one property per
// child element. Triples land in whatever graph the sink's current
// context is; callers that need a different graph switch context
// before calling in.
func (rd *Reader) readDescription(start xml.StartElement) (rdf.Node, error) {
	subject := rd.deriveSubject(start.Attr)
	if qname(start.Name) != vocab.RDFDescription {
		rd.emit(subject, rdf.IRI(vocab.RDFType), rdf.IRI(qname(start.Name)))
	}

	for {
		tok, err := rd.dec.Token()
		if err != nil {
			return subject, fatal("ill-formed XML inside <%s>: %v", start.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := rd.readProperty(subject, t); err != nil {
				return subject, err
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return subject, nil
			}
		}
	}
}

// readProperty reads one property element of a resource description:
// an rdf:resource reference, a parseType="Statements" difference
// container, a nested resource description, or literal text content.
func (rd *Reader) readProperty(subject rdf.Node, prop xml.StartElement) error {
	predicate := qname(prop.Name)

	if predicate == vocab.DMForwardDifferences || predicate == vocab.DMReverseDifferences || predicate == vocab.DMPreconditions {
		return rd.readStatementsContainer(prop, predicate)
	}

	if res, ok := attrValue(prop.Attr, vocab.RDF, "resource"); ok {
		rd.emit(subject, rdf.IRI(predicate), rd.resolveRef(res))
		return rd.skipToEnd(prop.Name)
	}

	if pt, ok := attrValue(prop.Attr, vocab.RDF, "parseType"); ok {
		switch pt {
		case vocab.ParseTypeStatements:
			return fatal("rdf:parseType=\"Statements\" is only valid on forwardDifferences, reverseDifferences and preconditions properties")
		case vocab.ParseTypeLiteral, vocab.ParseTypeResource, vocab.ParseTypeCollection:
			// Recognized, but given no special structural handling
			// beyond the generic nested-element-or-text processing
			// below (spec.md §4.I.7).
		default:
			return fatal("unrecognized rdf:parseType %q", pt)
		}
	}

	emitted := false
	for {
		tok, err := rd.dec.Token()
		if err != nil {
			return fatal("ill-formed XML inside <%s>: %v", prop.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			obj, err := rd.readDescription(t)
			if err != nil {
				return err
			}
			rd.emit(subject, rdf.IRI(predicate), obj)
			emitted = true
		case xml.CharData:
			if text := strings.TrimSpace(string(t)); text != "" && !emitted {
				rd.emit(subject, rdf.IRI(predicate), rd.literalFor(predicate, string(t), prop.Attr))
				emitted = true
			}
		case xml.EndElement:
			if !emitted {
				rd.emit(subject, rdf.IRI(predicate), rd.literalFor(predicate, "", prop.Attr))
			}
			return nil
		}
	}
}

// readStatementsContainer handles a forwardDifferences/
// reverseDifferences/preconditions property: its children are whole
// resource descriptions added directly to the corresponding named
// graph, not properties of the DifferenceModel header itself.
func (rd *Reader) readStatementsContainer(prop xml.StartElement, predicate string) error {
	pt, ok := attrValue(prop.Attr, vocab.RDF, "parseType")
	if !ok || pt != vocab.ParseTypeStatements {
		return fatal("<%s> requires rdf:parseType=\"Statements\"", prop.Name.Local)
	}

	var graphName string
	switch predicate {
	case vocab.DMForwardDifferences:
		graphName = vocab.GraphForwardDifferences
	case vocab.DMReverseDifferences:
		graphName = vocab.GraphReverseDifferences
	case vocab.DMPreconditions:
		graphName = vocab.GraphPreconditions
	}

	rd.sink.SwitchContext(graphName)
	defer rd.sink.SwitchContext(vocab.GraphDifferenceModel)

	for {
		tok, err := rd.dec.Token()
		if err != nil {
			return fatal("ill-formed XML inside <%s>: %v", prop.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if _, err := rd.readDescription(t); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name == prop.Name {
				return nil
			}
		}
	}
}

// skipToEnd drains tokens up to and including the matching
// EndElement for name, tolerating (and discarding) any unexpected
// nested content along the way.
func (rd *Reader) skipToEnd(name xml.Name) error {
	depth := 0
	for {
		tok, err := rd.dec.Token()
		if err != nil {
			return fatal("ill-formed XML while skipping <%s>: %v", name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name == name {
				depth++
			}
		case xml.EndElement:
			if t.Name == name {
				if depth == 0 {
					return nil
				}
				depth--
			}
		}
	}
}

func (rd *Reader) deriveSubject(attrs []xml.Attr) rdf.Node {
	if about, ok := attrValue(attrs, vocab.RDF, "about"); ok {
		return rd.resolveRef(about)
	}
	if id, ok := attrValue(attrs, vocab.RDF, "ID"); ok {
		return rd.resolveRef("#" + id)
	}
	return rd.newBlank()
}

func (rd *Reader) newBlank() rdf.Node {
	rd.blankCounter++
	return rdf.Blank(fmt.Sprintf("b%d", rd.blankCounter))
}

// resolveRef resolves a rdf:about/rdf:ID/rdf:resource value against
// the document's base IRI and normalizes a UUID-shaped fragment to
// its canonical lowercase hyphenated form (spec.md §6).
func (rd *Reader) resolveRef(ref string) rdf.Node {
	return rdf.IRI(rd.resolveIRI(ref))
}

func (rd *Reader) resolveIRI(ref string) string {
	resolved := ref
	switch {
	case strings.HasPrefix(ref, "#"):
		resolved = rd.base + ref
	case rd.base != "" && !strings.Contains(ref, "://") && !strings.HasPrefix(ref, "urn:"):
		resolved = rd.base + ref
	}
	if i := strings.IndexByte(resolved, '#'); i >= 0 {
		if norm, ok := normalizeUUIDFragment(resolved[i+1:]); ok {
			resolved = resolved[:i+1] + norm
		}
	}
	return resolved
}

func (rd *Reader) resolveDatatypeIRI(dt string) string {
	if strings.Contains(dt, "://") || strings.HasPrefix(dt, "urn:") {
		return dt
	}
	if strings.HasPrefix(dt, "#") {
		return rd.base + dt
	}
	return dt
}

func normalizeUUIDFragment(frag string) (string, bool) {
	trimmed := strings.TrimPrefix(frag, "_")
	u := uuid.Parse(trimmed)
	if u == nil {
		return "", false
	}
	return "_" + u.String(), true
}

// literalFor resolves a property's datatype by the precedence spec.md
// §4.I.5 fixes: an explicit rdf:datatype attribute, then the
// registered profile's property table, then xml:lang, then plain
// untyped text.
func (rd *Reader) literalFor(predicate, text string, attrs []xml.Attr) rdf.Node {
	if dt, ok := attrValue(attrs, vocab.RDF, "datatype"); ok {
		return rdf.TypedLiteral(text, rd.resolveDatatypeIRI(dt))
	}
	if info, ok := rd.propertyInfo(predicate); ok && info.Kind == cim.PropertyLiteral {
		return rdf.TypedLiteral(text, info.Datatype)
	}
	if lang, ok := attrValue(attrs, xmlReservedNamespace, "lang"); ok {
		return rdf.LangLiteral(text, lang)
	}
	return rdf.PlainLiteral(text)
}

// propertyInfo looks up predicate first in the registry's header
// property table for the document's CIM version, then in the union
// of content profiles the header declared. Declared profiles are
// only known once the header's md:Model.profile properties have been
// read, which in a well-formed document precedes the body.
func (rd *Reader) propertyInfo(predicate string) (cim.PropertyInfo, bool) {
	if rd.registry == nil {
		return cim.PropertyInfo{}, false
	}
	if hp, err := rd.registry.HeaderPropertiesFor(rd.version); err == nil {
		if info, ok := hp[predicate]; ok {
			return info, true
		}
	}
	if len(rd.declaredProfiles) > 0 {
		if props, err := rd.registry.PropertiesFor(rd.declaredProfiles); err == nil {
			if info, ok := props[predicate]; ok {
				return info, true
			}
		}
	}
	return cim.PropertyInfo{}, false
}

// emit forwards one triple to the sink and, opportunistically, grows
// rd.declaredProfiles whenever a Model.profile triple goes by, so
// later body properties can resolve against the profile(s) the
// header just declared.
func (rd *Reader) emit(s, p, o rdf.Node) {
	if err := rd.sink.Triple(rdf.New(s, p, o)); err != nil {
		log.Warn("cimxml: sink rejected triple", "subject", s, "predicate", p, "err", err)
		return
	}
	if p.IRIValue() == vocab.MDModelProfile && o.Kind() == rdf.KindLiteral {
		rd.declaredProfiles = append(rd.declaredProfiles, o.Lexical())
	}
}

func qname(name xml.Name) string { return name.Space + name.Local }

func attrValue(attrs []xml.Attr, space, local string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func fatal(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, rdferr.MalformedInput)...)
}
