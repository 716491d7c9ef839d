package rdf

import "testing"

func TestLiteralConstructorInvariants(t *testing.T) {
	// language without an explicit datatype coerces to rdf:langString
	l := Literal("hello", "", "en", DirNone)
	if l.Datatype() != RDFLangString {
		t.Errorf("expected %s, got %s", RDFLangString, l.Datatype())
	}

	// text direction requires a language tag; without one it is dropped
	l2 := Literal("hello", "", "", DirLTR)
	if l2.Direction() != DirNone {
		t.Errorf("expected direction to be dropped without a language, got %v", l2.Direction())
	}

	// language + direction -> rdf:dirLangString
	l3 := Literal("hello", "", "en", DirRTL)
	if l3.Datatype() != RDFDirLangString {
		t.Errorf("expected %s, got %s", RDFDirLangString, l3.Datatype())
	}

	// no datatype, no language -> xsd:string
	l4 := PlainLiteral("hello")
	if l4.Datatype() != XSDString {
		t.Errorf("expected %s, got %s", XSDString, l4.Datatype())
	}

	// empty lexical form is allowed
	l5 := PlainLiteral("")
	if l5.Lexical() != "" {
		t.Errorf("expected empty lexical form to be preserved")
	}
}

func TestNodeEqualsAndMatches(t *testing.T) {
	a := IRI("http://example/a")
	b := IRI("http://example/a")
	if !a.Equals(b) {
		t.Errorf("expected equal IRIs to be Equals")
	}

	str := PlainLiteral("x")
	typed := TypedLiteral("x", XSDString)
	if !str.Equals(typed) {
		t.Errorf("expected an untyped string literal to equal its explicit xsd:string form")
	}

	if !a.Matches(Any) {
		t.Errorf("expected Any to match any node")
	}
	if Any.Matches(a) {
		t.Errorf("expected Any itself to never satisfy a concrete pattern node")
	}
}

func TestHashStableAcrossConstructionPath(t *testing.T) {
	t1 := New(IRI("http://e/s"), IRI("http://e/p"), PlainLiteral("v"))
	t2 := New(IRI("http://e/s"), IRI("http://e/p"), TypedLiteral("v", XSDString))
	if t1.Hash() != t2.Hash() {
		t.Errorf("expected equal triples built different ways to hash identically")
	}
	if !t1.Equals(t2) {
		t.Errorf("expected t1 and t2 to be Equals")
	}
}

func TestBlankLabelNeverIRI(t *testing.T) {
	b := Blank("b0")
	if b.Kind() != KindBlank {
		t.Errorf("expected KindBlank")
	}
	if b.BlankLabel() != "b0" {
		t.Errorf("expected label b0, got %s", b.BlankLabel())
	}
}
