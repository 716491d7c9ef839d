package rdf

import "fmt"

// Triple is an ordered (subject, predicate, object) assertion.
// Subjects may be IRI, blank, or triple-term nodes; predicates are
// always IRIs; objects may be any node kind.
type Triple struct {
	Subject   Node
	Predicate Node
	Object    Node
}

// New constructs a Triple. It does not validate that Predicate is an
// IRI; callers that accept untrusted input should check
// Predicate.Kind() == KindIRI themselves (the CIM/XML reader always
// derives predicates from element names, so it never needs to).
func New(s, p, o Node) Triple {
	return Triple{Subject: s, Predicate: p, Object: o}
}

// Equals is component-wise equality.
func (t Triple) Equals(o Triple) bool {
	return t.Subject.Equals(o.Subject) && t.Predicate.Equals(o.Predicate) && t.Object.Equals(o.Object)
}

// Matches reports whether t satisfies a match pattern triple, where
// each component of pat may be Any.
func (t Triple) Matches(pat Triple) bool {
	return t.Subject.Matches(pat.Subject) && t.Predicate.Matches(pat.Predicate) && t.Object.Matches(pat.Object)
}

// Hash derives a triple hash from the three component hashes with a
// fixed mixing formula, so the same triple hashes identically no
// matter how it was built.
func (t Triple) Hash() uint64 {
	h := mix(t.Subject.Hash(), 0x51cb4a0f)
	h = mix(h, t.Predicate.Hash())
	h = mix(h, t.Object.Hash())
	return h
}

// String renders a terse diagnostic form.
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s", t.Subject, t.Predicate, t.Object)
}

// Pattern builds the match pattern for t: every component equal to
// t's own, suitable for a PatternOf-exact lookup (spec.md §8's
// round-trip property: find(pattern_of(t)) after add(t)).
func (t Triple) Pattern() Triple {
	return t
}
