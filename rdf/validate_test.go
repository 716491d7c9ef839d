package rdf

import (
	"errors"
	"testing"

	"github.com/ledgerwatch/turbo-rdf/rdf/vocab"
	"github.com/ledgerwatch/turbo-rdf/rdferr"
)

func TestValidateLiteralAcceptsWellFormedValues(t *testing.T) {
	cases := []Node{
		TypedLiteral("true", xsdNS+"boolean"),
		TypedLiteral("42", xsdNS+"integer"),
		TypedLiteral("3.14", xsdNS+"double"),
		TypedLiteral("2024-01-02", xsdNS+"date"),
		TypedLiteral("123e4567-e89b-12d3-a456-426614174000", vocab.DatatypeUUID),
		TypedLiteral("1.2.3-rc.1+build", vocab.DatatypeVersion),
		PlainLiteral("anything goes"),
	}
	for _, n := range cases {
		if err := ValidateLiteral(n); err != nil {
			t.Errorf("ValidateLiteral(%v) = %v, want nil", n, err)
		}
	}
}

func TestValidateLiteralRejectsMalformedValues(t *testing.T) {
	cases := []Node{
		TypedLiteral("not-a-bool", xsdNS+"boolean"),
		TypedLiteral("12.5", xsdNS+"integer"),
		TypedLiteral("not-a-uuid", vocab.DatatypeUUID),
		TypedLiteral("v1", vocab.DatatypeVersion),
	}
	for _, n := range cases {
		err := ValidateLiteral(n)
		if err == nil {
			t.Errorf("ValidateLiteral(%v) = nil, want error", n)
			continue
		}
		if !errors.Is(err, rdferr.IllegalDatatype) {
			t.Errorf("ValidateLiteral(%v) = %v, want rdferr.IllegalDatatype", n, err)
		}
	}
}

func TestValidateLiteralIgnoresNonLiteralNodes(t *testing.T) {
	if err := ValidateLiteral(IRI("http://example.org/s")); err != nil {
		t.Errorf("ValidateLiteral(IRI) = %v, want nil", err)
	}
}
