// Package rdferr defines the error kinds shared by the triple stores,
// the profile registry and the CIM/XML reader.
//
// Callers should match kinds with errors.Is against the sentinel
// values below, not by inspecting error strings.
package rdferr

import "errors"

// Sentinel kinds. Wrap with fmt.Errorf("...: %w", Kind) to attach
// context; unwrap with errors.Is.
var (
	// MalformedInput marks XML well-formedness failures, a missing
	// version PI, an unexpected root element or an unbalanced section.
	MalformedInput = errors.New("malformed input")

	// UnknownProfile marks a query that needs a profile IRI which was
	// never registered.
	UnknownProfile = errors.New("unknown profile")

	// DuplicateRegistration marks a profile or header profile that
	// collides with one already registered.
	DuplicateRegistration = errors.New("duplicate registration")

	// IllegalDatatype marks a literal value that does not satisfy its
	// declared datatype. Only raised when validation is enabled.
	IllegalDatatype = errors.New("illegal datatype")

	// ConcurrentModification marks an iterator that outlived its
	// source graph's size.
	ConcurrentModification = errors.New("concurrent modification")

	// IllegalArgument marks a caller error, e.g. asking a full model
	// for its difference sections.
	IllegalArgument = errors.New("illegal argument")
)
