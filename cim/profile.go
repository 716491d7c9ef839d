package cim

import (
	"sort"
	"strings"

	"github.com/ledgerwatch/turbo-rdf/rdf/vocab"
	"github.com/ledgerwatch/turbo-rdf/triplestore"
)

// Profile is a registered CIM profile (spec.md §4.H): either a
// content profile, identified by its set of version IRIs, or a header
// profile, identified solely by the CIM namespace version it applies
// to. Its property table is derived once, at registration time, from
// the ontology graph it was built from.
type Profile struct {
	Keyword     string
	VersionIRIs []string // sorted, deduplicated; empty for a header profile
	VersionInfo string   // optional free-form version label

	isHeaderProfile bool
	cimVersion      vocab.CIMVersion

	properties map[string]PropertyInfo
}

// NewContentProfile builds a content profile identified by the given
// version IRIs, deriving its property table from ontology.
func NewContentProfile(keyword string, versionIRIs []string, versionInfo string, ontology triplestore.Graph, primitives map[string]string) *Profile {
	return &Profile{
		Keyword:     keyword,
		VersionIRIs: canonicalVersionIRIs(versionIRIs),
		VersionInfo: versionInfo,
		properties:  extractProperties(ontology, primitives),
	}
}

// NewHeaderProfile builds a header profile for the given CIM
// namespace version.
func NewHeaderProfile(keyword string, version vocab.CIMVersion, ontology triplestore.Graph, primitives map[string]string) *Profile {
	return &Profile{
		Keyword:         keyword,
		isHeaderProfile: true,
		cimVersion:      version,
		properties:      extractProperties(ontology, primitives),
	}
}

// IsHeaderProfile reports whether p is identified by CIM version
// rather than by a version-IRI set.
func (p *Profile) IsHeaderProfile() bool { return p.isHeaderProfile }

// CIMVersion returns the header profile's CIM namespace version. Only
// meaningful when IsHeaderProfile() is true.
func (p *Profile) CIMVersion() vocab.CIMVersion { return p.cimVersion }

// Properties returns the property IRI -> PropertyInfo table derived
// from this profile's ontology.
func (p *Profile) Properties() map[string]PropertyInfo { return p.properties }

// versionKey returns the canonical cache/registration key for a
// content profile's version-IRI set: the sorted IRIs joined by a
// separator that cannot appear in an IRI.
func versionKey(versionIRIs []string) string {
	sorted := canonicalVersionIRIs(versionIRIs)
	return strings.Join(sorted, "\x00")
}

func canonicalVersionIRIs(versionIRIs []string) []string {
	seen := make(map[string]struct{}, len(versionIRIs))
	out := make([]string, 0, len(versionIRIs))
	for _, v := range versionIRIs {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
