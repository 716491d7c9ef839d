// Package cim implements the CIM profile registry (spec.md §4.H): the
// one legitimate process-global in this repository (spec.md §9). A
// ProfileRegistry tracks which profiles (content, identified by a
// version-IRI set, or header, identified by CIM namespace version)
// have been registered, derives each profile's property table from
// its ontology at registration time, and memoizes the property-table
// unions callers request for a document's declared profile set.
//
// Grounded on migrations/migrations.go: a named-entry registry with a
// strict "can't register the same name twice" discipline, here
// generalized to version-IRI sets instead of bare names, plus a
// golang-lru memoization layer for the derived unions (mirroring the
// LRU caches turbo-geth wires in front of its trie and state readers).
package cim

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/ledgerwatch/turbo-rdf/rdf/vocab"
	"github.com/ledgerwatch/turbo-rdf/rdferr"
)

const propertiesCacheSize = 256

// ProfileRegistry tracks every profile registered for this process.
// Safe for concurrent readers; writers (Register, RegisterPrimitiveType)
// are serialized against each other and against readers by mu, per
// spec.md §5's "registry mutation is the one cross-cutting operation
// that must be internally synchronized" note.
type ProfileRegistry struct {
	mu sync.RWMutex

	contentByKey map[string]*Profile
	contentByIRI map[string][]*Profile
	headerByVer  map[vocab.CIMVersion]*Profile

	primitives map[string]string

	cache *lru.Cache // versionKey -> map[string]PropertyInfo
}

// NewProfileRegistry returns an empty registry seeded with the fixed
// primitive table (spec.md §4.H).
func NewProfileRegistry() *ProfileRegistry {
	cache, err := lru.New(propertiesCacheSize)
	if err != nil {
		// Only fails for a non-positive size, which propertiesCacheSize
		// never is.
		panic(err)
	}
	return &ProfileRegistry{
		contentByKey: make(map[string]*Profile),
		contentByIRI: make(map[string][]*Profile),
		headerByVer:  make(map[vocab.CIMVersion]*Profile),
		primitives:   newPrimitiveTable(),
		cache:        cache,
	}
}

// Register adds p to the registry. A content profile with an empty
// version-IRI set is rejected with rdferr.IllegalArgument. A content
// profile whose version-IRI set is identical to one already
// registered, or shares any IRI with one already registered, is
// rejected with rdferr.DuplicateRegistration (spec.md §8 scenario 5).
// A header profile duplicating an already-registered CIM version is
// likewise rejected with rdferr.DuplicateRegistration.
func (r *ProfileRegistry) Register(p *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.isHeaderProfile {
		if _, exists := r.headerByVer[p.cimVersion]; exists {
			return fmt.Errorf("cim: header profile already registered for %s: %w", p.cimVersion, rdferr.DuplicateRegistration)
		}
		r.headerByVer[p.cimVersion] = p
		r.cache.Purge()
		return nil
	}

	if len(p.VersionIRIs) == 0 {
		return fmt.Errorf("cim: content profile must declare at least one version IRI: %w", rdferr.IllegalArgument)
	}

	key := versionKey(p.VersionIRIs)
	if _, exists := r.contentByKey[key]; exists {
		return fmt.Errorf("cim: profile already registered for version IRI set: %w", rdferr.DuplicateRegistration)
	}
	for _, iri := range p.VersionIRIs {
		if len(r.contentByIRI[iri]) > 0 {
			return fmt.Errorf("cim: version IRI %s already claimed by another profile: %w", iri, rdferr.DuplicateRegistration)
		}
	}

	r.contentByKey[key] = p
	for _, iri := range p.VersionIRIs {
		r.contentByIRI[iri] = append(r.contentByIRI[iri], p)
	}
	r.cache.Purge()
	return nil
}

// Contains reports whether a content profile is registered for
// exactly this version-IRI set.
func (r *ProfileRegistry) Contains(versionIRIs []string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.contentByKey[versionKey(versionIRIs)]
	return ok
}

// ContainsHeaderProfile reports whether a header profile is
// registered for the given CIM version.
func (r *ProfileRegistry) ContainsHeaderProfile(version vocab.CIMVersion) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.headerByVer[version]
	return ok
}

// RegisteredProfiles returns every registered content profile, in no
// particular order.
func (r *ProfileRegistry) RegisteredProfiles() []*Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Profile, 0, len(r.contentByKey))
	for _, p := range r.contentByKey {
		out = append(out, p)
	}
	return out
}

// PropertiesFor returns the union of the property tables of every
// registered content profile whose version-IRI set is a subset of
// declaredVersionIRIs — the set a CIM/XML document declares via its
// header's md:Model.profile values. The union is memoized by the
// canonicalized declared set. Returns rdferr.UnknownProfile if no
// registered profile matches any part of the declared set.
func (r *ProfileRegistry) PropertiesFor(declaredVersionIRIs []string) (map[string]PropertyInfo, error) {
	key := versionKey(declaredVersionIRIs)
	if cached, ok := r.cache.Get(key); ok {
		return cached.(map[string]PropertyInfo), nil
	}

	r.mu.RLock()
	declared := make(map[string]struct{}, len(declaredVersionIRIs))
	for _, iri := range declaredVersionIRIs {
		declared[iri] = struct{}{}
	}

	union := make(map[string]PropertyInfo)
	matched := false
	for _, p := range r.contentByKey {
		if isSubsetOf(p.VersionIRIs, declared) {
			matched = true
			for k, v := range p.properties {
				union[k] = v
			}
		}
	}
	r.mu.RUnlock()

	if !matched {
		return nil, fmt.Errorf("cim: no registered profile matches declared version IRIs: %w", rdferr.UnknownProfile)
	}

	r.cache.Add(key, union)
	return union, nil
}

// HeaderPropertiesFor returns the header profile's property table for
// the given CIM version. Returns rdferr.UnknownProfile if no header
// profile is registered for that version.
func (r *ProfileRegistry) HeaderPropertiesFor(version vocab.CIMVersion) (map[string]PropertyInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.headerByVer[version]
	if !ok {
		return nil, fmt.Errorf("cim: no header profile registered for %s: %w", version, rdferr.UnknownProfile)
	}
	return p.properties, nil
}

// PrimitiveToDatatype returns a snapshot of the primitive-name ->
// XSD/custom-datatype-IRI table.
func (r *ProfileRegistry) PrimitiveToDatatype() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.primitives))
	for k, v := range r.primitives {
		out[k] = v
	}
	return out
}

// RegisterPrimitiveType adds (or overrides) an entry in the primitive
// table, for CIM extensions that introduce additional primitive
// names beyond spec.md §4.H's fixed table.
func (r *ProfileRegistry) RegisterPrimitiveType(name, datatype string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.primitives[name] = datatype
	r.cache.Purge()
}

func isSubsetOf(set []string, of map[string]struct{}) bool {
	if len(set) == 0 {
		return false
	}
	for _, v := range set {
		if _, ok := of[v]; !ok {
			return false
		}
	}
	return true
}
