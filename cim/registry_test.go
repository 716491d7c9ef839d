package cim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerwatch/turbo-rdf/rdf"
	"github.com/ledgerwatch/turbo-rdf/rdf/vocab"
	"github.com/ledgerwatch/turbo-rdf/rdferr"
	"github.com/ledgerwatch/turbo-rdf/triplestore"
)

// buildOntology constructs a tiny ontology graph with one reference
// property, one Primitive-backed property, and one CIMDatatype-backed
// property, modeling Terminal.ConductingEquipment / IdentifiedObject.name
// / Terminal.phases respectively.
func buildOntology() triplestore.Graph {
	g := triplestore.NewFastStore()

	ce := rdf.IRI("http://cim/Terminal.ConductingEquipment")
	g.Add(rdf.New(ce, rdf.IRI(RDFSDomain), rdf.IRI("http://cim/Terminal")))
	g.Add(rdf.New(ce, rdf.IRI(RDFSRange), rdf.IRI("http://cim/ConductingEquipment")))

	name := rdf.IRI("http://cim/IdentifiedObject.name")
	g.Add(rdf.New(name, rdf.IRI(RDFSDomain), rdf.IRI("http://cim/IdentifiedObject")))
	g.Add(rdf.New(name, rdf.IRI(RDFSRange), rdf.IRI("http://cim/String")))
	g.Add(rdf.New(rdf.IRI("http://cim/String"), rdf.IRI(UMLStereotype), rdf.PlainLiteral(StereotypePrimitive)))

	phases := rdf.IRI("http://cim/Terminal.phases")
	g.Add(rdf.New(phases, rdf.IRI(RDFSDomain), rdf.IRI("http://cim/Terminal")))
	g.Add(rdf.New(phases, rdf.IRI(RDFSRange), rdf.IRI("http://cim/PhaseCode")))
	g.Add(rdf.New(rdf.IRI("http://cim/PhaseCode"), rdf.IRI(UMLStereotype), rdf.PlainLiteral(StereotypeCIMDatatype)))
	value := rdf.IRI("http://cim/PhaseCode.value")
	g.Add(rdf.New(value, rdf.IRI(RDFSDomain), rdf.IRI("http://cim/PhaseCode")))
	g.Add(rdf.New(value, rdf.IRI(RDFSRange), rdf.IRI("http://cim/Integer")))

	notUsed := rdf.IRI("http://cim/Terminal.auxiliaryNote")
	g.Add(rdf.New(notUsed, rdf.IRI(RDFSDomain), rdf.IRI("http://cim/Terminal")))
	g.Add(rdf.New(notUsed, rdf.IRI(RDFSRange), rdf.IRI("http://cim/AuxNote")))
	g.Add(rdf.New(notUsed, rdf.IRI(UMLAssociationUsed), rdf.PlainLiteral(AssociationUsedNo)))

	return g
}

func TestExtractPropertiesStereotypes(t *testing.T) {
	props := extractProperties(buildOntology(), newPrimitiveTable())

	ref, ok := props["http://cim/Terminal.ConductingEquipment"]
	require.True(t, ok)
	require.Equal(t, PropertyReference, ref.Kind)
	require.Equal(t, "http://cim/ConductingEquipment", ref.ReferenceTarget)

	name, ok := props["http://cim/IdentifiedObject.name"]
	require.True(t, ok)
	require.Equal(t, PropertyLiteral, name.Kind)
	require.Equal(t, xsd+"string", name.Datatype)

	phases, ok := props["http://cim/Terminal.phases"]
	require.True(t, ok)
	require.Equal(t, PropertyLiteral, phases.Kind)
	require.Equal(t, xsd+"integer", phases.Datatype)

	_, ok = props["http://cim/Terminal.auxiliaryNote"]
	require.False(t, ok)
}

func TestExtractPropertiesUnknownPrimitiveFallsBackToString(t *testing.T) {
	g := triplestore.NewFastStore()
	p := rdf.IRI("http://cim/Thing.weird")
	g.Add(rdf.New(p, rdf.IRI(RDFSDomain), rdf.IRI("http://cim/Thing")))
	g.Add(rdf.New(p, rdf.IRI(RDFSRange), rdf.IRI("http://cim/Frobnicate")))
	g.Add(rdf.New(rdf.IRI("http://cim/Frobnicate"), rdf.IRI(UMLStereotype), rdf.PlainLiteral(StereotypePrimitive)))

	props := extractProperties(g, newPrimitiveTable())
	require.Equal(t, xsd+"string", props["http://cim/Thing.weird"].Datatype)
}

func TestRegisterContentProfile(t *testing.T) {
	r := NewProfileRegistry()
	p := NewContentProfile("EQ", []string{"urn:profile:eq"}, "", buildOntology(), r.PrimitiveToDatatype())
	require.NoError(t, r.Register(p))
	require.True(t, r.Contains([]string{"urn:profile:eq"}))

	props, err := r.PropertiesFor([]string{"urn:profile:eq"})
	require.NoError(t, err)
	require.Contains(t, props, "http://cim/IdentifiedObject.name")
}

func TestRegisterDuplicateVersionIRISetRejected(t *testing.T) {
	// spec.md §8 scenario 5: two profiles sharing one version IRI.
	r := NewProfileRegistry()
	p1 := NewContentProfile("EQ", []string{"urn:profile:shared"}, "", buildOntology(), r.PrimitiveToDatatype())
	require.NoError(t, r.Register(p1))

	p2 := NewContentProfile("SSH", []string{"urn:profile:shared", "urn:profile:ssh"}, "", buildOntology(), r.PrimitiveToDatatype())
	err := r.Register(p2)
	require.Error(t, err)
	require.True(t, errors.Is(err, rdferr.DuplicateRegistration))
}

func TestRegisterDuplicateHeaderProfileRejected(t *testing.T) {
	r := NewProfileRegistry()
	h1 := NewHeaderProfile("Header16", vocab.CIM16, triplestore.NewFastStore(), r.PrimitiveToDatatype())
	require.NoError(t, r.Register(h1))
	require.True(t, r.ContainsHeaderProfile(vocab.CIM16))

	h2 := NewHeaderProfile("Header16Again", vocab.CIM16, triplestore.NewFastStore(), r.PrimitiveToDatatype())
	err := r.Register(h2)
	require.Error(t, err)
	require.True(t, errors.Is(err, rdferr.DuplicateRegistration))
}

func TestRegisterEmptyVersionIRISetRejected(t *testing.T) {
	r := NewProfileRegistry()
	p := NewContentProfile("Bad", nil, "", buildOntology(), r.PrimitiveToDatatype())
	err := r.Register(p)
	require.Error(t, err)
	require.True(t, errors.Is(err, rdferr.IllegalArgument))
}

func TestPropertiesForUnionsMultipleProfiles(t *testing.T) {
	r := NewProfileRegistry()
	eq := NewContentProfile("EQ", []string{"urn:profile:eq"}, "", buildOntology(), r.PrimitiveToDatatype())
	require.NoError(t, r.Register(eq))

	other := triplestore.NewFastStore()
	extra := rdf.IRI("http://cim/Other.thing")
	other.Add(rdf.New(extra, rdf.IRI(RDFSDomain), rdf.IRI("http://cim/Other")))
	other.Add(rdf.New(extra, rdf.IRI(RDFSRange), rdf.IRI("http://cim/OtherTarget")))
	ssh := NewContentProfile("SSH", []string{"urn:profile:ssh"}, "", other, r.PrimitiveToDatatype())
	require.NoError(t, r.Register(ssh))

	props, err := r.PropertiesFor([]string{"urn:profile:eq", "urn:profile:ssh"})
	require.NoError(t, err)
	require.Contains(t, props, "http://cim/IdentifiedObject.name")
	require.Contains(t, props, "http://cim/Other.thing")
}

func TestPropertiesForUnknownProfile(t *testing.T) {
	r := NewProfileRegistry()
	_, err := r.PropertiesFor([]string{"urn:profile:nonexistent"})
	require.Error(t, err)
	require.True(t, errors.Is(err, rdferr.UnknownProfile))
}
