package cimxml

import (
	"github.com/ledgerwatch/turbo-rdf/dataset"
	"github.com/ledgerwatch/turbo-rdf/rdf"
	"github.com/ledgerwatch/turbo-rdf/rdf/vocab"
	"github.com/ledgerwatch/turbo-rdf/triplestore"
)

// Sink receives the events a Reader produces (spec.md §4.J) without
// the reader knowing anything about how they are stored. This is the
// same "decouple the state machine driving a stream from what
// consumes it" split turbo-geth's stagedsync stages make between the
// stage loop and whatever persists its output.
type Sink interface {
	// Start is called once, before the first event.
	Start() error
	// SetVersion records which CIM namespace generation the document
	// declared.
	SetVersion(v vocab.CIMVersion)
	// SetDocumentVersion records the "x.y" version string carried by
	// the document's leading iec61970-552 processing instruction
	// (spec.md §4.I.1), distinct from the CIM namespace generation
	// SetVersion records.
	SetDocumentVersion(version string)
	// Base records the document's effective xml:base, for callers that
	// want to resolve additional relative references themselves.
	Base(iri string)
	// Prefix records a namespace prefix binding seen on the root
	// element.
	Prefix(prefix, namespace string)
	// SwitchContext changes which named graph subsequent Triple calls
	// belong to. "" denotes the default graph.
	SwitchContext(graphName string)
	// Triple delivers one parsed triple, into whatever graph the most
	// recent SwitchContext call selected.
	Triple(t rdf.Triple) error
	// Finish is called once, after the last event; it returns any error
	// finalizing storage produced.
	Finish() error
}

// DatasetBuilderSink is the Sink this repository uses by default: it
// builds a dataset.Dataset, materializing each named graph (and the
// default graph) as its own triplestore.FastStore.
type DatasetBuilderSink struct {
	ds         *dataset.Dataset
	current    triplestore.Graph
	version    vocab.CIMVersion
	docVersion string
	base       string
}

// NewDatasetBuilderSink returns a Sink that builds a fresh dataset.
func NewDatasetBuilderSink() *DatasetBuilderSink {
	s := &DatasetBuilderSink{ds: dataset.New(triplestore.NewFastStore())}
	s.current = s.ds.DefaultGraph()
	return s
}

func (s *DatasetBuilderSink) Start() error { return nil }

func (s *DatasetBuilderSink) SetVersion(v vocab.CIMVersion) { s.version = v }

func (s *DatasetBuilderSink) Version() vocab.CIMVersion { return s.version }

func (s *DatasetBuilderSink) SetDocumentVersion(version string) { s.docVersion = version }

// DocumentVersion returns the "x.y" version string from the document's
// leading iec61970-552 processing instruction.
func (s *DatasetBuilderSink) DocumentVersion() string { return s.docVersion }

func (s *DatasetBuilderSink) Base(iri string) { s.base = iri }

func (s *DatasetBuilderSink) Prefix(prefix, namespace string) {}

func (s *DatasetBuilderSink) SwitchContext(graphName string) {
	if graphName == "" {
		s.current = s.ds.DefaultGraph()
		return
	}
	if g := s.ds.Graph(graphName); g != nil {
		s.current = g
		return
	}
	g := triplestore.NewFastStore()
	s.ds.AddGraph(graphName, g)
	s.current = g
}

func (s *DatasetBuilderSink) Triple(t rdf.Triple) error {
	s.current.Add(t)
	return nil
}

// Finish is a no-op: every graph this sink builds is a FastStore,
// which indexes each triple as it is added, so no index is left to
// build at the end. No store in this repository defers index
// construction; triplestore/roaring's Store also updates its bitmaps
// on every Add.
func (s *DatasetBuilderSink) Finish() error { return nil }

// Dataset returns the dataset built so far. Safe to call after
// Finish returns.
func (s *DatasetBuilderSink) Dataset() *dataset.Dataset { return s.ds }
