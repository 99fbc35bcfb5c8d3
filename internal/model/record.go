package model

import (
	"time"
)

// Record represents one captured experiment event: a JSON-like document plus
// metadata about which producer captured it and when. The body is immutable
// once the record is constructed; records are never merged.
type Record struct {
	Kind      ProducerKind
	Source    string
	Timestamp time.Time
	Body      *Document
}

// NewRecord creates a record for a producer's captured document
func NewRecord(kind ProducerKind, source string, timestamp time.Time, body *Document) *Record {
	return &Record{
		Kind:      kind,
		Source:    source,
		Timestamp: timestamp,
		Body:      body,
	}
}
