// Package producer contains the record producers: each one captures a single
// experiment aspect as a JSON-like document. Producers are stubs with fixed
// placeholder values; real version-control parsing and analysis-tool
// invocation are external collaborators.
package producer

import (
	"time"

	"github.com/sliink/expcollect/internal/model"
)

// Clock supplies the current time to producers. Injectable so captured
// timestamps are deterministic in tests.
type Clock func() time.Time

// BaseProducer provides common functionality for all producers
type BaseProducer struct {
	id       string
	name     string
	kind     model.ProducerKind
	filename string
	status   model.ComponentStatus
	clock    Clock
	Config   map[string]interface{}
	core     model.CoreAPI
}

// NewBaseProducer creates a new base producer
func NewBaseProducer(id, name string, kind model.ProducerKind, filename string) BaseProducer {
	return BaseProducer{
		id:       id,
		name:     name,
		kind:     kind,
		filename: filename,
		status:   model.StatusUninitialized,
		clock:    time.Now,
		Config:   make(map[string]interface{}),
	}
}

// ID returns the producer's unique identifier
func (p *BaseProducer) ID() string {
	return p.id
}

// Name returns the producer's human-readable name
func (p *BaseProducer) Name() string {
	return p.name
}

// Kind returns which experiment aspect the producer captures
func (p *BaseProducer) Kind() model.ProducerKind {
	return p.kind
}

// Filename returns the document name the producer's records are written to
func (p *BaseProducer) Filename() string {
	return p.filename
}

// GetStatus returns the current producer status
func (p *BaseProducer) GetStatus() model.ComponentStatus {
	return p.status
}

// SetStatus updates the producer status
func (p *BaseProducer) SetStatus(status model.ComponentStatus) {
	p.status = status
}

// Configure applies configuration to the producer
func (p *BaseProducer) Configure(config map[string]interface{}) bool {
	if config == nil {
		return false
	}
	p.Config = config
	return true
}

// SetClock replaces the producer's wall clock
func (p *BaseProducer) SetClock(clock Clock) {
	if clock != nil {
		p.clock = clock
	}
}

// Now returns the producer's current time
func (p *BaseProducer) Now() time.Time {
	return p.clock()
}

// RegisterWithCore registers the producer with the core system
func (p *BaseProducer) RegisterWithCore(core model.CoreAPI) bool {
	p.core = core
	return true
}

// Validate checks if the producer is properly configured
func (p *BaseProducer) Validate() bool {
	// Base implementation assumes valid, derived producers should override
	return true
}
