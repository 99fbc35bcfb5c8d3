package model

// CoreAPI is an interface for core functions needed by producers and writers
type CoreAPI interface {
	// PublishEvent publishes an event to the event bus
	PublishEvent(eventType EventType, sourceID string, data interface{})
}

// Producer captures one aspect of an experiment as a Record. Producers are
// external collaborators to the logger: anything satisfying this interface
// can be registered, including test stubs.
type Producer interface {
	// Initialize prepares the producer for operation
	Initialize() bool

	// Start begins producer operation
	Start() bool

	// Stop halts producer operation
	Stop() bool

	// GetStatus returns the current producer status
	GetStatus() ComponentStatus

	// SetStatus updates the producer status
	SetStatus(status ComponentStatus)

	// Configure applies configuration to the producer
	Configure(config map[string]interface{}) bool

	// ID returns the producer's unique identifier
	ID() string

	// Name returns the producer's human-readable name
	Name() string

	// Kind returns which experiment aspect the producer captures
	Kind() ProducerKind

	// Filename returns the document name the producer's records are written to
	Filename() string

	// Validate checks if the producer is properly configured
	Validate() bool

	// RegisterWithCore registers the producer with the core system
	RegisterWithCore(core CoreAPI) bool

	// Produce captures a single record
	Produce() (*Record, error)
}
