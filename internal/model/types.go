package model

import "time"

// ComponentStatus represents the current status of a component
type ComponentStatus string

const (
	// StatusUninitialized indicates the component has not been initialized
	StatusUninitialized ComponentStatus = "UNINITIALIZED"
	// StatusInitialized indicates the component has been initialized but not started
	StatusInitialized ComponentStatus = "INITIALIZED"
	// StatusRunning indicates the component is currently running
	StatusRunning ComponentStatus = "RUNNING"
	// StatusStopped indicates the component has been stopped
	StatusStopped ComponentStatus = "STOPPED"
	// StatusError indicates the component is in an error state
	StatusError ComponentStatus = "ERROR"
)

// ProducerKind identifies which experiment aspect a producer captures
type ProducerKind string

const (
	// CommitMetadataKind captures version-control commit metadata
	CommitMetadataKind ProducerKind = "COMMIT_METADATA"
	// AnalysisMetricsKind captures static-analysis metrics
	AnalysisMetricsKind ProducerKind = "ANALYSIS_METRICS"
	// AIInteractionKind captures AI prompt/response pairs
	AIInteractionKind ProducerKind = "AI_INTERACTION"
	// CoverageKind captures unit-test coverage numbers
	CoverageKind ProducerKind = "COVERAGE"
)

// EventType represents the type of system event
type EventType string

const (
	// EventComponentStatusChange indicates a component status has changed
	EventComponentStatusChange EventType = "COMPONENT_STATUS_CHANGE"
	// EventConfigChange indicates a configuration has changed
	EventConfigChange EventType = "CONFIG_CHANGE"
	// EventRecordProduced indicates a producer has captured a record
	EventRecordProduced EventType = "RECORD_PRODUCED"
	// EventDocumentWritten indicates a record has been persisted to disk
	EventDocumentWritten EventType = "DOCUMENT_WRITTEN"
	// EventRunCompleted indicates a collection run has finished
	EventRunCompleted EventType = "RUN_COMPLETED"
	// EventError indicates an error has occurred
	EventError EventType = "ERROR"
)

// HealthStatus represents the health status of the system or a component
type HealthStatus struct {
	Status     ComponentStatus         `json:"status"`
	Timestamp  time.Time               `json:"timestamp"`
	Message    string                  `json:"message,omitempty"`
	Details    map[string]any          `json:"details,omitempty"`
	Components map[string]HealthStatus `json:"components,omitempty"`
}

// WrittenDocument describes one document persisted during a collection run
type WrittenDocument struct {
	Producer string       `json:"producer"`
	Kind     ProducerKind `json:"kind"`
	Filename string       `json:"filename"`
	Path     string       `json:"path"`
}

// WriteFailure describes one producer whose record could not be persisted
type WriteFailure struct {
	Producer string       `json:"producer"`
	Kind     ProducerKind `json:"kind"`
	Filename string       `json:"filename"`
	Error    string       `json:"error"`
}

// RunReport summarizes a single collection run. A failed write does not block
// the remaining producers, so a report can carry both documents and failures.
type RunReport struct {
	RepoPath   string            `json:"repo_path"`
	OutputDir  string            `json:"output_dir"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Written    []WrittenDocument `json:"written"`
	Failures   []WriteFailure    `json:"failures,omitempty"`
}

// Succeeded reports whether every producer's document was written
func (r *RunReport) Succeeded() bool {
	return len(r.Failures) == 0
}

// DocumentInfo describes a persisted document on disk
type DocumentInfo struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}
