// Package logger persists experiment records as self-describing JSON
// documents under an output directory.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sliink/expcollect/internal/model"
)

// SerializationError indicates a record could not be rendered as a JSON
// document, e.g. because it contains a cyclic reference.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return "serialize record: " + e.Err.Error()
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// InvalidNameError indicates a malformed destination filename
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid filename %q: %s", e.Name, e.Reason)
}

// FilesystemError indicates the output directory could not be created or the
// document could not be written. Never retried; surfaced to the caller.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// EventLogger durably persists records as pretty-printed JSON documents and
// reports where each document was written. Writes are independent of each
// other; the logger holds no cross-record state. Writes are not atomic, and
// concurrent writers to the same target race with last write winning.
type EventLogger struct {
	id      string
	name    string
	status  model.ComponentStatus
	notices io.Writer
	core    model.CoreAPI
}

// Option configures an EventLogger
type Option func(*EventLogger)

// WithNotices redirects the operator-visible notice stream, which defaults
// to stdout
func WithNotices(w io.Writer) Option {
	return func(l *EventLogger) {
		l.notices = w
	}
}

// New creates an event logger
func New(opts ...Option) *EventLogger {
	l := &EventLogger{
		id:      "event_logger",
		name:    "Event Logger",
		status:  model.StatusUninitialized,
		notices: os.Stdout,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// ID returns the logger's unique identifier
func (l *EventLogger) ID() string {
	return l.id
}

// Name returns the logger's human-readable name
func (l *EventLogger) Name() string {
	return l.name
}

// GetStatus returns the current logger status
func (l *EventLogger) GetStatus() model.ComponentStatus {
	return l.status
}

// SetStatus updates the logger status
func (l *EventLogger) SetStatus(status model.ComponentStatus) {
	l.status = status
}

// Configure applies configuration to the logger
func (l *EventLogger) Configure(config map[string]interface{}) bool {
	return config != nil
}

// Initialize prepares the logger for operation
func (l *EventLogger) Initialize() bool {
	l.SetStatus(model.StatusInitialized)
	return true
}

// Start begins logger operation
func (l *EventLogger) Start() bool {
	l.SetStatus(model.StatusRunning)
	return true
}

// Stop halts logger operation
func (l *EventLogger) Stop() bool {
	l.SetStatus(model.StatusStopped)
	return true
}

// RegisterWithCore attaches the logger to the core event bus
func (l *EventLogger) RegisterWithCore(core model.CoreAPI) bool {
	l.core = core
	return true
}

// Write persists a record's document under outputDir/filename and returns the
// resolved path. The output directory is created if absent, including missing
// intermediate levels; an existing document at the target path is overwritten.
// The record is serialized before any filesystem mutation, so a
// SerializationError or InvalidNameError leaves the filesystem untouched.
func (l *EventLogger) Write(record *model.Record, outputDir, filename string) (string, error) {
	if err := validateFilename(filename); err != nil {
		return "", err
	}

	if record == nil || record.Body == nil {
		return "", &SerializationError{Err: fmt.Errorf("record has no document body")}
	}

	data, err := model.Encode(record.Body)
	if err != nil {
		return "", &SerializationError{Err: err}
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", &FilesystemError{Op: "create directory", Path: outputDir, Err: err}
	}

	path := filepath.Join(outputDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", &FilesystemError{Op: "write document", Path: path, Err: err}
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	fmt.Fprintf(l.notices, "[info] wrote %s\n", path)

	if l.core != nil {
		l.core.PublishEvent(model.EventDocumentWritten, l.id, map[string]interface{}{
			"producer": record.Source,
			"kind":     record.Kind,
			"filename": filename,
			"path":     path,
		})
	}

	return path, nil
}

// validateFilename rejects empty names and names containing path separators
func validateFilename(filename string) error {
	if filename == "" {
		return &InvalidNameError{Name: filename, Reason: "must not be empty"}
	}
	if strings.ContainsAny(filename, `/\`) {
		return &InvalidNameError{Name: filename, Reason: "must not contain path separators"}
	}
	return nil
}
