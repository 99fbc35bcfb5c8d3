package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sliink/expcollect/internal/logger"
	"github.com/sliink/expcollect/internal/model"
)

// Clock supplies the current time. Injectable so runs are deterministic in
// tests.
type Clock func() time.Time

// Core is the central coordinator of the system. It wires the event bus,
// producer registry, configuration, health monitoring, run history and the
// event logger, and executes collection runs.
type Core struct {
	eventBus      *EventBus
	registry      *ProducerRegistry
	configManager *ConfigManager
	healthMonitor *HealthMonitor
	history       *RunHistory
	writer        *logger.EventLogger

	repoPath  string
	outputDir string
	notices   io.Writer
	clock     Clock
	BaseComponent
}

// CoreOption configures a Core
type CoreOption func(*Core)

// WithRepoPath sets the subject repository path, used for labeling only
func WithRepoPath(path string) CoreOption {
	return func(c *Core) {
		c.repoPath = path
	}
}

// WithOutputDir sets the destination directory for written documents
func WithOutputDir(dir string) CoreOption {
	return func(c *Core) {
		c.outputDir = dir
	}
}

// WithNotices redirects the operator-visible notice stream
func WithNotices(w io.Writer) CoreOption {
	return func(c *Core) {
		c.notices = w
	}
}

// WithClock replaces the wall clock
func WithClock(clock Clock) CoreOption {
	return func(c *Core) {
		c.clock = clock
	}
}

// NewCore creates a new core system
func NewCore(opts ...CoreOption) *Core {
	c := &Core{
		repoPath:      ".",
		outputDir:     "./logs",
		notices:       os.Stdout,
		clock:         time.Now,
		BaseComponent: NewBaseComponent("core", "Core System"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Initialize prepares the core system for operation
func (c *Core) Initialize() bool {
	c.eventBus = NewEventBus()
	c.registry = NewProducerRegistry()
	c.configManager = NewConfigManager()
	c.healthMonitor = NewHealthMonitor()
	c.history = NewRunHistory(100)
	c.writer = logger.New(logger.WithNotices(c.notices))

	if !c.eventBus.Initialize() {
		return false
	}

	if !c.registry.Initialize() {
		return false
	}

	if !c.configManager.Initialize() {
		return false
	}

	if !c.healthMonitor.Initialize() {
		return false
	}

	if !c.history.Initialize() {
		return false
	}

	if !c.writer.Initialize() {
		return false
	}

	c.writer.RegisterWithCore(c)

	// Register core components with health monitor
	c.healthMonitor.RegisterComponent(c)
	c.healthMonitor.RegisterComponent(c.eventBus)
	c.healthMonitor.RegisterComponent(c.registry)
	c.healthMonitor.RegisterComponent(c.configManager)
	c.healthMonitor.RegisterComponent(c.history)
	c.healthMonitor.RegisterComponent(c.writer)

	c.SetStatus(model.StatusInitialized)
	return true
}

// Start begins core system operation
func (c *Core) Start() bool {
	if !c.eventBus.Start() {
		return false
	}

	if !c.registry.Start() {
		return false
	}

	if !c.configManager.Start() {
		return false
	}

	if !c.healthMonitor.Start() {
		return false
	}

	if !c.history.Start() {
		return false
	}

	if !c.writer.Start() {
		return false
	}

	// Start registered producers
	for _, p := range c.registry.GetProducers() {
		if !p.Initialize() {
			c.PublishEvent(model.EventError, c.ID(), fmt.Errorf("failed to initialize producer: %s", p.ID()))
			return false
		}
		if !p.Start() {
			c.PublishEvent(model.EventError, c.ID(), fmt.Errorf("failed to start producer: %s", p.ID()))
			return false
		}
	}

	c.SetStatus(model.StatusRunning)
	c.PublishEvent(model.EventComponentStatusChange, c.ID(), c.GetStatus())

	return true
}

// Stop halts core system operation
func (c *Core) Stop() bool {
	// Stop components in reverse order; the registry stops its producers
	c.writer.Stop()
	c.history.Stop()
	c.healthMonitor.Stop()
	c.configManager.Stop()
	c.registry.Stop()
	c.eventBus.Stop()

	c.SetStatus(model.StatusStopped)
	return true
}

// RegisterProducer registers a producer with the core system
func (c *Core) RegisterProducer(p model.Producer) error {
	if p == nil {
		return fmt.Errorf("cannot register nil producer")
	}

	if !p.Validate() {
		return fmt.Errorf("producer validation failed: %s", p.ID())
	}

	if !p.RegisterWithCore(c) {
		return fmt.Errorf("producer failed to register with core: %s", p.ID())
	}

	if !c.registry.RegisterProducer(p) {
		return fmt.Errorf("producer registration failed: %s", p.ID())
	}

	c.healthMonitor.RegisterComponent(p)

	return nil
}

// Run executes every registered producer once, in registration order, writing
// each captured record as a document under the output directory. A failure in
// one write does not block the others; all failures are collected in the
// returned report.
func (c *Core) Run() *model.RunReport {
	report := &model.RunReport{
		RepoPath:  c.repoPath,
		OutputDir: c.outputDir,
		StartedAt: c.clock(),
	}

	fmt.Fprintf(c.notices, "[info] starting data collection for repository: %s\n", c.repoPath)

	for _, p := range c.registry.GetProducers() {
		record, err := p.Produce()
		if err != nil {
			report.Failures = append(report.Failures, model.WriteFailure{
				Producer: p.ID(),
				Kind:     p.Kind(),
				Filename: p.Filename(),
				Error:    err.Error(),
			})
			c.PublishEvent(model.EventError, p.ID(), err)
			c.healthMonitor.IncrementMetric("produce_failures")
			continue
		}

		c.PublishEvent(model.EventRecordProduced, p.ID(), map[string]interface{}{
			"kind":     p.Kind(),
			"filename": p.Filename(),
		})

		path, err := c.writer.Write(record, c.outputDir, p.Filename())
		if err != nil {
			report.Failures = append(report.Failures, model.WriteFailure{
				Producer: p.ID(),
				Kind:     p.Kind(),
				Filename: p.Filename(),
				Error:    err.Error(),
			})
			c.PublishEvent(model.EventError, p.ID(), err)
			c.healthMonitor.IncrementMetric("write_failures")
			continue
		}

		report.Written = append(report.Written, model.WrittenDocument{
			Producer: p.ID(),
			Kind:     p.Kind(),
			Filename: p.Filename(),
			Path:     path,
		})
		c.healthMonitor.IncrementMetric("documents_written")
	}

	report.FinishedAt = c.clock()
	c.history.Append(report)
	c.PublishEvent(model.EventRunCompleted, c.ID(), report)

	fmt.Fprintf(c.notices, "[info] data collection completed\n")

	return report
}

// ListDocuments lists the documents currently present in the output directory
func (c *Core) ListDocuments() ([]model.DocumentInfo, error) {
	entries, err := os.ReadDir(c.outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list documents: %w", err)
	}

	var docs []model.DocumentInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(c.outputDir, entry.Name())
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		docs = append(docs, model.DocumentInfo{
			Name:     entry.Name(),
			Path:     path,
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}

// ReadDocument reads and parses a document from the output directory
func (c *Core) ReadDocument(name string) (interface{}, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("invalid document name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(c.outputDir, name))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	value, err := model.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse document %s: %w", name, err)
	}

	return model.ToGo(value), nil
}

// GetSystemStatus returns a status snapshot for the API and CLI
func (c *Core) GetSystemStatus() map[string]interface{} {
	producers := make(map[string]interface{})
	for _, p := range c.registry.GetProducers() {
		producers[p.ID()] = map[string]interface{}{
			"name":     p.Name(),
			"kind":     string(p.Kind()),
			"filename": p.Filename(),
			"status":   string(p.GetStatus()),
		}
	}

	status := map[string]interface{}{
		"status":     string(c.GetStatus()),
		"repo_path":  c.repoPath,
		"output_dir": c.outputDir,
		"producers":  producers,
		"metrics":    c.healthMonitor.GetAllMetrics(),
	}

	if last, ok := c.history.Last(); ok {
		status["last_run"] = last
	}

	return status
}

// GetRegistry returns the producer registry component
func (c *Core) GetRegistry() *ProducerRegistry {
	return c.registry
}

// GetConfigManager returns the configuration manager component
func (c *Core) GetConfigManager() *ConfigManager {
	return c.configManager
}

// GetHealthMonitor returns the health monitor component
func (c *Core) GetHealthMonitor() *HealthMonitor {
	return c.healthMonitor
}

// GetHistory returns the run history component
func (c *Core) GetHistory() *RunHistory {
	return c.history
}

// GetEventBus returns the event bus component
func (c *Core) GetEventBus() *EventBus {
	return c.eventBus
}

// OutputDir returns the destination directory for written documents
func (c *Core) OutputDir() string {
	return c.outputDir
}

// SetOutputDir replaces the destination directory for written documents
func (c *Core) SetOutputDir(dir string) {
	if dir != "" {
		c.outputDir = dir
	}
}

// SetRepoPath replaces the subject repository path
func (c *Core) SetRepoPath(path string) {
	if path != "" {
		c.repoPath = path
	}
}

// RepoPath returns the subject repository path
func (c *Core) RepoPath() string {
	return c.repoPath
}

// PublishEvent publishes an event to the event bus
func (c *Core) PublishEvent(eventType model.EventType, sourceID string, data interface{}) {
	if c.eventBus == nil {
		return
	}

	c.eventBus.Publish(NewEvent(eventType, sourceID, data))
}
