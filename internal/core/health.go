package core

import (
	"sync"
	"time"

	"github.com/sliink/expcollect/internal/model"
)

// HealthMonitor tracks system and component health
type HealthMonitor struct {
	components map[string]Component
	metrics    map[string]interface{}
	mutex      sync.RWMutex
	BaseComponent
}

// NewHealthMonitor creates a new health monitor
func NewHealthMonitor() *HealthMonitor {
	return &HealthMonitor{
		components:    make(map[string]Component),
		metrics:       make(map[string]interface{}),
		BaseComponent: NewBaseComponent("health_monitor", "Health Monitor"),
	}
}

// Initialize prepares the health monitor for operation
func (h *HealthMonitor) Initialize() bool {
	h.SetStatus(model.StatusInitialized)
	return true
}

// Start begins health monitor operation
func (h *HealthMonitor) Start() bool {
	h.SetStatus(model.StatusRunning)
	return true
}

// Stop halts health monitor operation
func (h *HealthMonitor) Stop() bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.metrics = make(map[string]interface{})

	h.SetStatus(model.StatusStopped)
	return true
}

// RegisterComponent adds a component to be monitored
func (h *HealthMonitor) RegisterComponent(component Component) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.components[component.ID()] = component
}

// AddMetric adds a metric value with optional metadata
func (h *HealthMonitor) AddMetric(name string, value interface{}, metadata map[string]interface{}) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	metadata["value"] = value
	metadata["timestamp"] = time.Now()

	h.metrics[name] = metadata
}

// IncrementMetric increases a counter metric by one
func (h *HealthMonitor) IncrementMetric(name string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	count := 0
	if metadata, ok := h.metrics[name].(map[string]interface{}); ok {
		if v, ok := metadata["value"].(int); ok {
			count = v
		}
	}

	h.metrics[name] = map[string]interface{}{
		"value":     count + 1,
		"timestamp": time.Now(),
	}
}

// GetMetric retrieves a metric value
func (h *HealthMonitor) GetMetric(name string) (interface{}, bool) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	metric, exists := h.metrics[name]
	return metric, exists
}

// GetAllMetrics retrieves all metrics
func (h *HealthMonitor) GetAllMetrics() map[string]interface{} {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	// Copy to avoid concurrent map access
	metrics := make(map[string]interface{}, len(h.metrics))
	for k, v := range h.metrics {
		metrics[k] = v
	}

	return metrics
}

// GetHealthStatus retrieves the health status of the system
func (h *HealthMonitor) GetHealthStatus() model.HealthStatus {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	components := make(map[string]model.HealthStatus)
	for id, component := range h.components {
		components[id] = model.HealthStatus{
			Status:    component.GetStatus(),
			Timestamp: time.Now(),
			Message:   component.Name() + " status: " + string(component.GetStatus()),
		}
	}

	// The system is degraded if any component reports an error, stopped if
	// every component has stopped
	systemStatus := model.StatusRunning
	stopped := 0
	for _, health := range components {
		if health.Status == model.StatusError {
			systemStatus = model.StatusError
		}
		if health.Status == model.StatusStopped {
			stopped++
		}
	}
	if systemStatus == model.StatusRunning && len(components) > 0 && stopped == len(components) {
		systemStatus = model.StatusStopped
	}

	return model.HealthStatus{
		Status:     systemStatus,
		Timestamp:  time.Now(),
		Components: components,
	}
}
