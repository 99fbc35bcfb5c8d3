package core

import (
	"sync"

	"github.com/sliink/expcollect/internal/model"
)

// RunHistory keeps a bounded in-memory history of collection run reports,
// newest last. When the bound is reached the oldest report is dropped.
type RunHistory struct {
	reports []*model.RunReport
	maxRuns int
	mutex   sync.RWMutex
	BaseComponent
}

// NewRunHistory creates a run history bounded to maxRuns reports
func NewRunHistory(maxRuns int) *RunHistory {
	if maxRuns <= 0 {
		maxRuns = 100 // Default history bound
	}

	return &RunHistory{
		maxRuns:       maxRuns,
		BaseComponent: NewBaseComponent("run_history", "Run History"),
	}
}

// Initialize prepares the run history for operation
func (h *RunHistory) Initialize() bool {
	h.SetStatus(model.StatusInitialized)
	return true
}

// Start begins run history operation
func (h *RunHistory) Start() bool {
	h.SetStatus(model.StatusRunning)
	return true
}

// Stop halts run history operation
func (h *RunHistory) Stop() bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.reports = nil

	h.SetStatus(model.StatusStopped)
	return true
}

// Append records a run report, evicting the oldest when the bound is reached
func (h *RunHistory) Append(report *model.RunReport) bool {
	if report == nil {
		return false
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.GetStatus() != model.StatusRunning {
		return false
	}

	h.reports = append(h.reports, report)
	if len(h.reports) > h.maxRuns {
		h.reports = h.reports[len(h.reports)-h.maxRuns:]
	}

	return true
}

// Recent returns up to n reports, newest first. n <= 0 returns all reports.
func (h *RunHistory) Recent(n int) []*model.RunReport {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if n <= 0 || n > len(h.reports) {
		n = len(h.reports)
	}

	result := make([]*model.RunReport, 0, n)
	for i := len(h.reports) - 1; i >= len(h.reports)-n; i-- {
		result = append(result, h.reports[i])
	}

	return result
}

// Last returns the most recent run report, if any
func (h *RunHistory) Last() (*model.RunReport, bool) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if len(h.reports) == 0 {
		return nil, false
	}
	return h.reports[len(h.reports)-1], true
}

// Len returns the number of retained reports
func (h *RunHistory) Len() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.reports)
}
