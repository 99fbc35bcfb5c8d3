package producer

import (
	"github.com/sliink/expcollect/internal/model"
)

// CoverageFilename is the document name for coverage records
const CoverageFilename = "coverage.json"

// CoverageProducer captures unit-test coverage numbers. This is a stub: it
// returns fixed placeholder numbers in place of running a coverage tool.
type CoverageProducer struct {
	BaseProducer
	totalLines   float64
	coveredLines float64
}

// NewCoverageProducer creates a new coverage producer
func NewCoverageProducer(id string) *CoverageProducer {
	return &CoverageProducer{
		BaseProducer: NewBaseProducer(id, "Coverage", model.CoverageKind, CoverageFilename),
		totalLines:   1000,
		coveredLines: 850,
	}
}

// Initialize prepares the coverage producer for operation
func (p *CoverageProducer) Initialize() bool {
	if total, ok := p.Config["total_lines"].(float64); ok && total > 0 {
		p.totalLines = total
	}

	if covered, ok := p.Config["covered_lines"].(float64); ok && covered >= 0 {
		p.coveredLines = covered
	}

	p.SetStatus(model.StatusInitialized)
	return true
}

// Start begins coverage producer operation
func (p *CoverageProducer) Start() bool {
	p.SetStatus(model.StatusRunning)
	return true
}

// Stop halts coverage producer operation
func (p *CoverageProducer) Stop() bool {
	p.SetStatus(model.StatusStopped)
	return true
}

// Validate checks if the coverage producer is properly configured
func (p *CoverageProducer) Validate() bool {
	if covered, ok := p.Config["covered_lines"].(float64); ok {
		if total, ok := p.Config["total_lines"].(float64); ok && covered > total {
			return false
		}
	}
	return true
}

// Produce captures one coverage record
func (p *CoverageProducer) Produce() (*model.Record, error) {
	percent := 0.0
	if p.totalLines > 0 {
		percent = p.coveredLines / p.totalLines * 100
	}

	body := model.NewDocument().
		Set("total_lines", model.Number(p.totalLines)).
		Set("covered_lines", model.Number(p.coveredLines)).
		Set("coverage_percent", model.Number(percent))

	return model.NewRecord(p.Kind(), p.ID(), p.Now(), body), nil
}
