package producer

import (
	"github.com/sliink/expcollect/internal/model"
)

// SonarFilename is the document name for static-analysis metric records
const SonarFilename = "sonar_metrics.json"

// SonarProducer captures static-analysis metrics. This is a stub: it returns
// fixed placeholder metrics in place of invoking the SonarQube scanner CLI.
// The project key and token are accepted in configuration so a real scanner
// invocation can slot in later; the token is never written to any document.
type SonarProducer struct {
	BaseProducer
	projectKey string
	token      string
}

// NewSonarProducer creates a new static-analysis metrics producer
func NewSonarProducer(id string) *SonarProducer {
	return &SonarProducer{
		BaseProducer: NewBaseProducer(id, "Sonar Metrics", model.AnalysisMetricsKind, SonarFilename),
	}
}

// Initialize prepares the sonar producer for operation
func (p *SonarProducer) Initialize() bool {
	if key, ok := p.Config["project_key"].(string); ok {
		p.projectKey = key
	}

	if token, ok := p.Config["token"].(string); ok {
		p.token = token
	}

	p.SetStatus(model.StatusInitialized)
	return true
}

// Start begins sonar producer operation
func (p *SonarProducer) Start() bool {
	p.SetStatus(model.StatusRunning)
	return true
}

// Stop halts sonar producer operation
func (p *SonarProducer) Stop() bool {
	p.SetStatus(model.StatusStopped)
	return true
}

// Produce captures one static-analysis metrics record
func (p *SonarProducer) Produce() (*model.Record, error) {
	body := model.NewDocument().
		Set("code_smells", model.Number(10)).
		Set("bugs", model.Number(0)).
		Set("vulnerabilities", model.Number(0)).
		Set("coverage", model.Number(85.0)).
		Set("duplicated_lines_density", model.Number(1.2))

	return model.NewRecord(p.Kind(), p.ID(), p.Now(), body), nil
}
