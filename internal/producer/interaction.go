package producer

import (
	"time"

	"github.com/sliink/expcollect/internal/model"
)

// InteractionFilename is the document name for AI interaction records
const InteractionFilename = "ai_interactions.json"

// Default interaction sample, used when no prompt/response is configured
const (
	defaultPrompt   = "How to implement a binary search?"
	defaultResponse = "Here is an implementation of binary search..."
)

// InteractionProducer captures AI prompt/response pairs with timestamps. In a
// real experiment an IDE plugin would log each call to the language model;
// this producer records a single configured pair.
type InteractionProducer struct {
	BaseProducer
	prompt   string
	response string
}

// NewInteractionProducer creates a new AI interaction producer
func NewInteractionProducer(id string) *InteractionProducer {
	return &InteractionProducer{
		BaseProducer: NewBaseProducer(id, "AI Interaction", model.AIInteractionKind, InteractionFilename),
		prompt:       defaultPrompt,
		response:     defaultResponse,
	}
}

// Initialize prepares the interaction producer for operation
func (p *InteractionProducer) Initialize() bool {
	if prompt, ok := p.Config["prompt"].(string); ok && prompt != "" {
		p.prompt = prompt
	}

	if response, ok := p.Config["response"].(string); ok && response != "" {
		p.response = response
	}

	p.SetStatus(model.StatusInitialized)
	return true
}

// Start begins interaction producer operation
func (p *InteractionProducer) Start() bool {
	p.SetStatus(model.StatusRunning)
	return true
}

// Stop halts interaction producer operation
func (p *InteractionProducer) Stop() bool {
	p.SetStatus(model.StatusStopped)
	return true
}

// Capture records a specific prompt/response pair, bypassing the configured
// sample
func (p *InteractionProducer) Capture(prompt, response string) *model.Record {
	now := p.Now()

	body := model.NewDocument().
		Set("timestamp", model.String(now.UTC().Format(time.RFC3339))).
		Set("prompt", model.String(prompt)).
		Set("response", model.String(response))

	return model.NewRecord(p.Kind(), p.ID(), now, body)
}

// Produce captures one AI interaction record from the configured sample
func (p *InteractionProducer) Produce() (*model.Record, error) {
	return p.Capture(p.prompt, p.response), nil
}
