package core

import (
	"sync"

	"github.com/sliink/expcollect/internal/model"
)

// ProducerRegistry keeps track of registered producers. Registration order is
// preserved: it determines the order documents are written during a run.
type ProducerRegistry struct {
	producers map[string]model.Producer
	order     []string
	mutex     sync.RWMutex
	BaseComponent
}

// NewProducerRegistry creates a new producer registry
func NewProducerRegistry() *ProducerRegistry {
	return &ProducerRegistry{
		producers:     make(map[string]model.Producer),
		BaseComponent: NewBaseComponent("producer_registry", "Producer Registry"),
	}
}

// Initialize prepares the producer registry for operation
func (r *ProducerRegistry) Initialize() bool {
	r.SetStatus(model.StatusInitialized)
	return true
}

// Start begins producer registry operation
func (r *ProducerRegistry) Start() bool {
	r.SetStatus(model.StatusRunning)
	return true
}

// Stop halts producer registry operation and all registered producers
func (r *ProducerRegistry) Stop() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, p := range r.producers {
		p.Stop()
	}

	r.SetStatus(model.StatusStopped)
	return true
}

// RegisterProducer adds a producer to the registry
func (r *ProducerRegistry) RegisterProducer(p model.Producer) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.producers[p.ID()]; exists {
		return false
	}

	r.producers[p.ID()] = p
	r.order = append(r.order, p.ID())
	return true
}

// UnregisterProducer removes a producer from the registry
func (r *ProducerRegistry) UnregisterProducer(producerID string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.producers[producerID]; !exists {
		return false
	}

	delete(r.producers, producerID)
	for i, id := range r.order {
		if id == producerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// GetProducer retrieves a producer by ID
func (r *ProducerRegistry) GetProducer(producerID string) (model.Producer, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	p, exists := r.producers[producerID]
	return p, exists
}

// GetProducers retrieves all registered producers in registration order
func (r *ProducerRegistry) GetProducers() []model.Producer {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]model.Producer, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.producers[id])
	}

	return result
}

// GetProducersByKind retrieves all producers of a specific kind
func (r *ProducerRegistry) GetProducersByKind(kind model.ProducerKind) []model.Producer {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []model.Producer
	for _, id := range r.order {
		if r.producers[id].Kind() == kind {
			result = append(result, r.producers[id])
		}
	}

	return result
}
