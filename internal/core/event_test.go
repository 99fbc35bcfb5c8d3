package core

import (
	"testing"
	"time"

	"github.com/sliink/expcollect/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestNewEvent(t *testing.T) {
	event := NewEvent(model.EventDocumentWritten, "event_logger", "coverage.json")

	assert.Equal(t, model.EventDocumentWritten, event.Type)
	assert.Equal(t, "event_logger", event.SourceID)
	assert.Equal(t, "coverage.json", event.Data)
	assert.NotZero(t, event.Timestamp)
	assert.True(t, time.Since(event.Timestamp) < time.Second)
}

func TestNewEventBus(t *testing.T) {
	eventBus := NewEventBus()

	assert.NotNil(t, eventBus)
	assert.Equal(t, "event_bus", eventBus.ID())
	assert.Equal(t, "Event Bus", eventBus.Name())
}

func TestEventBusLifecycle(t *testing.T) {
	eventBus := NewEventBus()

	t.Run("Initialize sets correct status", func(t *testing.T) {
		assert.True(t, eventBus.Initialize())
		assert.Equal(t, model.StatusInitialized, eventBus.GetStatus())
	})

	t.Run("Start sets correct status", func(t *testing.T) {
		assert.True(t, eventBus.Start())
		assert.Equal(t, model.StatusRunning, eventBus.GetStatus())
	})

	t.Run("Stop sets correct status", func(t *testing.T) {
		assert.True(t, eventBus.Stop())
		assert.Equal(t, model.StatusStopped, eventBus.GetStatus())
	})
}

func TestEventBusSubscribeAndPublish(t *testing.T) {
	eventBus := NewEventBus()
	eventBus.Initialize()
	eventBus.Start()

	t.Run("Publish sends event to subscribers", func(t *testing.T) {
		var received Event
		eventBus.Subscribe(model.EventRunCompleted, "test_listener", func(event Event) {
			received = event
		})

		eventBus.Publish(NewEvent(model.EventRunCompleted, "core", "data"))

		assert.Equal(t, model.EventRunCompleted, received.Type)
		assert.Equal(t, "core", received.SourceID)
		assert.Equal(t, "data", received.Data)
	})

	t.Run("Multiple subscribers all receive the event", func(t *testing.T) {
		var called1, called2 bool
		eventBus.Subscribe(model.EventError, "listener1", func(Event) { called1 = true })
		eventBus.Subscribe(model.EventError, "listener2", func(Event) { called2 = true })

		eventBus.Publish(NewEvent(model.EventError, "core", nil))

		assert.True(t, called1)
		assert.True(t, called2)
	})

	t.Run("Unsubscribe removes the callback", func(t *testing.T) {
		var called bool
		eventBus.Subscribe(model.EventConfigChange, "transient", func(Event) { called = true })
		eventBus.Unsubscribe(model.EventConfigChange, "transient")

		eventBus.Publish(NewEvent(model.EventConfigChange, "core", nil))

		assert.False(t, called)
	})

	t.Run("Publish with no subscribers does nothing", func(t *testing.T) {
		eventBus.Publish(NewEvent(model.EventRecordProduced, "source", nil))
	})

	t.Run("Publish when stopped does nothing", func(t *testing.T) {
		var called bool
		eventBus.Subscribe(model.EventRunCompleted, "late", func(Event) { called = true })
		eventBus.Stop()

		eventBus.Publish(NewEvent(model.EventRunCompleted, "core", nil))

		assert.False(t, called)
	})
}
