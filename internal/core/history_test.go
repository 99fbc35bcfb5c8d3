package core

import (
	"fmt"
	"testing"

	"github.com/sliink/expcollect/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedHistory(t *testing.T, maxRuns int) *RunHistory {
	t.Helper()
	h := NewRunHistory(maxRuns)
	require.True(t, h.Initialize())
	require.True(t, h.Start())
	return h
}

func TestNewRunHistory(t *testing.T) {
	h := NewRunHistory(10)

	assert.Equal(t, "run_history", h.ID())
	assert.Equal(t, "Run History", h.Name())
	assert.Equal(t, 0, h.Len())
}

func TestRunHistoryAppend(t *testing.T) {
	t.Run("Appends while running", func(t *testing.T) {
		h := startedHistory(t, 10)

		assert.True(t, h.Append(&model.RunReport{RepoPath: "."}))
		assert.Equal(t, 1, h.Len())
	})

	t.Run("Rejects nil reports", func(t *testing.T) {
		h := startedHistory(t, 10)

		assert.False(t, h.Append(nil))
		assert.Equal(t, 0, h.Len())
	})

	t.Run("Rejects appends when not running", func(t *testing.T) {
		h := NewRunHistory(10)
		h.Initialize()

		assert.False(t, h.Append(&model.RunReport{}))
	})

	t.Run("Evicts the oldest report at the bound", func(t *testing.T) {
		h := startedHistory(t, 3)

		for i := 0; i < 5; i++ {
			require.True(t, h.Append(&model.RunReport{RepoPath: fmt.Sprintf("run-%d", i)}))
		}

		assert.Equal(t, 3, h.Len())
		recent := h.Recent(0)
		require.Len(t, recent, 3)
		assert.Equal(t, "run-4", recent[0].RepoPath)
		assert.Equal(t, "run-2", recent[2].RepoPath)
	})
}

func TestRunHistoryRecent(t *testing.T) {
	h := startedHistory(t, 10)
	for i := 0; i < 4; i++ {
		require.True(t, h.Append(&model.RunReport{RepoPath: fmt.Sprintf("run-%d", i)}))
	}

	t.Run("Returns newest first", func(t *testing.T) {
		recent := h.Recent(2)
		require.Len(t, recent, 2)
		assert.Equal(t, "run-3", recent[0].RepoPath)
		assert.Equal(t, "run-2", recent[1].RepoPath)
	})

	t.Run("Non-positive n returns everything", func(t *testing.T) {
		assert.Len(t, h.Recent(0), 4)
		assert.Len(t, h.Recent(-1), 4)
	})

	t.Run("Oversized n is clamped", func(t *testing.T) {
		assert.Len(t, h.Recent(100), 4)
	})
}

func TestRunHistoryLast(t *testing.T) {
	h := startedHistory(t, 10)

	t.Run("Empty history has no last report", func(t *testing.T) {
		_, ok := h.Last()
		assert.False(t, ok)
	})

	t.Run("Returns the most recent report", func(t *testing.T) {
		require.True(t, h.Append(&model.RunReport{RepoPath: "first"}))
		require.True(t, h.Append(&model.RunReport{RepoPath: "second"}))

		last, ok := h.Last()
		require.True(t, ok)
		assert.Equal(t, "second", last.RepoPath)
	})
}

func TestRunHistoryStopClears(t *testing.T) {
	h := startedHistory(t, 10)
	require.True(t, h.Append(&model.RunReport{}))

	assert.True(t, h.Stop())
	assert.Equal(t, 0, h.Len())
}

func TestRunHistoryDefaultBound(t *testing.T) {
	h := NewRunHistory(0)
	h.Initialize()
	h.Start()

	for i := 0; i < 150; i++ {
		require.True(t, h.Append(&model.RunReport{}))
	}

	assert.Equal(t, 100, h.Len())
}
