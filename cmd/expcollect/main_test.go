package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sliink/expcollect/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterProducers(t *testing.T) {
	c := core.NewCore(
		core.WithRepoPath("/tmp/subject"),
		core.WithOutputDir(t.TempDir()),
		core.WithNotices(&bytes.Buffer{}),
	)
	require.True(t, c.Initialize())
	defer c.Stop()

	require.NoError(t, registerProducers(c))

	var ids []string
	for _, p := range c.GetRegistry().GetProducers() {
		ids = append(ids, p.ID())
	}
	assert.Equal(t, []string{"commit_metadata", "sonar_metrics", "ai_interaction", "coverage"}, ids)
}

func TestRegisterProducersPassesRepoPath(t *testing.T) {
	c := core.NewCore(
		core.WithRepoPath("/tmp/subject"),
		core.WithOutputDir(t.TempDir()),
		core.WithNotices(&bytes.Buffer{}),
	)
	require.True(t, c.Initialize())
	require.NoError(t, registerProducers(c))
	require.True(t, c.Start())
	defer c.Stop()

	report := c.Run()
	require.True(t, report.Succeeded())
	assert.Len(t, report.Written, 4)
}

func TestProducerConfig(t *testing.T) {
	c := core.NewCore(core.WithNotices(&bytes.Buffer{}))
	require.True(t, c.Initialize())
	defer c.Stop()

	configManager := c.GetConfigManager()
	require.NoError(t, configManager.SetConfig("producers.coverage.total_lines", 200.0))

	t.Run("Extracts the producer subtree", func(t *testing.T) {
		config := producerConfig(configManager, "coverage")
		assert.Equal(t, 200.0, config["total_lines"])
	})

	t.Run("Unknown producer yields an empty map", func(t *testing.T) {
		config := producerConfig(configManager, "absent")
		assert.NotNil(t, config)
		assert.Empty(t, config)
	})
}

func TestCollectionWritesAllDocuments(t *testing.T) {
	outputDir := t.TempDir()
	c := core.NewCore(
		core.WithOutputDir(outputDir),
		core.WithNotices(&bytes.Buffer{}),
	)
	require.True(t, c.Initialize())
	require.NoError(t, registerProducers(c))
	require.True(t, c.Start())
	defer c.Stop()

	report := c.Run()
	require.True(t, report.Succeeded())

	for _, name := range []string{"commit_metadata.json", "sonar_metrics.json", "ai_interactions.json", "coverage.json"} {
		data, err := os.ReadFile(filepath.Join(outputDir, name))
		require.NoError(t, err, "expected %s to be written", name)
		assert.NotEmpty(t, data)
	}
}
