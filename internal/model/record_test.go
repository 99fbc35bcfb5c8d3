package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRecord(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	body := NewDocument().Set("total_lines", Number(1000))

	record := NewRecord(CoverageKind, "coverage", ts, body)

	assert.Equal(t, CoverageKind, record.Kind)
	assert.Equal(t, "coverage", record.Source)
	assert.Equal(t, ts, record.Timestamp)
	assert.Same(t, body, record.Body)
}

func TestRunReportSucceeded(t *testing.T) {
	t.Run("No failures means success", func(t *testing.T) {
		report := &RunReport{
			Written: []WrittenDocument{{Producer: "coverage", Filename: "coverage.json"}},
		}
		assert.True(t, report.Succeeded())
	})

	t.Run("Any failure means the run failed", func(t *testing.T) {
		report := &RunReport{
			Written:  []WrittenDocument{{Producer: "coverage"}},
			Failures: []WriteFailure{{Producer: "sonar_metrics", Error: "disk full"}},
		}
		assert.False(t, report.Succeeded())
	})
}
