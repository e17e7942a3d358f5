package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LLM-Toolkit/llm-toolkit.github.io-sub001/internal/audit"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "audit.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport() *audit.Report {
	return &audit.Report{
		ID:        uuid.NewString(),
		StartedAt: time.Now().Add(-time.Minute),
		Duration:  250 * time.Millisecond,
		Pages:     3,
		Findings: []audit.Finding{
			{File: "index.html", Rule: "placeholder-text", Severity: audit.SeverityError, Message: "placeholder text published", Excerpt: "Lorem ipsum"},
			{File: "search.html", Rule: "unfinished-marker", Severity: audit.SeverityWarning, Message: "unfinished content marker", Excerpt: "TODO"},
		},
	}
}

func TestSaveAndLoadReport(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	report := sampleReport()

	require.NoError(t, s.SaveReport(ctx, report))

	runs, err := s.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, report.ID, runs[0].ID)
	assert.Equal(t, 3, runs[0].Pages)
	assert.Equal(t, 1, runs[0].Errors)
	assert.Equal(t, 1, runs[0].Warnings)
	assert.Equal(t, 250*time.Millisecond, runs[0].Duration)

	findings, err := s.Findings(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.Findings, findings)
}

func TestRecentRunsOrderAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	old := sampleReport()
	old.StartedAt = time.Now().Add(-time.Hour)
	newer := sampleReport()
	newer.StartedAt = time.Now()

	require.NoError(t, s.SaveReport(ctx, old))
	require.NoError(t, s.SaveReport(ctx, newer))

	runs, err := s.RecentRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, newer.ID, runs[0].ID)
}

func TestFindingsUnknownRun(t *testing.T) {
	s := openTestStore(t)

	findings, err := s.Findings(context.Background(), "no-such-run")
	require.NoError(t, err)
	assert.Empty(t, findings)
}
