package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRunLog(t *testing.T) *RunLog {
	t.Helper()
	l, err := OpenRunLog(context.Background(), filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestRunLog_StartCompleteList(t *testing.T) {
	ctx := context.Background()
	l := openTestRunLog(t)

	id, err := l.Start(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	regions := []string{"us-east-1", "eu-west-1"}
	require.NoError(t, l.Complete(ctx, id, regions, 42, 17))

	entries, err := l.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, id, e.ID)
	assert.Equal(t, RunComplete, e.Status)
	assert.Equal(t, regions, e.Regions)
	assert.Equal(t, 42, e.ModelCount)
	assert.Equal(t, 17, e.ProfileCount)
	assert.NotNil(t, e.CompletedAt)
	assert.Empty(t, e.Error)
}

func TestRunLog_Fail(t *testing.T) {
	ctx := context.Background()
	l := openTestRunLog(t)

	id, err := l.Start(ctx)
	require.NoError(t, err)
	require.NoError(t, l.Fail(ctx, id, "fetch models from eu-west-1: throttled"))

	entries, err := l.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, RunFailed, entries[0].Status)
	assert.Contains(t, entries[0].Error, "throttled")
}

func TestRunLog_ListEmpty(t *testing.T) {
	l := openTestRunLog(t)

	entries, err := l.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunLog_RunningEntryHasNoCompletion(t *testing.T) {
	ctx := context.Background()
	l := openTestRunLog(t)

	_, err := l.Start(ctx)
	require.NoError(t, err)

	entries, err := l.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, RunRunning, entries[0].Status)
	assert.Nil(t, entries[0].CompletedAt)
}
