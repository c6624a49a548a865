package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/tracker/internal/domain/activity"
	"github.com/rpggio/tracker/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestLogRepository_SaveLoad(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewLogRepository(db)

	entries, err := repo.Load(ctx, "missing")
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)

	want := []activity.LogEntry{
		{Timestamp: "2025-07-28 10:00:00", Action: activity.ActionCreated, Details: "Initial creation of activity"},
		{Timestamp: "2025-07-28 11:00:00", Action: activity.ActionUpdated, Details: "Paint done", File: "log_1_20250728110000_a.png"},
	}
	require.NoError(t, repo.Save(ctx, "k1", want))

	got, err := repo.Load(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLogRepository_KeysAreIsolated(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewLogRepository(db)

	require.NoError(t, repo.Save(ctx, "k1", []activity.LogEntry{{Timestamp: "t1", Action: activity.ActionCreated}}))
	require.NoError(t, repo.Save(ctx, "k2", []activity.LogEntry{{Timestamp: "t2", Action: activity.ActionCreated}}))
	require.NoError(t, repo.Save(ctx, "k1", []activity.LogEntry{
		{Timestamp: "t1", Action: activity.ActionCreated},
		{Timestamp: "t3", Action: activity.ActionUpdated},
	}))

	k1, err := repo.Load(ctx, "k1")
	require.NoError(t, err)
	require.Len(t, k1, 2)

	k2, err := repo.Load(ctx, "k2")
	require.NoError(t, err)
	require.Len(t, k2, 1)
	require.Equal(t, "t2", k2[0].Timestamp)
}

func TestLogRepository_RejectsInvalidKey(t *testing.T) {
	db := NewTestDB(t)
	repo := NewLogRepository(db)

	_, err := repo.Load(context.Background(), "")
	require.ErrorIs(t, err, repository.ErrInvalidKey)
}
