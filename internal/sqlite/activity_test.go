package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/tracker/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_SaveLoad(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(db)

	activities, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, activities)
	require.Empty(t, activities)

	want := []activity.Activity{
		{Serial: 1, ID: "a", Priority: "High", Project: "Bridge", Status: "Open"},
		{Serial: 2, ID: "b", Project: "Tunnel", Attachment: "2_plan.pdf", Remarks: "late"},
	}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestActivityRepository_SaveReplacesCollection(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(db)

	require.NoError(t, repo.Save(ctx, []activity.Activity{
		{Serial: 1, ID: "a"}, {Serial: 2, ID: "b"}, {Serial: 3, ID: "c"},
	}))
	require.NoError(t, repo.Save(ctx, []activity.Activity{
		{Serial: 1, ID: "c"},
	}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []activity.Activity{{Serial: 1, ID: "c"}}, got)
}

func TestActivityRepository_RoundTripIsNoOp(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(db)

	want := []activity.Activity{{Serial: 1, ID: "a", Project: "Bridge"}, {Serial: 2, ID: "b"}}
	require.NoError(t, repo.Save(ctx, want))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, loaded))

	again, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want, again)
}
