package repository

import (
	"context"
	"testing"
	"time"

	"github.com/joinpeakapp/peak/internal/domain"
	"github.com/joinpeakapp/peak/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkoutRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteWorkoutRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	tests := []struct {
		name string
		freq domain.Frequency
	}{
		{"flexible", domain.NoFrequency()},
		{"sunday", domain.WeeklyOn(time.Sunday)},
		{"wednesday", domain.WeeklyOn(time.Wednesday)},
		{"every three days", domain.EveryNDays(3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.NewTestWorkout(tt.name, testutil.WithFrequency(tt.freq))
			require.NoError(t, repo.Create(ctx, w))

			got, err := repo.GetByID(ctx, w.ID)
			require.NoError(t, err)
			assert.Equal(t, w.Name, got.Name)
			assert.Equal(t, tt.freq, got.Frequency)
			assert.True(t, w.CreatedAt.Truncate(time.Second).Equal(got.CreatedAt))
		})
	}
}

func TestWorkoutRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteWorkoutRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkoutRepo_ListInCreationOrder(t *testing.T) {
	repo := NewSQLiteWorkoutRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	second := testutil.NewTestWorkout("Pull", testutil.WithCreatedAt(base.Add(time.Hour)))
	first := testutil.NewTestWorkout("Push", testutil.WithCreatedAt(base))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Push", got[0].Name)
	assert.Equal(t, "Pull", got[1].Name)
}

func TestWorkoutRepo_UpdateAndDelete(t *testing.T) {
	repo := NewSQLiteWorkoutRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	w := testutil.NewTestWorkout("Run", testutil.WithWeekly(time.Monday))
	require.NoError(t, repo.Create(ctx, w))

	w.Name = "Long run"
	w.Frequency = domain.EveryNDays(5)
	require.NoError(t, repo.Update(ctx, w))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Long run", got.Name)
	assert.Equal(t, domain.EveryNDays(5), got.Frequency)

	require.NoError(t, repo.Delete(ctx, w.ID))
	assert.ErrorIs(t, repo.Delete(ctx, w.ID), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, w), ErrNotFound)
}
