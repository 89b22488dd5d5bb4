package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteResourceRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	res := testutil.NewTestResource("Main Hall",
		testutil.WithKind(domain.KindVenue),
		testutil.WithWindows(
			domain.AvailabilityWindow{Start: testutil.At(8, 0), End: testutil.At(18, 0), Status: domain.AvailabilityAvailable},
			domain.AvailabilityWindow{Start: testutil.At(18, 0), End: testutil.At(23, 0), Status: domain.AvailabilityUnavailable},
		))
	require.NoError(t, repo.Create(ctx, res))

	fetched, err := repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Main Hall", fetched.Name)
	assert.Equal(t, domain.KindVenue, fetched.Kind)
	require.Len(t, fetched.Windows, 2)
	assert.Equal(t, domain.AvailabilityUnavailable, fetched.Windows[1].Status)
	assert.True(t, fetched.Windows[1].Start.Equal(testutil.At(18, 0)))
}

func TestResourceRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteResourceRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResourceRepo_ListSortedByName(t *testing.T) {
	repo := NewSQLiteResourceRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestResource("Zelda")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestResource("Ada", testutil.WithKind(domain.KindPerson))))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ada", list[0].Name)
	assert.Equal(t, "Zelda", list[1].Name)
}

func TestResourceRepo_UpdateReplacesWindows(t *testing.T) {
	repo := NewSQLiteResourceRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	res := testutil.NewTestResource("Desk",
		testutil.WithWindows(domain.AvailabilityWindow{
			Start: testutil.At(8, 0), End: testutil.At(12, 0), Status: domain.AvailabilityAvailable,
		}))
	require.NoError(t, repo.Create(ctx, res))

	res.Name = "Desk B"
	res.Windows = []domain.AvailabilityWindow{
		{Start: testutil.At(13, 0), End: testutil.At(17, 0), Status: domain.AvailabilityBusy},
	}
	require.NoError(t, repo.Update(ctx, res))

	fetched, err := repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Desk B", fetched.Name)
	require.Len(t, fetched.Windows, 1)
	assert.Equal(t, domain.AvailabilityBusy, fetched.Windows[0].Status)
}

func TestResourceRepo_Update_NotFound(t *testing.T) {
	repo := NewSQLiteResourceRepo(testutil.NewTestDB(t))

	ghost := testutil.NewTestResource("Ghost")
	err := repo.Update(context.Background(), ghost)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResourceRepo_DeleteCascadesWindows(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteResourceRepo(database)
	ctx := context.Background()

	res := testutil.NewTestResource("Desk",
		testutil.WithWindows(domain.AvailabilityWindow{
			Start: testutil.At(8, 0), End: testutil.At(12, 0), Status: domain.AvailabilityAvailable,
		}))
	require.NoError(t, repo.Create(ctx, res))
	require.NoError(t, repo.Delete(ctx, res.ID))

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM availability_windows`).Scan(&count))
	assert.Equal(t, 0, count)
}
