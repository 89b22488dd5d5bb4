package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/repository"
	"github.com/alexanderramin/stagehand/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) oneDetectedConflict(t *testing.T) *domain.Conflict {
	t.Helper()
	desk := e.createResource(t, "Mixing desk", domain.KindEquipment)
	e.createAllocation(t, &domain.Allocation{
		ResourceID: desk.ID, Title: "A", Activity: domain.ActivityRehearsal,
		Start: testutil.At(10, 0), End: testutil.At(12, 0),
	})
	e.createAllocation(t, &domain.Allocation{
		ResourceID: desk.ID, Title: "B", Activity: domain.ActivityRehearsal,
		Start: testutil.At(11, 0), End: testutil.At(13, 0),
	})
	resp := e.detect(t)
	require.Len(t, resp.Conflicts, 1)
	return resp.Conflicts[0]
}

func TestConflictService_Resolve(t *testing.T) {
	env := newTestEnv(t)
	c := env.oneDetectedConflict(t)
	ctx := context.Background()

	require.NoError(t, env.conflicts.Resolve(ctx, c.ID, "", "moved by hand"))

	fetched, err := env.conflicts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConflictResolved, fetched.Status)
	assert.Equal(t, "moved by hand", fetched.ResolutionNote)
	assert.NotNil(t, fetched.ResolvedAt)
}

func TestConflictService_ResolveTwice_InvalidState(t *testing.T) {
	env := newTestEnv(t)
	c := env.oneDetectedConflict(t)
	ctx := context.Background()

	require.NoError(t, env.conflicts.Resolve(ctx, c.ID, "", ""))
	err := env.conflicts.Resolve(ctx, c.ID, "", "")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestConflictService_Resolve_NotFound(t *testing.T) {
	env := newTestEnv(t)

	err := env.conflicts.Resolve(context.Background(), "nonexistent", "", "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestConflictService_ResolveWithSuggestion(t *testing.T) {
	env := newTestEnv(t)
	c := env.oneDetectedConflict(t)
	ctx := context.Background()
	require.NotEmpty(t, c.Suggestions)

	require.NoError(t, env.conflicts.Resolve(ctx, c.ID, c.Suggestions[0].ID, ""))

	fetched, err := env.conflicts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConflictResolved, fetched.Status)
	assert.Contains(t, fetched.ResolutionNote, "applied suggestion:")
	assert.Contains(t, fetched.ResolutionNote, c.Suggestions[0].Title)
}

func TestConflictService_ResolveWithUnknownSuggestion(t *testing.T) {
	env := newTestEnv(t)
	c := env.oneDetectedConflict(t)
	ctx := context.Background()

	err := env.conflicts.Resolve(ctx, c.ID, "bogus-suggestion", "")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	fetched, err := env.conflicts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConflictActive, fetched.Status, "failed resolve leaves the conflict active")
}

func TestConflictService_Ignore(t *testing.T) {
	env := newTestEnv(t)
	c := env.oneDetectedConflict(t)
	ctx := context.Background()

	require.NoError(t, env.conflicts.Ignore(ctx, c.ID, "expected during load-in"))

	fetched, err := env.conflicts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConflictIgnored, fetched.Status)

	err = env.conflicts.Ignore(ctx, c.ID, "")
	assert.ErrorIs(t, err, ErrInvalidState)
}
