package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/stagehand/internal/contract"
	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/repository"
	"github.com/alexanderramin/stagehand/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testEnv bundles a fresh database with every service wired the way main
// wires them.
type testEnv struct {
	db          *sql.DB
	resources   ResourceService
	allocations AllocationService
	detection   DetectionService
	conflicts   ConflictService

	conflictRepo repository.ConflictRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)

	resourceRepo := repository.NewSQLiteResourceRepo(database)
	allocationRepo := repository.NewSQLiteAllocationRepo(database)
	conflictRepo := repository.NewSQLiteConflictRepo(database)
	uow := testutil.NewTestUoW(database)

	return &testEnv{
		db:           database,
		resources:    NewResourceService(resourceRepo),
		allocations:  NewAllocationService(allocationRepo, resourceRepo),
		detection:    NewDetectionService(resourceRepo, allocationRepo, uow),
		conflicts:    NewConflictService(conflictRepo),
		conflictRepo: conflictRepo,
	}
}

func (e *testEnv) createResource(t *testing.T, name string, kind domain.ResourceKind, windows ...domain.AvailabilityWindow) *domain.Resource {
	t.Helper()
	r := &domain.Resource{Kind: kind, Name: name, Windows: windows}
	require.NoError(t, e.resources.Create(context.Background(), r))
	return r
}

func (e *testEnv) createAllocation(t *testing.T, a *domain.Allocation) *domain.Allocation {
	t.Helper()
	require.NoError(t, e.allocations.Create(context.Background(), a))
	return a
}

func (e *testEnv) detect(t *testing.T) *contract.DetectResponse {
	t.Helper()
	resp, err := e.detection.DetectConflicts(context.Background(), contract.NewDetectRequest())
	require.NoError(t, err)
	return resp
}
