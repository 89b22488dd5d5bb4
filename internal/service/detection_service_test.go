package service

import (
	"context"
	"strings"
	"testing"

	"github.com/alexanderramin/stagehand/internal/contract"
	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_EmptySchedule(t *testing.T) {
	env := newTestEnv(t)

	resp := env.detect(t)
	assert.Empty(t, resp.Conflicts)
	assert.Zero(t, resp.Stats.PairsFound)
}

func TestDetect_PersonOverlap(t *testing.T) {
	env := newTestEnv(t)
	crew := env.createResource(t, "Ada", domain.KindPerson)
	env.createAllocation(t, &domain.Allocation{
		ResourceID: crew.ID, Title: "Light rig", Activity: domain.ActivitySetup,
		Start: testutil.At(10, 0), End: testutil.At(12, 0),
	})
	env.createAllocation(t, &domain.Allocation{
		ResourceID: crew.ID, Title: "Run-through", Activity: domain.ActivityRehearsal,
		Start: testutil.At(11, 0), End: testutil.At(13, 0),
	})

	resp := env.detect(t)
	require.Len(t, resp.Conflicts, 1)
	c := resp.Conflicts[0]

	assert.Equal(t, domain.ConflictTeam, c.Type)
	assert.Equal(t, domain.SeverityMedium, c.Severity, "one-hour overlap is exactly half the shorter booking")
	assert.Equal(t, domain.ConflictActive, c.Status)
	assert.Contains(t, c.Description, "Ada")

	require.NotEmpty(t, c.Suggestions)
	resched := c.Suggestions[0]
	assert.Equal(t, domain.SuggestReschedule, resched.Kind)
	assert.Contains(t, resched.Description, "12:00", "moved booking starts when the contending one ends")
}

func TestDetect_VenuePerformance_Critical(t *testing.T) {
	env := newTestEnv(t)
	hall := env.createResource(t, "Main Hall", domain.KindVenue)
	env.createAllocation(t, &domain.Allocation{
		ResourceID: hall.ID, Title: "Evening show", Activity: domain.ActivityPerformance,
		Start: testutil.At(18, 0), End: testutil.At(20, 0),
	})
	env.createAllocation(t, &domain.Allocation{
		ResourceID: hall.ID, Title: "Stage teardown", Activity: domain.ActivityBreakdown,
		Start: testutil.At(19, 0), End: testutil.At(21, 0),
	})

	resp := env.detect(t)
	require.Len(t, resp.Conflicts, 1)
	c := resp.Conflicts[0]

	assert.Equal(t, domain.ConflictVenue, c.Type)
	assert.Equal(t, domain.SeverityCritical, c.Severity)

	kinds := make([]domain.SuggestionKind, 0, len(c.Suggestions))
	for _, s := range c.Suggestions {
		kinds = append(kinds, s.Kind)
	}
	assert.Contains(t, kinds, domain.SuggestManualReview)
}

func TestDetect_EquipmentBriefOverlap_Low(t *testing.T) {
	env := newTestEnv(t)
	desk := env.createResource(t, "Mixing desk", domain.KindEquipment)
	env.createAllocation(t, &domain.Allocation{
		ResourceID: desk.ID, Title: "Soundcheck A", Activity: domain.ActivityRehearsal,
		Start: testutil.At(10, 0), End: testutil.At(11, 0),
	})
	env.createAllocation(t, &domain.Allocation{
		ResourceID: desk.ID, Title: "Soundcheck B", Activity: domain.ActivityRehearsal,
		Start: testutil.At(10, 55), End: testutil.At(12, 0),
	})

	resp := env.detect(t)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, domain.ConflictResource, resp.Conflicts[0].Type)
	assert.Equal(t, domain.SeverityLow, resp.Conflicts[0].Severity)
}

func TestDetect_TouchingIntervals_NoConflict(t *testing.T) {
	env := newTestEnv(t)
	desk := env.createResource(t, "Mixing desk", domain.KindEquipment)
	env.createAllocation(t, &domain.Allocation{
		ResourceID: desk.ID, Title: "Morning", Activity: domain.ActivityRehearsal,
		Start: testutil.At(9, 0), End: testutil.At(12, 0),
	})
	env.createAllocation(t, &domain.Allocation{
		ResourceID: desk.ID, Title: "Afternoon", Activity: domain.ActivityRehearsal,
		Start: testutil.At(12, 0), End: testutil.At(15, 0),
	})

	resp := env.detect(t)
	assert.Empty(t, resp.Conflicts)
}

func TestDetect_UnavailableWindow(t *testing.T) {
	env := newTestEnv(t)
	van := env.createResource(t, "Tour van", domain.KindEquipment,
		domain.AvailabilityWindow{
			Start: testutil.At(8, 0), End: testutil.At(12, 0),
			Status: domain.AvailabilityUnavailable,
		})
	env.createAllocation(t, &domain.Allocation{
		ResourceID: van.ID, Title: "Gear run", Activity: domain.ActivityTransport,
		Start: testutil.At(10, 0), End: testutil.At(11, 0),
	})

	resp := env.detect(t)
	require.Len(t, resp.Conflicts, 1)
	c := resp.Conflicts[0]
	assert.Equal(t, domain.ConflictResource, c.Type)
	assert.True(t,
		strings.HasPrefix(c.AllocationAID, "unavailable:") || strings.HasPrefix(c.AllocationBID, "unavailable:"),
		"one side stands in for the unavailable window")
	assert.Contains(t, c.Description, "unavailable")
}

func TestDetect_DoubleBookedAssignee(t *testing.T) {
	env := newTestEnv(t)
	stage := env.createResource(t, "Stage", domain.KindVenue)
	foyer := env.createResource(t, "Foyer", domain.KindVenue)
	env.createAllocation(t, &domain.Allocation{
		PlanningItemID: "show-1", ResourceID: stage.ID,
		Title: "Stage prep", Activity: domain.ActivitySetup,
		Start: testutil.At(10, 0), End: testutil.At(12, 0),
		AssignedTo: []string{"Grace"},
	})
	env.createAllocation(t, &domain.Allocation{
		PlanningItemID: "show-1", ResourceID: foyer.ID,
		Title: "Foyer prep", Activity: domain.ActivitySetup,
		Start: testutil.At(11, 0), End: testutil.At(13, 0),
		AssignedTo: []string{"Grace"},
	})

	resp := env.detect(t)
	require.Len(t, resp.Conflicts, 1)
	c := resp.Conflicts[0]
	assert.Equal(t, domain.ConflictTime, c.Type)
	assert.Equal(t, domain.AssigneeResourceID("Grace"), c.ResourceID)
	assert.Contains(t, c.Description, "Grace")
}

func TestDetect_DifferentPlanningItems_NoAssigneeConflict(t *testing.T) {
	env := newTestEnv(t)
	stage := env.createResource(t, "Stage", domain.KindVenue)
	foyer := env.createResource(t, "Foyer", domain.KindVenue)
	env.createAllocation(t, &domain.Allocation{
		PlanningItemID: "show-1", ResourceID: stage.ID,
		Title: "Stage prep", Activity: domain.ActivitySetup,
		Start: testutil.At(10, 0), End: testutil.At(12, 0),
		AssignedTo: []string{"Grace"},
	})
	env.createAllocation(t, &domain.Allocation{
		PlanningItemID: "show-2", ResourceID: foyer.ID,
		Title: "Foyer prep", Activity: domain.ActivitySetup,
		Start: testutil.At(11, 0), End: testutil.At(13, 0),
		AssignedTo: []string{"Grace"},
	})

	resp := env.detect(t)
	assert.Empty(t, resp.Conflicts)
}

func TestDetect_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	desk := env.createResource(t, "Mixing desk", domain.KindEquipment)
	env.createAllocation(t, &domain.Allocation{
		ResourceID: desk.ID, Title: "A", Activity: domain.ActivityRehearsal,
		Start: testutil.At(10, 0), End: testutil.At(12, 0),
	})
	env.createAllocation(t, &domain.Allocation{
		ResourceID: desk.ID, Title: "B", Activity: domain.ActivityRehearsal,
		Start: testutil.At(11, 0), End: testutil.At(13, 0),
	})

	first := env.detect(t)
	require.Len(t, first.Conflicts, 1)
	assert.Equal(t, 1, first.Stats.Created)

	second := env.detect(t)
	require.Len(t, second.Conflicts, 1)
	assert.Equal(t, first.Conflicts[0].ID, second.Conflicts[0].ID, "re-detection preserves identity")
	assert.Equal(t, 0, second.Stats.Created)
	assert.Equal(t, 1, second.Stats.Updated)

	active := domain.ConflictActive
	stored, err := env.conflicts.List(context.Background(), contract.ConflictFilter{Status: &active})
	require.NoError(t, err)
	assert.Len(t, stored, 1, "no duplicate rows")
}

func TestDetect_AutoResolveAfterMove(t *testing.T) {
	env := newTestEnv(t)
	desk := env.createResource(t, "Mixing desk", domain.KindEquipment)
	env.createAllocation(t, &domain.Allocation{
		ResourceID: desk.ID, Title: "A", Activity: domain.ActivityRehearsal,
		Start: testutil.At(10, 0), End: testutil.At(12, 0),
	})
	moved := env.createAllocation(t, &domain.Allocation{
		ResourceID: desk.ID, Title: "B", Activity: domain.ActivityRehearsal,
		Start: testutil.At(11, 0), End: testutil.At(13, 0),
	})

	first := env.detect(t)
	require.Len(t, first.Conflicts, 1)
	conflictID := first.Conflicts[0].ID

	moved.Start = testutil.At(12, 0)
	moved.End = testutil.At(14, 0)
	require.NoError(t, env.allocations.Update(context.Background(), moved))

	second := env.detect(t)
	assert.Empty(t, second.Conflicts)
	assert.Equal(t, 1, second.Stats.AutoResolved)

	c, err := env.conflicts.GetByID(context.Background(), conflictID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConflictResolved, c.Status)
	assert.Equal(t, "auto-resolved: no longer overlapping", c.ResolutionNote)
	assert.NotNil(t, c.ResolvedAt)
}

func TestDetect_IgnoredConflictStaysIgnored(t *testing.T) {
	env := newTestEnv(t)
	desk := env.createResource(t, "Mixing desk", domain.KindEquipment)
	env.createAllocation(t, &domain.Allocation{
		ResourceID: desk.ID, Title: "A", Activity: domain.ActivityRehearsal,
		Start: testutil.At(10, 0), End: testutil.At(12, 0),
	})
	env.createAllocation(t, &domain.Allocation{
		ResourceID: desk.ID, Title: "B", Activity: domain.ActivityRehearsal,
		Start: testutil.At(11, 0), End: testutil.At(13, 0),
	})

	first := env.detect(t)
	require.Len(t, first.Conflicts, 1)
	require.NoError(t, env.conflicts.Ignore(context.Background(), first.Conflicts[0].ID, "known clash"))

	// The overlap still exists, so the run records a fresh active conflict
	// while the ignored one keeps its status.
	second := env.detect(t)
	require.Len(t, second.Conflicts, 1)
	assert.NotEqual(t, first.Conflicts[0].ID, second.Conflicts[0].ID)

	ignored, err := env.conflicts.GetByID(context.Background(), first.Conflicts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConflictIgnored, ignored.Status)
}

func TestDetect_SkipsMalformedAllocations(t *testing.T) {
	env := newTestEnv(t)
	desk := env.createResource(t, "Mixing desk", domain.KindEquipment)

	// Bypass service validation to simulate bad data already in the store.
	bad := testutil.NewTestAllocation(desk.ID, "inverted", testutil.At(12, 0), testutil.At(10, 0))
	_, err := env.db.Exec(
		`INSERT INTO allocations (id, planning_item_id, resource_id, start_at, end_at, title, activity, assigned_to, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, '[]', ?, ?)`,
		bad.ID, bad.PlanningItemID, bad.ResourceID,
		bad.Start.Format("2006-01-02T15:04:05Z"), bad.End.Format("2006-01-02T15:04:05Z"),
		bad.Title, string(bad.Activity),
		bad.CreatedAt.Format("2006-01-02T15:04:05Z"), bad.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	)
	require.NoError(t, err)

	resp := env.detect(t)
	assert.Empty(t, resp.Conflicts)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, bad.ID, resp.Skipped[0].AllocationID)
}

func TestDetect_InvalidWindow(t *testing.T) {
	env := newTestEnv(t)

	start := testutil.At(10, 0)
	req := contract.DetectRequest{WindowStart: &start}
	_, err := env.detection.DetectConflicts(context.Background(), req)
	var detectErr *contract.DetectError
	require.ErrorAs(t, err, &detectErr)
	assert.Equal(t, contract.ErrInvalidWindow, detectErr.Code)

	end := testutil.At(9, 0)
	req = contract.DetectRequest{WindowStart: &start, WindowEnd: &end}
	_, err = env.detection.DetectConflicts(context.Background(), req)
	require.ErrorAs(t, err, &detectErr)
	assert.Equal(t, contract.ErrInvalidWindow, detectErr.Code)
}

func TestDetect_WindowedRunLeavesOutOfScopeConflictsAlone(t *testing.T) {
	env := newTestEnv(t)
	desk := env.createResource(t, "Mixing desk", domain.KindEquipment)
	env.createAllocation(t, &domain.Allocation{
		ResourceID: desk.ID, Title: "A", Activity: domain.ActivityRehearsal,
		Start: testutil.At(10, 0), End: testutil.At(12, 0),
	})
	env.createAllocation(t, &domain.Allocation{
		ResourceID: desk.ID, Title: "B", Activity: domain.ActivityRehearsal,
		Start: testutil.At(11, 0), End: testutil.At(13, 0),
	})

	first := env.detect(t)
	require.Len(t, first.Conflicts, 1)

	// Scan a window that excludes the conflicting bookings entirely. The
	// existing conflict is out of scope and must survive untouched.
	start, end := testutil.At(20, 0), testutil.At(22, 0)
	resp, err := env.detection.DetectConflicts(context.Background(),
		contract.DetectRequest{WindowStart: &start, WindowEnd: &end})
	require.NoError(t, err)
	assert.Zero(t, resp.Stats.AutoResolved)

	c, err := env.conflicts.GetByID(context.Background(), first.Conflicts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConflictActive, c.Status)
}

func TestDetect_DryRunPersistsNothing(t *testing.T) {
	env := newTestEnv(t)
	desk := env.createResource(t, "Mixing desk", domain.KindEquipment)
	env.createAllocation(t, &domain.Allocation{
		ResourceID: desk.ID, Title: "A", Activity: domain.ActivityRehearsal,
		Start: testutil.At(10, 0), End: testutil.At(12, 0),
	})
	env.createAllocation(t, &domain.Allocation{
		ResourceID: desk.ID, Title: "B", Activity: domain.ActivityRehearsal,
		Start: testutil.At(11, 0), End: testutil.At(13, 0),
	})

	resp, err := env.detection.DetectConflicts(context.Background(), contract.DetectRequest{DryRun: true})
	require.NoError(t, err)
	assert.Len(t, resp.Conflicts, 1)
	assert.Zero(t, resp.Stats.Created)

	stored, err := env.conflicts.List(context.Background(), contract.ConflictFilter{})
	require.NoError(t, err)
	assert.Empty(t, stored)
}
