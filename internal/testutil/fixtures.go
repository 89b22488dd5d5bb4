package testutil

import (
	"time"

	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/google/uuid"
)

// Day is the fixed calendar day most fixtures book against.
var Day = time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC)

// At returns a clock time on the fixture day.
func At(hour, min int) time.Time {
	return Day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

// Resource options
type ResourceOption func(*domain.Resource)

func WithKind(k domain.ResourceKind) ResourceOption {
	return func(r *domain.Resource) {
		r.Kind = k
	}
}

func WithWindows(windows ...domain.AvailabilityWindow) ResourceOption {
	return func(r *domain.Resource) {
		r.Windows = windows
	}
}

func NewTestResource(name string, opts ...ResourceOption) *domain.Resource {
	now := time.Now().UTC()
	r := &domain.Resource{
		ID:        uuid.New().String(),
		Kind:      domain.KindEquipment,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Allocation options
type AllocationOption func(*domain.Allocation)

func WithActivity(a domain.ActivityType) AllocationOption {
	return func(al *domain.Allocation) {
		al.Activity = a
	}
}

func WithAssignees(names ...string) AllocationOption {
	return func(al *domain.Allocation) {
		al.AssignedTo = names
	}
}

func WithPlanningItem(id string) AllocationOption {
	return func(al *domain.Allocation) {
		al.PlanningItemID = id
	}
}

func NewTestAllocation(resourceID, title string, start, end time.Time, opts ...AllocationOption) *domain.Allocation {
	now := time.Now().UTC()
	a := &domain.Allocation{
		ID:             uuid.New().String(),
		PlanningItemID: uuid.New().String(),
		ResourceID:     resourceID,
		Start:          start,
		End:            end,
		Title:          title,
		Activity:       domain.ActivityRehearsal,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Conflict options
type ConflictOption func(*domain.Conflict)

func WithConflictStatus(s domain.ConflictStatus) ConflictOption {
	return func(c *domain.Conflict) {
		c.Status = s
	}
}

func WithSeverity(s domain.Severity) ConflictOption {
	return func(c *domain.Conflict) {
		c.Severity = s
	}
}

func NewTestConflict(resourceID, allocA, allocB string, opts ...ConflictOption) *domain.Conflict {
	c := &domain.Conflict{
		ID:            uuid.New().String(),
		Type:          domain.ConflictResource,
		Severity:      domain.SeverityMedium,
		ResourceID:    resourceID,
		AllocationAID: allocA,
		AllocationBID: allocB,
		PairKey:       domain.ConflictPairKey(allocA, allocB, resourceID),
		Description:   "test conflict",
		Status:        domain.ConflictActive,
		DetectedAt:    time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
