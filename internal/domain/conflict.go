package domain

import (
	"fmt"
	"time"
)

// Conflict is a detected temporal contention between two allocations on the
// same resource. Conflicts are never deleted: resolution and ignoring are
// state transitions, and a later detection run that finds the same pair
// overlapping again after a terminal transition creates a fresh record.
type Conflict struct {
	ID             string
	Type           ConflictType
	Severity       Severity
	ResourceID     string
	AllocationAID  string
	AllocationBID  string
	PairKey        string
	Description    string
	Status         ConflictStatus
	ResolutionNote string
	DetectedAt     time.Time
	ResolvedAt     *time.Time

	Suggestions []Suggestion
}

// IsActive reports whether the conflict can still be resolved or ignored.
func (c *Conflict) IsActive() bool {
	return c.Status == ConflictActive
}

// ConflictPairKey builds the canonical re-detection key for an unordered
// allocation pair on a resource. The two allocation ids are sorted so both
// orderings of a pair map to the same key.
func ConflictPairKey(allocA, allocB, resourceID string) string {
	if allocB < allocA {
		allocA, allocB = allocB, allocA
	}
	return allocA + "|" + allocB + "|" + resourceID
}

// UnavailabilityAllocationID is the synthetic allocation id standing in for
// a resource's unavailable window in availability conflicts.
func UnavailabilityAllocationID(resourceID string, windowIdx int) string {
	return fmt.Sprintf("unavailable:%s:%d", resourceID, windowIdx)
}

// AssigneeResourceID is the synthetic resource id used to key cross-resource
// double-booking conflicts on the double-booked person rather than on any
// single catalog resource.
func AssigneeResourceID(assignee string) string {
	return "assignee:" + assignee
}
