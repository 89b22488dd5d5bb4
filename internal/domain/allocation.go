package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInterval rejects allocations whose interval is empty or inverted.
var ErrInvalidInterval = errors.New("allocation interval end must be after start")

// Allocation is a single resource's booking for one planning item over the
// half-open interval [Start, End). Start is inclusive and End exclusive, so
// back-to-back bookings never count as overlapping.
type Allocation struct {
	ID             string
	PlanningItemID string
	ResourceID     string
	Start          time.Time
	End            time.Time
	Title          string
	Activity       ActivityType
	AssignedTo     []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the interval and activity type.
func (a *Allocation) Validate() error {
	if !a.End.After(a.Start) {
		return fmt.Errorf("allocation %s [%s, %s): %w",
			a.ID, a.Start.Format(time.RFC3339), a.End.Format(time.RFC3339), ErrInvalidInterval)
	}
	if a.Activity != "" && !ValidActivityTypes[string(a.Activity)] {
		return fmt.Errorf("allocation %s: unknown activity type %q", a.ID, a.Activity)
	}
	return nil
}

// Duration returns the length of the booked interval.
func (a *Allocation) Duration() time.Duration {
	return a.End.Sub(a.Start)
}

// Overlaps reports whether two half-open intervals intersect.
// Touching intervals (a.End == b.Start) do not overlap.
func (a *Allocation) Overlaps(b *Allocation) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// OverlapDuration returns the length of the intersection of the two
// intervals, or zero when they do not overlap.
func (a *Allocation) OverlapDuration(b *Allocation) time.Duration {
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End
	if b.End.Before(end) {
		end = b.End
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}
