package domain

import "time"

// AvailabilityWindow declares a resource's status over a half-open
// interval [Start, End).
type AvailabilityWindow struct {
	Start  time.Time
	End    time.Time
	Status AvailabilityStatus
}

// Overlaps reports whether the window intersects [start, end).
func (w AvailabilityWindow) Overlaps(start, end time.Time) bool {
	return start.Before(w.End) && w.Start.Before(end)
}

// Resource is a bookable entity: a person, a piece of equipment, or a venue.
// The detection engine treats resources as an immutable snapshot per run;
// their lifecycle is owned by the catalog CRUD operations.
type Resource struct {
	ID      string
	Kind    ResourceKind
	Name    string
	Windows []AvailabilityWindow

	CreatedAt time.Time
	UpdatedAt time.Time
}

// UnavailableWindows returns the subset of windows with unavailable status,
// in declaration order.
func (r *Resource) UnavailableWindows() []AvailabilityWindow {
	var out []AvailabilityWindow
	for _, w := range r.Windows {
		if w.Status == AvailabilityUnavailable {
			out = append(out, w)
		}
	}
	return out
}
