package detector

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/stagehand/internal/domain"
)

// DoubleBookings finds assignees booked on two different resources for the
// same planning item at overlapping times. Runs after the per-resource
// sweeps since it needs every resource's allocations.
func DoubleBookings(ix *Index) []Pair {
	byAssignee := make(map[string][]domain.Allocation)
	for _, a := range ix.All() {
		for _, name := range a.AssignedTo {
			byAssignee[name] = append(byAssignee[name], a)
		}
	}

	names := make([]string, 0, len(byAssignee))
	for name := range byAssignee {
		names = append(names, name)
	}
	sort.Strings(names)

	var pairs []Pair
	for _, name := range names {
		allocs := byAssignee[name]
		sort.Slice(allocs, func(i, j int) bool {
			if !allocs[i].Start.Equal(allocs[j].Start) {
				return allocs[i].Start.Before(allocs[j].Start)
			}
			return allocs[i].ID < allocs[j].ID
		})
		for _, p := range OverlapPairs(allocs) {
			if p.A.ResourceID == p.B.ResourceID {
				continue // already covered by the per-resource sweep
			}
			if p.A.PlanningItemID != p.B.PlanningItemID {
				continue
			}
			pairs = append(pairs, Pair{
				ResourceID:    domain.AssigneeResourceID(name),
				A:             p.A,
				B:             p.B,
				DoubleBooking: true,
			})
		}
	}
	return pairs
}

// Classify turns raw overlap pairs into typed, severity-ranked conflict
// records. Symmetric duplicates collapse on the canonical pair key, and the
// output order is deterministic (resource id, then pair key). Status and id
// assignment are left to the store reconciliation.
func Classify(catalog map[string]domain.Resource, pairs []Pair, now time.Time) []domain.Conflict {
	seen := make(map[string]bool)
	var conflicts []domain.Conflict
	for _, p := range pairs {
		key := domain.ConflictPairKey(p.A.ID, p.B.ID, p.ResourceID)
		if seen[key] {
			continue
		}
		seen[key] = true

		a, b := p.A, p.B
		if b.ID < a.ID {
			a, b = b, a
		}

		kind, ctype := classifyType(catalog, p)
		conflicts = append(conflicts, domain.Conflict{
			Type:          ctype,
			Severity:      severity(kind, &a, &b),
			ResourceID:    p.ResourceID,
			AllocationAID: a.ID,
			AllocationBID: b.ID,
			PairKey:       key,
			Description:   describe(catalog, p, &a, &b),
			Status:        domain.ConflictActive,
			DetectedAt:    now,
		})
	}

	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].ResourceID != conflicts[j].ResourceID {
			return conflicts[i].ResourceID < conflicts[j].ResourceID
		}
		return conflicts[i].PairKey < conflicts[j].PairKey
	})
	return conflicts
}

func classifyType(catalog map[string]domain.Resource, p Pair) (domain.ResourceKind, domain.ConflictType) {
	if p.DoubleBooking {
		return domain.KindPerson, domain.ConflictTime
	}
	kind := domain.KindEquipment
	if res, ok := catalog[p.ResourceID]; ok {
		kind = res.Kind
	}
	if p.Synthetic {
		return kind, domain.ConflictResource
	}
	switch kind {
	case domain.KindPerson:
		return kind, domain.ConflictTeam
	case domain.KindVenue:
		return kind, domain.ConflictVenue
	default:
		return kind, domain.ConflictResource
	}
}

// severity applies the deterministic rule table, first match wins:
// critical when either side is a performance, high for venues or overlaps
// past half of the shorter booking, medium for people, low otherwise.
func severity(kind domain.ResourceKind, a, b *domain.Allocation) domain.Severity {
	if a.Activity == domain.ActivityPerformance || b.Activity == domain.ActivityPerformance {
		return domain.SeverityCritical
	}

	overlap := a.OverlapDuration(b)
	shorter := a.Duration()
	if d := b.Duration(); d < shorter {
		shorter = d
	}

	// Strict majority: an overlap of exactly half the shorter booking does
	// not escalate to high.
	if kind == domain.KindVenue || overlap*2 > shorter {
		return domain.SeverityHigh
	}
	if kind == domain.KindPerson {
		return domain.SeverityMedium
	}
	return domain.SeverityLow
}

const intervalTimeFmt = "15:04"

func formatInterval(a *domain.Allocation) string {
	return fmt.Sprintf("[%s, %s)", a.Start.Format(intervalTimeFmt), a.End.Format(intervalTimeFmt))
}

func describe(catalog map[string]domain.Resource, p Pair, a, b *domain.Allocation) string {
	subject := strings.TrimPrefix(p.ResourceID, "assignee:")
	if res, ok := catalog[p.ResourceID]; ok {
		subject = res.Name
	}
	switch {
	case p.DoubleBooking:
		return fmt.Sprintf("%s is double-booked across resources: %q %s overlaps %q %s",
			subject, a.Title, formatInterval(a), b.Title, formatInterval(b))
	case p.Synthetic:
		real, ghost := a, b
		if strings.HasPrefix(real.ID, "unavailable:") {
			real, ghost = ghost, real
		}
		return fmt.Sprintf("%s: %q %s falls on an unavailable window %s",
			subject, real.Title, formatInterval(real), formatInterval(ghost))
	default:
		return fmt.Sprintf("%s: %q %s overlaps %q %s",
			subject, a.Title, formatInterval(a), b.Title, formatInterval(b))
	}
}
