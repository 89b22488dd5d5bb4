package detector

import (
	"fmt"

	"github.com/alexanderramin/stagehand/internal/domain"
)

// Pair is a raw overlap between two allocations on one resource.
// Synthetic marks pairs whose B side stands in for an unavailable
// availability window rather than a real booking.
type Pair struct {
	ResourceID string
	A          domain.Allocation
	B          domain.Allocation
	Synthetic  bool
	// DoubleBooking marks cross-resource pairs keyed on an assignee
	// rather than on a catalog resource.
	DoubleBooking bool
}

// OverlapPairs finds every overlapping pair in a start-sorted allocation
// list using an active-interval sweep. Two half-open intervals overlap iff
// s1 < e2 && s2 < e1; touching intervals (e1 == s2) never pair.
//
// The sweep keeps the set of intervals whose end lies beyond the incoming
// start, so the cost is O(n log n + k) for k reported pairs instead of the
// naive O(n²) scan.
func OverlapPairs(sorted []domain.Allocation) []Pair {
	var pairs []Pair
	var active []int
	for i := range sorted {
		next := &sorted[i]

		keep := active[:0]
		for _, j := range active {
			if sorted[j].End.After(next.Start) {
				keep = append(keep, j)
			}
		}
		active = keep

		// Every remaining active interval started before next ends and
		// ends after next starts, so each one overlaps next.
		for _, j := range active {
			pairs = append(pairs, Pair{
				ResourceID: next.ResourceID,
				A:          sorted[j],
				B:          *next,
			})
		}
		active = append(active, i)
	}
	return pairs
}

// UnavailablePairs reports allocations that fall on one of the resource's
// unavailable windows. Each hit pairs the booking against a synthetic
// allocation representing the window itself.
func UnavailablePairs(res domain.Resource, sorted []domain.Allocation) []Pair {
	var pairs []Pair
	for idx, w := range res.UnavailableWindows() {
		ghost := domain.Allocation{
			ID:         domain.UnavailabilityAllocationID(res.ID, idx),
			ResourceID: res.ID,
			Start:      w.Start,
			End:        w.End,
			Title:      fmt.Sprintf("%s unavailable", res.Name),
		}
		for i := range sorted {
			if sorted[i].Overlaps(&ghost) {
				pairs = append(pairs, Pair{
					ResourceID: res.ID,
					A:          sorted[i],
					B:          ghost,
					Synthetic:  true,
				})
			}
		}
	}
	return pairs
}
