package detector

import (
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortedAllocs(allocs ...domain.Allocation) []domain.Allocation {
	sort.Slice(allocs, func(i, j int) bool {
		if !allocs[i].Start.Equal(allocs[j].Start) {
			return allocs[i].Start.Before(allocs[j].Start)
		}
		return allocs[i].ID < allocs[j].ID
	})
	return allocs
}

func TestOverlapPairs_BasicOverlap(t *testing.T) {
	pairs := OverlapPairs(sortedAllocs(
		alloc("a-1", "r-1", at(10, 0), at(12, 0)),
		alloc("a-2", "r-1", at(11, 0), at(13, 0)),
	))
	require.Len(t, pairs, 1)
	assert.Equal(t, "a-1", pairs[0].A.ID)
	assert.Equal(t, "a-2", pairs[0].B.ID)
}

func TestOverlapPairs_TouchingIntervalsNeverPair(t *testing.T) {
	pairs := OverlapPairs(sortedAllocs(
		alloc("a-1", "r-1", at(10, 0), at(12, 0)),
		alloc("a-2", "r-1", at(12, 0), at(14, 0)),
		alloc("a-3", "r-1", at(14, 0), at(16, 0)),
	))
	assert.Empty(t, pairs, "back-to-back bookings are not conflicts")
}

func TestOverlapPairs_LongIntervalSpansSeveral(t *testing.T) {
	pairs := OverlapPairs(sortedAllocs(
		alloc("a-long", "r-1", at(9, 0), at(17, 0)),
		alloc("a-1", "r-1", at(10, 0), at(11, 0)),
		alloc("a-2", "r-1", at(12, 0), at(13, 0)),
		alloc("a-3", "r-1", at(18, 0), at(19, 0)),
	))
	require.Len(t, pairs, 2)
	for _, p := range pairs {
		assert.Equal(t, "a-long", p.A.ID)
	}
}

// TestOverlapPairs_MatchesNaiveOracle property-tests the sweep against the
// quadratic reference: for every pair (a, b), a.start < b.end && b.start <
// a.end iff the sweep reports it.
func TestOverlapPairs_MatchesNaiveOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(20) + 2
		allocs := make([]domain.Allocation, n)
		for i := range allocs {
			start := at(0, 0).Add(time.Duration(rng.Intn(23*60)) * time.Minute)
			end := start.Add(time.Duration(rng.Intn(180)+1) * time.Minute)
			allocs[i] = alloc(string(rune('a'+i))+"-id", "r-1", start, end)
		}
		sorted := sortedAllocs(allocs...)

		want := make(map[string]bool)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				a, b := &sorted[i], &sorted[j]
				if a.Overlaps(b) {
					want[domain.ConflictPairKey(a.ID, b.ID, "r-1")] = true
				}
			}
		}

		got := make(map[string]bool)
		for _, p := range OverlapPairs(sorted) {
			key := domain.ConflictPairKey(p.A.ID, p.B.ID, "r-1")
			assert.False(t, got[key], "trial %d: sweep reported %s twice", trial, key)
			got[key] = true
		}

		assert.Equal(t, want, got, "trial %d: sweep disagrees with oracle", trial)
	}
}

func TestUnavailablePairs_BookingOnClosedWindow(t *testing.T) {
	res := domain.Resource{
		ID:   "r-1",
		Kind: domain.KindVenue,
		Name: "Main Hall",
		Windows: []domain.AvailabilityWindow{
			{Start: at(8, 0), End: at(12, 0), Status: domain.AvailabilityAvailable},
			{Start: at(12, 0), End: at(15, 0), Status: domain.AvailabilityUnavailable},
		},
	}
	allocs := sortedAllocs(
		alloc("a-1", "r-1", at(9, 0), at(10, 0)),  // inside the open window
		alloc("a-2", "r-1", at(11, 0), at(13, 0)), // crosses into the closed one
	)

	pairs := UnavailablePairs(res, allocs)
	require.Len(t, pairs, 1)
	assert.True(t, pairs[0].Synthetic)
	assert.Equal(t, "a-2", pairs[0].A.ID)
	assert.Equal(t, domain.UnavailabilityAllocationID("r-1", 0), pairs[0].B.ID)
}

func TestUnavailablePairs_BusyWindowsDoNotFire(t *testing.T) {
	res := domain.Resource{
		ID:   "r-1",
		Kind: domain.KindEquipment,
		Windows: []domain.AvailabilityWindow{
			{Start: at(8, 0), End: at(18, 0), Status: domain.AvailabilityBusy},
		},
	}
	pairs := UnavailablePairs(res, sortedAllocs(alloc("a-1", "r-1", at(9, 0), at(10, 0))))
	assert.Empty(t, pairs)
}
