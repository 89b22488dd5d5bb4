package detector

import (
	"sort"

	"github.com/alexanderramin/stagehand/internal/domain"
)

// InvalidAllocation reports an allocation rejected at indexing time.
// Rejected allocations are excluded from detection; they never abort a run.
type InvalidAllocation struct {
	AllocationID string
	Reason       string
}

// span is a half-open range [lo, hi) into the index's backing slice.
type span struct {
	lo, hi int
}

// Index groups a detection run's allocations by resource. All allocations
// live in one backing slice sorted by (resource id, start, allocation id);
// per-resource views are subslices, so building and querying the index does
// not copy allocation records.
type Index struct {
	allocs  []domain.Allocation
	spans   map[string]span
	order   []string
	byAlloc map[string]int
}

// BuildIndex validates and indexes allocations. Malformed allocations are
// collected into the second return value and skipped.
func BuildIndex(allocs []domain.Allocation) (*Index, []InvalidAllocation) {
	var invalid []InvalidAllocation
	valid := make([]domain.Allocation, 0, len(allocs))
	for i := range allocs {
		if err := allocs[i].Validate(); err != nil {
			invalid = append(invalid, InvalidAllocation{
				AllocationID: allocs[i].ID,
				Reason:       err.Error(),
			})
			continue
		}
		valid = append(valid, allocs[i])
	}

	sort.Slice(valid, func(i, j int) bool {
		a, b := &valid[i], &valid[j]
		if a.ResourceID != b.ResourceID {
			return a.ResourceID < b.ResourceID
		}
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		return a.ID < b.ID
	})

	ix := &Index{
		allocs:  valid,
		spans:   make(map[string]span),
		byAlloc: make(map[string]int, len(valid)),
	}
	for i := 0; i < len(valid); {
		j := i
		for j < len(valid) && valid[j].ResourceID == valid[i].ResourceID {
			j++
		}
		ix.spans[valid[i].ResourceID] = span{lo: i, hi: j}
		ix.order = append(ix.order, valid[i].ResourceID)
		i = j
	}
	for i := range valid {
		ix.byAlloc[valid[i].ID] = i
	}
	return ix, invalid
}

// ResourceIDs returns the indexed resource ids in ascending order.
func (ix *Index) ResourceIDs() []string {
	return ix.order
}

// ForResource returns the resource's allocations sorted by start time.
// The returned slice aliases the index; callers must not mutate it.
func (ix *Index) ForResource(resourceID string) []domain.Allocation {
	s, ok := ix.spans[resourceID]
	if !ok {
		return nil
	}
	return ix.allocs[s.lo:s.hi]
}

// All returns every indexed allocation.
func (ix *Index) All() []domain.Allocation {
	return ix.allocs
}

// Get looks up an indexed allocation by id.
func (ix *Index) Get(allocationID string) (domain.Allocation, bool) {
	i, ok := ix.byAlloc[allocationID]
	if !ok {
		return domain.Allocation{}, false
	}
	return ix.allocs[i], true
}

// Len returns the number of indexed allocations.
func (ix *Index) Len() int {
	return len(ix.allocs)
}
