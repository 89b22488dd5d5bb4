package formatter

import (
	"testing"

	"github.com/alexanderramin/stagehand/internal/contract"
	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatDetectReport_NoConflicts(t *testing.T) {
	resp := &contract.DetectResponse{
		Stats: contract.DetectStats{ResourcesScanned: 3, AllocationsIndexed: 7},
	}

	out := FormatDetectReport(resp, nil)
	assert.Contains(t, out, "3 resources")
	assert.Contains(t, out, "7 allocations")
	assert.Contains(t, out, "No conflicts detected")
}

func TestFormatDetectReport_WithSkippedAndConflicts(t *testing.T) {
	resp := &contract.DetectResponse{
		Conflicts: []*domain.Conflict{
			{
				ID: "dddddddd-0000-0000-0000-000000000000",
				Type: domain.ConflictResource, Severity: domain.SeverityLow,
				ResourceID: "res-1", Status: domain.ConflictActive,
				Description: "Mixing desk: overlap",
			},
		},
		Skipped: []contract.InvalidAllocation{
			{AllocationID: "eeeeeeee-0000-0000-0000-000000000000", Reason: "end not after start"},
		},
		Stats: contract.DetectStats{ResourcesScanned: 1, AllocationsIndexed: 2, PairsFound: 1, Created: 1},
	}

	out := FormatDetectReport(resp, map[string]string{"res-1": "Mixing desk"})
	assert.Contains(t, out, "Skipped 1 malformed")
	assert.Contains(t, out, "end not after start")
	assert.Contains(t, out, "Mixing desk")
	assert.Contains(t, out, "1 new")
}
