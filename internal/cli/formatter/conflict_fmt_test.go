package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatConflictList_ShowsSeverityAndResourceName(t *testing.T) {
	conflicts := []*domain.Conflict{
		{
			ID:          "aaaaaaaa-1111-2222-3333-444444444444",
			Type:        domain.ConflictVenue,
			Severity:    domain.SeverityCritical,
			ResourceID:  "res-1",
			Description: "Main Hall: double booking",
			Status:      domain.ConflictActive,
		},
	}
	names := map[string]string{"res-1": "Main Hall"}

	out := FormatConflictList(conflicts, names)
	assert.Contains(t, out, "CRITICAL")
	assert.Contains(t, out, "Main Hall")
	assert.Contains(t, out, "aaaaaaaa")
	assert.NotContains(t, out, "1111-2222", "ids are truncated")
}

func TestFormatConflictList_AssigneeResourceReadsAsName(t *testing.T) {
	conflicts := []*domain.Conflict{
		{
			ID:         "bbbbbbbb-0000-0000-0000-000000000000",
			Type:       domain.ConflictTime,
			Severity:   domain.SeverityMedium,
			ResourceID: domain.AssigneeResourceID("Grace"),
			Status:     domain.ConflictActive,
		},
	}

	out := FormatConflictList(conflicts, nil)
	assert.Contains(t, out, "Grace")
	assert.NotContains(t, out, "assignee:")
}

func TestFormatConflictDetail_IncludesSuggestionsAndResolution(t *testing.T) {
	resolvedAt := time.Date(2025, 9, 12, 14, 0, 0, 0, time.UTC)
	c := &domain.Conflict{
		ID:             "cccccccc-0000-0000-0000-000000000000",
		Type:           domain.ConflictTeam,
		Severity:       domain.SeverityMedium,
		ResourceID:     "res-1",
		Description:    "Ada: overlapping bookings",
		Status:         domain.ConflictResolved,
		ResolutionNote: "applied suggestion: Reschedule",
		DetectedAt:     time.Date(2025, 9, 12, 9, 0, 0, 0, time.UTC),
		ResolvedAt:     &resolvedAt,
		Suggestions: []domain.Suggestion{
			{Rank: 1, Kind: domain.SuggestReschedule, Title: "Reschedule \"Run-through\"",
				Description: "Shift to 12:00.", Impact: domain.ImpactLow},
		},
	}

	out := FormatConflictDetail(c, map[string]string{"res-1": "Ada"})
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "SUGGESTIONS")
	assert.Contains(t, out, "Reschedule")
	assert.Contains(t, out, "low impact")
	assert.Contains(t, out, "applied suggestion")
}
