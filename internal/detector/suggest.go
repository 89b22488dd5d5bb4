package detector

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/stagehand/internal/domain"
)

// Suggest proposes 1–3 ranked remediations for a classified conflict.
// Ids and conflict linkage are filled in by the store layer; the generator
// itself is a pure function of the conflict, its pair, and the catalog.
func Suggest(c *domain.Conflict, p Pair, catalog map[string]domain.Resource, ix *Index) []domain.Suggestion {
	var out []domain.Suggestion

	movable, anchor := movableAllocation(p)
	if s := reschedule(movable, anchor); s != nil {
		out = append(out, *s)
	}
	if s := reassign(p, movable, catalog, ix); s != nil {
		out = append(out, *s)
	}
	if c.Severity == domain.SeverityCritical {
		out = append(out, domain.Suggestion{
			Kind:        domain.SuggestManualReview,
			Title:       "Escalate for manual review",
			Description: "A performance is involved; automatic remediation may not be safe.",
			Impact:      domain.ImpactHigh,
		})
	}

	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// movableAllocation picks which side of the pair a remediation should move:
// the later booking, except that unavailability windows themselves never
// move.
func movableAllocation(p Pair) (movable, anchor domain.Allocation) {
	a, b := p.A, p.B
	if isGhost(a) {
		return b, a
	}
	if isGhost(b) {
		return a, b
	}
	if b.Start.Before(a.Start) || (b.Start.Equal(a.Start) && b.ID < a.ID) {
		a, b = b, a
	}
	return b, a
}

func isGhost(a domain.Allocation) bool {
	return strings.HasPrefix(a.ID, "unavailable:")
}

func reschedule(movable, anchor domain.Allocation) *domain.Suggestion {
	impact := domain.ImpactMedium
	if movable.Activity == domain.ActivitySetup || movable.Activity == domain.ActivityCatering {
		impact = domain.ImpactLow
	}
	shift := anchor.End.Sub(movable.Start)
	if shift <= 0 {
		return nil
	}
	return &domain.Suggestion{
		Kind:  domain.SuggestReschedule,
		Title: fmt.Sprintf("Reschedule %q", movable.Title),
		Description: fmt.Sprintf("Shift %q to start at %s, right after the contending booking ends.",
			movable.Title, anchor.End.Format("2006-01-02 15:04")),
		Impact: impact,
	}
}

// reassign proposes the first same-kind resource with no contending booking
// over the movable interval. Omitted when the catalog offers no alternate or
// when the conflict is keyed on an assignee rather than a catalog resource.
func reassign(p Pair, movable domain.Allocation, catalog map[string]domain.Resource, ix *Index) *domain.Suggestion {
	current, ok := catalog[p.ResourceID]
	if !ok {
		return nil
	}

	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		alt := catalog[id]
		if alt.ID == current.ID || alt.Kind != current.Kind {
			continue
		}
		if resourceBusy(alt, movable, ix) {
			continue
		}
		return &domain.Suggestion{
			Kind:  domain.SuggestReassign,
			Title: fmt.Sprintf("Reassign to %s", alt.Name),
			Description: fmt.Sprintf("Move %q onto %s, which is free for %s–%s.",
				movable.Title, alt.Name,
				movable.Start.Format("15:04"), movable.End.Format("15:04")),
			Impact: domain.ImpactMedium,
		}
	}
	return nil
}

func resourceBusy(res domain.Resource, over domain.Allocation, ix *Index) bool {
	for _, w := range res.UnavailableWindows() {
		if w.Overlaps(over.Start, over.End) {
			return true
		}
	}
	existing := ix.ForResource(res.ID)
	for i := range existing {
		if existing[i].Overlaps(&over) {
			return true
		}
	}
	return false
}
