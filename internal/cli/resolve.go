package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/stagehand/internal/contract"
)

// resolveByPrefix picks the single id matching input exactly or by prefix.
func resolveByPrefix(kind, input string, ids []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}
	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

// resolveResourceID accepts a resource name (case-insensitive), a full id,
// or an id prefix.
func resolveResourceID(ctx context.Context, app *App, input string) (string, error) {
	resources, err := app.Resources.List(ctx)
	if err != nil {
		return "", err
	}
	for _, r := range resources {
		if strings.EqualFold(r.Name, input) {
			return r.ID, nil
		}
	}
	ids := make([]string, 0, len(resources))
	for _, r := range resources {
		ids = append(ids, r.ID)
	}
	return resolveByPrefix("resource", input, ids)
}

func resolveAllocationID(ctx context.Context, app *App, input string) (string, error) {
	allocs, err := app.Allocations.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(allocs))
	for _, a := range allocs {
		ids = append(ids, a.ID)
	}
	return resolveByPrefix("allocation", input, ids)
}

func resolveConflictID(ctx context.Context, app *App, input string) (string, error) {
	conflicts, err := app.Conflicts.List(ctx, contract.ConflictFilter{})
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		ids = append(ids, c.ID)
	}
	return resolveByPrefix("conflict", input, ids)
}

// resourceNames builds an id-to-name map for display.
func resourceNames(ctx context.Context, app *App) (map[string]string, error) {
	resources, err := app.Resources.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(resources))
	for _, r := range resources {
		names[r.ID] = r.Name
	}
	return names, nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTimeFlag accepts RFC3339 or the shorter date/time spellings people
// actually type. Bare dates mean midnight UTC.
func parseTimeFlag(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (want e.g. 2025-09-12 10:00)", value)
}
