package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/stagehand/internal/domain"
)

// FormatResourceList renders resources as a table.
func FormatResourceList(resources []*domain.Resource) string {
	headers := []string{"ID", "NAME", "KIND", "WINDOWS"}
	rows := make([][]string, 0, len(resources))
	for _, r := range resources {
		rows = append(rows, []string{
			Dim(TruncID(r.ID)),
			StyleFg.Render(r.Name),
			string(r.Kind),
			fmt.Sprintf("%d", len(r.Windows)),
		})
	}
	return RenderTable(headers, rows)
}

// FormatResourceDetail renders one resource with its availability windows.
func FormatResourceDetail(r *domain.Resource) string {
	var b strings.Builder
	b.WriteString(Header(r.Name))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("ID:"), r.ID))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Kind:"), string(r.Kind)))

	if len(r.Windows) == 0 {
		b.WriteString(Dim("No availability windows.\n"))
		return b.String()
	}

	b.WriteString("\n")
	for _, w := range r.Windows {
		status := StyleGreen.Render(string(w.Status))
		if w.Status == domain.AvailabilityUnavailable {
			status = StyleRed.Render(string(w.Status))
		} else if w.Status == domain.AvailabilityBusy {
			status = StyleYellow.Render(string(w.Status))
		}
		b.WriteString(fmt.Sprintf("  %s  %s\n", FormatInterval(w.Start, w.End), status))
	}
	return b.String()
}

// FormatAllocationList renders allocations as a table.
func FormatAllocationList(allocs []*domain.Allocation, names map[string]string) string {
	headers := []string{"ID", "TITLE", "ACTIVITY", "RESOURCE", "WHEN", "CREW"}
	rows := make([][]string, 0, len(allocs))
	for _, a := range allocs {
		rows = append(rows, []string{
			Dim(TruncID(a.ID)),
			StyleFg.Render(a.Title),
			string(a.Activity),
			resourceLabel(a.ResourceID, names),
			FormatInterval(a.Start, a.End),
			strings.Join(a.AssignedTo, ", "),
		})
	}
	return RenderTable(headers, rows)
}
