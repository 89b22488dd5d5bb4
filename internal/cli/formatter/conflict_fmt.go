package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/stagehand/internal/domain"
)

// FormatConflictList renders conflicts as a severity-colored table.
func FormatConflictList(conflicts []*domain.Conflict, names map[string]string) string {
	headers := []string{"ID", "SEVERITY", "TYPE", "RESOURCE", "STATUS", "DESCRIPTION"}
	rows := make([][]string, 0, len(conflicts))
	for _, c := range conflicts {
		rows = append(rows, []string{
			Dim(TruncID(c.ID)),
			SeverityIndicator(c.Severity),
			string(c.Type),
			resourceLabel(c.ResourceID, names),
			StatusBadge(c.Status),
			c.Description,
		})
	}
	return RenderTable(headers, rows)
}

// FormatConflictDetail renders one conflict with its suggestions.
func FormatConflictDetail(c *domain.Conflict, names map[string]string) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Conflict %s", TruncID(c.ID))))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", SeverityIndicator(c.Severity), StatusBadge(c.Status)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Type:"), string(c.Type)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Resource:"), resourceLabel(c.ResourceID, names)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Detected:"), c.DetectedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("\n%s\n", StyleFg.Render(c.Description)))

	if c.ResolutionNote != "" {
		b.WriteString(fmt.Sprintf("\n%s %s\n", Dim("Note:"), c.ResolutionNote))
	}
	if c.ResolvedAt != nil {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Closed:"), c.ResolvedAt.Format("2006-01-02 15:04")))
	}

	if len(c.Suggestions) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Suggestions"))
		b.WriteString("\n\n")
		for _, s := range c.Suggestions {
			b.WriteString(fmt.Sprintf("%s %s  %s\n",
				Bold(fmt.Sprintf("%d.", s.Rank)),
				StyleFg.Render(s.Title),
				impactBadge(s.Impact)))
			b.WriteString(fmt.Sprintf("   %s\n", Dim(s.Description)))
		}
	}

	return b.String()
}

func impactBadge(i domain.Impact) string {
	switch i {
	case domain.ImpactHigh:
		return StyleRed.Render("[high impact]")
	case domain.ImpactMedium:
		return StyleYellow.Render("[medium impact]")
	default:
		return StyleGreen.Render("[low impact]")
	}
}

func resourceLabel(resourceID string, names map[string]string) string {
	if name, ok := names[resourceID]; ok {
		return name
	}
	// Synthetic assignee ids read better as the bare crew name.
	return strings.TrimPrefix(resourceID, "assignee:")
}
