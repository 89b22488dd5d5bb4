package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/stagehand/internal/contract"
)

// FormatDetectReport renders a detection run summary followed by the active
// conflicts it produced.
func FormatDetectReport(resp *contract.DetectResponse, names map[string]string) string {
	var b strings.Builder

	b.WriteString(Header("Detection Run"))
	b.WriteString("\n\n")

	st := resp.Stats
	b.WriteString(fmt.Sprintf("%s %d resources, %d allocations\n",
		Dim("Scanned:"), st.ResourcesScanned, st.AllocationsIndexed))
	b.WriteString(fmt.Sprintf("%s %d found, %d new, %d refreshed, %d auto-resolved\n",
		Dim("Conflicts:"), st.PairsFound, st.Created, st.Updated, st.AutoResolved))

	if len(resp.Skipped) > 0 {
		b.WriteString(fmt.Sprintf("\n%s\n", StyleYellow.Render(
			fmt.Sprintf("Skipped %d malformed allocation(s):", len(resp.Skipped)))))
		for _, s := range resp.Skipped {
			b.WriteString(fmt.Sprintf("  %s %s\n", Dim(TruncID(s.AllocationID)), s.Reason))
		}
	}

	b.WriteString("\n")
	if len(resp.Conflicts) == 0 {
		b.WriteString(StyleGreen.Render("No conflicts detected."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(FormatConflictList(resp.Conflicts, names))
	return b.String()
}
