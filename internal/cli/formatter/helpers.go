package formatter

import (
	"fmt"
	"time"
)

// TruncID shortens a UUID to its first 8 characters for display.
func TruncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatInterval renders a booking interval as "2025-09-12 10:00–12:00",
// collapsing the date when start and end fall on the same day.
func FormatInterval(start, end time.Time) string {
	if start.Year() == end.Year() && start.YearDay() == end.YearDay() {
		return fmt.Sprintf("%s %s–%s",
			start.Format("2006-01-02"), start.Format("15:04"), end.Format("15:04"))
	}
	return fmt.Sprintf("%s – %s",
		start.Format("2006-01-02 15:04"), end.Format("2006-01-02 15:04"))
}

// FormatDuration renders a duration as "2h30m", "45m", or "30s" for very
// short spans.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%dm", h, m)
}
