package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncID(t *testing.T) {
	assert.Equal(t, "aaaaaaaa", TruncID("aaaaaaaa-1111-2222-3333-444444444444"))
	assert.Equal(t, "short", TruncID("short"))
}

func TestFormatInterval_SameDay(t *testing.T) {
	start := time.Date(2025, 9, 12, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 9, 12, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-09-12 10:00–12:30", FormatInterval(start, end))
}

func TestFormatInterval_CrossDay(t *testing.T) {
	start := time.Date(2025, 9, 12, 22, 0, 0, 0, time.UTC)
	end := time.Date(2025, 9, 13, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-09-12 22:00 – 2025-09-13 02:00", FormatInterval(start, end))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "30s", FormatDuration(30*time.Second))
	assert.Equal(t, "45m", FormatDuration(45*time.Minute))
	assert.Equal(t, "2h", FormatDuration(2*time.Hour))
	assert.Equal(t, "2h30m", FormatDuration(2*time.Hour+30*time.Minute))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "LONGHEADER"}, [][]string{
		{"x", "y"},
		{"longer", "z"},
	})
	assert.Contains(t, out, "LONGHEADER")
	assert.Contains(t, out, "longer")
	assert.Contains(t, out, "─")
}
